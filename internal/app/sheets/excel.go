package sheets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExcelStore реализация Store поверх локальных xlsx-книг: одна книга на
// storeID в каталоге dataDir. Операции над одной книгой сериализуются
// мьютексом, чтобы не повредить файл; семантика гонок между отдельными
// вызовами (scan-then-write в Append) при этом сохраняется.
type ExcelStore struct {
	dataDir string
	locks   sync.Map // storeID -> *sync.Mutex
}

func NewExcelStore(dataDir string) (*ExcelStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &ExcelStore{dataDir: dataDir}, nil
}

func (s *ExcelStore) path(storeID string) string {
	return filepath.Join(s.dataDir, storeID+".xlsx")
}

func (s *ExcelStore) lock(storeID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(storeID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *ExcelStore) open(storeID string) (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path(storeID))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, storeID, err)
	}
	return f, nil
}

// ReadRange читает диапазон и отрезает хвостовые пустые строки
func (s *ExcelStore) ReadRange(_ context.Context, storeID, rng string) ([][]string, error) {
	mu := s.lock(storeID)
	mu.Lock()
	defer mu.Unlock()

	ref, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}

	f, err := s.open(storeID)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := f.GetRows(ref.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s!%s: %v", ErrStoreUnavailable, storeID, ref.Sheet, err)
	}

	if ref.StartRow > len(all) {
		return [][]string{}, nil
	}
	endRow := len(all)
	if ref.EndRow > 0 && ref.EndRow < endRow {
		endRow = ref.EndRow
	}

	rows := make([][]string, 0, endRow-ref.StartRow+1)
	for _, raw := range all[ref.StartRow-1 : endRow] {
		row := sliceCols(raw, ref.StartCol, ref.EndCol)
		rows = append(rows, row)
	}
	return trimTrailingEmpty(rows), nil
}

// WriteRange перезаписывает ячейки, начиная с левого верхнего угла диапазона
func (s *ExcelStore) WriteRange(_ context.Context, storeID, rng string, rows [][]string) error {
	mu := s.lock(storeID)
	mu.Lock()
	defer mu.Unlock()

	f, err := s.open(storeID)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := setRows(f, rng, rows); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrStoreUnavailable, storeID, err)
	}
	return nil
}

// Append ищет снизу последнюю непустую ячейку колонки A и пишет под ней
func (s *ExcelStore) Append(_ context.Context, storeID, sheet string, rows [][]string) (int, error) {
	mu := s.lock(storeID)
	mu.Lock()
	defer mu.Unlock()

	f, err := s.open(storeID)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	all, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s!%s: %v", ErrStoreUnavailable, storeID, sheet, err)
	}

	last := 0
	for i := len(all) - 1; i >= 0; i-- {
		if len(all[i]) > 0 && strings.TrimSpace(all[i][0]) != "" {
			last = i + 1
			break
		}
	}
	start := last + 1

	if err := setRows(f, fmt.Sprintf("%s!A%d", sheet, start), rows); err != nil {
		return 0, err
	}
	if err := f.Save(); err != nil {
		return 0, fmt.Errorf("%w: save %s: %v", ErrStoreUnavailable, storeID, err)
	}
	logrus.Debugf("appended %d row(s) to %s!%s at row %d", len(rows), storeID, sheet, start)
	return start, nil
}

// BatchWrite применяет все диапазоны за одно открытие и сохранение книги
func (s *ExcelStore) BatchWrite(_ context.Context, storeID string, writes []RangeWrite) error {
	mu := s.lock(storeID)
	mu.Lock()
	defer mu.Unlock()

	f, err := s.open(storeID)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, w := range writes {
		if err := setRows(f, w.Range, w.Rows); err != nil {
			return err
		}
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrStoreUnavailable, storeID, err)
	}
	return nil
}

func (s *ExcelStore) Sheets(_ context.Context, storeID string) ([]string, error) {
	mu := s.lock(storeID)
	mu.Lock()
	defer mu.Unlock()

	f, err := s.open(storeID)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

func setRows(f *excelize.File, rng string, rows [][]string) error {
	ref, err := ParseRange(rng)
	if err != nil {
		return err
	}
	for i, row := range rows {
		for j, val := range row {
			cell := CellName(ref.StartCol+j, ref.StartRow+i)
			if err := f.SetCellValue(ref.Sheet, cell, val); err != nil {
				return fmt.Errorf("%w: set %s!%s: %v", ErrStoreUnavailable, ref.Sheet, cell, err)
			}
		}
	}
	return nil
}

func sliceCols(raw []string, startCol, endCol int) []string {
	if startCol > len(raw) {
		return []string{}
	}
	end := len(raw)
	if endCol > 0 && endCol < end {
		end = endCol
	}
	out := make([]string, end-startCol+1)
	copy(out, raw[startCol-1:end])
	return out
}

func trimTrailingEmpty(rows [][]string) [][]string {
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		empty := true
		for _, c := range last {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		rows = rows[:len(rows)-1]
	}
	return rows
}
