package repository

import (
	"context"
	"strings"

	"orders-backend/internal/app/sheets"
)

// fakeStore хранилище в памяти с семантикой ExcelStore: листы с упорядоченными
// именами, чтение с отрезанием пустого хвоста, Append под последнюю непустую
// ячейку колонки A
type fakeStore struct {
	books map[string]*fakeBook
}

type fakeBook struct {
	order []string
	grid  map[string][][]string // sheet -> строки, индекс 0 соответствует строке 1
}

func newFakeStore() *fakeStore {
	return &fakeStore{books: map[string]*fakeBook{}}
}

func (s *fakeStore) book(storeID string) *fakeBook {
	b, ok := s.books[storeID]
	if !ok {
		b = &fakeBook{grid: map[string][][]string{}}
		s.books[storeID] = b
	}
	return b
}

func (s *fakeStore) addSheet(storeID, sheet string) {
	b := s.book(storeID)
	if _, ok := b.grid[sheet]; !ok {
		b.order = append(b.order, sheet)
		b.grid[sheet] = [][]string{}
	}
}

// seedRow записывает строку листа по её 1-based номеру
func (s *fakeStore) seedRow(storeID, sheet string, row int, cells []string) {
	s.addSheet(storeID, sheet)
	for j, val := range cells {
		s.setCell(storeID, sheet, j+1, row, val)
	}
}

func (s *fakeStore) setCell(storeID, sheet string, col, row int, val string) {
	b := s.book(storeID)
	grid := b.grid[sheet]
	for len(grid) < row {
		grid = append(grid, []string{})
	}
	for len(grid[row-1]) < col {
		grid[row-1] = append(grid[row-1], "")
	}
	grid[row-1][col-1] = val
	b.grid[sheet] = grid
}

// cell читает ячейку по 1-based координатам, пустая строка за пределами сетки
func (s *fakeStore) cell(storeID, sheet string, col, row int) string {
	grid := s.book(storeID).grid[sheet]
	if row > len(grid) || col > len(grid[row-1]) {
		return ""
	}
	return grid[row-1][col-1]
}

func (s *fakeStore) ReadRange(_ context.Context, storeID, rng string) ([][]string, error) {
	ref, err := sheets.ParseRange(rng)
	if err != nil {
		return nil, err
	}

	grid := s.book(storeID).grid[ref.Sheet]
	if ref.StartRow > len(grid) {
		return [][]string{}, nil
	}
	endRow := len(grid)
	if ref.EndRow > 0 && ref.EndRow < endRow {
		endRow = ref.EndRow
	}

	rows := [][]string{}
	for _, raw := range grid[ref.StartRow-1 : endRow] {
		if ref.StartCol > len(raw) {
			rows = append(rows, []string{})
			continue
		}
		end := len(raw)
		if ref.EndCol > 0 && ref.EndCol < end {
			end = ref.EndCol
		}
		row := make([]string, end-ref.StartCol+1)
		copy(row, raw[ref.StartCol-1:end])
		rows = append(rows, row)
	}

	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

func (s *fakeStore) WriteRange(_ context.Context, storeID, rng string, rows [][]string) error {
	ref, err := sheets.ParseRange(rng)
	if err != nil {
		return err
	}
	for i, row := range rows {
		for j, val := range row {
			s.setCell(storeID, ref.Sheet, ref.StartCol+j, ref.StartRow+i, val)
		}
	}
	return nil
}

func (s *fakeStore) Append(_ context.Context, storeID, sheet string, rows [][]string) (int, error) {
	grid := s.book(storeID).grid[sheet]
	last := 0
	for i := len(grid) - 1; i >= 0; i-- {
		if len(grid[i]) > 0 && strings.TrimSpace(grid[i][0]) != "" {
			last = i + 1
			break
		}
	}
	start := last + 1
	for i, row := range rows {
		for j, val := range row {
			s.setCell(storeID, sheet, j+1, start+i, val)
		}
	}
	return start, nil
}

func (s *fakeStore) BatchWrite(ctx context.Context, storeID string, writes []sheets.RangeWrite) error {
	for _, w := range writes {
		if err := s.WriteRange(ctx, storeID, w.Range, w.Rows); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeStore) Sheets(_ context.Context, storeID string) ([]string, error) {
	return s.book(storeID).order, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
