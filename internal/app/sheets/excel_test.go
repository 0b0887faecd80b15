package sheets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newTestBook создаёт книгу заказов с листом ожидания и заголовком
func newTestBook(t *testing.T, dir, storeID string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Waiting"); err != nil {
		t.Fatal(err)
	}
	header := []interface{}{"Дата", "Филиал", "Заказал"}
	if err := f.SetSheetRow("Waiting", "A1", &header); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Waiting", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(filepath.Join(dir, storeID+".xlsx")); err != nil {
		t.Fatal(err)
	}
}

func TestExcelStoreReadRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newTestBook(t, dir, "book", [][]interface{}{
		{"2026-08-01", "Север", "ivanov"},
		{"2026-08-02", "Юг", "petrov"},
	})

	store, err := NewExcelStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := store.ReadRange(context.Background(), "book", "Waiting!A2:C")
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "Север" || rows[1][2] != "petrov" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestExcelStoreReadRangeSingleCell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newTestBook(t, dir, "book", [][]interface{}{{"x", "y", "z"}})

	store, err := NewExcelStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := store.ReadRange(context.Background(), "book", "Waiting!B2")
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != 1 || rows[0][0] != "y" {
		t.Fatalf("rows = %v, want [[y]]", rows)
	}
}

func TestExcelStoreWriteAndReadBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newTestBook(t, dir, "book", nil)

	store, err := NewExcelStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	err = store.WriteRange(ctx, "book", "Waiting!A2", [][]string{{"2026-08-01", "Север", "ivanov"}})
	if err != nil {
		t.Fatalf("WriteRange: %v", err)
	}

	rows, err := store.ReadRange(ctx, "book", "Waiting!A2:C")
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if len(rows) != 1 || rows[0][2] != "ivanov" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestExcelStoreAppendAfterLastNonBlank(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newTestBook(t, dir, "book", [][]interface{}{
		{"2026-08-01", "Север", "ivanov"},
	})

	store, err := NewExcelStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	start, err := store.Append(ctx, "book", "Waiting", [][]string{{"2026-08-02", "Юг", "petrov"}})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if start != 3 {
		t.Errorf("start = %d, want 3", start)
	}

	// затёртая колонка A: следующий Append пишет поверх пустого хвоста
	if err := store.WriteRange(ctx, "book", "Waiting!A3", [][]string{{"", "", ""}}); err != nil {
		t.Fatal(err)
	}
	start, err = store.Append(ctx, "book", "Waiting", [][]string{{"2026-08-03", "Запад", "sidorov"}})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if start != 3 {
		t.Errorf("start after clear = %d, want 3", start)
	}
}

func TestExcelStoreBatchWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newTestBook(t, dir, "book", [][]interface{}{
		{"2026-08-01", "Север", "ivanov"},
		{"2026-08-02", "Юг", "petrov"},
	})

	store, err := NewExcelStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	err = store.BatchWrite(ctx, "book", []RangeWrite{
		{Range: "Waiting!B2", Rows: [][]string{{"Восток"}}},
		{Range: "Waiting!A3", Rows: [][]string{{"", "", ""}}},
	})
	if err != nil {
		t.Fatalf("BatchWrite: %v", err)
	}

	rows, err := store.ReadRange(ctx, "book", "Waiting!A2:C")
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want blank tail trimmed", rows)
	}
	if rows[0][1] != "Восток" {
		t.Errorf("rows[0][1] = %q, want Восток", rows[0][1])
	}
}

func TestExcelStoreSheets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newTestBook(t, dir, "book", nil)

	store, err := NewExcelStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	tabs, err := store.Sheets(context.Background(), "book")
	if err != nil {
		t.Fatalf("Sheets: %v", err)
	}
	if len(tabs) != 1 || tabs[0] != "Waiting" {
		t.Fatalf("tabs = %v", tabs)
	}
}

func TestExcelStoreMissingBook(t *testing.T) {
	t.Parallel()

	store, err := NewExcelStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.ReadRange(context.Background(), "nope", "Waiting!A2:C")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}
