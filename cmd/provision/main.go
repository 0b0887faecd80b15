package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"

	"orders-backend/internal/app/ds"
)

// Колонки A-K листов заказов
var orderHeader = []interface{}{
	"Дата", "Филиал", "Заказал", "Код товара", "Наименование",
	"Цена", "Сумма", "Категория", "Количество", "Резерв", "Номер заказа",
}

var catalogHeader = []interface{}{"Код товара", "Наименование", "Цена", "Категория"}

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	dataDir := flag.String("data", envOr("DATA_DIR", "data"), "каталог с xlsx-книгами")
	masterID := flag.String("master", os.Getenv("MASTER_SHEET_ID"), "идентификатор мастер-книги")
	client := flag.String("client", "Client1", "имя клиентской вкладки в мастер-книге")
	budgetID := flag.String("budget", "", "идентификатор клиентской книги заказов")
	flag.Parse()

	if *masterID == "" {
		log.Fatal("Master sheet id is empty. Check your .env file or -master flag")
	}
	if *budgetID == "" {
		log.Fatal("Budget sheet id is empty. Use the -budget flag")
	}

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data dir: %v", err)
	}

	if err := provisionMaster(*dataDir, *masterID, *client, *budgetID); err != nil {
		log.Fatalf("Failed to provision master workbook: %v", err)
	}
	log.Println("Master workbook provisioned successfully")

	if err := provisionBudget(*dataDir, *budgetID); err != nil {
		log.Fatalf("Failed to provision budget workbook: %v", err)
	}
	log.Println("Budget workbook provisioned successfully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// provisionMaster создаёт мастер-книгу с одной клиентской вкладкой:
// строки пользователей с A2, идентификатор книги заказов в F2
func provisionMaster(dataDir, masterID, client, budgetID string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", client); err != nil {
		return err
	}
	header := []interface{}{"Логин", "Пароль", "Филиал", "Ограничен", "Уровень"}
	if err := f.SetSheetRow(client, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellValue(client, "Z1", "Бумажный режим"); err != nil {
		return err
	}
	if err := f.SetCellValue(client, "F2", budgetID); err != nil {
		return err
	}

	return f.SaveAs(filepath.Join(dataDir, masterID+".xlsx"))
}

// provisionBudget создаёт клиентскую книгу заказов с пятью листами
func provisionBudget(dataDir, budgetID string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ds.SheetWaiting); err != nil {
		return err
	}
	for _, sheet := range []string{ds.SheetApproved, ds.SheetCancelled, ds.SheetCatalog, ds.SheetSerials} {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	for _, sheet := range []string{ds.SheetWaiting, ds.SheetApproved, ds.SheetCancelled} {
		if err := f.SetSheetRow(sheet, "A1", &orderHeader); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(ds.SheetCatalog, "A1", &catalogHeader); err != nil {
		return err
	}

	if err := f.SetCellValue(ds.SheetSerials, "A2", "Счётчик"); err != nil {
		return err
	}
	if err := f.SetCellValue(ds.SheetSerials, ds.SerialCounterCell, 0); err != nil {
		return err
	}

	return f.SaveAs(filepath.Join(dataDir, budgetID+".xlsx"))
}
