package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"orders-backend/internal/app/ds"
)

const sheetName = "Orders"

var header = []interface{}{
	"Серийный номер", "Статус", "Филиал", "Подал", "Создан",
	"Код товара", "Наименование", "Категория", "Кол-во", "Цена", "Сумма",
}

// Workbook разворачивает агрегаты заказов в плоскую xlsx-выгрузку:
// одна строка на позицию, пустая строка-разделитель между заказами.
// Чистое преобразование, бизнес-логики здесь нет.
func Workbook(orders []ds.Order) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for i, order := range orders {
		if i > 0 {
			row++ // разделитель
		}
		for _, line := range order.Items {
			created := ""
			if !line.Date.IsZero() {
				created = line.Date.Format("2006-01-02 15:04:05")
			}
			values := []interface{}{
				order.Serial,
				order.Status,
				order.BranchName,
				line.RequestedBy,
				created,
				line.ProductCode,
				line.ProductName,
				line.Category,
				line.Quantity,
				line.UnitPrice.String(),
				line.Subtotal.String(),
			}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
				return nil, err
			}
			row++
		}
	}

	return f.WriteToBuffer()
}
