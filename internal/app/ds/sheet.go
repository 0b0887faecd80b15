package ds

// Логические листы внутри клиентской книги заказов. Статус заказа не хранится
// в отдельной колонке — он определяется тем, на каком листе лежат строки.
const (
	SheetWaiting   = "Waiting for Approval"
	SheetApproved  = "Final Orders"
	SheetCancelled = "Cancelled Orders"
	SheetCatalog   = "Product Catalog"
	SheetSerials   = "Serial Numbers"
)

// Ячейка со счётчиком серийных номеров на листе SheetSerials
const SerialCounterCell = "B2"

// Статусы заказа, производные от листа
const (
	StatusWaiting   = "в ожидании"
	StatusApproved  = "утверждён"
	StatusCancelled = "отменён"
)

// SheetStatus возвращает статус для строк, прочитанных с данного листа
func SheetStatus(sheet string) string {
	switch sheet {
	case SheetApproved:
		return StatusApproved
	case SheetCancelled:
		return StatusCancelled
	default:
		return StatusWaiting
	}
}
