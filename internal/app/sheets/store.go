package sheets

import (
	"context"
	"errors"
)

// ErrStoreUnavailable транспортная ошибка или недоступная книга
var ErrStoreUnavailable = errors.New("tabular store unavailable")

// RangeWrite одна запись для BatchWrite: диапазон и значения
type RangeWrite struct {
	Range string // начальная ячейка вида "Final Orders!A5"
	Rows  [][]string
}

// Store узкий контракт табличного хранилища. Все сущности системы
// восстанавливаются из него на каждый запрос, кэша состояния нет.
//
// Гарантий атомарности между вызовами нет: Append делает scan-then-write,
// и два конкурентных Append могут затереть строки друг друга. BatchWrite
// применяет диапазоны одним сетевым вызовом, но без кросс-диапазонной
// транзакции.
type Store interface {
	// ReadRange возвращает строки диапазона без хвостовых пустых строк.
	// Пустой диапазон — пустой срез, не ошибка.
	ReadRange(ctx context.Context, storeID, rng string) ([][]string, error)

	// WriteRange перезаписывает ровно адресованные ячейки, начиная с
	// левого верхнего угла диапазона.
	WriteRange(ctx context.Context, storeID, rng string, rows [][]string) error

	// Append ищет снизу последнюю строку с непустой колонкой A и пишет
	// rows сразу под ней (колонки A-K). Возвращает номер первой
	// записанной строки.
	Append(ctx context.Context, storeID, sheet string, rows [][]string) (int, error)

	// BatchWrite пишет несколько непересекающихся диапазонов за один вызов.
	BatchWrite(ctx context.Context, storeID string, writes []RangeWrite) error

	// Sheets возвращает имена листов книги.
	Sheets(ctx context.Context, storeID string) ([]string, error)
}
