package repository

import (
	"errors"
	"time"

	"orders-backend/internal/app/sheets"
)

// Ошибки бизнес-уровня. Обработчики транслируют их в 400/403/500.
var (
	ErrAuthFailed           = errors.New("неверный логин или пароль")
	ErrUserNotFound         = errors.New("пользователь не найден")
	ErrForbidden            = errors.New("нет прав для выполнения операции")
	ErrNoMatchingRows       = errors.New("подходящие строки заказа не найдены")
	ErrMissingConfiguration = errors.New("для клиента не настроена книга заказов")
)

// Repository вся работа с табличным хранилищем: учётные данные,
// каталог, журнал заказов, серийные номера, сводки
type Repository struct {
	store         sheets.Store
	masterSheetID string

	// подменяется в тестах для фиксации "текущего месяца"
	now func() time.Time
}

func New(store sheets.Store, masterSheetID string) *Repository {
	return &Repository{
		store:         store,
		masterSheetID: masterSheetID,
		now:           time.Now,
	}
}
