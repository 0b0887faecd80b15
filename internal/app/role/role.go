package role

// Level уровень доступа пользователя
type Level string

const (
	L1 Level = "L1" // сотрудник филиала, подаёт заказы
	L2 Level = "L2" // региональный утверждающий
)

// Valid проверяет, что уровень известен системе
func (l Level) Valid() bool {
	return l == L1 || l == L2
}
