package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/ds"
	"orders-backend/internal/app/role"
)

// Служебные вкладки мастер-книги, не являющиеся клиентскими разделами
var reservedPartitions = map[string]bool{
	"Config": true,
	"Readme": true,
}

// Ячейка клиентской вкладки с идентификатором книги заказов клиента
const budgetSheetCell = "F2"

// Колонка Z (26-я) клиентской вкладки с флагом бумажного режима
const userRowRange = "!A2:Z"

// Authenticate ищет пару логин+пароль по всем клиентским вкладкам
// мастер-книги. Побеждает первое совпадение: если один логин заведён
// в двух разделах, достижим только первый по порядку вкладок.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (*ds.UserInfo, error) {
	user, err := r.scanPartitions(ctx, username, password, true)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAuthFailed
	}
	return user, nil
}

// ResolveByUsername тот же проход по вкладкам, но без проверки пароля.
// Используется всеми пост-логиновыми обработчиками.
func (r *Repository) ResolveByUsername(ctx context.Context, username string) (*ds.UserInfo, error) {
	user, err := r.scanPartitions(ctx, username, "", false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CanSubmitFor проверка филиала при подаче заказа: L1 может подавать
// только за свой филиал, L2 — за любой
func CanSubmitFor(user *ds.UserInfo, branch string) bool {
	if user.Level == role.L2 {
		return true
	}
	return user.Branch == branch
}

// BranchesForClient уникальные филиалы из строк пользователей клиентской вкладки
func (r *Repository) BranchesForClient(ctx context.Context, partition string) ([]string, error) {
	rows, err := r.store.ReadRange(ctx, r.masterSheetID, partition+userRowRange)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	branches := []string{}
	for _, raw := range rows {
		if len(raw) < 3 {
			continue
		}
		branch := strings.TrimSpace(raw[2])
		if branch == "" || seen[branch] {
			continue
		}
		seen[branch] = true
		branches = append(branches, branch)
	}
	return branches, nil
}

func (r *Repository) scanPartitions(ctx context.Context, username, password string, checkPassword bool) (*ds.UserInfo, error) {
	tabs, err := r.store.Sheets(ctx, r.masterSheetID)
	if err != nil {
		return nil, err
	}

	for _, tab := range tabs {
		if reservedPartitions[tab] {
			continue
		}

		rows, err := r.store.ReadRange(ctx, r.masterSheetID, tab+userRowRange)
		if err != nil {
			return nil, err
		}

		for _, raw := range rows {
			cell := func(i int) string {
				if i < len(raw) {
					return strings.TrimSpace(raw[i])
				}
				return ""
			}

			if cell(0) != username {
				continue
			}
			if checkPassword && cell(1) != password {
				continue
			}

			user := &ds.UserInfo{
				Username:   username,
				Branch:     cell(2),
				Restricted: truthy(cell(3)),
				Level:      role.Level(cell(4)),
				PaperMode:  truthy(cell(25)),
				Partition:  tab,
			}

			sheetID, err := r.budgetSheetID(ctx, tab)
			if err != nil {
				return nil, err
			}
			user.BudgetSheetID = sheetID

			logrus.Debugf("user %s resolved from partition %s (level %s)", username, tab, user.Level)
			return user, nil
		}
	}
	return nil, nil
}

func (r *Repository) budgetSheetID(ctx context.Context, partition string) (string, error) {
	rows, err := r.store.ReadRange(ctx, r.masterSheetID, partition+"!"+budgetSheetCell)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || len(rows[0]) == 0 || strings.TrimSpace(rows[0][0]) == "" {
		return "", fmt.Errorf("%w: пустая ячейка %s на вкладке %s", ErrMissingConfiguration, budgetSheetCell, partition)
	}
	return strings.TrimSpace(rows[0][0]), nil
}

func truthy(cell string) bool {
	switch strings.ToLower(cell) {
	case "true", "1", "yes", "да":
		return true
	}
	return false
}
