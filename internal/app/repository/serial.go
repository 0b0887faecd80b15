package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/ds"
)

// Префикс человекочитаемых серийных номеров заказов
const serialPrefix = "AA"

// NextSerial читает счётчик из ячейки B2 листа серийных номеров,
// инкрементирует и пишет обратно. Чтение-изменение-запись ничем не
// защищено: два одновременных вызова могут выдать одинаковый номер.
//
// Нечитаемый или пустой счётчик трактуется как ноль, чтобы сбой чтения
// не блокировал подачу заказов; нумерация при этом начинается заново.
func (r *Repository) NextSerial(ctx context.Context, storeID string) (string, error) {
	rng := ds.SheetSerials + "!" + ds.SerialCounterCell

	current := 0
	rows, err := r.store.ReadRange(ctx, storeID, rng)
	if err != nil {
		logrus.Warnf("serial counter unreadable for %s, restarting from zero: %v", storeID, err)
	} else if len(rows) > 0 && len(rows[0]) > 0 {
		current = parseSerial(rows[0][0])
	}

	serial := fmt.Sprintf("%s%d", serialPrefix, current+1)
	if err := r.store.WriteRange(ctx, storeID, rng, [][]string{{serial}}); err != nil {
		return "", err
	}
	return serial, nil
}

// parseSerial достаёт числовой суффикс из "AA13" или "13";
// всё нераспознанное считается нулём
func parseSerial(cell string) int {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, serialPrefix)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
