package sheets

import (
	"fmt"
	"strings"
)

// Ref разобранный диапазон. Колонки и строки 1-based,
// EndCol/EndRow == 0 означает "до конца листа".
type Ref struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseRange разбирает диапазон вида "Лист!A2:K", "Лист!B2", "Лист!A2:K200".
func ParseRange(rng string) (Ref, error) {
	name, cells, ok := strings.Cut(rng, "!")
	if !ok {
		return Ref{}, fmt.Errorf("range %q: missing sheet name", rng)
	}

	ref := Ref{Sheet: name}

	start, end, hasEnd := strings.Cut(cells, ":")
	col, row, err := parseCell(start)
	if err != nil {
		return Ref{}, fmt.Errorf("range %q: %w", rng, err)
	}
	if col == 0 || row == 0 {
		return Ref{}, fmt.Errorf("range %q: start cell must have column and row", rng)
	}
	ref.StartCol, ref.StartRow = col, row

	if !hasEnd {
		ref.EndCol, ref.EndRow = col, row
		return ref, nil
	}

	col, row, err = parseCell(end)
	if err != nil {
		return Ref{}, fmt.Errorf("range %q: %w", rng, err)
	}
	if col == 0 {
		return Ref{}, fmt.Errorf("range %q: end cell must have a column", rng)
	}
	ref.EndCol, ref.EndRow = col, row
	return ref, nil
}

// CellName собирает имя ячейки из 1-based координат
func CellName(col, row int) string {
	var b strings.Builder
	for col > 0 {
		col--
		b.WriteByte(byte('A' + col%26))
		col /= 26
	}
	s := []byte(b.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return fmt.Sprintf("%s%d", s, row)
}

// parseCell разбирает "K200" в (11, 200); "K" в (11, 0)
func parseCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	if col == 0 {
		return 0, 0, fmt.Errorf("cell %q: no column letters", cell)
	}
	if i == len(cell) {
		return col, 0, nil
	}
	for ; i < len(cell); i++ {
		if cell[i] < '0' || cell[i] > '9' {
			return 0, 0, fmt.Errorf("cell %q: bad row digits", cell)
		}
		row = row*10 + int(cell[i]-'0')
	}
	return col, row, nil
}
