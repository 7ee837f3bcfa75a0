package pgrepo

import "strings"

// rowScanner общий интерфейс для pgx.Row и pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// prefixColumns добавляет алиас таблицы к каждому столбцу из списка вида
// "id, created_at, ...". Нужен для запросов с JOIN.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
