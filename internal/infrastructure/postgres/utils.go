package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable verifica si un error es "relation does not exist" (42P01).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return false
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}
