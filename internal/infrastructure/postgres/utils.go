package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de dominio.
const (
	sqlStateForeignKey = "23503"
	sqlStateUnique     = "23505"
	sqlStateCheck      = "23514"
)

func isUniqueViolation(err error) bool     { return sqlState(err) == sqlStateUnique }
func isForeignKeyViolation(err error) bool { return sqlState(err) == sqlStateForeignKey }

// isCheckViolation cubre los CHECK de stock y precio no negativos y los enums de estado.
func isCheckViolation(err error) bool { return sqlState(err) == sqlStateCheck }

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// nullIfEmpty "" -> NULL en FKs opcionales (categoria_id, proveedor_id, usuario_id...).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// civilDate fecha_caducidad es DATE: se guarda la medianoche UTC del día.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
