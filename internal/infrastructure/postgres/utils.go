package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/invorya/lotes-api/internal/domain"
)

// isLockTimeout detecta expiración de lock_timeout (55P03) o cancelación por
// statement_timeout (57014).
func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "55P03" || pgErr.Code == "57014"
}

// translatePgErr mapea errores de PostgreSQL a errores de dominio. LockTimeout
// es el único transient: el caller puede reintentar tras el rollback.
func translatePgErr(err error) error {
	if err == nil {
		return nil
	}
	if isLockTimeout(err) {
		return domain.ErrLockTimeout
	}
	return err
}
