package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/rezkam/catalog/internal/domain"
)

const pgForeignKeyViolation = "23503"

// isForeignKeyViolation reports whether err is a foreign key failure in
// either dialect.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "FOREIGN KEY"))
	}
	return false
}

// translateError maps driver errors to domain errors. kind and id name the
// record the statement was about.
func translateError(err error, kind, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.NotFound(kind, id)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: parent of %s %s", domain.ErrNotFound, kind, id)
	default:
		return fmt.Errorf("failed to access %s %s: %w", kind, id, err)
	}
}

// checkRowsAffected returns ErrNotFound when a statement touched no rows.
func checkRowsAffected(result sql.Result, kind, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NotFound(kind, id)
	}
	return nil
}
