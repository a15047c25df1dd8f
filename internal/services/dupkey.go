package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isDuplicateKey reports whether err is a uniqueness-constraint violation.
// GORM translates some driver errors, but not under every dialector, so the
// raw driver errors are inspected as well.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		// 1062: ER_DUP_ENTRY
		return mysqlErr.Number == 1062
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505: unique_violation
		return pgErr.Code == "23505"
	}

	// sqlite (both cgo and pure-Go drivers) and sqlserver only expose the
	// violation through the message text.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed") && strings.Contains(msg, "2067") ||
		strings.Contains(msg, "Cannot insert duplicate key")
}
