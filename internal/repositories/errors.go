package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Sentinel errors returned (wrapped) by every repository. Higher layers
// match them with errors.Is.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// pgUniqueViolation is the SQLSTATE postgres reports for unique constraints.
const pgUniqueViolation = "23505"

// translateError maps driver errors onto the sentinels above. gorm
// translates most of them when TranslateError is on; the driver checks
// cover connections opened without it.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateKey
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && isSQLiteUnique(liteErr) {
		return ErrDuplicateKey
	}
	var liteErrPtr *sqlite3.Error
	if errors.As(err, &liteErrPtr) && isSQLiteUnique(*liteErrPtr) {
		return ErrDuplicateKey
	}
	return err
}

func isSQLiteUnique(e sqlite3.Error) bool {
	return e.ExtendedCode == sqlite3.ErrConstraintUnique ||
		e.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
