package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
	undefinedTableCode  = "42P01"
)

// translateConflict maps Postgres unique violations to ErrConflict so the
// service layer sees one conflict error regardless of which unique index
// fired.
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrConflict
	}
	return err
}

// translateMissing maps Postgres undefined-table errors to ErrNotFound. A
// document operation can race a rename or delete that just dropped the
// collection's table.
func translateMissing(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
		return ErrNotFound
	}
	return err
}
