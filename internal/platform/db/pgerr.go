package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes raised by the oleander.users column constraints.
const (
	codeStringTruncation = "22001"
	codeNotNullViolation = "23502"
	codeUniqueViolation  = "23505"
	codeCheckViolation   = "23514"
)

// IsUniqueViolation reports whether err is a unique index violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// IsConstraintViolation reports whether err is a not-null, check, or
// value-too-long violation.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeStringTruncation, codeNotNullViolation, codeCheckViolation:
		return true
	}
	return false
}
