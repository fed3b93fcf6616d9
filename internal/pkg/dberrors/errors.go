package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	return isViolation(err, codeUniqueViolation, constraintName)
}

// IsForeignKeyError checks if the error is a PostgreSQL foreign key violation
// for a specific constraint.
func IsForeignKeyError(err error, constraintName string) bool {
	return isViolation(err, codeForeignKeyViolation, constraintName)
}

func isViolation(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code && pgErr.ConstraintName == constraintName
}
