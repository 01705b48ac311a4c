// Package pgerr maps postgres constraint faults onto recognizable
// conditions so repositories can translate them into domain errors.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func IsUniqueViolation(err error) bool {
	return code(err) == uniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return code(err) == foreignKeyViolation
}

func code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
