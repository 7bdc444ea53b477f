package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/repository"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes we translate into domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	// raised for ids that are not valid UUIDs
	invalidTextRepresentation = "22P02"
)

// mapError converts driver errors into domain errors for the given entity.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("%s not found", entity)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case uniqueViolation:
			return fmt.Errorf("%w: %w", repository.ErrDuplicate,
				domain.Conflictf("%s already exists (%s)", entity, pqErr.Constraint))
		case foreignKeyViolation:
			return domain.Conflictf("%s is referenced by other records (%s)", entity, pqErr.Constraint)
		case invalidTextRepresentation:
			return domain.NotFoundf("%s not found", entity)
		}
	}
	return fmt.Errorf("%s query failed: %w", entity, err)
}

// expectOneRow turns a zero-row UPDATE/DELETE into a not-found error.
func expectOneRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return domain.NotFoundf("%s not found", entity)
	}
	return nil
}
