package postgres

import (
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// mapError converts gorm and driver errors into domain sentinels. what names
// the entity for not-found messages, op the failing operation.
func mapError(err error, what, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customErrors.NotFound(what)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return customErrors.ErrAlreadyExists
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return customErrors.ErrAlreadyExists
	}
	return customErrors.WrapInternal(err, op)
}
