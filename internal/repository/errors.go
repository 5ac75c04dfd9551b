package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"granja/pkg/apperror"
	"granja/pkg/logger"
)

// storageError converts a driver error into Conflict (uniqueness violation)
// or StorageFailure. The transaction that produced err has already been
// rolled back by the time this runs.
func storageError(op string, err error) error {
	if isUniqueConstraintError(err) {
		return apperror.ErrConflict.WithInternal(fmt.Errorf("%s: %w", op, err))
	}

	logger.WithModule("repository").Error("storage failure",
		zap.String("op", op),
		zap.Error(err),
	)
	return apperror.ErrStorage.WithInternal(fmt.Errorf("%s: %w", op, err))
}

// lookupError maps gorm.ErrRecordNotFound to the NotFound sentinel.
func lookupError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return storageError(op, err)
}

// isUniqueConstraintError detects uniqueness violations across drivers.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23505" {
		return true
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "unique constraint") ||
		strings.Contains(lower, "duplicate key")
}
