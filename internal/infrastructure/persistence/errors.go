package persistence

import (
	"errors"

	"github.com/koperasi/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError turns gorm and driver errors into storage errors the
// application layer understands. Connections are opened with TranslateError
// so unique and foreign key violations arrive as gorm sentinels for both the
// postgres and sqlite dialects.
func translateError(err error, entity, key string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFound(entity, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &shared.UniqueConstraintError{Constraint: entity, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &shared.ForeignKeyConstraintError{Constraint: entity, Err: err}
	default:
		return err
	}
}
