package persistence

import (
	"errors"
	"testing"

	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil, "product", "x"))
	})

	t.Run("record not found", func(t *testing.T) {
		err := translateError(gorm.ErrRecordNotFound, "product", "abc")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		var nf *shared.NotFoundError
		assert.True(t, errors.As(err, &nf))
		assert.Equal(t, "product", nf.Entity)
		assert.Equal(t, "abc", nf.Key)
	})

	t.Run("duplicated key", func(t *testing.T) {
		err := translateError(gorm.ErrDuplicatedKey, "product", "")
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("foreign key violated", func(t *testing.T) {
		err := translateError(gorm.ErrForeignKeyViolated, "sale_line", "")
		var fk *shared.ForeignKeyConstraintError
		assert.True(t, errors.As(err, &fk))
		assert.Equal(t, "sale_line", fk.Constraint)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		err := translateError(assert.AnError, "product", "")
		assert.Same(t, assert.AnError, err)
	})
}
