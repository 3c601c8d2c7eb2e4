package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("Book", 7)))
	assert.Equal(t, KindValidation, KindOf(Validation("title", "Title cannot be empty")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain error")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while deleting: %w", Conflict("Cannot delete the last admin user"))
	assert.True(t, IsKind(wrapped, KindConflict))
}

func TestStorageCarriesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage("Failed to save books to storage", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
