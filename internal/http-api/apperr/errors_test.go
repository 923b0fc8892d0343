package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Fields(t *testing.T) {
	v := NewValidationError().Add("username", "too short").Add("username", "bad chars").Add("email", "required")

	assert.Equal(t, []string{"too short", "bad chars"}, v.Fields["username"])
	assert.Equal(t, "validation failed: email: required; username: too short bad chars", v.Error())
}

func TestValidationError_OrNil(t *testing.T) {
	assert.NoError(t, NewValidationError().OrNil())

	var nilErr *ValidationError
	assert.NoError(t, nilErr.OrNil())

	assert.Error(t, FieldError("name", "required").OrNil())
}

func TestConflict_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create review: %w", Conflict("Score already exists"))

	assert.True(t, errors.Is(err, ErrConflict))

	v, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Score already exists"}, v.Fields[NonFieldKey])
}

func TestMerge(t *testing.T) {
	a := FieldError("name", "required")
	a.Merge(Conflict("dup"))

	assert.Len(t, a.Fields, 2)
	assert.ErrorIs(t, a, ErrConflict)
	assert.Same(t, a, a.Merge(nil))
}
