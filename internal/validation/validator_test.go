package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	require.ErrorIs(t, err, common.ErrValidation)
	return ve.Fields
}

func TestStruct_UserMissingFields(t *testing.T) {
	err := Struct(models.User{Email: "not-an-email"})

	assert.Equal(t, map[string]string{
		"firstName": "is required",
		"lastName":  "is required",
		"email":     "must be a valid email",
		"password":  "is required",
	}, fields(t, err))
}

func TestStruct_ValidUser(t *testing.T) {
	err := Struct(models.User{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "x"})
	assert.NoError(t, err)
}

func TestStruct_TaskUsesJSONNames(t *testing.T) {
	err := Struct(models.Task{Title: "t"})
	assert.Equal(t, map[string]string{"description": "is required"}, fields(t, err))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("ownerId", "1", "required"))
	assert.Equal(t, map[string]string{"ownerId": "is required"}, fields(t, Var("ownerId", "", "required")))
}

func TestMerge(t *testing.T) {
	assert.NoError(t, Merge(nil, nil))
	assert.NoError(t, Merge(errors.New("not a validation error")))

	err := Merge(
		common.NewValidationError("title", "is required"),
		nil,
		common.NewValidationError("email", "is taken"),
		common.NewValidationError("title", "is duplicated"),
	)
	assert.Equal(t, map[string]string{"title": "is required", "email": "is taken"}, fields(t, err))
}
