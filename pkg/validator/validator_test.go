package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewRequest struct {
	Rating  int    `validate:"required,gte=1,lte=5"`
	Comment string `validate:"required"`
}

type registerRequest struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(reviewRequest{Rating: 4, Comment: "solid"})
	assert.NoError(t, err)
}

func TestValidate_RatingOutOfRange(t *testing.T) {
	err := Validate(reviewRequest{Rating: 6, Comment: "too good"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	fields := valErr.Fields()
	assert.Contains(t, fields, "Rating")
	assert.Contains(t, fields["Rating"], "less than or equal to 5")
}

func TestValidate_MissingComment(t *testing.T) {
	err := Validate(reviewRequest{Rating: 3})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "is required", valErr.Fields()["Comment"])
}

func TestValidate_BadEmail(t *testing.T) {
	err := Validate(registerRequest{Name: "Jane", Email: "not-an-email", Password: "secret1"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_JSONTagNamesInFields(t *testing.T) {
	type taggedRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password,omitempty" validate:"required,min=6"`
	}

	err := Validate(taggedRequest{Email: "nope", Password: "123"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	fields := valErr.Fields()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestValidate_MultipleFailures(t *testing.T) {
	err := Validate(registerRequest{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Len(t, valErr.Fields(), 3)
	assert.Contains(t, valErr.Error(), "Name")
	assert.Contains(t, valErr.Error(), "Email")
	assert.Contains(t, valErr.Error(), "Password")
}
