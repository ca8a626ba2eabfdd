package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValidationError(t *testing.T) {
	type req struct {
		Title string `validate:"max=3"`
		Color string `validate:"required"`
	}

	err := validator.New().Struct(&req{Title: "too long"})
	require.Error(t, err)

	resp := FromValidationError(err)
	require.Equal(t, http.StatusBadRequest, resp.Code())

	structured, ok := resp.(*StructuredError)
	require.True(t, ok)
	assert.Equal(t, []string{"Value is too long, max: 3"}, structured.Errors["title"])
	assert.Equal(t, []string{"This field is required"}, structured.Errors["color"])
}

func TestFromValidationError_NonValidatorError(t *testing.T) {
	assert.Same(t, MalformedBodyError, FromValidationError(errors.New("boom")))
}

func TestAPIError_JSONShape(t *testing.T) {
	body, err := json.Marshal(NotFoundError)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Note not found"}`, string(body))
	assert.Equal(t, http.StatusNotFound, NotFoundError.Code())
}
