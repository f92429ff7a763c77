package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsKeepsApplicationErrors(t *testing.T) {
	base := New(http.StatusNotFound, CodePreviewNotFound, "gone")
	wrapped := fmt.Errorf("confirm: %w", base)

	got := As(wrapped)
	assert.Same(t, base, got)
	assert.True(t, Is(wrapped, CodePreviewNotFound))
	assert.False(t, Is(wrapped, CodeForbidden))
}

func TestAsTurnsUnknownErrorsIntoInternal(t *testing.T) {
	cause := errors.New("connection reset")

	got := As(cause)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, CodeInternal, got.Code)
	assert.ErrorIs(t, got, cause)
}

func TestValidation(t *testing.T) {
	err := Validation("Template berisi kesalahan.", map[string]string{"file": "x"}, []string{"w"})

	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, "Template berisi kesalahan.", err.Error())
	assert.Equal(t, "x", err.Fields["file"])
	assert.Equal(t, []string{"w"}, err.Warnings)
}

func TestErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "forbidden", (&Error{Code: CodeForbidden}).Error())
	assert.Equal(t, "app error (418)", (&Error{Status: 418}).Error())

	var nilErr *Error
	assert.Equal(t, "", nilErr.Error())
}
