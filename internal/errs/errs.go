package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidSchema    Code = "invalid_schema"
	CodeInvalidFile      Code = "invalid_file"
	CodeValidationFailed Code = "validation_failed"
	CodePreviewNotFound  Code = "preview_not_found"
	CodeForbidden        Code = "forbidden"
	CodeCommitFailed     Code = "commit_failed"
	CodeInternal         Code = "internal"
)

// Error is an application error that already knows how it is answered over HTTP.
type Error struct {
	Status   int
	Code     Code
	Err      error
	Fields   map[string]string
	Warnings []string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return string(e.Code)
	}
	return fmt.Sprintf("app error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code Code, msg string) *Error {
	return &Error{Status: status, Code: code, Err: errors.New(msg)}
}

func Wrap(status int, code Code, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation carries field-scoped messages, keyed by field path.
func Validation(msg string, fields map[string]string, warnings []string) *Error {
	return &Error{
		Status:   http.StatusUnprocessableEntity,
		Code:     CodeValidationFailed,
		Err:      errors.New(msg),
		Fields:   fields,
		Warnings: warnings,
	}
}

// As unwraps err into *Error; anything else becomes an internal error.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(http.StatusInternalServerError, CodeInternal, err)
}

func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
