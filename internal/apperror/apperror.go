package apperror

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeNotFound         = "NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidParent    = "INVALID_PARENT"
	CodeConflict         = "CONFLICT"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError is the one error shape services return for expected failures.
// Status drives the HTTP mapping, Code is the machine-readable taxonomy
// entry, Message is safe to show to clients.
type AppError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func Unauthenticated(message string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthenticated, message)
}

// NotFound covers both "does not exist" and "exists but is not visible to
// the caller". Ownership checks fold into the lookup so foreign ids are
// indistinguishable from absent ones.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func InvalidParent(message string) *AppError {
	return New(http.StatusUnprocessableEntity, CodeInvalidParent, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, CodeConflict, message)
}

// FromValidationErrors flattens validator.ValidationErrors into a 400 with
// one human-readable line per failing field.
func FromValidationErrors(err error) *AppError {
	appErr := New(http.StatusBadRequest, CodeValidationFailed, "request validation failed")

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return appErr
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageForTag(fe)
	}
	appErr.Fields = fields
	return appErr
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid uuid"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
