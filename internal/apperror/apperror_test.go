package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", Unauthenticated("no token"), http.StatusUnauthorized, CodeUnauthenticated},
		{"not found", NotFound("gone"), http.StatusNotFound, CodeNotFound},
		{"forbidden", Forbidden("not yours"), http.StatusForbidden, CodeForbidden},
		{"invalid parent", InvalidParent("wrong note"), http.StatusUnprocessableEntity, CodeInvalidParent},
		{"conflict", Conflict("raced"), http.StatusConflict, CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() == "" {
				t.Errorf("Error() is empty, message lost")
			}
		})
	}
}

func TestErrorsAsRoundTrip(t *testing.T) {
	var wrapped error = NotFound("gone")

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatalf("errors.As failed to recover *AppError")
	}
	if appErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d after round trip, want 404", appErr.Status)
	}
}

func TestFromValidationErrors(t *testing.T) {
	type createReq struct {
		Title   string `validate:"required,max=10"`
		Status  string `validate:"omitempty,oneof=private draft public"`
		Content string `validate:"required"`
	}

	validate := validator.New()
	err := validate.Struct(createReq{Title: "this title is far too long", Status: "published"})
	if err == nil {
		t.Fatalf("expected validation to fail")
	}

	appErr := FromValidationErrors(err)

	if appErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", appErr.Status)
	}
	if appErr.Code != CodeValidationFailed {
		t.Errorf("Code = %q, want %q", appErr.Code, CodeValidationFailed)
	}
	if len(appErr.Fields) != 3 {
		t.Fatalf("Fields = %v, want entries for Title, Status and Content", appErr.Fields)
	}
	if appErr.Fields["Title"] != "must be at most 10 characters long" {
		t.Errorf("Title message = %q", appErr.Fields["Title"])
	}
	if appErr.Fields["Status"] != "must be one of: private draft public" {
		t.Errorf("Status message = %q", appErr.Fields["Status"])
	}
	if appErr.Fields["Content"] != "this field is required" {
		t.Errorf("Content message = %q", appErr.Fields["Content"])
	}
}

func TestFromValidationErrorsNonValidatorInput(t *testing.T) {
	appErr := FromValidationErrors(errors.New("plain failure"))

	if appErr.Status != http.StatusBadRequest || appErr.Code != CodeValidationFailed {
		t.Errorf("fallback shape wrong: %+v", appErr)
	}
	if len(appErr.Fields) != 0 {
		t.Errorf("Fields = %v, want none for non-validator error", appErr.Fields)
	}
}
