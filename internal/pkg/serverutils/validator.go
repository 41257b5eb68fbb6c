package serverutils

import (
	"inkfeed-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into
// the per-field 400 error shape.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperror.FromValidationErrors(err)
	}
	return nil
}
