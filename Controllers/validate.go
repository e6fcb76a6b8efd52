package Controllers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct runs the validator tags of a request struct and converts the
// first failure into a field-level validation error.
func validateStruct(v interface{}) *apiError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return validationError(fmt.Sprintf("field %s failed validation on %s", first.Field(), first.Tag()))
	}
	return validationError(err.Error())
}
