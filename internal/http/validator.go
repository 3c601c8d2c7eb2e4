package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"booklibrary/internal/apperr"
)

var validate = validator.New()

// validateRequest checks the tag rules on a request DTO and converts the
// first failure into a core validation error. Domain rules live in the
// stores; this only guards the request shape.
func validateRequest(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperr.Validation("", "Invalid request body")
	}

	fe := errs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperr.Validation(field, fmt.Sprintf("Missing required field: %s", field))
	default:
		return apperr.Validation(field, fmt.Sprintf("Invalid value for field: %s", field))
	}
}
