package errors

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidator converts validator.ValidationErrors into a single human-readable
// ValidationError. Any other error is returned unchanged.
func FromValidator(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		case "gt", "gte", "lt", "lte":
			messages = append(messages, fmt.Sprintf("%s must be %s %s", e.Field(), comparison(e.Tag()), e.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return NewValidationError("", strings.Join(messages, ", "))
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "lt":
		return "less than"
	case "lte":
		return "at most"
	default:
		return "at least"
	}
}
