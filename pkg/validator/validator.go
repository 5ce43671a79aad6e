package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ParseError converts validation or binding errors into a field -> message map
// suitable for API responses.
func ParseError(err error) map[string]string {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[strings.ToLower(fe.Field())] = messageForTag(fe)
		}
	} else if err != nil { // Non-validator errors
		errors["error"] = err.Error()
	}
	return errors
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not exceed %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of the following: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", fe.Field())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", fe.Field(), fe.Tag())
	}
}
