package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO against its `validate` tags and returns a
// 400 AppError naming the first offending field.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return ErrValidation(fmt.Sprintf(
				"field '%s' failed on the '%s' rule",
				strings.ToLower(fe.Field()), fe.Tag(),
			))
		}
		return ErrValidation("invalid request payload")
	}
	return nil
}
