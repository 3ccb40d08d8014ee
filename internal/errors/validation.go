package errors

import (
	goerrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BindingFields turns a gin binding error into per-field messages so the
// boundary can report which field failed and why.
func BindingFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !goerrors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "min":
			fields[name] = "must be at least " + fe.Param() + " characters long"
		case "max":
			fields[name] = "must be at most " + fe.Param() + " characters long"
		default:
			fields[name] = "is invalid"
		}
	}
	return fields
}
