// Package forms validates console input before anything touches the
// network. Constraints are data (struct tags); a failed validation surfaces
// as a field→message map and never produces a backend call.
package forms

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// emailCheck is a bare instance for the email leg of the email_or_phone
// rule; keeping it separate from validate avoids an initialization cycle
// through the registered rule.
var emailCheck = validator.New()

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("email_or_phone", validateEmailOrPhone); err != nil {
		panic(err)
	}

	return v
}

func validateEmailOrPhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if phonePattern.MatchString(value) {
		return true
	}
	return emailCheck.Var(value, "email") == nil
}

// ValidationErrors maps field names to user-facing messages.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e))
}

// check runs the struct tags and converts failures into field messages.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Maximum %s %s allowed", fe.Param(), label)
		}
		return fmt.Sprintf("%s must be less than %s characters", label, fe.Param())
	case "uuid", "uuid4", "uuid_rfc4122":
		return fmt.Sprintf("Invalid %s", label)
	case "email_or_phone":
		return "Invalid email address or phone number"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
