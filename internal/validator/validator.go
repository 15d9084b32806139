package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

// ValidationError describes a single failed field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
	Rule    string `json:"rule"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator with domain rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Closed enum sets. Anything outside them is rejected at the edge.
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("completion_status", func(fl validator.FieldLevel) bool {
		return models.CompletionStatus(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

// Struct validates a request struct and converts failures into
// ValidationErrors suitable for API responses.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "user_role":
		return "must be one of: superadmin, tutor"
	case "completion_status":
		return "must be one of: enrolled, completed"
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}
