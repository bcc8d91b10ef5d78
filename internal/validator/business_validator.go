package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sporture/talent-service/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateRegister validates registration business rules
func (bv *BusinessValidator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	// The role tag is validated case-insensitively; surface a dedicated
	// message when the string parses to nothing at all.
	if _, ok := models.ParseRole(req.Type); !ok && req.Type != "" {
		errors = append(errors, ValidationError{
			Field:   "type",
			Message: "must be one of athlete, coach, sponsor",
			Value:   req.Type,
			Rule:    "account_role",
		})
	}

	return dedupe(errors)
}

// ValidateStatusUpdate validates an admin status transition request
func (bv *BusinessValidator) ValidateStatusUpdate(req *UpdateApplicationStatusRequest) ValidationErrors {
	return bv.Validate(req)
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Role strings tolerate case and singular/plural forms
	bv.validate.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseRole(fl.Field().String())
		return ok
	})

	// Application status is a closed set
	bv.validate.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseApplicationStatus(fl.Field().String())
		return ok
	})

	// Contact numbers: digits with optional leading + and separators
	bv.validate.RegisterValidation("contact_number", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return true
		}
		if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		digits := 0
		for _, r := range s {
			switch {
			case r >= '0' && r <= '9':
				digits++
			case r == ' ' || r == '-' || r == '(' || r == ')':
			default:
				return false
			}
		}
		return digits >= 7 && digits <= 15
	})
}

func dedupe(errors ValidationErrors) ValidationErrors {
	seen := make(map[string]bool, len(errors))
	var out ValidationErrors
	for _, e := range errors {
		key := strings.ToLower(e.Field) + ":" + e.Rule
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
