package validation

import (
	"fmt"
	"net/mail"
	"strings"

	errors "github.com/frahmantamala/employee-management/internal"
)

const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Enter a valid email address."
)

type ValidatorFunc func(interface{}) *errors.ValidationError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.ValidationError {
	return &errors.ValidationError{Field: fv.FieldName, Message: message, Code: string(code)}
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

// Required fails when the value is absent. An empty string counts as absent.
func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return fv.fail(MsgRequired, errors.ErrCodeRequired)
		}
		return nil
	})
	return fv
}

// NotBlank fails when the value is present but only whitespace.
func (fv *FieldValidator) NotBlank(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := stringValue(value); ok && strings.TrimSpace(s) == "" {
			return fv.fail(message, errors.ErrCodeBlank)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := stringValue(value); ok && len([]rune(s)) > max {
			message := fmt.Sprintf("Ensure this field has no more than %d characters.", max)
			return fv.fail(message, errors.ErrCodeMaxLength)
		}
		return nil
	})
	return fv
}

// Email checks address syntax. Display names ("Ann <ann@x.com>") are rejected.
func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s || addr.Name != "" {
			return fv.fail(MsgInvalidEmail, errors.ErrCodeInvalidEmail)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.ValidationError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every field. Only the first failure of each field is reported.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				if err.Field == "" {
					err.Field = field.FieldName
				}
				validationErrors = append(validationErrors, *err)
				break
			}
		}
	}

	return FromFieldErrors(validationErrors)
}

// FromFieldErrors wraps field errors into a single validation AppError, or nil.
func FromFieldErrors(fieldErrors []errors.ValidationError) *errors.AppError {
	if len(fieldErrors) == 0 {
		return nil
	}
	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: fieldErrors})
}
