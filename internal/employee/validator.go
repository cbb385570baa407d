package employee

import (
	"context"
	"fmt"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

const (
	MsgNameBlank      = "Name cannot be empty."
	MsgNotNull        = "This field may not be null."
	MsgEmailDuplicate = "An employee with this email already exists."

	NameMaxLength       = 255
	EmailMaxLength      = 254
	DepartmentMaxLength = 100
	RoleMaxLength       = 100
)

type emailLookup interface {
	EmailExists(ctx context.Context, email string, excludeID *int64) (bool, error)
}

// Validator checks field constraints before a record reaches the store. The
// uniqueness check is advisory; the unique index on email is the final word.
type Validator struct {
	store emailLookup
}

func NewValidator(store emailLookup) *Validator {
	return &Validator{store: store}
}

// Validate checks in against the record rules. existingID is the record being
// updated, which is excluded from the email uniqueness check. With partial
// set, only supplied fields are checked.
//
// The returned error is either a validation *internal.AppError or a store
// failure.
func (v *Validator) Validate(ctx context.Context, in EmployeeInput, existingID *int64, partial bool) error {
	var lookupErr error

	b := validation.NewValidator()

	if !partial || in.Name.Set {
		b.Field("name", in.Name.Ptr()).
			Custom(notNull(in.Name)).
			Custom(present(in.Name)).
			NotBlank(MsgNameBlank).
			MaxLength(NameMaxLength)
	}

	if !partial || in.Email.Set {
		b.Field("email", in.Email.Ptr()).
			Custom(notNull(in.Email)).
			Required().
			MaxLength(EmailMaxLength).
			Email().
			Custom(func(value interface{}) *internal.ValidationError {
				email := *value.(*string)
				taken, err := v.store.EmailExists(ctx, email, existingID)
				if err != nil {
					lookupErr = fmt.Errorf("check email uniqueness: %w", err)
					return nil
				}
				if taken {
					return &internal.ValidationError{
						Message: MsgEmailDuplicate,
						Code:    string(internal.ErrCodeDuplicateEmail),
					}
				}
				return nil
			})
	}

	if in.Department.Set {
		b.Field("department", in.Department.Ptr()).MaxLength(DepartmentMaxLength)
	}
	if in.Role.Set {
		b.Field("role", in.Role.Ptr()).MaxLength(RoleMaxLength)
	}

	appErr := b.Validate()
	if lookupErr != nil {
		return lookupErr
	}
	if appErr != nil {
		return appErr
	}
	return nil
}

// present only checks that the key was sent; an empty name is left to
// NotBlank so it gets the name-specific message.
func present(o OptionalString) validation.ValidatorFunc {
	return func(interface{}) *internal.ValidationError {
		if !o.Set {
			return &internal.ValidationError{Message: validation.MsgRequired, Code: string(internal.ErrCodeRequired)}
		}
		return nil
	}
}

func notNull(o OptionalString) validation.ValidatorFunc {
	return func(interface{}) *internal.ValidationError {
		if o.Set && o.Null {
			return &internal.ValidationError{Message: MsgNotNull, Code: string(internal.ErrCodeRequired)}
		}
		return nil
	}
}

// DuplicateEmailError is the field error used when the store rejects a write
// on the unique email index.
func DuplicateEmailError() *internal.AppError {
	return internal.NewValidationFieldError("email", MsgEmailDuplicate, internal.ErrCodeDuplicateEmail)
}
