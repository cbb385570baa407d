package employee

import (
	"context"
	"fmt"
	"net/url"

	"github.com/frahmantamala/employee-management/internal"
)

const (
	MsgNoDepartment = "No department found."
	MsgInvalidRole  = "Invalid role."
)

// Filter narrows a query by department and role. Empty fields match
// everything; supplied fields combine with AND.
type Filter struct {
	Department string
	Role       string
}

func FilterFromQuery(q url.Values) Filter {
	return Filter{
		Department: q.Get("department"),
		Role:       q.Get("role"),
	}
}

func (f Filter) IsEmpty() bool {
	return f.Department == "" && f.Role == ""
}

type existenceChecker interface {
	DepartmentExists(ctx context.Context, department string) (bool, error)
	RoleExists(ctx context.Context, role string) (bool, error)
}

// RequireExisting is the strict filter's pre-check: every supplied value has
// to be held by at least one record, regardless of the other filter field.
// The plain list endpoint does not call it.
func (f Filter) RequireExisting(ctx context.Context, store existenceChecker) error {
	if f.Department != "" {
		ok, err := store.DepartmentExists(ctx, f.Department)
		if err != nil {
			return fmt.Errorf("check department %q: %w", f.Department, err)
		}
		if !ok {
			return internal.NewFilterMismatchError(MsgNoDepartment)
		}
	}
	if f.Role != "" {
		ok, err := store.RoleExists(ctx, f.Role)
		if err != nil {
			return fmt.Errorf("check role %q: %w", f.Role, err)
		}
		if !ok {
			return internal.NewFilterMismatchError(MsgInvalidRole)
		}
	}
	return nil
}
