package employee

import (
	"errors"
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
)

const DateLayout = "2006-01-02"

// Employee is the domain record. DateJoined holds a calendar date in UTC.
type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department *string   `json:"department"`
	Role       *string   `json:"role"`
	DateJoined time.Time `json:"date_joined"`
}

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("employee email already exists")
)

func NewEmployee(in EmployeeInput, joined time.Time) *Employee {
	e := &Employee{DateJoined: truncateToDate(joined)}
	e.Apply(in)
	return e
}

// Apply copies every supplied field of in onto the record. id and
// date_joined are never touched.
func (e *Employee) Apply(in EmployeeInput) {
	if in.Name.Set && !in.Name.Null {
		e.Name = in.Name.Value
	}
	if in.Email.Set && !in.Email.Null {
		e.Email = in.Email.Value
	}
	if in.Department.Set {
		e.Department = in.Department.Ptr()
	}
	if in.Role.Set {
		e.Role = in.Role.Ptr()
	}
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		DateJoined: e.DateJoined.Format(DateLayout),
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		DateJoined: e.DateJoined,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		DateJoined: truncateToDate(e.DateJoined),
	}
}

func FromDataModelSlice(employees []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(employees))
	for i, e := range employees {
		result[i] = FromDataModel(e)
	}
	return result
}

func ToResponseSlice(employees []*Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		result[i] = e.ToResponse()
	}
	return result
}
