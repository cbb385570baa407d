package postgres

import (
	"context"
	"errors"
	"strings"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *employeeDatamodel.Employee) error {
	return translate(r.db.WithContext(ctx).Create(emp).Error)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Update writes every mutable column, so nil department or role clear the
// stored value.
func (r *EmployeeRepository) Update(ctx context.Context, emp *employeeDatamodel.Employee) error {
	res := r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", emp.ID).
		Updates(map[string]interface{}{
			"name":       emp.Name,
			"email":      emp.Email,
			"department": emp.Department,
			"role":       emp.Role,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&employeeDatamodel.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Query(ctx context.Context, filter employee.Filter, limit, offset int) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	q := r.scoped(ctx, filter).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Count(ctx context.Context, filter employee.Filter) (int64, error) {
	var total int64
	err := r.scoped(ctx, filter).Count(&total).Error
	return total, err
}

func (r *EmployeeRepository) DepartmentExists(ctx context.Context, department string) (bool, error) {
	return r.exists(ctx, "department = ?", department)
}

func (r *EmployeeRepository) RoleExists(ctx context.Context, role string) (bool, error) {
	return r.exists(ctx, "role = ?", role)
}

func (r *EmployeeRepository) EmailExists(ctx context.Context, email string, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Where("email = ?", email)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	if err := q.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *EmployeeRepository) scoped(ctx context.Context, filter employee.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{})
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	return q
}

func (r *EmployeeRepository) exists(ctx context.Context, cond string, value string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Where(cond, value).Limit(1).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// translate maps a unique-index violation to employee.ErrDuplicateEmail. The
// only unique column besides the key is email.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return employee.ErrDuplicateEmail
	}
	return err
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
