package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/pagination"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/core/events"
)

// RepositoryAPI is the record store. It owns no business rules.
type RepositoryAPI interface {
	Create(ctx context.Context, employee *employeeDatamodel.Employee) error
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	Update(ctx context.Context, employee *employeeDatamodel.Employee) error
	Delete(ctx context.Context, id int64) error
	// Query returns matching records in id order. A non-positive limit
	// returns every match.
	Query(ctx context.Context, filter Filter, limit, offset int) ([]*employeeDatamodel.Employee, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	DepartmentExists(ctx context.Context, department string) (bool, error)
	RoleExists(ctx context.Context, role string) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID *int64) (bool, error)
}

type Service struct {
	repo      RepositoryAPI
	validator *Validator
	events    events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithEventPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithClock overrides the source of date_joined.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo RepositoryAPI, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:      repo,
		validator: NewValidator(repo),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListResult is one page of the plain list query.
type ListResult struct {
	Page      int
	Total     int64
	Employees []*Employee
}

func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	in = in.Normalized()
	if err := s.validator.Validate(ctx, in, nil, false); err != nil {
		return nil, s.validationOrInternal(err, "failed to validate employee")
	}

	emp := NewEmployee(in, s.now())
	data := ToDataModel(emp)
	if err := s.repo.Create(ctx, data); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, DuplicateEmailError()
		}
		s.logger.Error("failed to create employee", "error", err, "email", emp.Email)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	created := FromDataModel(data)
	s.logger.Info("employee created", "employee_id", created.ID)
	s.publish(ctx, events.NewEmployeeCreatedEvent(created.ID, created.Email, actorID(ctx)))
	return created, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrEmployeeNotFound()
		}
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to get employee", err)
	}
	return FromDataModel(data), nil
}

// ListEmployees returns one page of records matching filter. Unlike
// FilterEmployees it never checks that filter values exist: no match is an
// empty page.
func (s *Service) ListEmployees(ctx context.Context, filter Filter, req pagination.Request) (*ListResult, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count employees", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	page, appErr := req.Resolve(total)
	if appErr != nil {
		return nil, appErr
	}

	rows, err := s.repo.Query(ctx, filter, req.PageSize, pagination.Offset(page, req.PageSize))
	if err != nil {
		s.logger.Error("failed to query employees", "error", err, "page", page)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	return &ListResult{
		Page:      page,
		Total:     total,
		Employees: FromDataModelSlice(rows),
	}, nil
}

// FilterEmployees is the strict filter: each supplied value must exist on
// some record or the whole request fails. Results are not paginated.
func (s *Service) FilterEmployees(ctx context.Context, filter Filter) ([]*Employee, error) {
	if err := filter.RequireExisting(ctx, s.repo); err != nil {
		return nil, s.validationOrInternal(err, "failed to filter employees")
	}

	rows, err := s.repo.Query(ctx, filter, 0, 0)
	if err != nil {
		s.logger.Error("failed to filter employees", "error", err)
		return nil, internal.NewInternalError("failed to filter employees", err)
	}
	return FromDataModelSlice(rows), nil
}

// UpdateEmployee applies a full (partial=false) or partial update.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, in EmployeeInput, partial bool) (*Employee, error) {
	current, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	in = in.Normalized()
	if !partial {
		// A full update replaces nullable fields that were left out.
		if !in.Department.Set {
			in.Department = Null()
		}
		if !in.Role.Set {
			in.Role = Null()
		}
	}

	if err := s.validator.Validate(ctx, in, &id, partial); err != nil {
		return nil, s.validationOrInternal(err, "failed to validate employee")
	}

	current.Apply(in)
	data := ToDataModel(current)
	if err := s.repo.Update(ctx, data); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			return nil, DuplicateEmailError()
		case errors.Is(err, ErrNotFound):
			return nil, internal.ErrEmployeeNotFound()
		}
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id, "partial", partial)
	s.publish(ctx, events.NewEmployeeUpdatedEvent(id, current.Email, actorID(ctx)))
	return current, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	current, err := s.GetEmployee(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrEmployeeNotFound()
		}
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	s.publish(ctx, events.NewEmployeeDeletedEvent(id, current.Email, actorID(ctx)))
	return nil
}

func (s *Service) validationOrInternal(err error, message string) error {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr
	}
	s.logger.Error(message, "error", err)
	return internal.NewInternalError(message, err)
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", fmt.Errorf("publish: %w", err))
	}
}

func actorID(ctx context.Context) int64 {
	if id, ok := internal.IdentityFromContext(ctx); ok {
		return id.UserID
	}
	return 0
}
