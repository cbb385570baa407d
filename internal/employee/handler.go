package employee

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/pagination"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context, filter Filter, req pagination.Request) (*ListResult, error)
	FilterEmployees(ctx context.Context, filter Filter) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, id int64, in EmployeeInput, partial bool) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	Paginator *pagination.Paginator
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, paginator *pagination.Paginator) *Handler {
	if paginator == nil {
		paginator = pagination.NewPaginator(pagination.DefaultPageSize, pagination.MaxPageSize)
	}
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Paginator:   paginator,
	}
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	req := h.Paginator.FromRequest(r)
	result, err := h.Service.ListEmployees(r.Context(), FilterFromQuery(r.URL.Query()), req)
	if err != nil {
		h.Logger.Debug("ListEmployees: failed to list employees", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, pagination.NewEnvelope(req, result.Page, result.Total, ToResponseSlice(result.Employees)))
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	var in EmployeeInput
	if appErr := h.DecodeJSON(r, &in); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	emp, err := h.Service.CreateEmployee(r.Context(), in)
	if err != nil {
		h.Logger.Debug("CreateEmployee: failed to create employee", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, emp.ToResponse())
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	emp, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp.ToResponse())
}

// UpdateEmployee handles PUT: name and email are required.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PatchEmployee handles PATCH: only supplied fields change.
func (h *Handler) PatchEmployee(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	if !h.requireIdentity(w, r) {
		return
	}

	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var in EmployeeInput
	if appErr := h.DecodeJSON(r, &in); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	emp, err := h.Service.UpdateEmployee(r.Context(), id, in, partial)
	if err != nil {
		h.Logger.Debug("UpdateEmployee: failed to update employee", "error", err, "employee_id", id, "partial", partial)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp.ToResponse())
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: DeletedMessage})
}

func (h *Handler) FilterEmployees(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	employees, err := h.Service.FilterEmployees(r.Context(), FilterFromQuery(r.URL.Query()))
	if err != nil {
		h.Logger.Debug("FilterEmployees: failed to filter employees", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponseSlice(employees))
}

// requireIdentity rejects requests that did not pass the auth middleware.
func (h *Handler) requireIdentity(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := internal.IdentityFromContext(r.Context()); !ok {
		h.WriteAppError(w, internal.ErrMissingToken())
		return false
	}
	return true
}

// employeeID parses the {id} segment. Anything but a positive integer is a
// route miss, reported as the record not existing.
func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteAppError(w, internal.ErrEmployeeNotFound())
		return 0, false
	}
	return id, true
}
