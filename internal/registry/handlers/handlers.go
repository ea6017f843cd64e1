// Package handlers exposes the registry façade over HTTP for the admin
// console: CRUD endpoints for the add/edit/delete dialogs and the shared
// list contract behind the activity log, user directory, employee directory
// and location directory screens.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/query"
	"go.uber.org/zap"
)

const defaultPageSize = 10

// RegistryController defines the façade interface the HTTP handlers invoke.
type RegistryController interface {
	CreateLocation(ctx context.Context, loc *models.Location) (*models.Location, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	UpdateLocation(ctx context.Context, id string, patch *models.LocationUpdate) (*models.Location, error)
	DeleteLocation(ctx context.Context, id string) error
	ListLocations(ctx context.Context, spec query.Spec) query.Result[models.Location]

	CreateDepartment(ctx context.Context, dept *models.Department) (*models.Department, error)
	GetDepartment(ctx context.Context, id string) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id string, patch *models.DepartmentUpdate) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id string) error
	ListDepartments(ctx context.Context, spec query.Spec) query.Result[models.Department]

	CreateEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch *models.EmployeeUpdate) (*models.Employee, error)
	SetEmployeeStatus(ctx context.Context, id string, status models.Status) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	ListEmployees(ctx context.Context, spec query.Spec) query.Result[models.Employee]

	ListActivity(ctx context.Context, spec query.Spec) query.Result[models.ActivityEntry]
}

// RegistryHandler serves the registry HTTP API.
type RegistryHandler struct {
	service RegistryController
	logger  *zap.Logger
}

// NewRegistryHandler constructs a RegistryHandler with the given service and logger.
func NewRegistryHandler(service RegistryController, logger *zap.Logger) *RegistryHandler {
	return &RegistryHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// Register mounts the registry routes on the router.
func (h *RegistryHandler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/activity", h.listActivity)
		// the user directory and employee directory share one collection
		// and one list contract
		r.Get("/users", h.listEmployees)

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.listLocations)
			r.Post("/", h.createLocation)
			r.Get("/{id}", h.getLocation)
			r.Patch("/{id}", h.updateLocation)
			r.Delete("/{id}", h.deleteLocation)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.listDepartments)
			r.Post("/", h.createDepartment)
			r.Get("/{id}", h.getDepartment)
			r.Patch("/{id}", h.updateDepartment)
			r.Delete("/{id}", h.deleteDepartment)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.listEmployees)
			r.Post("/", h.createEmployee)
			r.Get("/{id}", h.getEmployee)
			r.Patch("/{id}", h.updateEmployee)
			r.Patch("/{id}/status", h.setEmployeeStatus)
			r.Delete("/{id}", h.deleteEmployee)
		})
	})
}

func (h *RegistryHandler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateLocation(r.Context(), req.toModel())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toLocationResponse(created))
}

func (h *RegistryHandler) getLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.service.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLocationResponse(loc))
}

func (h *RegistryHandler) updateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	updated, err := h.service.UpdateLocation(r.Context(), chi.URLParam(r, "id"), req.toUpdate())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLocationResponse(updated))
}

func (h *RegistryHandler) deleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RegistryHandler) listLocations(w http.ResponseWriter, r *http.Request) {
	spec := parseListSpec(r)
	result := h.service.ListLocations(r.Context(), spec)
	items := make([]locationResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toLocationResponse(&result.Items[i]))
	}
	h.writeJSON(w, http.StatusOK, listResponse[locationResponse]{
		Items:         items,
		TotalMatching: result.TotalMatching,
		Page:          spec.Page,
		PageSize:      spec.PageSize,
	})
}

func (h *RegistryHandler) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateDepartment(r.Context(), req.toModel())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toDepartmentResponse(created))
}

func (h *RegistryHandler) getDepartment(w http.ResponseWriter, r *http.Request) {
	dept, err := h.service.GetDepartment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDepartmentResponse(dept))
}

func (h *RegistryHandler) updateDepartment(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	updated, err := h.service.UpdateDepartment(r.Context(), chi.URLParam(r, "id"), req.toUpdate())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDepartmentResponse(updated))
}

func (h *RegistryHandler) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RegistryHandler) listDepartments(w http.ResponseWriter, r *http.Request) {
	spec := parseListSpec(r)
	result := h.service.ListDepartments(r.Context(), spec)
	items := make([]departmentResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toDepartmentResponse(&result.Items[i]))
	}
	h.writeJSON(w, http.StatusOK, listResponse[departmentResponse]{
		Items:         items,
		TotalMatching: result.TotalMatching,
		Page:          spec.Page,
		PageSize:      spec.PageSize,
	})
}

func (h *RegistryHandler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateEmployee(r.Context(), req.toModel())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toEmployeeResponse(created))
}

func (h *RegistryHandler) getEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.service.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *RegistryHandler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	updated, err := h.service.UpdateEmployee(r.Context(), chi.URLParam(r, "id"), req.toUpdate())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toEmployeeResponse(updated))
}

func (h *RegistryHandler) setEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	updated, err := h.service.SetEmployeeStatus(r.Context(), chi.URLParam(r, "id"), models.Status(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toEmployeeResponse(updated))
}

func (h *RegistryHandler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RegistryHandler) listEmployees(w http.ResponseWriter, r *http.Request) {
	spec := parseListSpec(r)
	result := h.service.ListEmployees(r.Context(), spec)
	items := make([]employeeResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toEmployeeResponse(&result.Items[i]))
	}
	h.writeJSON(w, http.StatusOK, listResponse[employeeResponse]{
		Items:         items,
		TotalMatching: result.TotalMatching,
		Page:          spec.Page,
		PageSize:      spec.PageSize,
	})
}

func (h *RegistryHandler) listActivity(w http.ResponseWriter, r *http.Request) {
	spec := parseListSpec(r)
	result := h.service.ListActivity(r.Context(), spec)
	items := make([]activityResponse, 0, len(result.Items))
	for _, entry := range result.Items {
		items = append(items, toActivityResponse(entry))
	}
	h.writeJSON(w, http.StatusOK, listResponse[activityResponse]{
		Items:         items,
		TotalMatching: result.TotalMatching,
		Page:          spec.Page,
		PageSize:      spec.PageSize,
	})
}

func (h *RegistryHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *RegistryHandler) writeError(w http.ResponseWriter, err error) {
	status := mapServiceError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Internal server error", zap.Error(err))
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
