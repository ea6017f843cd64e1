package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	e "github.com/pittisunilkumar3/talent-spark-registry/internal/registry/errors"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/query"
)

// locationRequest carries the fields of a create/update location dialog.
// Pointer fields distinguish "absent" from "set to empty" on updates.
type locationRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

type departmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LocationID  *string `json:"location_id"`
	TeamLeadID  *string `json:"team_lead_id"`
	MemberCount *int    `json:"member_count"`
}

type employeeRequest struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email"`
	Phone        *string    `json:"phone"`
	Role         *string    `json:"role"`
	DepartmentID *string    `json:"department_id"`
	LocationID   *string    `json:"location_id"`
	Status       *string    `json:"status"`
	HireDate     *time.Time `json:"hire_date"`
	AvatarURL    *string    `json:"avatar_url"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type locationResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	PostalCode       string    `json:"postal_code"`
	Country          string    `json:"country"`
	DepartmentIDs    []string  `json:"department_ids"`
	HiringManagerIDs []string  `json:"hiring_manager_ids"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type departmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LocationID  string    `json:"location_id"`
	TeamLeadID  string    `json:"team_lead_id,omitempty"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type employeeResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	DepartmentID   string    `json:"department_id,omitempty"`
	DepartmentName string    `json:"department_name,omitempty"`
	LocationID     string    `json:"location_id,omitempty"`
	LocationName   string    `json:"location_name,omitempty"`
	Status         string    `json:"status"`
	HireDate       time.Time `json:"hire_date"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type activityResponse struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor,omitempty"`
	Action     string    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// listResponse is the shared page envelope; pagination controls are driven
// by total_matching and the requested page size.
type listResponse[T any] struct {
	Items         []T `json:"items"`
	TotalMatching int `json:"total_matching"`
	Page          int `json:"page"`
	PageSize      int `json:"page_size"`
}

func (req locationRequest) toModel() *models.Location {
	loc := &models.Location{}
	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.City != nil {
		loc.City = *req.City
	}
	if req.State != nil {
		loc.State = *req.State
	}
	if req.PostalCode != nil {
		loc.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		loc.Country = *req.Country
	}
	return loc
}

func (req locationRequest) toUpdate() *models.LocationUpdate {
	return &models.LocationUpdate{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
}

func (req departmentRequest) toModel() *models.Department {
	dept := &models.Department{}
	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.LocationID != nil {
		dept.LocationID = *req.LocationID
	}
	if req.TeamLeadID != nil {
		dept.TeamLeadID = *req.TeamLeadID
	}
	if req.MemberCount != nil {
		dept.MemberCount = *req.MemberCount
	}
	return dept
}

func (req departmentRequest) toUpdate() *models.DepartmentUpdate {
	return &models.DepartmentUpdate{
		Name:        req.Name,
		Description: req.Description,
		LocationID:  req.LocationID,
		TeamLeadID:  req.TeamLeadID,
		MemberCount: req.MemberCount,
	}
}

func (req employeeRequest) toModel() *models.Employee {
	emp := &models.Employee{}
	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Role != nil {
		emp.Role = models.Role(*req.Role)
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = *req.DepartmentID
	}
	if req.LocationID != nil {
		emp.LocationID = *req.LocationID
	}
	if req.Status != nil {
		emp.Status = models.Status(*req.Status)
	}
	if req.HireDate != nil {
		emp.HireDate = *req.HireDate
	}
	if req.AvatarURL != nil {
		emp.AvatarURL = *req.AvatarURL
	}
	return emp
}

func (req employeeRequest) toUpdate() *models.EmployeeUpdate {
	update := &models.EmployeeUpdate{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		LocationID:   req.LocationID,
		HireDate:     req.HireDate,
		AvatarURL:    req.AvatarURL,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		update.Role = &role
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		update.Status = &status
	}
	return update
}

func toLocationResponse(loc *models.Location) locationResponse {
	return locationResponse{
		ID:               loc.ID,
		Name:             loc.Name,
		Address:          loc.Address,
		City:             loc.City,
		State:            loc.State,
		PostalCode:       loc.PostalCode,
		Country:          loc.Country,
		DepartmentIDs:    loc.DepartmentIDs,
		HiringManagerIDs: loc.HiringManagerIDs,
		CreatedAt:        loc.CreatedAt,
		UpdatedAt:        loc.UpdatedAt,
	}
}

func toDepartmentResponse(dept *models.Department) departmentResponse {
	return departmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
		LocationID:  dept.LocationID,
		TeamLeadID:  dept.TeamLeadID,
		MemberCount: dept.MemberCount,
		CreatedAt:   dept.CreatedAt,
		UpdatedAt:   dept.UpdatedAt,
	}
}

func toEmployeeResponse(emp *models.Employee) employeeResponse {
	return employeeResponse{
		ID:             emp.ID,
		Name:           emp.Name,
		Email:          emp.Email,
		Phone:          emp.Phone,
		Role:           string(emp.Role),
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		LocationID:     emp.LocationID,
		LocationName:   emp.LocationName,
		Status:         string(emp.Status),
		HireDate:       emp.HireDate,
		AvatarURL:      emp.AvatarURL,
		CreatedAt:      emp.CreatedAt,
		UpdatedAt:      emp.UpdatedAt,
	}
}

func toActivityResponse(entry models.ActivityEntry) activityResponse {
	return activityResponse{
		ID:         entry.ID,
		Actor:      entry.Actor,
		Action:     entry.Action,
		EntityKind: entry.EntityKind,
		EntityID:   entry.EntityID,
		EntityName: entry.EntityName,
		CreatedAt:  entry.CreatedAt,
	}
}

// parseListSpec reads the shared list-screen parameters from the URL query.
func parseListSpec(r *http.Request) query.Spec {
	values := r.URL.Query()
	spec := query.Spec{
		Search:    values.Get("search"),
		Status:    values.Get("status"),
		SortField: values.Get("sort"),
		Direction: parseDirection(values.Get("order")),
		Page:      1,
		PageSize:  defaultPageSize,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		spec.Page = page
	}
	if size, err := strconv.Atoi(values.Get("page_size")); err == nil && size > 0 {
		spec.PageSize = size
	}
	return spec
}

// parseDirection normalizes the order parameter; anything other than the
// known directions sorts ascending.
func parseDirection(order string) query.Direction {
	switch direction := query.Direction(strings.ToLower(order)); direction {
	case query.Ascending, query.Descending:
		return direction
	default:
		return query.Ascending
	}
}

// mapServiceError maps domain errors to HTTP status codes.
func mapServiceError(err error) int {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrIntegrity):
		return http.StatusConflict
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, e.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
