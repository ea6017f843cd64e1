// Package controller implements the registry façade: the single operation
// surface the console's dialogs and list screens call. It gates mutations on
// the caller's capabilities, validates identifying input, dispatches to the
// entity store, records activity, and publishes change events.
package controller

import (
	"context"
	"fmt"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/auth"
	e "github.com/pittisunilkumar3/talent-spark-registry/internal/registry/errors"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/events"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/query"
	"go.uber.org/zap"
)

// EventProducer publishes registry change events. Produce must not block.
type EventProducer interface {
	Produce(event events.Event)
}

// Store defines the entity store interface the façade dispatches to.
type Store interface {
	CreateLocation(ctx context.Context, loc *models.Location) (*models.Location, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	UpdateLocation(ctx context.Context, id string, patch *models.LocationUpdate) (*models.Location, error)
	DeleteLocation(ctx context.Context, id string) (*models.Location, []models.Department, error)

	CreateDepartment(ctx context.Context, dept *models.Department) (*models.Department, error)
	GetDepartment(ctx context.Context, id string) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id string, patch *models.DepartmentUpdate) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id string) (*models.Department, error)

	CreateEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch *models.EmployeeUpdate) (*models.Employee, error)
	SetEmployeeStatus(ctx context.Context, id string, status models.Status) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) (*models.Employee, error)

	AppendActivity(ctx context.Context, entry models.ActivityEntry) models.ActivityEntry
	Locations(ctx context.Context) []models.Location
	Departments(ctx context.Context) []models.Department
	Employees(ctx context.Context) []models.Employee
	Activity(ctx context.Context) []models.ActivityEntry
}

// RegistryService provides the registry operations consumed by the console.
type RegistryService struct {
	store    Store
	producer EventProducer
	logger   *zap.Logger
}

// NewRegistryService constructs a RegistryService with a store, an event
// producer, and a logger.
func NewRegistryService(store Store, producer EventProducer, logger *zap.Logger) *RegistryService {
	return &RegistryService{
		store:    store,
		producer: producer,
		logger:   logger.Named("registry_service"),
	}
}

// authorize refuses the operation unless the caller's capability set grants
// the action. Capabilities are computed upstream; this is a boolean check.
func (s *RegistryService) authorize(ctx context.Context, capability auth.Capability) error {
	if !auth.CallerCapabilities(ctx).Allows(capability) {
		return fmt.Errorf("%w: %s", e.ErrPermissionDenied, capability)
	}
	return nil
}

func (s *RegistryService) recordActivity(ctx context.Context, action, kind, id, name string) {
	s.store.AppendActivity(ctx, models.ActivityEntry{
		Actor:      auth.CallerSubject(ctx),
		Action:     action,
		EntityKind: kind,
		EntityID:   id,
		EntityName: name,
	})
}

// CreateLocation adds a new location.
func (s *RegistryService) CreateLocation(ctx context.Context, loc *models.Location) (*models.Location, error) {
	if err := s.authorize(ctx, auth.CapLocationCreate); err != nil {
		return nil, err
	}
	created, err := s.store.CreateLocation(ctx, loc)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, "location_created", "location", created.ID, created.Name)
	s.producer.Produce(events.Event{Type: events.LocationCreated, EntityID: created.ID, Location: created})
	return created, nil
}

// GetLocation retrieves a location by id.
func (s *RegistryService) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	return s.store.GetLocation(ctx, id)
}

// UpdateLocation applies a partial update to a location.
func (s *RegistryService) UpdateLocation(ctx context.Context, id string, patch *models.LocationUpdate) (*models.Location, error) {
	if err := s.authorize(ctx, auth.CapLocationUpdate); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: location id required", e.ErrValidation)
	}
	updated, err := s.store.UpdateLocation(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, "location_updated", "location", updated.ID, updated.Name)
	s.producer.Produce(events.Event{Type: events.LocationUpdated, EntityID: updated.ID, Location: updated})
	return updated, nil
}

// DeleteLocation removes a location and cascades to its departments.
func (s *RegistryService) DeleteLocation(ctx context.Context, id string) error {
	if err := s.authorize(ctx, auth.CapLocationDelete); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: location id required", e.ErrValidation)
	}
	removed, departments, err := s.store.DeleteLocation(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("location deleted",
		zap.String("location_id", removed.ID),
		zap.Int("cascaded_departments", len(departments)),
	)
	s.recordActivity(ctx, "location_deleted", "location", removed.ID, removed.Name)
	s.producer.Produce(events.Event{
		Type:               events.LocationDeleted,
		EntityID:           removed.ID,
		Location:           removed,
		RemovedDepartments: departments,
	})
	return nil
}

// ListLocations serves the location directory screen.
func (s *RegistryService) ListLocations(ctx context.Context, spec query.Spec) query.Result[models.Location] {
	return query.List(s.store.Locations(ctx), spec, query.LocationView())
}

// CreateDepartment adds a department under an existing location.
func (s *RegistryService) CreateDepartment(ctx context.Context, dept *models.Department) (*models.Department, error) {
	if err := s.authorize(ctx, auth.CapDepartmentCreate); err != nil {
		return nil, err
	}
	if dept.LocationID == "" {
		return nil, fmt.Errorf("%w: location id required", e.ErrValidation)
	}
	created, err := s.store.CreateDepartment(ctx, dept)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, "department_created", "department", created.ID, created.Name)
	s.producer.Produce(events.Event{Type: events.DepartmentCreated, EntityID: created.ID, Department: created})
	return created, nil
}

// GetDepartment retrieves a department by id.
func (s *RegistryService) GetDepartment(ctx context.Context, id string) (*models.Department, error) {
	return s.store.GetDepartment(ctx, id)
}

// UpdateDepartment applies a partial update to a department.
func (s *RegistryService) UpdateDepartment(ctx context.Context, id string, patch *models.DepartmentUpdate) (*models.Department, error) {
	if err := s.authorize(ctx, auth.CapDepartmentUpdate); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: department id required", e.ErrValidation)
	}
	updated, err := s.store.UpdateDepartment(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, "department_updated", "department", updated.ID, updated.Name)
	s.producer.Produce(events.Event{Type: events.DepartmentUpdated, EntityID: updated.ID, Department: updated})
	return updated, nil
}

// DeleteDepartment removes a department.
func (s *RegistryService) DeleteDepartment(ctx context.Context, id string) error {
	if err := s.authorize(ctx, auth.CapDepartmentDelete); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: department id required", e.ErrValidation)
	}
	removed, err := s.store.DeleteDepartment(ctx, id)
	if err != nil {
		return err
	}
	s.recordActivity(ctx, "department_deleted", "department", removed.ID, removed.Name)
	s.producer.Produce(events.Event{Type: events.DepartmentDeleted, EntityID: removed.ID, Department: removed})
	return nil
}

// ListDepartments lists departments with the shared query contract.
func (s *RegistryService) ListDepartments(ctx context.Context, spec query.Spec) query.Result[models.Department] {
	return query.List(s.store.Departments(ctx), spec, query.DepartmentView())
}

// CreateEmployee adds an employee, resolving optional department and
// location references.
func (s *RegistryService) CreateEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	if err := s.authorize(ctx, auth.CapEmployeeCreate); err != nil {
		return nil, err
	}
	created, err := s.store.CreateEmployee(ctx, emp)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, "employee_created", "employee", created.ID, created.Name)
	s.producer.Produce(events.Event{Type: events.EmployeeCreated, EntityID: created.ID, Employee: created})
	return created, nil
}

// GetEmployee retrieves an employee by id.
func (s *RegistryService) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// UpdateEmployee applies a partial update to an employee.
func (s *RegistryService) UpdateEmployee(ctx context.Context, id string, patch *models.EmployeeUpdate) (*models.Employee, error) {
	if err := s.authorize(ctx, auth.CapEmployeeUpdate); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: employee id required", e.ErrValidation)
	}
	updated, err := s.store.UpdateEmployee(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, "employee_updated", "employee", updated.ID, updated.Name)
	s.producer.Produce(events.Event{Type: events.EmployeeUpdated, EntityID: updated.ID, Employee: updated})
	return updated, nil
}

// SetEmployeeStatus changes only the employee's status.
func (s *RegistryService) SetEmployeeStatus(ctx context.Context, id string, status models.Status) (*models.Employee, error) {
	if err := s.authorize(ctx, auth.CapEmployeeStatus); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: employee id required", e.ErrValidation)
	}
	updated, err := s.store.SetEmployeeStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, "employee_status_changed", "employee", updated.ID, updated.Name)
	s.producer.Produce(events.Event{Type: events.EmployeeStatusChanged, EntityID: updated.ID, Employee: updated})
	return updated, nil
}

// DeleteEmployee removes an employee. No cascade targets.
func (s *RegistryService) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.authorize(ctx, auth.CapEmployeeDelete); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: employee id required", e.ErrValidation)
	}
	removed, err := s.store.DeleteEmployee(ctx, id)
	if err != nil {
		return err
	}
	s.recordActivity(ctx, "employee_deleted", "employee", removed.ID, removed.Name)
	s.producer.Produce(events.Event{Type: events.EmployeeDeleted, EntityID: removed.ID, Employee: removed})
	return nil
}

// ListEmployees serves both the employee directory and the user directory.
func (s *RegistryService) ListEmployees(ctx context.Context, spec query.Spec) query.Result[models.Employee] {
	return query.List(s.store.Employees(ctx), spec, query.EmployeeView())
}

// ListActivity serves the activity log screen.
func (s *RegistryService) ListActivity(ctx context.Context, spec query.Spec) query.Result[models.ActivityEntry] {
	return query.List(s.store.Activity(ctx), spec, query.ActivityView())
}
