package store

import (
	"context"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
)

// Snapshot is a consistent, fully copied view of every collection, taken
// under the shared lock. The query engine and the persistence adapter both
// operate on snapshots, never on live store state.
type Snapshot struct {
	Locations   []models.Location
	Departments []models.Department
	Employees   []models.Employee
	Activity    []models.ActivityEntry
}

// Locations returns every location in insertion order.
func (s *Store) Locations(_ context.Context) []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocations()
}

// Departments returns every department in insertion order.
func (s *Store) Departments(_ context.Context) []models.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyDepartments()
}

// Employees returns every employee in insertion order.
func (s *Store) Employees(_ context.Context) []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyEmployees()
}

// Activity returns the activity feed in append order.
func (s *Store) Activity(_ context.Context) []models.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ActivityEntry{}, s.activity...)
}

// Snapshot returns all collections at once, for persistence.
func (s *Store) Snapshot(_ context.Context) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Locations:   s.copyLocations(),
		Departments: s.copyDepartments(),
		Employees:   s.copyEmployees(),
		Activity:    append([]models.ActivityEntry{}, s.activity...),
	}
}

// Restore replaces the store contents with the given snapshot, preserving
// the order of each slice as insertion order. Used when reloading a
// persisted registry at startup.
func (s *Store) Restore(_ context.Context, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locations = make(map[string]*models.Location, len(snap.Locations))
	s.locationOrder = make([]string, 0, len(snap.Locations))
	for i := range snap.Locations {
		loc := copyLocation(&snap.Locations[i])
		s.locations[loc.ID] = loc
		s.locationOrder = append(s.locationOrder, loc.ID)
	}

	s.departments = make(map[string]*models.Department, len(snap.Departments))
	s.departmentOrder = make([]string, 0, len(snap.Departments))
	for i := range snap.Departments {
		dept := copyDepartment(&snap.Departments[i])
		s.departments[dept.ID] = dept
		s.departmentOrder = append(s.departmentOrder, dept.ID)
	}

	s.employees = make(map[string]*models.Employee, len(snap.Employees))
	s.employeeOrder = make([]string, 0, len(snap.Employees))
	for i := range snap.Employees {
		emp := copyEmployee(&snap.Employees[i])
		s.employees[emp.ID] = emp
		s.employeeOrder = append(s.employeeOrder, emp.ID)
	}

	s.activity = append([]models.ActivityEntry{}, snap.Activity...)
}

func (s *Store) copyLocations() []models.Location {
	out := make([]models.Location, 0, len(s.locationOrder))
	for _, id := range s.locationOrder {
		out = append(out, *copyLocation(s.locations[id]))
	}
	return out
}

func (s *Store) copyDepartments() []models.Department {
	out := make([]models.Department, 0, len(s.departmentOrder))
	for _, id := range s.departmentOrder {
		out = append(out, *copyDepartment(s.departments[id]))
	}
	return out
}

func (s *Store) copyEmployees() []models.Employee {
	out := make([]models.Employee, 0, len(s.employeeOrder))
	for _, id := range s.employeeOrder {
		out = append(out, *copyEmployee(s.employees[id]))
	}
	return out
}

func copyLocation(loc *models.Location) *models.Location {
	out := *loc
	out.DepartmentIDs = append([]string{}, loc.DepartmentIDs...)
	out.HiringManagerIDs = append([]string{}, loc.HiringManagerIDs...)
	return &out
}

func copyDepartment(dept *models.Department) *models.Department {
	out := *dept
	return &out
}

func copyEmployee(emp *models.Employee) *models.Employee {
	out := *emp
	return &out
}
