// Package store implements the in-memory entity store of the organizational
// registry. It owns the canonical Location, Department and Employee
// collections plus the activity feed, and enforces their cross-reference
// invariants on every mutation: unique ids, bidirectional location↔department
// links, denormalized name caches on employees, and cascading deletion.
//
// Writes take the exclusive lock for the whole logical mutation, cascade
// included, so readers never observe a partially applied change. Reads copy
// entities out under the shared lock; no mutable reference ever escapes.
package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	e "github.com/pittisunilkumar3/talent-spark-registry/internal/registry/errors"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
)

// Store holds the registry collections. Create one per admin session via New.
type Store struct {
	mu sync.RWMutex

	locations   map[string]*models.Location
	departments map[string]*models.Department
	employees   map[string]*models.Employee

	// insertion order per collection, for deterministic reads
	locationOrder   []string
	departmentOrder []string
	employeeOrder   []string

	activity []models.ActivityEntry

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps and generated ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		locations:   make(map[string]*models.Location),
		departments: make(map[string]*models.Department),
		employees:   make(map[string]*models.Employee),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newID derives a collection-unique id from the current time. The scheme
// matches the console's "<prefix>-<time value>" ids; collisions are reported
// as ErrConflict by the create methods rather than overwriting.
func (s *Store) newID(prefix string) string {
	return prefix + "-" + strconv.FormatInt(s.now().UnixNano(), 10)
}

// CreateLocation adds a new location with a generated id, an empty department
// set and current timestamps.
func (s *Store) CreateLocation(_ context.Context, loc *models.Location) (*models.Location, error) {
	if loc.Name == "" {
		return nil, fmt.Errorf("%w: location name required", e.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID("loc")
	if _, exists := s.locations[id]; exists {
		return nil, fmt.Errorf("%w: location id %s", e.ErrConflict, id)
	}

	now := s.now()
	created := &models.Location{
		ID:               id,
		Name:             loc.Name,
		Address:          loc.Address,
		City:             loc.City,
		State:            loc.State,
		PostalCode:       loc.PostalCode,
		Country:          loc.Country,
		DepartmentIDs:    []string{},
		HiringManagerIDs: append([]string{}, loc.HiringManagerIDs...),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.locations[id] = created
	s.locationOrder = append(s.locationOrder, id)
	return copyLocation(created), nil
}

// GetLocation returns the location with the given id.
func (s *Store) GetLocation(_ context.Context, id string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return copyLocation(loc), nil
}

// UpdateLocation applies a partial update. Renaming a location refreshes the
// cached location name on every employee referencing it, in the same
// operation. The patch is staged on a copy and committed only once every
// field checks out, so a rejected patch leaves no trace.
func (s *Store) UpdateLocation(_ context.Context, id string, patch *models.LocationUpdate) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.locations[id]
	if !ok {
		return nil, e.ErrNotFound
	}

	next := *loc
	renamed := false
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: location name required", e.ErrValidation)
		}
		if *patch.Name != next.Name {
			next.Name = *patch.Name
			renamed = true
		}
	}
	if patch.Address != nil {
		next.Address = *patch.Address
	}
	if patch.City != nil {
		next.City = *patch.City
	}
	if patch.State != nil {
		next.State = *patch.State
	}
	if patch.PostalCode != nil {
		next.PostalCode = *patch.PostalCode
	}
	if patch.Country != nil {
		next.Country = *patch.Country
	}
	next.UpdatedAt = s.now()

	*loc = next
	if renamed {
		s.refreshLocationName(id, loc.Name)
	}
	return copyLocation(loc), nil
}

// DeleteLocation removes the location and, in the same exclusive section,
// every department it owns. Employees referencing the removed location or
// departments are intentionally left untouched, matching the console's
// observed behavior; the removed departments are returned so callers can
// notify downstream consumers.
func (s *Store) DeleteLocation(_ context.Context, id string) (*models.Location, []models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.locations[id]
	if !ok {
		return nil, nil, e.ErrNotFound
	}

	var removed []models.Department
	remaining := s.departmentOrder[:0]
	for _, deptID := range s.departmentOrder {
		dept := s.departments[deptID]
		if dept.LocationID == id {
			removed = append(removed, *copyDepartment(dept))
			delete(s.departments, deptID)
			continue
		}
		remaining = append(remaining, deptID)
	}
	s.departmentOrder = remaining

	delete(s.locations, id)
	s.locationOrder = removeID(s.locationOrder, id)
	return copyLocation(loc), removed, nil
}

// CreateDepartment adds a new department under dept.LocationID and appends
// its id to the owning location's department set.
func (s *Store) CreateDepartment(_ context.Context, dept *models.Department) (*models.Department, error) {
	if dept.Name == "" {
		return nil, fmt.Errorf("%w: department name required", e.ErrValidation)
	}
	if dept.LocationID == "" {
		return nil, fmt.Errorf("%w: location id required", e.ErrValidation)
	}
	if dept.MemberCount < 0 {
		return nil, fmt.Errorf("%w: member count must not be negative", e.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.locations[dept.LocationID]
	if !ok {
		return nil, e.ErrNotFound
	}

	id := s.newID("dept")
	if _, exists := s.departments[id]; exists {
		return nil, fmt.Errorf("%w: department id %s", e.ErrConflict, id)
	}

	now := s.now()
	created := &models.Department{
		ID:          id,
		Name:        dept.Name,
		Description: dept.Description,
		LocationID:  dept.LocationID,
		TeamLeadID:  dept.TeamLeadID,
		MemberCount: dept.MemberCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.departments[id] = created
	s.departmentOrder = append(s.departmentOrder, id)
	loc.DepartmentIDs = append(loc.DepartmentIDs, id)
	loc.UpdatedAt = now
	return copyDepartment(created), nil
}

// GetDepartment returns the department with the given id.
func (s *Store) GetDepartment(_ context.Context, id string) (*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dept, ok := s.departments[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return copyDepartment(dept), nil
}

// UpdateDepartment applies a partial update. Renaming refreshes the cached
// department name on every employee referencing it; moving the department to
// another location revalidates the reference and rewires both locations'
// department sets. The patch is staged on a copy and committed only once
// every field checks out, so a rejected patch leaves no trace.
func (s *Store) UpdateDepartment(_ context.Context, id string, patch *models.DepartmentUpdate) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, ok := s.departments[id]
	if !ok {
		return nil, e.ErrNotFound
	}

	next := *dept
	renamed := false
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: department name required", e.ErrValidation)
		}
		if *patch.Name != next.Name {
			next.Name = *patch.Name
			renamed = true
		}
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	var nextLoc *models.Location
	if patch.LocationID != nil && *patch.LocationID != dept.LocationID {
		nextLoc, ok = s.locations[*patch.LocationID]
		if !ok {
			return nil, fmt.Errorf("%w: location %s does not exist", e.ErrIntegrity, *patch.LocationID)
		}
		next.LocationID = *patch.LocationID
	}
	if patch.TeamLeadID != nil {
		next.TeamLeadID = *patch.TeamLeadID
	}
	if patch.MemberCount != nil {
		if *patch.MemberCount < 0 {
			return nil, fmt.Errorf("%w: member count must not be negative", e.ErrValidation)
		}
		next.MemberCount = *patch.MemberCount
	}
	next.UpdatedAt = s.now()

	if nextLoc != nil {
		if prev, ok := s.locations[dept.LocationID]; ok {
			prev.DepartmentIDs = removeID(prev.DepartmentIDs, id)
			prev.UpdatedAt = s.now()
		}
		nextLoc.DepartmentIDs = append(nextLoc.DepartmentIDs, id)
		nextLoc.UpdatedAt = s.now()
	}
	*dept = next
	if renamed {
		s.refreshDepartmentName(id, dept.Name)
	}
	return copyDepartment(dept), nil
}

// DeleteDepartment removes the department and drops its id from the owning
// location's department set. Employees referencing it are left untouched.
func (s *Store) DeleteDepartment(_ context.Context, id string) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, ok := s.departments[id]
	if !ok {
		return nil, e.ErrNotFound
	}

	if loc, ok := s.locations[dept.LocationID]; ok {
		loc.DepartmentIDs = removeID(loc.DepartmentIDs, id)
		loc.UpdatedAt = s.now()
	}
	delete(s.departments, id)
	s.departmentOrder = removeID(s.departmentOrder, id)
	return copyDepartment(dept), nil
}

// CreateEmployee adds a new employee. Supplied department and location
// references are resolved against current state and the denormalized name
// caches populated from the referenced entities.
func (s *Store) CreateEmployee(_ context.Context, emp *models.Employee) (*models.Employee, error) {
	if emp.Name == "" {
		return nil, fmt.Errorf("%w: employee name required", e.ErrValidation)
	}
	if emp.Email == "" {
		return nil, fmt.Errorf("%w: employee email required", e.ErrValidation)
	}
	if !emp.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", e.ErrValidation, emp.Role)
	}
	status := emp.Status
	if status == "" {
		status = models.StatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", e.ErrValidation, emp.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deptName, locName string
	if emp.DepartmentID != "" {
		dept, ok := s.departments[emp.DepartmentID]
		if !ok {
			return nil, e.ErrNotFound
		}
		deptName = dept.Name
	}
	if emp.LocationID != "" {
		loc, ok := s.locations[emp.LocationID]
		if !ok {
			return nil, e.ErrNotFound
		}
		locName = loc.Name
	}

	id := s.newID("emp")
	if _, exists := s.employees[id]; exists {
		return nil, fmt.Errorf("%w: employee id %s", e.ErrConflict, id)
	}

	now := s.now()
	created := &models.Employee{
		ID:             id,
		Name:           emp.Name,
		Email:          emp.Email,
		Phone:          emp.Phone,
		Role:           emp.Role,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: deptName,
		LocationID:     emp.LocationID,
		LocationName:   locName,
		Status:         status,
		HireDate:       emp.HireDate,
		AvatarURL:      emp.AvatarURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.employees[id] = created
	s.employeeOrder = append(s.employeeOrder, id)
	return copyEmployee(created), nil
}

// GetEmployee returns the employee with the given id.
func (s *Store) GetEmployee(_ context.Context, id string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return copyEmployee(emp), nil
}

// UpdateEmployee applies a partial update, re-resolving any changed
// department or location reference and refreshing the name caches. Setting a
// reference to the empty string clears it along with its cache. The patch is
// staged on a copy and committed only once every field checks out, so a
// rejected patch leaves no trace.
func (s *Store) UpdateEmployee(_ context.Context, id string, patch *models.EmployeeUpdate) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return nil, e.ErrNotFound
	}

	next := *emp
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: employee name required", e.ErrValidation)
		}
		next.Name = *patch.Name
	}
	if patch.Email != nil {
		if *patch.Email == "" {
			return nil, fmt.Errorf("%w: employee email required", e.ErrValidation)
		}
		next.Email = *patch.Email
	}
	if patch.Phone != nil {
		next.Phone = *patch.Phone
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", e.ErrValidation, *patch.Role)
		}
		next.Role = *patch.Role
	}
	if patch.DepartmentID != nil {
		if *patch.DepartmentID == "" {
			next.DepartmentID = ""
			next.DepartmentName = ""
		} else {
			dept, ok := s.departments[*patch.DepartmentID]
			if !ok {
				return nil, e.ErrNotFound
			}
			next.DepartmentID = dept.ID
			next.DepartmentName = dept.Name
		}
	}
	if patch.LocationID != nil {
		if *patch.LocationID == "" {
			next.LocationID = ""
			next.LocationName = ""
		} else {
			loc, ok := s.locations[*patch.LocationID]
			if !ok {
				return nil, e.ErrNotFound
			}
			next.LocationID = loc.ID
			next.LocationName = loc.Name
		}
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", e.ErrValidation, *patch.Status)
		}
		next.Status = *patch.Status
	}
	if patch.HireDate != nil {
		next.HireDate = *patch.HireDate
	}
	if patch.AvatarURL != nil {
		next.AvatarURL = *patch.AvatarURL
	}
	next.UpdatedAt = s.now()

	*emp = next
	return copyEmployee(emp), nil
}

// SetEmployeeStatus updates only the employee's status.
func (s *Store) SetEmployeeStatus(_ context.Context, id string, status models.Status) (*models.Employee, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", e.ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	emp.Status = status
	emp.UpdatedAt = s.now()
	return copyEmployee(emp), nil
}

// DeleteEmployee removes the employee. There are no cascade targets.
func (s *Store) DeleteEmployee(_ context.Context, id string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	delete(s.employees, id)
	s.employeeOrder = removeID(s.employeeOrder, id)
	return copyEmployee(emp), nil
}

// AppendActivity records an entry in the activity feed, assigning it an id
// and timestamp.
func (s *Store) AppendActivity(_ context.Context, entry models.ActivityEntry) models.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.newID("act")
	entry.CreatedAt = s.now()
	s.activity = append(s.activity, entry)
	return entry
}

// refreshDepartmentName rewrites the cached department name on every
// employee referencing deptID. Caller holds the write lock.
func (s *Store) refreshDepartmentName(deptID, name string) {
	for _, empID := range s.employeeOrder {
		emp := s.employees[empID]
		if emp.DepartmentID == deptID {
			emp.DepartmentName = name
		}
	}
}

// refreshLocationName rewrites the cached location name on every employee
// referencing locID. Caller holds the write lock.
func (s *Store) refreshLocationName(locID, name string) {
	for _, empID := range s.employeeOrder {
		emp := s.employees[empID]
		if emp.LocationID == locID {
			emp.LocationName = name
		}
	}
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
