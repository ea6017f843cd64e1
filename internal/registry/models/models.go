// Package models defines the core domain models of the organizational
// registry: Location, Department and Employee, their update patches, and
// the Role/Status enumerations used across the admin console.
package models

import (
	"time"
)

// Role represents an employee's role in the organization.
type Role string

const (
	// CEO is the top-level role with full administrative access.
	CEO                 Role = "CEO"
	BranchManager       Role = "BRANCH_MANAGER"
	MarketingHead       Role = "MARKETING_HEAD"
	MarketingSupervisor Role = "MARKETING_SUPERVISOR"
	MarketingRecruiter  Role = "MARKETING_RECRUITER"
	MarketingAssociate  Role = "MARKETING_ASSOCIATE"
)

// Roles lists every valid Role value.
var Roles = []Role{CEO, BranchManager, MarketingHead, MarketingSupervisor, MarketingRecruiter, MarketingAssociate}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Status represents an employee's lifecycle status.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusPending  Status = "PENDING"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// Location defines the domain model for an office location.
type Location struct {
	// ID is the unique identifier for the location.
	ID string
	// Name is the location's display name.
	Name string
	// Address is the street address.
	Address string
	// City, State, PostalCode and Country complete the postal address.
	City       string
	State      string
	PostalCode string
	Country    string
	// DepartmentIDs holds the ids of every Department owned by this
	// location, in creation order. It mirrors Department.LocationID.
	DepartmentIDs []string
	// HiringManagerIDs holds the employee ids acting as hiring managers
	// for this location.
	HiringManagerIDs []string
	// CreatedAt records when the location was created.
	CreatedAt time.Time
	// UpdatedAt records the last mutation.
	UpdatedAt time.Time
}

// Department defines the domain model for a department within a location.
type Department struct {
	// ID is the unique identifier for the department.
	ID string
	// Name is the department's display name.
	Name string
	// Description provides optional details about the department.
	Description string
	// LocationID references the owning Location. Always set.
	LocationID string
	// TeamLeadID optionally references the employee leading the department.
	TeamLeadID string
	// MemberCount is the number of employees assigned to the department.
	MemberCount int
	// CreatedAt records when the department was created.
	CreatedAt time.Time
	// UpdatedAt records the last mutation.
	UpdatedAt time.Time
}

// Employee defines the domain model for an employee record.
//
// DepartmentName and LocationName are denormalized caches of the referenced
// entities' names, kept for immediate display. They are refreshed by every
// mutation that renames the referent; they are never a source of truth.
type Employee struct {
	// ID is the unique identifier for the employee.
	ID string
	// Name is the employee's full name.
	Name string
	// Email is the employee's work email address.
	Email string
	// Phone is optional.
	Phone string
	// Role is the employee's organizational role.
	Role Role
	// DepartmentID optionally references a Department.
	DepartmentID string
	// DepartmentName caches the referenced department's name.
	DepartmentName string
	// LocationID optionally references a Location.
	LocationID string
	// LocationName caches the referenced location's name.
	LocationName string
	// Status is the employee's lifecycle status.
	Status Status
	// HireDate is the date the employee was hired.
	HireDate time.Time
	// AvatarURL optionally references a profile image.
	AvatarURL string
	// CreatedAt records when the record was created.
	CreatedAt time.Time
	// UpdatedAt records the last mutation.
	UpdatedAt time.Time
}

// LocationUpdate represents the fields that can be updated on a Location.
// Pointer types are used to allow partial updates.
type LocationUpdate struct {
	Name       *string
	Address    *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

// DepartmentUpdate represents the fields that can be updated on a Department.
type DepartmentUpdate struct {
	Name        *string
	Description *string
	// LocationID moves the department to another location; the registry
	// revalidates the reference and both locations' department sets.
	LocationID  *string
	TeamLeadID  *string
	MemberCount *int
}

// EmployeeUpdate represents the fields that can be updated on an Employee.
type EmployeeUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	Role         *Role
	DepartmentID *string
	LocationID   *string
	Status       *Status
	HireDate     *time.Time
	AvatarURL    *string
}

// ActivityEntry records one successful registry mutation for the admin
// console's activity log screen.
type ActivityEntry struct {
	// ID is the unique identifier for the entry.
	ID string
	// Actor is the subject that performed the mutation, when known.
	Actor string
	// Action names the mutation, e.g. "location_created".
	Action string
	// EntityKind is "location", "department" or "employee".
	EntityKind string
	// EntityID and EntityName identify the mutated entity.
	EntityID   string
	EntityName string
	// CreatedAt records when the mutation happened.
	CreatedAt time.Time
}
