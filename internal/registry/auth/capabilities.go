// Package auth validates console JWTs and derives per-action capabilities
// from the token's role claim. The registry façade consumes capabilities as
// plain booleans; it never evaluates roles itself.
package auth

import (
	"context"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
)

// Capability names one gated registry action.
type Capability string

const (
	CapLocationCreate   Capability = "location:create"
	CapLocationUpdate   Capability = "location:update"
	CapLocationDelete   Capability = "location:delete"
	CapDepartmentCreate Capability = "department:create"
	CapDepartmentUpdate Capability = "department:update"
	CapDepartmentDelete Capability = "department:delete"
	CapEmployeeCreate   Capability = "employee:create"
	CapEmployeeUpdate   Capability = "employee:update"
	CapEmployeeDelete   Capability = "employee:delete"
	CapEmployeeStatus   Capability = "employee:set-status"
)

var allCapabilities = []Capability{
	CapLocationCreate, CapLocationUpdate, CapLocationDelete,
	CapDepartmentCreate, CapDepartmentUpdate, CapDepartmentDelete,
	CapEmployeeCreate, CapEmployeeUpdate, CapEmployeeDelete, CapEmployeeStatus,
}

var employeeCapabilities = []Capability{
	CapEmployeeCreate, CapEmployeeUpdate, CapEmployeeDelete, CapEmployeeStatus,
}

var departmentCapabilities = []Capability{
	CapDepartmentCreate, CapDepartmentUpdate, CapDepartmentDelete,
}

// Capabilities is the set of actions a caller may perform. Reads are never
// gated.
type Capabilities map[Capability]bool

// Allows reports whether the set grants the capability.
func (c Capabilities) Allows(capability Capability) bool {
	return c[capability]
}

// ForRole maps a console role to its capability set.
func ForRole(role models.Role) Capabilities {
	caps := Capabilities{}
	switch role {
	case models.CEO, models.BranchManager:
		for _, capability := range allCapabilities {
			caps[capability] = true
		}
	case models.MarketingHead:
		for _, capability := range departmentCapabilities {
			caps[capability] = true
		}
		for _, capability := range employeeCapabilities {
			caps[capability] = true
		}
	case models.MarketingSupervisor:
		for _, capability := range employeeCapabilities {
			caps[capability] = true
		}
	}
	// MarketingRecruiter and MarketingAssociate are read-only.
	return caps
}

type contextKey string

const (
	capabilitiesContextKey contextKey = "capabilities"
	subjectContextKey      contextKey = "subject"
)

// WithCaller stores the caller's subject and capability set in the context.
func WithCaller(ctx context.Context, subject string, caps Capabilities) context.Context {
	ctx = context.WithValue(ctx, subjectContextKey, subject)
	return context.WithValue(ctx, capabilitiesContextKey, caps)
}

// CallerCapabilities returns the capability set from the context, or an
// empty (deny-all) set when absent.
func CallerCapabilities(ctx context.Context) Capabilities {
	if caps, ok := ctx.Value(capabilitiesContextKey).(Capabilities); ok {
		return caps
	}
	return Capabilities{}
}

// CallerSubject returns the authenticated subject, or "" when absent.
func CallerSubject(ctx context.Context) string {
	if subject, ok := ctx.Value(subjectContextKey).(string); ok {
		return subject
	}
	return ""
}
