package query

import (
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
)

// SortCreatedAt is the default sort field for every list screen.
const SortCreatedAt = "createdAt"

// EmployeeView adapts the employee collection for the employee and user
// directory screens: search over name/email/role, status filtering, and
// sortable name/email/role/status/hire date columns.
func EmployeeView() View[models.Employee] {
	return View[models.Employee]{
		SearchFields: func(emp models.Employee) []string {
			return []string{emp.Name, emp.Email, string(emp.Role)}
		},
		Status: func(emp models.Employee) string {
			return string(emp.Status)
		},
		SortKeys: map[string]func(a, b models.Employee) int{
			SortCreatedAt: func(a, b models.Employee) int { return a.CreatedAt.Compare(b.CreatedAt) },
			"name":        func(a, b models.Employee) int { return compareFold(a.Name, b.Name) },
			"email":       func(a, b models.Employee) int { return compareFold(a.Email, b.Email) },
			"role":        func(a, b models.Employee) int { return compareFold(string(a.Role), string(b.Role)) },
			"status":      func(a, b models.Employee) int { return compareFold(string(a.Status), string(b.Status)) },
			"hireDate":    func(a, b models.Employee) int { return a.HireDate.Compare(b.HireDate) },
		},
		DefaultSort: SortCreatedAt,
	}
}

// LocationView adapts the location collection for the location directory:
// search over name/address/city, sortable name/city columns.
func LocationView() View[models.Location] {
	return View[models.Location]{
		SearchFields: func(loc models.Location) []string {
			return []string{loc.Name, loc.Address, loc.City}
		},
		SortKeys: map[string]func(a, b models.Location) int{
			SortCreatedAt: func(a, b models.Location) int { return a.CreatedAt.Compare(b.CreatedAt) },
			"name":        func(a, b models.Location) int { return compareFold(a.Name, b.Name) },
			"city":        func(a, b models.Location) int { return compareFold(a.City, b.City) },
		},
		DefaultSort: SortCreatedAt,
	}
}

// DepartmentView adapts the department collection: search over the name
// only, sortable by name.
func DepartmentView() View[models.Department] {
	return View[models.Department]{
		SearchFields: func(dept models.Department) []string {
			return []string{dept.Name}
		},
		SortKeys: map[string]func(a, b models.Department) int{
			SortCreatedAt: func(a, b models.Department) int { return a.CreatedAt.Compare(b.CreatedAt) },
			"name":        func(a, b models.Department) int { return compareFold(a.Name, b.Name) },
		},
		DefaultSort: SortCreatedAt,
	}
}

// ActivityView adapts the activity feed for the activity log screen: search
// over action, entity name and actor, newest-first by default at the caller.
func ActivityView() View[models.ActivityEntry] {
	return View[models.ActivityEntry]{
		SearchFields: func(entry models.ActivityEntry) []string {
			return []string{entry.Action, entry.EntityName, entry.Actor}
		},
		SortKeys: map[string]func(a, b models.ActivityEntry) int{
			SortCreatedAt: func(a, b models.ActivityEntry) int { return a.CreatedAt.Compare(b.CreatedAt) },
			"action":      func(a, b models.ActivityEntry) int { return compareFold(a.Action, b.Action) },
		},
		DefaultSort: SortCreatedAt,
	}
}
