package db

import (
	"encoding/json"
	"time"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
)

// Record types mirror the domain models for storage. Position preserves
// insertion order across restarts; id slices are stored JSON-encoded.

type locationRecord struct {
	ID               string `gorm:"primaryKey"`
	Name             string
	Address          string
	City             string
	State            string
	PostalCode       string
	Country          string
	DepartmentIDs    string
	HiringManagerIDs string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Position         int `gorm:"index"`
}

type departmentRecord struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description string
	LocationID  string `gorm:"index"`
	TeamLeadID  string
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Position    int `gorm:"index"`
}

type employeeRecord struct {
	ID             string `gorm:"primaryKey"`
	Name           string
	Email          string
	Phone          string
	Role           string
	DepartmentID   string `gorm:"index"`
	DepartmentName string
	LocationID     string `gorm:"index"`
	LocationName   string
	Status         string
	HireDate       time.Time
	AvatarURL      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Position       int `gorm:"index"`
}

type activityRecord struct {
	ID         string `gorm:"primaryKey"`
	Actor      string
	Action     string
	EntityKind string
	EntityID   string
	EntityName string
	CreatedAt  time.Time
	Position   int `gorm:"index"`
}

func toLocationRecord(loc models.Location, position int) locationRecord {
	return locationRecord{
		ID:               loc.ID,
		Name:             loc.Name,
		Address:          loc.Address,
		City:             loc.City,
		State:            loc.State,
		PostalCode:       loc.PostalCode,
		Country:          loc.Country,
		DepartmentIDs:    encodeIDs(loc.DepartmentIDs),
		HiringManagerIDs: encodeIDs(loc.HiringManagerIDs),
		CreatedAt:        loc.CreatedAt,
		UpdatedAt:        loc.UpdatedAt,
		Position:         position,
	}
}

func (rec locationRecord) toModel() models.Location {
	return models.Location{
		ID:               rec.ID,
		Name:             rec.Name,
		Address:          rec.Address,
		City:             rec.City,
		State:            rec.State,
		PostalCode:       rec.PostalCode,
		Country:          rec.Country,
		DepartmentIDs:    decodeIDs(rec.DepartmentIDs),
		HiringManagerIDs: decodeIDs(rec.HiringManagerIDs),
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

func toDepartmentRecord(dept models.Department, position int) departmentRecord {
	return departmentRecord{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
		LocationID:  dept.LocationID,
		TeamLeadID:  dept.TeamLeadID,
		MemberCount: dept.MemberCount,
		CreatedAt:   dept.CreatedAt,
		UpdatedAt:   dept.UpdatedAt,
		Position:    position,
	}
}

func (rec departmentRecord) toModel() models.Department {
	return models.Department{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		LocationID:  rec.LocationID,
		TeamLeadID:  rec.TeamLeadID,
		MemberCount: rec.MemberCount,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toEmployeeRecord(emp models.Employee, position int) employeeRecord {
	return employeeRecord{
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
		Position:       position,
	}
}

func (rec employeeRecord) toModel() models.Employee {
	return models.Employee{
		ID:             rec.ID,
		Name:           rec.Name,
		Email:          rec.Email,
		Phone:          rec.Phone,
		Role:           models.Role(rec.Role),
		DepartmentID:   rec.DepartmentID,
		DepartmentName: rec.DepartmentName,
		LocationID:     rec.LocationID,
		LocationName:   rec.LocationName,
		Status:         models.Status(rec.Status),
		HireDate:       rec.HireDate,
		AvatarURL:      rec.AvatarURL,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func toActivityRecord(entry models.ActivityEntry, position int) activityRecord {
	return activityRecord{
		ID:         entry.ID,
		Actor:      entry.Actor,
		Action:     entry.Action,
		EntityKind: entry.EntityKind,
		EntityID:   entry.EntityID,
		EntityName: entry.EntityName,
		CreatedAt:  entry.CreatedAt,
		Position:   position,
	}
}

func (rec activityRecord) toModel() models.ActivityEntry {
	return models.ActivityEntry{
		ID:         rec.ID,
		Actor:      rec.Actor,
		Action:     rec.Action,
		EntityKind: rec.EntityKind,
		EntityID:   rec.EntityID,
		EntityName: rec.EntityName,
		CreatedAt:  rec.CreatedAt,
	}
}

func encodeIDs(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func decodeIDs(encoded string) []string {
	ids := []string{}
	if encoded == "" {
		return ids
	}
	if err := json.Unmarshal([]byte(encoded), &ids); err != nil {
		return []string{}
	}
	return ids
}
