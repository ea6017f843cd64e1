// Package db persists registry snapshots through gorm. The in-memory store
// stays authoritative while the process runs; the repository loads the last
// snapshot at boot and replaces it, in a single transaction, when asked to
// persist.
package db

import (
	"context"
	"fmt"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DriverPostgres and DriverSQLite select the gorm dialector in Config.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the sqlite database file; ":memory:" for tests.
	Path string
}

func NewRepository(cfg *Config) (*Repository, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	case DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&locationRecord{}, &departmentRecord{}, &employeeRecord{}, &activityRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Load reads the persisted snapshot, each collection in stored insertion
// order. An empty database yields an empty snapshot.
func (r *Repository) Load(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	var locations []locationRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&locations).Error; err != nil {
		return snap, fmt.Errorf("failed to load locations: %w", err)
	}
	snap.Locations = make([]models.Location, 0, len(locations))
	for _, rec := range locations {
		snap.Locations = append(snap.Locations, rec.toModel())
	}

	var departments []departmentRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&departments).Error; err != nil {
		return snap, fmt.Errorf("failed to load departments: %w", err)
	}
	snap.Departments = make([]models.Department, 0, len(departments))
	for _, rec := range departments {
		snap.Departments = append(snap.Departments, rec.toModel())
	}

	var employees []employeeRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&employees).Error; err != nil {
		return snap, fmt.Errorf("failed to load employees: %w", err)
	}
	snap.Employees = make([]models.Employee, 0, len(employees))
	for _, rec := range employees {
		snap.Employees = append(snap.Employees, rec.toModel())
	}

	var activity []activityRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&activity).Error; err != nil {
		return snap, fmt.Errorf("failed to load activity: %w", err)
	}
	snap.Activity = make([]models.ActivityEntry, 0, len(activity))
	for _, rec := range activity {
		snap.Activity = append(snap.Activity, rec.toModel())
	}

	return snap, nil
}

// Persist replaces the stored snapshot with snap in one transaction, so a
// crash mid-write never leaves a half-saved registry.
func (r *Repository) Persist(ctx context.Context, snap store.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&locationRecord{}, &departmentRecord{}, &employeeRecord{}, &activityRecord{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}

		for i, loc := range snap.Locations {
			rec := toLocationRecord(loc, i)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to persist location %s: %w", loc.ID, err)
			}
		}
		for i, dept := range snap.Departments {
			rec := toDepartmentRecord(dept, i)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to persist department %s: %w", dept.ID, err)
			}
		}
		for i, emp := range snap.Employees {
			rec := toEmployeeRecord(emp, i)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to persist employee %s: %w", emp.ID, err)
			}
		}
		for i, entry := range snap.Activity {
			rec := toActivityRecord(entry, i)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to persist activity entry %s: %w", entry.ID, err)
			}
		}
		return nil
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
