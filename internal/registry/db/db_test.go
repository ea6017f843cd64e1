package db

import (
	"context"
	"testing"
	"time"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SetupTestDB creates an in-memory sqlite repository for testing
func SetupTestDB(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(&Config{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, repo.Close())
	})
	return repo
}

func testSnapshot() store.Snapshot {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return store.Snapshot{
		Locations: []models.Location{
			{
				ID:               "loc-1",
				Name:             "Miami",
				City:             "Miami",
				State:            "FL",
				DepartmentIDs:    []string{"dept-1", "dept-2"},
				HiringManagerIDs: []string{"emp-1"},
				CreatedAt:        now,
				UpdatedAt:        now,
			},
			{ID: "loc-2", Name: "Austin", City: "Austin", DepartmentIDs: []string{}, CreatedAt: now, UpdatedAt: now},
		},
		Departments: []models.Department{
			{ID: "dept-1", Name: "Marketing", LocationID: "loc-1", MemberCount: 3, CreatedAt: now, UpdatedAt: now},
			{ID: "dept-2", Name: "Sales", LocationID: "loc-1", CreatedAt: now, UpdatedAt: now},
		},
		Employees: []models.Employee{
			{
				ID:             "emp-1",
				Name:           "Dana Cruz",
				Email:          "dana@talent-spark.test",
				Role:           models.MarketingHead,
				DepartmentID:   "dept-1",
				DepartmentName: "Marketing",
				LocationID:     "loc-1",
				LocationName:   "Miami",
				Status:         models.StatusActive,
				HireDate:       now,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
		},
		Activity: []models.ActivityEntry{
			{ID: "act-1", Actor: "user-1", Action: "location_created", EntityKind: "location", EntityID: "loc-1", EntityName: "Miami", CreatedAt: now},
			{ID: "act-2", Actor: "user-1", Action: "department_created", EntityKind: "department", EntityID: "dept-1", EntityName: "Marketing", CreatedAt: now},
		},
	}
}

func TestPersistLoadRoundTrip(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	snap := testSnapshot()

	require.NoError(t, repo.Persist(ctx, snap))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Locations, 2)
	assert.Equal(t, "loc-1", loaded.Locations[0].ID)
	assert.Equal(t, "loc-2", loaded.Locations[1].ID)
	assert.Equal(t, []string{"dept-1", "dept-2"}, loaded.Locations[0].DepartmentIDs)
	assert.Equal(t, []string{"emp-1"}, loaded.Locations[0].HiringManagerIDs)
	assert.Empty(t, loaded.Locations[1].DepartmentIDs)

	require.Len(t, loaded.Departments, 2)
	assert.Equal(t, "Marketing", loaded.Departments[0].Name)
	assert.Equal(t, "loc-1", loaded.Departments[0].LocationID)
	assert.Equal(t, 3, loaded.Departments[0].MemberCount)

	require.Len(t, loaded.Employees, 1)
	emp := loaded.Employees[0]
	assert.Equal(t, "emp-1", emp.ID)
	assert.Equal(t, models.MarketingHead, emp.Role)
	assert.Equal(t, models.StatusActive, emp.Status)
	assert.Equal(t, "Marketing", emp.DepartmentName)
	assert.Equal(t, "Miami", emp.LocationName)
	assert.True(t, emp.HireDate.Equal(snap.Employees[0].HireDate))

	require.Len(t, loaded.Activity, 2)
	assert.Equal(t, "act-1", loaded.Activity[0].ID)
	assert.Equal(t, "department_created", loaded.Activity[1].Action)
}

func TestPersistReplacesPreviousSnapshot(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Persist(ctx, testSnapshot()))

	next := store.Snapshot{
		Locations: []models.Location{
			{ID: "loc-9", Name: "Denver", DepartmentIDs: []string{}},
		},
	}
	require.NoError(t, repo.Persist(ctx, next))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Locations, 1)
	assert.Equal(t, "loc-9", loaded.Locations[0].ID)
	assert.Empty(t, loaded.Departments)
	assert.Empty(t, loaded.Employees)
	assert.Empty(t, loaded.Activity)
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo := SetupTestDB(t)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Locations)
	assert.Empty(t, loaded.Departments)
	assert.Empty(t, loaded.Employees)
	assert.Empty(t, loaded.Activity)
}

func TestLoadPreservesInsertionOrder(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	snap := store.Snapshot{}
	for _, id := range []string{"loc-3", "loc-1", "loc-2"} {
		snap.Locations = append(snap.Locations, models.Location{ID: id, Name: id, DepartmentIDs: []string{}})
	}
	require.NoError(t, repo.Persist(ctx, snap))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Locations, 3)
	assert.Equal(t, "loc-3", loaded.Locations[0].ID)
	assert.Equal(t, "loc-1", loaded.Locations[1].ID)
	assert.Equal(t, "loc-2", loaded.Locations[2].ID)
}
