package store

import (
	"context"
	"sync"
	"testing"
	"time"

	e "github.com/pittisunilkumar3/talent-spark-registry/internal/registry/errors"
	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock returns a clock that advances by step on every call, so
// generated ids never collide within a test.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(step)
		return current
	}
}

func newTestStore() *Store {
	return New(WithClock(steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), time.Second)))
}

func mustCreateLocation(t *testing.T, s *Store, name string) *models.Location {
	t.Helper()
	loc, err := s.CreateLocation(context.Background(), &models.Location{Name: name, City: "Miami"})
	require.NoError(t, err)
	return loc
}

func mustCreateDepartment(t *testing.T, s *Store, name, locationID string) *models.Department {
	t.Helper()
	dept, err := s.CreateDepartment(context.Background(), &models.Department{Name: name, LocationID: locationID})
	require.NoError(t, err)
	return dept
}

func mustCreateEmployee(t *testing.T, s *Store, emp models.Employee) *models.Employee {
	t.Helper()
	if emp.Email == "" {
		emp.Email = "someone@talent-spark.test"
	}
	if emp.Role == "" {
		emp.Role = models.MarketingRecruiter
	}
	created, err := s.CreateEmployee(context.Background(), &emp)
	require.NoError(t, err)
	return created
}

// assertLocationDepartmentSync verifies that every location's department set
// exactly matches the departments whose LocationID points back at it.
func assertLocationDepartmentSync(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	departments := s.Departments(ctx)
	for _, loc := range s.Locations(ctx) {
		var owned []string
		for _, dept := range departments {
			if dept.LocationID == loc.ID {
				owned = append(owned, dept.ID)
			}
		}
		assert.ElementsMatch(t, owned, loc.DepartmentIDs, "location %s department set out of sync", loc.ID)
	}
}

func TestCreateLocation(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	loc, err := s.CreateLocation(ctx, &models.Location{
		Name:       "Miami",
		Address:    "100 Biscayne Blvd",
		City:       "Miami",
		State:      "FL",
		PostalCode: "33132",
		Country:    "US",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loc.ID)
	assert.Equal(t, "Miami", loc.Name)
	assert.Empty(t, loc.DepartmentIDs)
	assert.False(t, loc.CreatedAt.IsZero())
	assert.Equal(t, loc.CreatedAt, loc.UpdatedAt)
}

func TestCreateLocationValidation(t *testing.T) {
	s := newTestStore()

	_, err := s.CreateLocation(context.Background(), &models.Location{})
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestCreateLocationIDCollision(t *testing.T) {
	// A frozen clock makes every generated id identical; the second create
	// must fail with a conflict instead of overwriting.
	frozen := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return frozen }))
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, &models.Location{Name: "First"})
	require.NoError(t, err)

	_, err = s.CreateLocation(ctx, &models.Location{Name: "Second"})
	assert.ErrorIs(t, err, e.ErrConflict)
	assert.Len(t, s.Locations(ctx), 1)
}

func TestCreateDepartment(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	miami := mustCreateLocation(t, s, "Miami")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)

	// Scenario: the new department id appears in the owning location's set.
	got, err := s.GetLocation(ctx, miami.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{marketing.ID}, got.DepartmentIDs)
	assertLocationDepartmentSync(t, s)
}

func TestCreateDepartmentUnknownLocation(t *testing.T) {
	s := newTestStore()

	_, err := s.CreateDepartment(context.Background(), &models.Department{Name: "Marketing", LocationID: "loc-nope"})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCreateDepartmentValidation(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")

	_, err := s.CreateDepartment(ctx, &models.Department{LocationID: miami.ID})
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = s.CreateDepartment(ctx, &models.Department{Name: "Marketing"})
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = s.CreateDepartment(ctx, &models.Department{Name: "Marketing", LocationID: miami.ID, MemberCount: -1})
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestCreateEmployeePopulatesCaches(t *testing.T) {
	s := newTestStore()
	miami := mustCreateLocation(t, s, "Miami")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)

	emp := mustCreateEmployee(t, s, models.Employee{
		Name:         "Dana Cruz",
		Email:        "dana@talent-spark.test",
		Role:         models.MarketingHead,
		DepartmentID: marketing.ID,
		LocationID:   miami.ID,
	})

	assert.Equal(t, "Marketing", emp.DepartmentName)
	assert.Equal(t, "Miami", emp.LocationName)
	assert.Equal(t, models.StatusActive, emp.Status)
}

func TestCreateEmployeeValidation(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, &models.Employee{Email: "x@y.test", Role: models.CEO})
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = s.CreateEmployee(ctx, &models.Employee{Name: "X", Role: models.CEO})
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = s.CreateEmployee(ctx, &models.Employee{Name: "X", Email: "x@y.test", Role: "INTERN"})
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = s.CreateEmployee(ctx, &models.Employee{Name: "X", Email: "x@y.test", Role: models.CEO, Status: "GONE"})
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestCreateEmployeeUnknownReferences(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, &models.Employee{
		Name: "X", Email: "x@y.test", Role: models.CEO, DepartmentID: "dept-nope",
	})
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = s.CreateEmployee(ctx, &models.Employee{
		Name: "X", Email: "x@y.test", Role: models.CEO, LocationID: "loc-nope",
	})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestRenameDepartmentRefreshesEmployeeCaches(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)
	emp := mustCreateEmployee(t, s, models.Employee{
		Name: "Dana Cruz", DepartmentID: marketing.ID,
	})
	assert.Equal(t, "Marketing", emp.DepartmentName)

	name := "Growth"
	_, err := s.UpdateDepartment(ctx, marketing.ID, &models.DepartmentUpdate{Name: &name})
	require.NoError(t, err)

	got, err := s.GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Growth", got.DepartmentName)

	// every employee referencing the department carries the current name
	for _, candidate := range s.Employees(ctx) {
		if candidate.DepartmentID == marketing.ID {
			assert.Equal(t, "Growth", candidate.DepartmentName)
		}
	}
}

func TestRenameLocationRefreshesEmployeeCaches(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	emp := mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz", LocationID: miami.ID})
	assert.Equal(t, "Miami", emp.LocationName)

	name := "Miami HQ"
	_, err := s.UpdateLocation(ctx, miami.ID, &models.LocationUpdate{Name: &name})
	require.NoError(t, err)

	got, err := s.GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Miami HQ", got.LocationName)
}

func TestMoveDepartmentBetweenLocations(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	austin := mustCreateLocation(t, s, "Austin")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)

	moved, err := s.UpdateDepartment(ctx, marketing.ID, &models.DepartmentUpdate{LocationID: &austin.ID})
	require.NoError(t, err)
	assert.Equal(t, austin.ID, moved.LocationID)

	gotMiami, err := s.GetLocation(ctx, miami.ID)
	require.NoError(t, err)
	assert.Empty(t, gotMiami.DepartmentIDs)

	gotAustin, err := s.GetLocation(ctx, austin.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{marketing.ID}, gotAustin.DepartmentIDs)
	assertLocationDepartmentSync(t, s)
}

func TestMoveDepartmentToUnknownLocation(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)

	target := "loc-nope"
	_, err := s.UpdateDepartment(ctx, marketing.ID, &models.DepartmentUpdate{LocationID: &target})
	assert.ErrorIs(t, err, e.ErrIntegrity)

	// the failed move left both sides untouched
	got, err := s.GetDepartment(ctx, marketing.ID)
	require.NoError(t, err)
	assert.Equal(t, miami.ID, got.LocationID)
	assertLocationDepartmentSync(t, s)
}

func TestFailedDepartmentUpdateLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)
	mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz", DepartmentID: marketing.ID})
	before := s.Snapshot(ctx)

	// the rename is valid on its own but the move is not; neither may land
	name := "Growth"
	target := "loc-nope"
	_, err := s.UpdateDepartment(ctx, marketing.ID, &models.DepartmentUpdate{
		Name:       &name,
		LocationID: &target,
	})
	assert.ErrorIs(t, err, e.ErrIntegrity)
	assert.Equal(t, before, s.Snapshot(ctx))

	got, err := s.GetEmployee(ctx, before.Employees[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Marketing", got.DepartmentName)
}

func TestFailedEmployeeUpdateLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	emp := mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz"})
	before := s.Snapshot(ctx)

	name := "Renamed"
	dept := "dept-nope"
	_, err := s.UpdateEmployee(ctx, emp.ID, &models.EmployeeUpdate{
		Name:         &name,
		DepartmentID: &dept,
	})
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.Equal(t, before, s.Snapshot(ctx))

	badStatus := models.Status("RETIRED")
	_, err = s.UpdateEmployee(ctx, emp.ID, &models.EmployeeUpdate{
		Name:   &name,
		Status: &badStatus,
	})
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, before, s.Snapshot(ctx))
}

func TestFailedLocationUpdateLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz", LocationID: miami.ID})
	before := s.Snapshot(ctx)

	empty := ""
	city := "Atlantis"
	_, err := s.UpdateLocation(ctx, miami.ID, &models.LocationUpdate{
		Name: &empty,
		City: &city,
	})
	assert.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, before, s.Snapshot(ctx))
}

func TestDeleteLocationCascades(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	austin := mustCreateLocation(t, s, "Austin")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)
	sales := mustCreateDepartment(t, s, "Sales", miami.ID)
	support := mustCreateDepartment(t, s, "Support", austin.ID)
	emp := mustCreateEmployee(t, s, models.Employee{
		Name: "Dana Cruz", DepartmentID: marketing.ID, LocationID: miami.ID,
	})

	removed, departments, err := s.DeleteLocation(ctx, miami.ID)
	require.NoError(t, err)
	assert.Equal(t, miami.ID, removed.ID)

	require.Len(t, departments, 2)
	removedIDs := []string{departments[0].ID, departments[1].ID}
	assert.ElementsMatch(t, []string{marketing.ID, sales.ID}, removedIDs)

	// no department still references the deleted location
	for _, dept := range s.Departments(ctx) {
		assert.NotEqual(t, miami.ID, dept.LocationID)
	}
	_, err = s.GetDepartment(ctx, marketing.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
	_, err = s.GetDepartment(ctx, support.ID)
	assert.NoError(t, err)

	// the employee keeps its stale references untouched
	got, err := s.GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, marketing.ID, got.DepartmentID)
	assert.Equal(t, "Marketing", got.DepartmentName)
	assert.Equal(t, miami.ID, got.LocationID)

	assertLocationDepartmentSync(t, s)
}

func TestDeleteLocationNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	mustCreateDepartment(t, s, "Marketing", miami.ID)
	mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz"})

	before := s.Snapshot(ctx)

	_, _, err := s.DeleteLocation(ctx, "loc-nope")
	assert.ErrorIs(t, err, e.ErrNotFound)

	assert.Equal(t, before, s.Snapshot(ctx))
}

func TestDeleteDepartment(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)
	sales := mustCreateDepartment(t, s, "Sales", miami.ID)

	_, err := s.DeleteDepartment(ctx, marketing.ID)
	require.NoError(t, err)

	got, err := s.GetLocation(ctx, miami.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{sales.ID}, got.DepartmentIDs)
	assertLocationDepartmentSync(t, s)

	_, err = s.DeleteDepartment(ctx, marketing.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestUpdateEmployeeReferences(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	marketing := mustCreateDepartment(t, s, "Marketing", miami.ID)
	emp := mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz"})

	updated, err := s.UpdateEmployee(ctx, emp.ID, &models.EmployeeUpdate{DepartmentID: &marketing.ID})
	require.NoError(t, err)
	assert.Equal(t, "Marketing", updated.DepartmentName)

	// clearing the reference also clears its cache
	empty := ""
	updated, err = s.UpdateEmployee(ctx, emp.ID, &models.EmployeeUpdate{DepartmentID: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.DepartmentID)
	assert.Empty(t, updated.DepartmentName)

	unknown := "dept-nope"
	_, err = s.UpdateEmployee(ctx, emp.ID, &models.EmployeeUpdate{DepartmentID: &unknown})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestSetEmployeeStatus(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	emp := mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz"})

	updated, err := s.SetEmployeeStatus(ctx, emp.ID, models.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, updated.Status)

	_, err = s.SetEmployeeStatus(ctx, emp.ID, "GONE")
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = s.SetEmployeeStatus(ctx, "emp-nope", models.StatusActive)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	emp := mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz"})

	_, err := s.DeleteEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Employees(ctx))

	_, err = s.DeleteEmployee(ctx, emp.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	mustCreateDepartment(t, s, "Marketing", miami.ID)

	got, err := s.GetLocation(ctx, miami.ID)
	require.NoError(t, err)
	got.Name = "Mutated"
	got.DepartmentIDs[0] = "dept-mutated"

	fresh, err := s.GetLocation(ctx, miami.ID)
	require.NoError(t, err)
	assert.Equal(t, "Miami", fresh.Name)
	assert.NotEqual(t, "dept-mutated", fresh.DepartmentIDs[0])
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	miami := mustCreateLocation(t, s, "Miami")
	mustCreateDepartment(t, s, "Marketing", miami.ID)
	mustCreateEmployee(t, s, models.Employee{Name: "Dana Cruz", LocationID: miami.ID})
	s.AppendActivity(ctx, models.ActivityEntry{Action: "location_created", EntityKind: "location", EntityID: miami.ID})

	snap := s.Snapshot(ctx)

	restored := newTestStore()
	restored.Restore(ctx, snap)
	assert.Equal(t, snap, restored.Snapshot(ctx))

	// the restored store stays mutable and consistent
	_, _, err := restored.DeleteLocation(ctx, miami.ID)
	require.NoError(t, err)
	assert.Empty(t, restored.Departments(ctx))
}

func TestActivityFeedOrder(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first := s.AppendActivity(ctx, models.ActivityEntry{Action: "location_created"})
	second := s.AppendActivity(ctx, models.ActivityEntry{Action: "department_created"})
	require.NotEqual(t, first.ID, second.ID)

	feed := s.Activity(ctx)
	require.Len(t, feed, 2)
	assert.Equal(t, "location_created", feed[0].Action)
	assert.Equal(t, "department_created", feed[1].Action)
	assert.False(t, feed[1].CreatedAt.Before(feed[0].CreatedAt))
}
