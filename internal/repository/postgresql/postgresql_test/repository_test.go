//go:build integration

package postgresql_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/repository/postgresql"
	correctionService "github.com/cmlabs-hris/hris-attendance/internal/service/correction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

func TestAttendanceRepository_CreateIfAbsentIsAtomic(t *testing.T) {
	resetDB(t, "emp-1")
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB.DB)

	const workers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[string]struct{}{}
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stored, ok, err := repo.CreateIfAbsent(ctx, attendance.Attendance{
				EmployeeID:   "emp-1",
				Date:         day,
				CheckIn:      time.Date(2025, 3, 4, 3, i, 0, 0, time.UTC),
				LocationMode: attendance.LocationModeRemote,
			})
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if ok {
				created++
			}
			ids[stored.ID] = struct{}{}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)

	has, err := repo.HasCheckedIn(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestTransactor_WithinDaySerializesOneDay(t *testing.T) {
	resetDB(t, "emp-1", "emp-2")
	ctx := context.Background()
	tx := postgresql.NewTransactor(testDB.DB)

	locked := make(chan struct{})
	release := make(chan struct{})
	first := make(chan error, 1)
	go func() {
		first <- tx.WithinDay(ctx, "emp-1", day, func(ctx context.Context) error {
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	// Another employee's day is not blocked.
	require.NoError(t, tx.WithinDay(ctx, "emp-2", day, func(context.Context) error { return nil }))

	var entered atomic.Bool
	second := make(chan error, 1)
	go func() {
		second <- tx.WithinDay(ctx, "emp-1", day, func(context.Context) error {
			entered.Store(true)
			return nil
		})
	}()

	assert.Never(t, entered.Load, 300*time.Millisecond, 20*time.Millisecond)
	close(release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)
	assert.True(t, entered.Load())
}

func TestAttendanceRepository_Close(t *testing.T) {
	resetDB(t, "emp-1")
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB.DB)

	checkIn := time.Date(2025, 3, 4, 3, 30, 0, 0, time.UTC)
	lat, lon := 12.9716, 77.5946
	stored, created, err := repo.CreateIfAbsent(ctx, attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             day,
		CheckIn:          checkIn,
		Latitude:         &lat,
		Longitude:        &lon,
		LocationMode:     attendance.LocationModeOffice,
		LocationVerified: true,
	})
	require.NoError(t, err)
	require.True(t, created)
	assert.True(t, stored.Date.Equal(day))

	_, _, err = repo.Close(ctx, stored.ID, checkIn.Add(-time.Minute), nil, nil, attendance.LocationModeRemote)
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)

	checkOut := checkIn.Add(9 * time.Hour)
	closed, ok, err := repo.Close(ctx, stored.ID, checkOut, nil, nil, attendance.LocationModeRemote)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, closed.CheckOut)
	assert.True(t, closed.CheckOut.Equal(checkOut))
	assert.True(t, closed.LocationVerified)
	assert.Equal(t, attendance.LocationModeRemote, closed.LocationMode)

	again, ok, err := repo.Close(ctx, stored.ID, checkOut.Add(time.Hour), nil, nil, attendance.LocationModeRemote)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, again.CheckOut.Equal(checkOut))
}

func TestAbsenceRepository(t *testing.T) {
	resetDB(t, "emp-1")
	ctx := context.Background()
	repo := postgresql.NewAbsenceRepository(testDB.DB)

	first, created, err := repo.GetOrCreate(ctx, "emp-1", day, attendance.AbsenceSourceEngine)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.GetOrCreate(ctx, "emp-1", day, attendance.AbsenceSourceSweep)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.AbsenceSourceEngine, second.Source)

	exists, err := repo.Exists(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := repo.Delete(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestHolidayRepository(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(testDB.DB)

	holi, err := repo.Create(ctx, calendar.Holiday{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Country: "IN", Name: "Holi"})
	require.NoError(t, err)
	assert.NotEmpty(t, holi.ID)

	_, err = repo.Create(ctx, calendar.Holiday{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Country: "IN", Name: "Duplicate"})
	assert.ErrorIs(t, err, calendar.ErrHolidayExists)

	found, err := repo.GetByDate(ctx, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), "IN")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Holi", found.Name)

	missing, err := repo.GetByDate(ctx, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "IN")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.ListByYear(ctx, "IN", 2025)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, holi.ID))
	assert.ErrorIs(t, repo.Delete(ctx, holi.ID), calendar.ErrHolidayNotFound)
}

func TestEmployeeRepository(t *testing.T) {
	resetDB(t, "emp-2", "emp-1")
	ctx := context.Background()
	_, err := testDB.DB.Exec(ctx, `INSERT INTO employees (id, email, employment_status) VALUES ('emp-3', 'x@example.com', 'inactive')`)
	require.NoError(t, err)

	repo := postgresql.NewEmployeeRepository(testDB.DB)

	ids, err := repo.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"emp-1", "emp-2"}, ids)

	emp, err := repo.GetByID(ctx, "emp-3")
	require.NoError(t, err)
	assert.Equal(t, employee.EmploymentStatusInactive, emp.EmploymentStatus)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCorrectionRepository_Lifecycle(t *testing.T) {
	resetDB(t, "emp-1")
	ctx := context.Background()
	repo := postgresql.NewCorrectionRepository(testDB.DB)

	raised, err := repo.Upsert(ctx, "emp-1", day, "first")
	require.NoError(t, err)
	assert.Equal(t, correction.StatusPending, raised.Status)

	remark := "no proof"
	rejected, ok, err := repo.Review(ctx, raised.ID, correction.StatusRejected, "mgr-1", &remark, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, correction.StatusRejected, rejected.Status)

	_, ok, err = repo.Review(ctx, raised.ID, correction.StatusApproved, "mgr-1", nil, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	reopened, err := repo.Upsert(ctx, "emp-1", day, "second")
	require.NoError(t, err)
	assert.Equal(t, raised.ID, reopened.ID)
	assert.Equal(t, correction.StatusPending, reopened.Status)
	assert.Nil(t, reopened.ReviewerID)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, ok, err = repo.Review(ctx, raised.ID, correction.StatusApproved, "mgr-1", nil, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	kept, err := repo.Upsert(ctx, "emp-1", day, "third")
	require.NoError(t, err)
	assert.Equal(t, correction.StatusApproved, kept.Status)
	assert.Equal(t, "second", kept.Reason)

	_, err = repo.GetByID(ctx, "0190b6a0-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, correction.ErrCorrectionNotFound)
}

func TestCorrectionApproval_CommitsAtomically(t *testing.T) {
	resetDB(t, "emp-1", "mgr-1")
	ctx := context.Background()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	absences := postgresql.NewAbsenceRepository(testDB.DB)
	attendances := postgresql.NewAttendanceRepository(testDB.DB)
	_, _, err = absences.GetOrCreate(ctx, "emp-1", day, attendance.AbsenceSourceSweep)
	require.NoError(t, err)

	tx := postgresql.NewTransactor(testDB.DB)
	svc := correctionService.NewCorrectionService(
		tx,
		tx,
		postgresql.NewCorrectionRepository(testDB.DB),
		attendances,
		absences,
		postgresql.NewEmployeeRepository(testDB.DB),
		clock.NewFake(time.Date(2025, 3, 5, 12, 0, 0, 0, loc)),
		clock.TimeOfDay{Hour: 10, Minute: 45},
		nil,
	)

	raised, err := svc.Raise(ctx, correction.RaiseCorrectionRequest{EmployeeID: "emp-1", Date: "2025-03-04", Reason: "site visit"})
	require.NoError(t, err)

	_, err = svc.Review(ctx, correction.ReviewCorrectionRequest{ID: raised.ID, Approved: true, ReviewerID: "mgr-1"})
	require.NoError(t, err)

	exists, err := absences.Exists(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.False(t, exists)

	att, err := attendances.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.True(t, att.CheckIn.Equal(time.Date(2025, 3, 4, 10, 45, 0, 0, loc)))
	assert.False(t, att.LocationVerified)

	_, err = svc.Review(ctx, correction.ReviewCorrectionRequest{ID: raised.ID, Approved: true, ReviewerID: "mgr-1"})
	assert.ErrorIs(t, err, correction.ErrCorrectionAlreadyReviewed)
}
