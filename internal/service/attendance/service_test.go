package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/identity"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/lock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance/internal/repository/memory"
	calendarService "github.com/cmlabs-hris/hris-attendance/internal/service/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/service/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var office = geo.Point{Latitude: 12.9716, Longitude: 77.5946}

func mustIST(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

type fenceFunc func(ctx context.Context, point, ref geo.Point, radius float64) (bool, float64, error)

func (f fenceFunc) WithinRadius(ctx context.Context, point, ref geo.Point, radius float64) (bool, float64, error) {
	return f(ctx, point, ref, radius)
}

type matcherFunc func(ctx context.Context, image []byte, filename string) (identity.Match, error)

func (f matcherFunc) Match(ctx context.Context, image []byte, filename string) (identity.Match, error) {
	return f(ctx, image, filename)
}

type engineFixture struct {
	svc   attendance.AttendanceService
	store *memory.Store
	clock *clock.FakeClock
	loc   *time.Location
	fence geo.Fence
}

type fixtureOption func(*engineFixture, *identity.Matcher)

func withFence(f geo.Fence) fixtureOption {
	return func(e *engineFixture, _ *identity.Matcher) { e.fence = f }
}

func withMatcher(m identity.Matcher) fixtureOption {
	return func(_ *engineFixture, target *identity.Matcher) { *target = m }
}

// Tuesday 4 March 2025, 09:00 IST.
func newEngine(t *testing.T, opts ...fixtureOption) *engineFixture {
	t.Helper()
	loc := mustIST(t)
	f := &engineFixture{
		store: memory.NewStore("emp-1", "emp-2"),
		clock: clock.NewFake(time.Date(2025, 3, 4, 9, 0, 0, 0, loc)),
		loc:   loc,
		fence: geo.NewHaversineFence(),
	}
	var matcher identity.Matcher = matcherFunc(func(context.Context, []byte, string) (identity.Match, error) {
		return identity.Match{}, identity.ErrMatcherNotConfigured
	})
	for _, opt := range opts {
		opt(f, &matcher)
	}

	f.svc = NewAttendanceService(
		f.store.Attendances(),
		f.store.Absences(),
		f.store,
		f.store.Employees(),
		calendarService.NewCalendarService(f.store.Holidays(), time.Sunday, "IN"),
		f.fence,
		matcher,
		f.clock,
		Policy{
			OpensAt:             clock.TimeOfDay{Hour: 7},
			Deadline:            clock.TimeOfDay{Hour: 10, Minute: 45},
			Office:              office,
			RadiusMeters:        100,
			CollaboratorTimeout: 50 * time.Millisecond,
			FaceMinConfidence:   0.6,
		},
		nil,
	)
	return f
}

func (f *engineFixture) at(hour, minute int) time.Time {
	now := f.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, f.loc)
}

func ptr(v float64) *float64 { return &v }

// ~80m north of the office.
func nearby() (*float64, *float64) {
	return ptr(office.Latitude + 0.00072), ptr(office.Longitude)
}

func officeRequest(employeeID string, at time.Time) attendance.RecordPresenceRequest {
	lat, lon := nearby()
	return attendance.RecordPresenceRequest{
		EmployeeID: employeeID,
		ObservedAt: at,
		Latitude:   lat,
		Longitude:  lon,
		Mode:       attendance.LocationModeOffice,
	}
}

func (f *engineFixture) attendanceFor(t *testing.T, employeeID string) *attendance.Attendance {
	t.Helper()
	att, err := f.store.Attendances().GetByEmployeeAndDate(context.Background(), employeeID, clock.DateOf(f.clock.Now()))
	require.NoError(t, err)
	return att
}

func (f *engineFixture) absentToday(t *testing.T, employeeID string) bool {
	t.Helper()
	absent, err := f.store.Absences().Exists(context.Background(), employeeID, clock.DateOf(f.clock.Now()))
	require.NoError(t, err)
	return absent
}

func TestRecordPresence_OnTimeOfficeCheckIn(t *testing.T) {
	f := newEngine(t)

	result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(9, 0)))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCheckedIn, result.Status)
	assert.Equal(t, "2025-03-04", result.Date)
	require.NotNil(t, result.Attendance)
	assert.True(t, result.Attendance.LocationVerified)
	require.NotNil(t, result.DistanceMeters)
	assert.InDelta(t, 80, *result.DistanceMeters, 1)

	att := f.attendanceFor(t, "emp-1")
	require.NotNil(t, att)
	assert.True(t, att.CheckIn.Equal(f.at(9, 0)))
	assert.Nil(t, att.CheckOut)
}

func TestRecordPresence_TooEarly(t *testing.T) {
	f := newEngine(t)

	result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(6, 59)))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusTooEarly, result.Status)
	assert.Nil(t, f.attendanceFor(t, "emp-1"))
	assert.False(t, f.absentToday(t, "emp-1"))
}

func TestRecordPresence_OpeningTimeIsNotTooEarly(t *testing.T) {
	f := newEngine(t)

	result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(7, 0)))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, result.Status)
}

func TestRecordPresence_LateFirstAttemptMarksAbsent(t *testing.T) {
	f := newEngine(t)

	result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(11, 0)))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusTooLateMarkedAbsent, result.Status)
	assert.Nil(t, f.attendanceFor(t, "emp-1"))
	assert.True(t, f.absentToday(t, "emp-1"))

	// A retry stays absent and never writes a record.
	result, err = f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(11, 5)))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusTooLateMarkedAbsent, result.Status)
	assert.Nil(t, f.attendanceFor(t, "emp-1"))
}

func TestRecordPresence_DeadlineIsInclusive(t *testing.T) {
	f := newEngine(t)

	result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(10, 45)))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, result.Status)
}

func TestRecordPresence_DeadlineNotEnforcedOnRestDays(t *testing.T) {
	t.Run("weekly rest day", func(t *testing.T) {
		f := newEngine(t)
		f.clock.Set(time.Date(2025, 3, 9, 9, 0, 0, 0, f.loc)) // Sunday

		result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(15, 0)))
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusCheckedIn, result.Status)
		assert.False(t, f.absentToday(t, "emp-1"))
	})

	t.Run("holiday", func(t *testing.T) {
		f := newEngine(t)
		_, err := f.store.Holidays().Create(context.Background(), calendar.Holiday{
			Date: clock.DateOf(f.clock.Now()), Country: "IN", Name: "Founders Day",
		})
		require.NoError(t, err)

		result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(12, 0)))
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusCheckedIn, result.Status)
	})

	t.Run("too early still applies", func(t *testing.T) {
		f := newEngine(t)
		f.clock.Set(time.Date(2025, 3, 9, 9, 0, 0, 0, f.loc))

		result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(6, 0)))
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusTooEarly, result.Status)
	})
}

func TestRecordPresence_TooFar(t *testing.T) {
	f := newEngine(t)

	req := officeRequest("emp-1", f.at(9, 0))
	req.Latitude = ptr(office.Latitude + 0.002) // ~222m

	result, err := f.svc.RecordPresence(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusTooFar, result.Status)
	require.NotNil(t, result.DistanceMeters)
	assert.Greater(t, *result.DistanceMeters, 200.0)
	assert.Nil(t, f.attendanceFor(t, "emp-1"))
}

func TestRecordPresence_RemoteSkipsGeofence(t *testing.T) {
	f := newEngine(t, withFence(fenceFunc(func(context.Context, geo.Point, geo.Point, float64) (bool, float64, error) {
		t.Fatal("geofence must not be consulted for remote check-ins")
		return false, 0, nil
	})))

	result, err := f.svc.RecordPresence(context.Background(), attendance.RecordPresenceRequest{
		EmployeeID: "emp-1",
		ObservedAt: f.at(9, 30),
		Mode:       attendance.LocationModeRemote,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCheckedIn, result.Status)
	assert.False(t, result.Attendance.LocationVerified)
	assert.Equal(t, attendance.LocationModeRemote, result.Attendance.LocationMode)
}

func TestRecordPresence_CheckOutThenComplete(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	_, err := f.svc.RecordPresence(ctx, officeRequest("emp-1", f.at(9, 0)))
	require.NoError(t, err)

	// Check-out from home after the deadline: no absence, location fields follow the event.
	out, err := f.svc.RecordPresence(ctx, attendance.RecordPresenceRequest{
		EmployeeID: "emp-1",
		ObservedAt: f.at(18, 0),
		Latitude:   ptr(13.0),
		Longitude:  ptr(77.0),
		Mode:       attendance.LocationModeRemote,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedOut, out.Status)

	att := f.attendanceFor(t, "emp-1")
	require.NotNil(t, att)
	require.NotNil(t, att.CheckOut)
	assert.True(t, att.CheckOut.Equal(f.at(18, 0)))
	assert.Equal(t, attendance.LocationModeRemote, att.LocationMode)
	assert.Equal(t, 13.0, *att.Latitude)
	assert.True(t, att.LocationVerified)
	assert.False(t, f.absentToday(t, "emp-1"))

	again, err := f.svc.RecordPresence(ctx, officeRequest("emp-1", f.at(19, 0)))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAlreadyComplete, again.Status)
	assert.True(t, f.attendanceFor(t, "emp-1").CheckOut.Equal(f.at(18, 0)))
}

func TestRecordPresence_CheckOutBeforeCheckIn(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	_, err := f.svc.RecordPresence(ctx, officeRequest("emp-1", f.at(10, 0)))
	require.NoError(t, err)

	_, err = f.svc.RecordPresence(ctx, officeRequest("emp-1", f.at(9, 0)))
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
	assert.Nil(t, f.attendanceFor(t, "emp-1").CheckOut)
}

func TestRecordPresence_ExistingAbsenceBlocksCheckIn(t *testing.T) {
	f := newEngine(t)
	_, _, err := f.store.Absences().GetOrCreate(context.Background(), "emp-1", clock.DateOf(f.clock.Now()), attendance.AbsenceSourceSweep)
	require.NoError(t, err)

	result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(9, 0)))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusTooLateMarkedAbsent, result.Status)
	assert.Nil(t, f.attendanceFor(t, "emp-1"))
}

func TestRecordPresence_SweepDuringSlowGeofence(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	f := newEngine(t, withFence(fenceFunc(func(context.Context, geo.Point, geo.Point, float64) (bool, float64, error) {
		close(entered)
		<-release
		return true, 10, nil
	})))
	sweeper := sweep.NewSweepService(
		f.store.Attendances(),
		f.store.Absences(),
		f.store,
		f.store.Employees(),
		calendarService.NewCalendarService(f.store.Holidays(), time.Sunday, "IN"),
		f.clock,
		clock.TimeOfDay{Hour: 10, Minute: 45},
		lock.NewLocalLocker(),
		nil,
		nil,
	)

	observed := f.at(10, 44).Add(59 * time.Second)
	f.clock.Set(observed)

	type outcome struct {
		result attendance.PresenceResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", observed))
		done <- outcome{result, err}
	}()
	<-entered

	f.clock.Set(f.at(10, 45).Add(time.Second))
	summary, err := sweeper.RunAbsenceSweep(context.Background(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, summary.NewlyAbsentIDs)

	close(release)
	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, attendance.StatusTooLateMarkedAbsent, got.result.Status)
	assert.Nil(t, got.result.DistanceMeters)

	assert.Nil(t, f.attendanceFor(t, "emp-1"))
	assert.True(t, f.absentToday(t, "emp-1"))
}

func TestRecordPresence_CheckInBeforeSweepCountsAsPresent(t *testing.T) {
	f := newEngine(t)
	sweeper := sweep.NewSweepService(
		f.store.Attendances(),
		f.store.Absences(),
		f.store,
		f.store.Employees(),
		calendarService.NewCalendarService(f.store.Holidays(), time.Sunday, "IN"),
		f.clock,
		clock.TimeOfDay{Hour: 10, Minute: 45},
		lock.NewLocalLocker(),
		nil,
		nil,
	)

	f.clock.Set(f.at(10, 44))
	result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.clock.Now()))
	require.NoError(t, err)
	require.Equal(t, attendance.StatusCheckedIn, result.Status)

	f.clock.Set(f.at(10, 46))
	summary, err := sweeper.RunAbsenceSweep(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, []string{"emp-2"}, summary.NewlyAbsentIDs)
	assert.False(t, f.absentToday(t, "emp-1"))
}

func TestRecordPresence_GeofenceFailureIsErrorOutcome(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		f := newEngine(t, withFence(fenceFunc(func(context.Context, geo.Point, geo.Point, float64) (bool, float64, error) {
			return false, 0, errors.New("gps service down")
		})))

		result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(9, 0)))
		assert.ErrorIs(t, err, attendance.ErrCollaboratorUnavailable)
		assert.Equal(t, attendance.StatusError, result.Status)
		assert.Nil(t, f.attendanceFor(t, "emp-1"))
	})

	t.Run("timeout", func(t *testing.T) {
		f := newEngine(t, withFence(fenceFunc(func(ctx context.Context, _ geo.Point, _ geo.Point, _ float64) (bool, float64, error) {
			<-ctx.Done()
			return false, 0, ctx.Err()
		})))

		result, err := f.svc.RecordPresence(context.Background(), officeRequest("emp-1", f.at(9, 0)))
		assert.ErrorIs(t, err, attendance.ErrCollaboratorUnavailable)
		assert.Equal(t, attendance.StatusError, result.Status)
		assert.Nil(t, f.attendanceFor(t, "emp-1"))
	})
}

func TestRecordPresence_Validation(t *testing.T) {
	f := newEngine(t)

	cases := []struct {
		name  string
		req   attendance.RecordPresenceRequest
		field string
	}{
		{"missing employee", attendance.RecordPresenceRequest{Mode: attendance.LocationModeRemote}, "employee_id"},
		{"bad mode", attendance.RecordPresenceRequest{EmployeeID: "emp-1", Mode: "moon"}, "mode"},
		{"office without coordinates", attendance.RecordPresenceRequest{EmployeeID: "emp-1", Mode: attendance.LocationModeOffice}, "location"},
		{"half coordinates", attendance.RecordPresenceRequest{EmployeeID: "emp-1", Mode: attendance.LocationModeRemote, Latitude: ptr(1)}, "location"},
		{"latitude out of range", attendance.RecordPresenceRequest{EmployeeID: "emp-1", Mode: attendance.LocationModeRemote, Latitude: ptr(91), Longitude: ptr(0)}, "latitude"},
		{"longitude out of range", attendance.RecordPresenceRequest{EmployeeID: "emp-1", Mode: attendance.LocationModeRemote, Latitude: ptr(0), Longitude: ptr(-181)}, "longitude"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.svc.RecordPresence(context.Background(), c.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), c.field)
		})
	}
}

func TestRecordPresence_DefaultsToClockNow(t *testing.T) {
	f := newEngine(t)
	f.clock.Set(f.at(11, 30))

	result, err := f.svc.RecordPresence(context.Background(), attendance.RecordPresenceRequest{
		EmployeeID: "emp-1",
		Mode:       attendance.LocationModeRemote,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusTooLateMarkedAbsent, result.Status)
}

func TestRecordPresence_UsesCivilDateNotUTC(t *testing.T) {
	f := newEngine(t)

	// 03:00 UTC on the 4th is 08:30 IST on the 4th; 20:00 UTC on the 3rd is 01:30 IST on the 4th (too early).
	result, err := f.svc.RecordPresence(context.Background(), attendance.RecordPresenceRequest{
		EmployeeID: "emp-1",
		ObservedAt: time.Date(2025, 3, 4, 3, 0, 0, 0, time.UTC),
		Mode:       attendance.LocationModeRemote,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, result.Status)
	assert.Equal(t, "2025-03-04", result.Date)

	result, err = f.svc.RecordPresence(context.Background(), attendance.RecordPresenceRequest{
		EmployeeID: "emp-2",
		ObservedAt: time.Date(2025, 3, 3, 20, 0, 0, 0, time.UTC),
		Mode:       attendance.LocationModeRemote,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusTooEarly, result.Status)
	assert.Equal(t, "2025-03-04", result.Date)
}

func TestRecordPresence_ConcurrentEventsCreateOneRecord(t *testing.T) {
	f := newEngine(t)
	const n = 25

	var wg sync.WaitGroup
	statuses := make(chan attendance.PresenceStatus, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.svc.RecordPresence(context.Background(), attendance.RecordPresenceRequest{
				EmployeeID: "emp-1",
				ObservedAt: f.at(9, 0),
				Mode:       attendance.LocationModeRemote,
			})
			assert.NoError(t, err)
			statuses <- result.Status
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[attendance.PresenceStatus]int{}
	for s := range statuses {
		counts[s]++
	}
	assert.Equal(t, 1, counts[attendance.StatusCheckedIn])
	assert.Equal(t, 1, counts[attendance.StatusCheckedOut])
	assert.Equal(t, n-2, counts[attendance.StatusAlreadyComplete])

	// All events share one instant, so the single check-out closes a zero-length day.
	att := f.attendanceFor(t, "emp-1")
	require.NotNil(t, att)
	require.NotNil(t, att.CheckOut)
	assert.True(t, att.CheckOut.Equal(att.CheckIn))
}

func TestRecordFacePresence(t *testing.T) {
	recognize := func(personID string, confidence float64) fixtureOption {
		return withMatcher(matcherFunc(func(context.Context, []byte, string) (identity.Match, error) {
			return identity.Match{Recognized: true, PersonID: personID, Confidence: confidence}, nil
		}))
	}
	lat, lon := nearby()
	req := attendance.FacePresenceRequest{Image: []byte("jpeg"), Filename: "face.jpg", Latitude: lat, Longitude: lon}

	t.Run("recognized", func(t *testing.T) {
		f := newEngine(t, recognize("emp-2", 0.93))
		result, err := f.svc.RecordFacePresence(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusCheckedIn, result.Status)
		assert.Equal(t, "emp-2", result.EmployeeID)
		assert.Equal(t, attendance.LocationModeOffice, result.Attendance.LocationMode)
	})

	t.Run("low confidence", func(t *testing.T) {
		f := newEngine(t, recognize("emp-2", 0.4))
		_, err := f.svc.RecordFacePresence(context.Background(), req)
		assert.ErrorIs(t, err, attendance.ErrIdentityNotRecognized)
		assert.Nil(t, f.attendanceFor(t, "emp-2"))
	})

	t.Run("unknown person", func(t *testing.T) {
		f := newEngine(t, recognize("stranger", 0.99))
		_, err := f.svc.RecordFacePresence(context.Background(), req)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("inactive person", func(t *testing.T) {
		f := newEngine(t, recognize("emp-3", 0.99))
		f.store.AddEmployee(employee.Employee{ID: "emp-3", EmploymentStatus: employee.EmploymentStatusInactive})
		_, err := f.svc.RecordFacePresence(context.Background(), req)
		assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	})

	t.Run("matcher unavailable", func(t *testing.T) {
		f := newEngine(t)
		result, err := f.svc.RecordFacePresence(context.Background(), req)
		assert.ErrorIs(t, err, attendance.ErrCollaboratorUnavailable)
		assert.Equal(t, attendance.StatusError, result.Status)
	})

	t.Run("missing photo", func(t *testing.T) {
		f := newEngine(t, recognize("emp-2", 0.99))
		_, err := f.svc.RecordFacePresence(context.Background(), attendance.FacePresenceRequest{})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestGetTodayStatus(t *testing.T) {
	f := newEngine(t)
	ctx := context.Background()

	status, err := f.svc.GetTodayStatus(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "check_in", status.NextAction)
	assert.False(t, status.RestDay)

	_, err = f.svc.RecordPresence(ctx, officeRequest("emp-1", f.at(9, 0)))
	require.NoError(t, err)

	status, err = f.svc.GetTodayStatus(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "check_out", status.NextAction)
	require.NotNil(t, status.Attendance)

	f.clock.Set(f.at(11, 0))
	_, err = f.svc.RecordPresence(ctx, attendance.RecordPresenceRequest{EmployeeID: "emp-2", Mode: attendance.LocationModeRemote})
	require.NoError(t, err)

	status, err = f.svc.GetTodayStatus(ctx, "emp-2")
	require.NoError(t, err)
	assert.True(t, status.Absent)
	assert.Equal(t, "none", status.NextAction)
}
