package correction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type correctionFixture struct {
	svc   correction.CorrectionService
	store *memory.Store
	clock *clock.FakeClock
	loc   *time.Location
}

func newCorrection(t *testing.T) *correctionFixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	f := &correctionFixture{
		store: memory.NewStore("emp-1", "mgr-1"),
		clock: clock.NewFake(time.Date(2025, 3, 5, 14, 0, 0, 0, loc)),
		loc:   loc,
	}
	f.svc = NewCorrectionService(
		f.store,
		f.store,
		f.store.Corrections(),
		f.store.Attendances(),
		f.store.Absences(),
		f.store.Employees(),
		f.clock,
		clock.TimeOfDay{Hour: 10, Minute: 45},
		nil,
	)
	return f
}

func strPtr(s string) *string { return &s }

var yesterday = time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

func (f *correctionFixture) raise(t *testing.T, reason string) correction.CorrectionResponse {
	t.Helper()
	resp, err := f.svc.Raise(context.Background(), correction.RaiseCorrectionRequest{
		EmployeeID: "emp-1",
		Date:       "2025-03-04",
		Reason:     reason,
	})
	require.NoError(t, err)
	return resp
}

func TestReview_ApproveRestoresPresence(t *testing.T) {
	f := newCorrection(t)
	ctx := context.Background()
	_, _, err := f.store.Absences().GetOrCreate(ctx, "emp-1", yesterday, attendance.AbsenceSourceSweep)
	require.NoError(t, err)

	raised := f.raise(t, "client visit, forgot to check in")
	assert.Equal(t, correction.StatusPending, raised.Status)

	reviewed, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{
		ID:         raised.ID,
		Approved:   true,
		ReviewerID: "mgr-1",
	})
	require.NoError(t, err)
	assert.Equal(t, correction.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, "mgr-1", *reviewed.ReviewerID)
	assert.NotNil(t, reviewed.ReviewedAt)

	absent, err := f.store.Absences().Exists(ctx, "emp-1", yesterday)
	require.NoError(t, err)
	assert.False(t, absent)

	att, err := f.store.Attendances().GetByEmployeeAndDate(ctx, "emp-1", yesterday)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.True(t, att.CheckIn.Equal(time.Date(2025, 3, 4, 10, 45, 0, 0, f.loc)))
	assert.Equal(t, attendance.LocationModeOffice, att.LocationMode)
	assert.False(t, att.LocationVerified)
	assert.Nil(t, att.CheckOut)

	_, err = f.svc.Review(ctx, correction.ReviewCorrectionRequest{
		ID:         raised.ID,
		Approved:   true,
		ReviewerID: "mgr-1",
	})
	assert.ErrorIs(t, err, correction.ErrCorrectionAlreadyReviewed)
}

func TestReview_ApproveKeepsRealCheckIn(t *testing.T) {
	f := newCorrection(t)
	ctx := context.Background()

	realCheckIn := time.Date(2025, 3, 4, 9, 12, 0, 0, f.loc)
	_, _, err := f.store.Attendances().CreateIfAbsent(ctx, attendance.Attendance{
		EmployeeID:   "emp-1",
		Date:         yesterday,
		CheckIn:      realCheckIn,
		LocationMode: attendance.LocationModeRemote,
	})
	require.NoError(t, err)

	raised := f.raise(t, "checked out from home")
	_, err = f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: raised.ID, Approved: true, ReviewerID: "mgr-1"})
	require.NoError(t, err)

	att, err := f.store.Attendances().GetByEmployeeAndDate(ctx, "emp-1", yesterday)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.True(t, att.CheckIn.Equal(realCheckIn))
	assert.Equal(t, attendance.LocationModeRemote, att.LocationMode)
}

func TestReview_RejectLeavesStoresAlone(t *testing.T) {
	f := newCorrection(t)
	ctx := context.Background()
	_, _, err := f.store.Absences().GetOrCreate(ctx, "emp-1", yesterday, attendance.AbsenceSourceEngine)
	require.NoError(t, err)

	raised := f.raise(t, "train delayed")
	reviewed, err := f.svc.Review(ctx, correction.ReviewCorrectionRequest{
		ID:         raised.ID,
		Approved:   false,
		ReviewerID: "mgr-1",
		Remark:     strPtr("no proof"),
	})
	require.NoError(t, err)
	assert.Equal(t, correction.StatusRejected, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerRemark)
	assert.Equal(t, "no proof", *reviewed.ReviewerRemark)

	absent, err := f.store.Absences().Exists(ctx, "emp-1", yesterday)
	require.NoError(t, err)
	assert.True(t, absent)
	att, err := f.store.Attendances().GetByEmployeeAndDate(ctx, "emp-1", yesterday)
	require.NoError(t, err)
	assert.Nil(t, att)

	// A fresh raise reopens the same row for review.
	again := f.raise(t, "train delayed, ticket attached")
	assert.Equal(t, raised.ID, again.ID)
	assert.Equal(t, correction.StatusPending, again.Status)
	assert.Nil(t, again.ReviewerID)
	assert.Nil(t, again.ReviewerRemark)
	assert.Equal(t, "train delayed, ticket attached", again.Reason)

	reviewed, err = f.svc.Review(ctx, correction.ReviewCorrectionRequest{ID: again.ID, Approved: true, ReviewerID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, correction.StatusApproved, reviewed.Status)
}

func TestRaise(t *testing.T) {
	t.Run("resubmitting while pending overwrites the reason", func(t *testing.T) {
		f := newCorrection(t)
		first := f.raise(t, "first")
		second := f.raise(t, "second")

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "second", second.Reason)

		pending, err := f.svc.ListPending(context.Background())
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "second", pending[0].Reason)
	})

	t.Run("after approval", func(t *testing.T) {
		f := newCorrection(t)
		raised := f.raise(t, "first")
		_, err := f.svc.Review(context.Background(), correction.ReviewCorrectionRequest{ID: raised.ID, Approved: true, ReviewerID: "mgr-1"})
		require.NoError(t, err)

		_, err = f.svc.Raise(context.Background(), correction.RaiseCorrectionRequest{EmployeeID: "emp-1", Date: "2025-03-04", Reason: "again"})
		assert.ErrorIs(t, err, correction.ErrCorrectionAlreadyApproved)

		// The approved request and its restored check-in are left as they were.
		got, err := f.svc.Get(context.Background(), raised.ID)
		require.NoError(t, err)
		assert.Equal(t, correction.StatusApproved, got.Status)
		assert.Equal(t, "first", got.Reason)
		att, err := f.store.Attendances().GetByEmployeeAndDate(context.Background(), "emp-1", yesterday)
		require.NoError(t, err)
		assert.NotNil(t, att)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newCorrection(t)
		_, err := f.svc.Raise(context.Background(), correction.RaiseCorrectionRequest{EmployeeID: "ghost", Date: "2025-03-04", Reason: "x"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			req   correction.RaiseCorrectionRequest
			field string
		}{
			{"missing date", correction.RaiseCorrectionRequest{EmployeeID: "emp-1", Reason: "x"}, "date"},
			{"malformed date", correction.RaiseCorrectionRequest{EmployeeID: "emp-1", Date: "04/03/2025", Reason: "x"}, "date"},
			{"future date", correction.RaiseCorrectionRequest{EmployeeID: "emp-1", Date: "2025-03-06", Reason: "x"}, "date"},
			{"missing reason", correction.RaiseCorrectionRequest{EmployeeID: "emp-1", Date: "2025-03-04"}, "reason"},
			{"missing employee", correction.RaiseCorrectionRequest{Date: "2025-03-04", Reason: "x"}, "employee_id"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newCorrection(t)
				_, err := f.svc.Raise(context.Background(), tt.req)

				var verrs validator.ValidationErrors
				require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
				assert.Equal(t, tt.field, verrs[0].Field)
			})
		}
	})

	t.Run("today is allowed", func(t *testing.T) {
		f := newCorrection(t)
		_, err := f.svc.Raise(context.Background(), correction.RaiseCorrectionRequest{EmployeeID: "emp-1", Date: "2025-03-05", Reason: "x"})
		assert.NoError(t, err)
	})
}

func TestReview_Guards(t *testing.T) {
	t.Run("self review", func(t *testing.T) {
		f := newCorrection(t)
		raised := f.raise(t, "x")
		_, err := f.svc.Review(context.Background(), correction.ReviewCorrectionRequest{ID: raised.ID, Approved: true, ReviewerID: "emp-1"})
		assert.ErrorIs(t, err, correction.ErrSelfReview)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newCorrection(t)
		_, err := f.svc.Review(context.Background(), correction.ReviewCorrectionRequest{ID: "nope", Approved: true, ReviewerID: "mgr-1"})
		assert.ErrorIs(t, err, correction.ErrCorrectionNotFound)
	})

	t.Run("remark too long", func(t *testing.T) {
		f := newCorrection(t)
		raised := f.raise(t, "x")
		_, err := f.svc.Review(context.Background(), correction.ReviewCorrectionRequest{
			ID: raised.ID, Approved: false, ReviewerID: "mgr-1", Remark: strPtr(strings.Repeat("x", 1001)),
		})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "remark", verrs[0].Field)

		got, err := f.svc.Get(context.Background(), raised.ID)
		require.NoError(t, err)
		assert.Equal(t, correction.StatusPending, got.Status)
	})
}

func TestReview_RejectWithoutRemark(t *testing.T) {
	for name, remark := range map[string]*string{"nil": nil, "blank": strPtr("  ")} {
		t.Run(name, func(t *testing.T) {
			f := newCorrection(t)
			raised := f.raise(t, "x")

			reviewed, err := f.svc.Review(context.Background(), correction.ReviewCorrectionRequest{
				ID: raised.ID, Approved: false, ReviewerID: "mgr-1", Remark: remark,
			})
			require.NoError(t, err)
			assert.Equal(t, correction.StatusRejected, reviewed.Status)
			assert.Nil(t, reviewed.ReviewerRemark)
		})
	}
}

func TestReview_ConcurrentReviewersOnlyOneWins(t *testing.T) {
	f := newCorrection(t)
	f.store.AddEmployee(employee.Employee{ID: "hr-1", EmploymentStatus: employee.EmploymentStatusActive})
	raised := f.raise(t, "x")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		conflict int
	)
	for _, reviewer := range []string{"mgr-1", "hr-1", "mgr-1", "hr-1"} {
		wg.Add(1)
		go func(reviewer string) {
			defer wg.Done()
			_, err := f.svc.Review(context.Background(), correction.ReviewCorrectionRequest{ID: raised.ID, Approved: true, ReviewerID: reviewer})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, correction.ErrCorrectionAlreadyReviewed):
				conflict++
			}
		}(reviewer)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 3, conflict)
}
