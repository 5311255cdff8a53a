package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/identity"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cmlabs-hris/hris-attendance/internal/service/attendance"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	attendance.AbsenceRepository
	employee.Repository
	days     attendance.DayGuard
	calendar calendar.Policy
	fence    geo.Fence
	matcher  identity.Matcher
	clock    clock.Clock
	policy   Policy
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	absenceRepository attendance.AbsenceRepository,
	days attendance.DayGuard,
	employeeRepository employee.Repository,
	calendarPolicy calendar.Policy,
	fence geo.Fence,
	matcher identity.Matcher,
	clk clock.Clock,
	policy Policy,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		AbsenceRepository:    absenceRepository,
		Repository:           employeeRepository,
		days:                 days,
		calendar:             calendarPolicy,
		fence:                fence,
		matcher:              matcher,
		clock:                clk,
		policy:               policy,
		metrics:              m,
		tracer:               otel.Tracer(tracerName),
	}
}

// RecordPresence implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPresence(ctx context.Context, req attendance.RecordPresenceRequest) (result attendance.PresenceResult, err error) {
	if err := req.Validate(); err != nil {
		return attendance.PresenceResult{}, err
	}

	ctx, span := s.tracer.Start(ctx, "attendance.RecordPresence", trace.WithAttributes(
		attribute.String("employee.id", req.EmployeeID),
		attribute.String("attendance.mode", string(req.Mode)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		if result.Status != "" {
			span.SetAttributes(attribute.String("attendance.status", string(result.Status)))
			s.metrics.IncrementPresence(string(result.Status), string(req.Mode))
		}
		span.End()
	}()

	loc := s.clock.Location()
	observed := req.ObservedAt
	if observed.IsZero() {
		observed = s.clock.Now()
	}
	local := observed.In(loc)
	date := clock.DateOf(local)

	result = attendance.PresenceResult{
		EmployeeID: req.EmployeeID,
		Date:       clock.FormatDate(date),
	}

	// Step 1: rest days relax the deadline only.
	day, err := s.calendar.Day(ctx, date)
	if err != nil {
		return attendance.PresenceResult{}, fmt.Errorf("failed to resolve calendar day: %w", err)
	}

	// Step 2: early-window guard.
	if local.Before(s.policy.OpensAt.On(local, loc)) {
		result.Status = attendance.StatusTooEarly
		result.Message = fmt.Sprintf("Check-in opens at %s", s.policy.OpensAt)
		return result, nil
	}

	// Step 3: existing record.
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.PresenceResult{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if existing != nil {
		return s.closeExisting(ctx, result, *existing, local, req)
	}

	absent, err := s.AbsenceRepository.Exists(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.PresenceResult{}, fmt.Errorf("failed to check absence: %w", err)
	}
	if absent {
		result.Status = attendance.StatusTooLateMarkedAbsent
		result.Message = "You have already been marked absent today"
		return result, nil
	}

	if !day.IsRestDay() && local.After(s.policy.Deadline.On(local, loc)) {
		current, err := s.markLate(ctx, req.EmployeeID, date)
		if err != nil {
			return attendance.PresenceResult{}, err
		}
		if current != nil {
			return s.closeExisting(ctx, result, *current, local, req)
		}
		result.Status = attendance.StatusTooLateMarkedAbsent
		result.Message = fmt.Sprintf("Check-in deadline %s has passed, you have been marked absent", s.policy.Deadline)
		return result, nil
	}

	verified := false
	if req.Mode == attendance.LocationModeOffice {
		within, distance, err := s.checkFence(ctx, geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude})
		if err != nil {
			result.Status = attendance.StatusError
			result.Message = "Location service is unavailable, please try again"
			return result, err
		}
		result.DistanceMeters = &distance
		if !within {
			result.Status = attendance.StatusTooFar
			result.Message = fmt.Sprintf("You are %.0fm from the office, the allowed radius is %.0fm", distance, s.policy.RadiusMeters)
			return result, nil
		}
		verified = true
	}

	// The fence call may outlast the deadline, so the absence is checked again under the day lock.
	var (
		stored  attendance.Attendance
		created bool
	)
	err = s.days.WithinDay(ctx, req.EmployeeID, date, func(ctx context.Context) error {
		var err error
		if absent, err = s.AbsenceRepository.Exists(ctx, req.EmployeeID, date); err != nil || absent {
			return err
		}
		stored, created, err = s.AttendanceRepository.CreateIfAbsent(ctx, attendance.Attendance{
			EmployeeID:       req.EmployeeID,
			Date:             date,
			CheckIn:          local,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
			LocationMode:     req.Mode,
			LocationVerified: verified,
		})
		return err
	})
	if err != nil {
		return attendance.PresenceResult{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	if absent {
		result.DistanceMeters = nil
		result.Status = attendance.StatusTooLateMarkedAbsent
		result.Message = "You have already been marked absent today"
		return result, nil
	}
	if !created {
		// A concurrent event created the record first; this event becomes its check-out.
		result.DistanceMeters = nil
		return s.closeExisting(ctx, result, stored, local, req)
	}

	result.Status = attendance.StatusCheckedIn
	result.Message = "Check-in recorded"
	result.Attendance = attendance.NewAttendanceResponse(stored)
	return result, nil
}

// markLate records the engine's absence for a late first event. If a check-in for the day
// already exists it is returned instead and nothing is written.
func (s *AttendanceServiceImpl) markLate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	var current *attendance.Attendance
	err := s.days.WithinDay(ctx, employeeID, date, func(ctx context.Context) error {
		var err error
		if current, err = s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date); err != nil || current != nil {
			return err
		}
		_, _, err = s.AbsenceRepository.GetOrCreate(ctx, employeeID, date, attendance.AbsenceSourceEngine)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark absence: %w", err)
	}
	return current, nil
}

func (s *AttendanceServiceImpl) closeExisting(ctx context.Context, result attendance.PresenceResult, att attendance.Attendance, observed time.Time, req attendance.RecordPresenceRequest) (attendance.PresenceResult, error) {
	if att.IsClosed() {
		result.Status = attendance.StatusAlreadyComplete
		result.Message = "Attendance already completed today"
		result.Attendance = attendance.NewAttendanceResponse(att)
		return result, nil
	}

	if observed.Before(att.CheckIn) {
		return attendance.PresenceResult{}, attendance.ErrCheckOutBeforeCheckIn
	}

	stored, closed, err := s.AttendanceRepository.Close(ctx, att.ID, observed, req.Latitude, req.Longitude, req.Mode)
	if err != nil {
		if errors.Is(err, attendance.ErrCheckOutBeforeCheckIn) {
			return attendance.PresenceResult{}, err
		}
		return attendance.PresenceResult{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	result.Attendance = attendance.NewAttendanceResponse(stored)
	if !closed {
		result.Status = attendance.StatusAlreadyComplete
		result.Message = "Attendance already completed today"
		return result, nil
	}

	result.Status = attendance.StatusCheckedOut
	result.Message = "Check-out recorded"
	return result, nil
}

func (s *AttendanceServiceImpl) checkFence(ctx context.Context, point geo.Point) (bool, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.policy.CollaboratorTimeout)
	defer cancel()

	start := time.Now()
	within, distance, err := s.fence.WithinRadius(ctx, point, s.policy.Office, s.policy.RadiusMeters)
	s.metrics.ObserveCollaborator("geofence", err, time.Since(start))
	if err != nil {
		slog.Warn("Geofence check failed", "error", err)
		return false, 0, fmt.Errorf("%w: geofence: %v", attendance.ErrCollaboratorUnavailable, err)
	}
	return within, distance, nil
}

// RecordFacePresence implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordFacePresence(ctx context.Context, req attendance.FacePresenceRequest) (attendance.PresenceResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.PresenceResult{}, err
	}

	ctx, span := s.tracer.Start(ctx, "attendance.RecordFacePresence")
	defer span.End()

	matchCtx, cancel := context.WithTimeout(ctx, s.policy.CollaboratorTimeout)
	start := time.Now()
	match, err := s.matcher.Match(matchCtx, req.Image, req.Filename)
	cancel()
	s.metrics.ObserveCollaborator("identity", err, time.Since(start))
	if err != nil {
		slog.Warn("Identity matcher failed", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity matcher failed")
		return attendance.PresenceResult{
			Status:  attendance.StatusError,
			Message: "Face recognition service is unavailable, please try again",
		}, fmt.Errorf("%w: identity matcher: %v", attendance.ErrCollaboratorUnavailable, err)
	}

	if !match.Recognized || match.Confidence < s.policy.FaceMinConfidence {
		span.SetAttributes(attribute.Float64("identity.confidence", match.Confidence))
		return attendance.PresenceResult{}, attendance.ErrIdentityNotRecognized
	}

	emp, err := s.Repository.GetByID(ctx, match.PersonID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.PresenceResult{}, err
		}
		return attendance.PresenceResult{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return attendance.PresenceResult{}, employee.ErrEmployeeInactive
	}

	return s.RecordPresence(ctx, attendance.RecordPresenceRequest{
		EmployeeID: emp.ID,
		ObservedAt: s.clock.Now(),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Mode:       req.Mode,
	})
}

// GetTodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, employeeID string) (attendance.TodayStatus, error) {
	if employeeID == "" {
		return attendance.TodayStatus{}, employee.ErrEmployeeNotFound
	}

	date := clock.DateOf(s.clock.Now())
	status := attendance.TodayStatus{
		EmployeeID: employeeID,
		Date:       clock.FormatDate(date),
		NextAction: "none",
	}

	day, err := s.calendar.Day(ctx, date)
	if err != nil {
		return attendance.TodayStatus{}, fmt.Errorf("failed to resolve calendar day: %w", err)
	}
	status.RestDay = day.IsRestDay()
	status.RestDayReason = day.Reason()

	att, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.TodayStatus{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	absent, err := s.AbsenceRepository.Exists(ctx, employeeID, date)
	if err != nil {
		return attendance.TodayStatus{}, fmt.Errorf("failed to check absence: %w", err)
	}
	status.Absent = absent

	switch {
	case att != nil && !att.IsClosed():
		status.Attendance = attendance.NewAttendanceResponse(*att)
		status.NextAction = "check_out"
	case att != nil:
		status.Attendance = attendance.NewAttendanceResponse(*att)
	case !absent:
		status.NextAction = "check_in"
	}

	return status, nil
}
