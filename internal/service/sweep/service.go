package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/notification"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/lock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/cmlabs-hris/hris-attendance/internal/service/sweep"

	// DefaultLockTTL bounds how long a crashed run can block the next one.
	DefaultLockTTL = 10 * time.Minute

	notifyTimeout = 30 * time.Second
)

type outcome string

const (
	outcomeNewlyAbsent   outcome = "newly_absent"
	outcomeAlreadyAbsent outcome = "already_absent"
	outcomePresent       outcome = "present"
	outcomeFailed        outcome = "failed"
)

type SweepServiceImpl struct {
	attendance.AttendanceRepository
	attendance.AbsenceRepository
	employee.Repository
	days     attendance.DayGuard
	calendar calendar.Policy
	clock    clock.Clock
	deadline clock.TimeOfDay
	locker   lock.Locker
	lockTTL  time.Duration
	sink     notification.Sink
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

func NewSweepService(
	attendanceRepository attendance.AttendanceRepository,
	absenceRepository attendance.AbsenceRepository,
	days attendance.DayGuard,
	employeeRepository employee.Repository,
	calendarPolicy calendar.Policy,
	clk clock.Clock,
	deadline clock.TimeOfDay,
	locker lock.Locker,
	sink notification.Sink,
	m *metrics.Metrics,
) attendance.SweepService {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &SweepServiceImpl{
		AttendanceRepository: attendanceRepository,
		AbsenceRepository:    absenceRepository,
		Repository:           employeeRepository,
		days:                 days,
		calendar:             calendarPolicy,
		clock:                clk,
		deadline:             deadline,
		locker:               locker,
		lockTTL:              DefaultLockTTL,
		sink:                 sink,
		metrics:              m,
		tracer:               otel.Tracer(tracerName),
	}
}

// RunAbsenceSweep implements attendance.SweepService.
func (s *SweepServiceImpl) RunAbsenceSweep(ctx context.Context, date *time.Time) (summary attendance.SweepSummary, err error) {
	now := s.clock.Now()
	today := clock.DateOf(now)

	target := today
	if date != nil {
		target = clock.DateOf(*date)
	}
	if target.After(today) {
		return attendance.SweepSummary{}, attendance.ErrFutureSweepDate
	}

	ctx, span := s.tracer.Start(ctx, "sweep.RunAbsenceSweep", trace.WithAttributes(
		attribute.String("sweep.date", clock.FormatDate(target)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(
			attribute.Bool("sweep.skipped", summary.Skipped),
			attribute.Int("sweep.newly_absent", summary.NewlyAbsent),
			attribute.Int("sweep.failed", summary.Failed),
		)
		span.End()
	}()

	summary = attendance.SweepSummary{
		Date:           clock.FormatDate(target),
		NewlyAbsentIDs: []string{},
		StartedAt:      now,
	}

	day, err := s.calendar.Day(ctx, target)
	if err != nil {
		return attendance.SweepSummary{}, fmt.Errorf("failed to resolve calendar day: %w", err)
	}
	if day.IsRestDay() {
		return s.skip(summary, day.Reason()), nil
	}

	if target.Equal(today) && !now.After(s.deadline.On(now, s.clock.Location())) {
		return s.skip(summary, "before check-in deadline "+s.deadline.String()), nil
	}

	release, err := s.locker.Acquire(ctx, "absence-sweep:"+summary.Date, s.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			s.metrics.IncrementSweepRun("locked", 0)
			return attendance.SweepSummary{}, attendance.ErrSweepInProgress
		}
		return attendance.SweepSummary{}, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	defer func() {
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
			slog.Warn("Sweep: failed to release lock", "date", summary.Date, "error", relErr)
		}
	}()

	roster, err := s.Repository.ListActiveIDs(ctx)
	if err != nil {
		return attendance.SweepSummary{}, fmt.Errorf("failed to list roster: %w", err)
	}
	summary.RosterSize = len(roster)

	slog.Info("Sweep: Starting absence sweep", "date", summary.Date, "roster_size", summary.RosterSize)

	for _, employeeID := range roster {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}

		result, err := s.processEmployee(ctx, employeeID, target)
		switch result {
		case outcomeNewlyAbsent:
			summary.NewlyAbsent++
			summary.NewlyAbsentIDs = append(summary.NewlyAbsentIDs, employeeID)
		case outcomeAlreadyAbsent:
			summary.AlreadyAbsent++
		case outcomePresent:
			summary.Present++
		case outcomeFailed:
			summary.Failed++
			slog.Error("Sweep: failed to process employee", "date", summary.Date, "employee_id", employeeID, "error", err)
		}
	}

	summary.FinishedAt = s.clock.Now()
	s.record(summary)

	slog.Info("Sweep: Finished absence sweep",
		"date", summary.Date,
		"newly_absent", summary.NewlyAbsent,
		"already_absent", summary.AlreadyAbsent,
		"present", summary.Present,
		"failed", summary.Failed,
		"total", summary.RosterSize,
		"interrupted", summary.Interrupted,
	)

	s.notify(ctx, summary)

	if summary.Interrupted {
		return summary, ctx.Err()
	}
	return summary, nil
}

// processEmployee holds the day lock so a check-in that is still in flight either lands
// before the absence check or sees the absence.
func (s *SweepServiceImpl) processEmployee(ctx context.Context, employeeID string, date time.Time) (outcome, error) {
	result := outcomeFailed
	err := s.days.WithinDay(ctx, employeeID, date, func(ctx context.Context) error {
		present, err := s.AttendanceRepository.HasCheckedIn(ctx, employeeID, date)
		if err != nil {
			return err
		}
		if present {
			result = outcomePresent
			return nil
		}

		absent, err := s.AbsenceRepository.Exists(ctx, employeeID, date)
		if err != nil {
			return err
		}
		if absent {
			result = outcomeAlreadyAbsent
			return nil
		}

		_, created, err := s.AbsenceRepository.GetOrCreate(ctx, employeeID, date, attendance.AbsenceSourceSweep)
		if err != nil {
			return err
		}
		result = outcomeAlreadyAbsent
		if created {
			result = outcomeNewlyAbsent
		}
		return nil
	})
	if err != nil {
		return outcomeFailed, err
	}
	return result, nil
}

func (s *SweepServiceImpl) skip(summary attendance.SweepSummary, reason string) attendance.SweepSummary {
	summary.Skipped = true
	summary.Reason = reason
	summary.FinishedAt = s.clock.Now()
	s.metrics.IncrementSweepRun("skipped", 0)
	slog.Info("Sweep: Skipping absence sweep", "date", summary.Date, "reason", reason)
	return summary
}

func (s *SweepServiceImpl) record(summary attendance.SweepSummary) {
	s.metrics.AddSweepPersons(string(outcomeNewlyAbsent), summary.NewlyAbsent)
	s.metrics.AddSweepPersons(string(outcomeAlreadyAbsent), summary.AlreadyAbsent)
	s.metrics.AddSweepPersons(string(outcomePresent), summary.Present)
	s.metrics.AddSweepPersons(string(outcomeFailed), summary.Failed)

	result := "completed"
	if summary.Interrupted {
		result = "interrupted"
	}
	s.metrics.IncrementSweepRun(result, summary.FinishedAt.Sub(summary.StartedAt))
}

// notify hands the summary to the sink even when the run was interrupted.
func (s *SweepServiceImpl) notify(ctx context.Context, summary attendance.SweepSummary) {
	if s.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.sink.NotifySweep(ctx, summary); err != nil {
		slog.Error("Sweep: failed to notify", "date", summary.Date, "error", err)
	}
}
