package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
)

type AttendanceJobs struct {
	sweepService attendance.SweepService
	sweepAt      clock.TimeOfDay
	loc          *time.Location
}

func NewAttendanceJobs(sweepService attendance.SweepService, sweepAt clock.TimeOfDay, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		sweepService: sweepService,
		sweepAt:      sweepAt,
		loc:          loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "mark_absent_employees",
		Schedule: DailyAt(j.sweepAt, j.loc),
		Fn:       j.MarkAbsentEmployees,
	})
}

// MarkAbsentEmployees runs today's absence sweep.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	slog.Info("Cron: Starting mark absent employees job")

	summary, err := j.sweepService.RunAbsenceSweep(ctx, nil)
	if err != nil {
		if errors.Is(err, attendance.ErrSweepInProgress) {
			slog.Info("Cron: Absence sweep already running elsewhere, skipping")
			return nil
		}
		return fmt.Errorf("absence sweep: %w", err)
	}

	if summary.Skipped {
		slog.Info("Cron: Absence sweep skipped", "date", summary.Date, "reason", summary.Reason)
		return nil
	}

	slog.Info("Cron: Marked absent employees",
		"date", summary.Date,
		"newly_absent", summary.NewlyAbsent,
		"already_absent", summary.AlreadyAbsent,
		"present", summary.Present,
		"failed", summary.Failed,
		"total", summary.RosterSize,
	)
	return nil
}
