package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/notification"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/email"
)

// Multi fans a summary out to every sink. One failing sink does not stop the others.
type Multi []notification.Sink

func NewMulti(sinks ...notification.Sink) notification.Sink {
	var m Multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m Multi) NotifySweep(ctx context.Context, summary attendance.SweepSummary) error {
	var errs []error
	for _, s := range m {
		if err := s.NotifySweep(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ========================================
// Log
// ========================================

type logSink struct{}

func NewLogSink() notification.Sink {
	return logSink{}
}

func (logSink) NotifySweep(ctx context.Context, summary attendance.SweepSummary) error {
	slog.InfoContext(ctx, "Absence sweep summary",
		"date", summary.Date,
		"roster_size", summary.RosterSize,
		"newly_absent", summary.NewlyAbsent,
		"already_absent", summary.AlreadyAbsent,
		"present", summary.Present,
		"failed", summary.Failed,
		"interrupted", summary.Interrupted,
	)
	return nil
}

// ========================================
// Email
// ========================================

type emailSink struct {
	employees  employee.Repository
	mailer     email.EmailService
	recipients []string
}

// NewEmailSink mails the summary, with the names of the newly absent, to recipients.
// It returns nil when there is nobody to mail.
func NewEmailSink(employees employee.Repository, mailer email.EmailService, recipients []string) notification.Sink {
	if mailer == nil || len(recipients) == 0 {
		return nil
	}
	return &emailSink{employees: employees, mailer: mailer, recipients: recipients}
}

func (s *emailSink) NotifySweep(ctx context.Context, summary attendance.SweepSummary) error {
	data := email.AbsenceSummaryData{
		Date:          summary.Date,
		RosterSize:    summary.RosterSize,
		Present:       summary.Present,
		NewlyAbsent:   summary.NewlyAbsent,
		AlreadyAbsent: summary.AlreadyAbsent,
		Failed:        summary.Failed,
		Interrupted:   summary.Interrupted,
	}

	if len(summary.NewlyAbsentIDs) > 0 {
		employees, err := s.employees.ListByIDs(ctx, summary.NewlyAbsentIDs)
		if err != nil {
			return fmt.Errorf("failed to load absentees: %w", err)
		}
		for _, e := range employees {
			data.Absentees = append(data.Absentees, email.AbsentEmployee{
				ID:       e.ID,
				FullName: e.FullName,
				Email:    e.Email,
			})
		}
	}

	if err := s.mailer.SendAbsenceSummary(ctx, s.recipients, data); err != nil {
		return fmt.Errorf("failed to send absence summary: %w", err)
	}
	return nil
}

// ========================================
// Kafka
// ========================================

// Publisher is satisfied by *kafka.Publisher.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

type kafkaSink struct {
	publisher Publisher
}

// NewKafkaSink publishes each summary as JSON keyed by date. It returns nil for a nil publisher.
func NewKafkaSink(publisher Publisher) notification.Sink {
	if publisher == nil {
		return nil
	}
	return &kafkaSink{publisher: publisher}
}

func (s *kafkaSink) NotifySweep(ctx context.Context, summary attendance.SweepSummary) error {
	value, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode sweep summary: %w", err)
	}

	headers := map[string]string{
		"event_type": "attendance.absence_sweep.completed",
	}
	if summary.Interrupted {
		headers["event_type"] = "attendance.absence_sweep.interrupted"
	}

	if err := s.publisher.Publish(ctx, summary.Date, value, headers); err != nil {
		return fmt.Errorf("failed to publish sweep summary: %w", err)
	}
	return nil
}
