// Package app wires configuration into stores and services for the binaries under cmd/.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance/internal/config"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	domainNotification "github.com/cmlabs-hris/hris-attendance/internal/domain/notification"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/email"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/identity"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/kafka"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/lock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/redis"
	"github.com/cmlabs-hris/hris-attendance/internal/repository/memory"
	"github.com/cmlabs-hris/hris-attendance/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/hris-attendance/internal/service/calendar"
	correctionService "github.com/cmlabs-hris/hris-attendance/internal/service/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/service/notification"
	"github.com/cmlabs-hris/hris-attendance/internal/service/sweep"
	"github.com/prometheus/client_golang/prometheus"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Stores is the set of repositories backing the engine.
type Stores struct {
	Transactor  database.Transactor
	Days        attendance.DayGuard
	Attendances attendance.AttendanceRepository
	Absences    attendance.AbsenceRepository
	Holidays    calendar.HolidayRepository
	Corrections correction.Repository
	Employees   employee.Repository
}

// OpenStores connects the configured storage driver. The returned func releases its connections.
func OpenStores(ctx context.Context, cfg *config.Config) (Stores, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		slog.Warn("Using in-memory store, data is lost on exit", "roster_size", len(cfg.Storage.MemoryRoster))
		store := memory.NewStore(cfg.Storage.MemoryRoster...)
		return Stores{
			Transactor:  store,
			Days:        store,
			Attendances: store.Attendances(),
			Absences:    store.Absences(),
			Holidays:    store.Holidays(),
			Corrections: store.Corrections(),
			Employees:   store.Employees(),
		}, func() {}, nil

	case "postgres", "":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return Stores{}, nil, fmt.Errorf("connect to database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := postgresql.Migrate(ctx, db); err != nil {
				db.Close()
				return Stores{}, nil, err
			}
			slog.Info("Database schema applied")
		}
		tx := postgresql.NewTransactor(db)
		return Stores{
			Transactor:  tx,
			Days:        tx,
			Attendances: postgresql.NewAttendanceRepository(db),
			Absences:    postgresql.NewAbsenceRepository(db),
			Holidays:    postgresql.NewHolidayRepository(db),
			Corrections: postgresql.NewCorrectionRepository(db),
			Employees:   postgresql.NewEmployeeRepository(db),
		}, db.Close, nil

	default:
		return Stores{}, nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
}

// Services holds every engine service built from one configuration.
type Services struct {
	Clock      clock.Clock
	Calendar   calendar.CalendarService
	Attendance attendance.AttendanceService
	Sweep      attendance.SweepService
	Correction correction.CorrectionService
	Metrics    *metrics.Metrics

	closers []func(context.Context)
}

// NewServices builds the services. reg may be nil to skip metrics registration.
func NewServices(ctx context.Context, cfg *config.Config, stores Stores, reg prometheus.Registerer) (*Services, error) {
	s := &Services{
		Clock: clock.New(cfg.Attendance.Location),
	}
	if reg != nil {
		s.Metrics = metrics.New(reg)
	}

	s.Calendar = calendarService.NewCalendarService(stores.Holidays, cfg.Attendance.WeeklyRestDay, cfg.Attendance.HolidayCountry)

	policy := attendanceService.PolicyFromConfig(cfg.Attendance, cfg.Face)
	s.Attendance = attendanceService.NewAttendanceService(
		stores.Attendances,
		stores.Absences,
		stores.Days,
		stores.Employees,
		s.Calendar,
		geo.NewHaversineFence(),
		identity.NewHTTPMatcher(cfg.Face.MatcherURL, cfg.Attendance.CollaboratorTimeout),
		s.Clock,
		policy,
		s.Metrics,
	)

	locker, err := s.newLocker(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sink, err := s.newSink(cfg, stores)
	if err != nil {
		return nil, err
	}

	s.Sweep = sweep.NewSweepService(
		stores.Attendances,
		stores.Absences,
		stores.Days,
		stores.Employees,
		s.Calendar,
		s.Clock,
		cfg.Attendance.CheckInDeadline,
		locker,
		sink,
		s.Metrics,
	)

	s.Correction = correctionService.NewCorrectionService(
		stores.Transactor,
		stores.Days,
		stores.Corrections,
		stores.Attendances,
		stores.Absences,
		stores.Employees,
		s.Clock,
		cfg.Attendance.CheckInDeadline,
		s.Metrics,
	)

	return s, nil
}

func (s *Services) newLocker(ctx context.Context, cfg *config.Config) (lock.Locker, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		slog.Info("Redis not configured, absence sweep lock is process-local")
		return lock.NewLocalLocker(), nil
	}
	s.closers = append(s.closers, func(context.Context) { client.Close() })
	return lock.NewRedisLocker(client, "hris-attendance:lock:"), nil
}

func (s *Services) newSink(cfg *config.Config, stores Stores) (domainNotification.Sink, error) {
	sinks := []domainNotification.Sink{notification.NewLogSink()}

	publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.SweepTopic)
	if err != nil {
		return nil, err
	}
	if publisher != nil {
		sinks = append(sinks, notification.NewKafkaSink(publisher))
		s.closers = append(s.closers, publisher.Close)
		slog.Info("Publishing sweep summaries to Kafka", "topic", publisher.Topic())
	}

	if cfg.SMTP.Host != "" && len(cfg.Attendance.ReportRecipients) > 0 {
		mailer, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, notification.NewEmailSink(stores.Employees, mailer, cfg.Attendance.ReportRecipients))
	}

	return notification.NewMulti(sinks...), nil
}

// Close releases the clients opened by NewServices.
func (s *Services) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i](ctx)
	}
}
