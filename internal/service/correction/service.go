package correction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cmlabs-hris/hris-attendance/internal/service/correction"

type CorrectionServiceImpl struct {
	db   database.Transactor
	days attendance.DayGuard
	correction.Repository
	attendance.AttendanceRepository
	attendance.AbsenceRepository
	employees employee.Repository
	clock     clock.Clock
	deadline  clock.TimeOfDay
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

func NewCorrectionService(
	db database.Transactor,
	days attendance.DayGuard,
	correctionRepository correction.Repository,
	attendanceRepository attendance.AttendanceRepository,
	absenceRepository attendance.AbsenceRepository,
	employeeRepository employee.Repository,
	clk clock.Clock,
	deadline clock.TimeOfDay,
	m *metrics.Metrics,
) correction.CorrectionService {
	return &CorrectionServiceImpl{
		db:                   db,
		days:                 days,
		Repository:           correctionRepository,
		AttendanceRepository: attendanceRepository,
		AbsenceRepository:    absenceRepository,
		employees:            employeeRepository,
		clock:                clk,
		deadline:             deadline,
		metrics:              m,
		tracer:               otel.Tracer(tracerName),
	}
}

// Raise implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Raise(ctx context.Context, req correction.RaiseCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(clock.DateOf(s.clock.Now())); err != nil {
		return correction.CorrectionResponse{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	if !emp.IsActive() {
		return correction.CorrectionResponse{}, employee.ErrEmployeeInactive
	}

	stored, err := s.Repository.Upsert(ctx, req.EmployeeID, req.ParsedDate(), req.Reason)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to raise correction: %w", err)
	}
	if stored.Status == correction.StatusApproved {
		// Approved is terminal, unlike rejected; see Repository.Upsert.
		return correction.CorrectionResponse{}, correction.ErrCorrectionAlreadyApproved
	}

	slog.Info("Correction raised", "correction_id", stored.ID, "employee_id", stored.EmployeeID, "date", clock.FormatDate(stored.Date))
	return correction.NewCorrectionResponse(stored), nil
}

// Review implements correction.CorrectionService. The status change and the
// attendance repair on approval commit together.
func (s *CorrectionServiceImpl) Review(ctx context.Context, req correction.ReviewCorrectionRequest) (resp correction.CorrectionResponse, err error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	decision := correction.StatusRejected
	if req.Approved {
		decision = correction.StatusApproved
	}

	ctx, span := s.tracer.Start(ctx, "correction.Review", trace.WithAttributes(
		attribute.String("correction.id", req.ID),
		attribute.String("correction.decision", string(decision)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reviewed correction.Request
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.Repository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !existing.IsPending() {
			return correction.ErrCorrectionAlreadyReviewed
		}
		if existing.EmployeeID == req.ReviewerID {
			return correction.ErrSelfReview
		}

		updated, ok, err := s.Repository.Review(ctx, existing.ID, decision, req.ReviewerID, req.Remark, s.clock.Now())
		if err != nil {
			return fmt.Errorf("failed to review correction: %w", err)
		}
		if !ok {
			return correction.ErrCorrectionAlreadyReviewed
		}

		if decision == correction.StatusApproved {
			if err := s.restorePresence(ctx, updated); err != nil {
				return err
			}
		}

		reviewed = updated
		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	s.metrics.IncrementCorrectionReview(string(decision))
	slog.Info("Correction reviewed",
		"correction_id", reviewed.ID,
		"employee_id", reviewed.EmployeeID,
		"date", clock.FormatDate(reviewed.Date),
		"status", reviewed.Status,
		"reviewer_id", req.ReviewerID,
	)

	return correction.NewCorrectionResponse(reviewed), nil
}

// restorePresence retracts the absence and makes sure a check-in exists for the day.
// A real check-in is never replaced by the synthetic deadline one.
func (s *CorrectionServiceImpl) restorePresence(ctx context.Context, req correction.Request) error {
	return s.days.WithinDay(ctx, req.EmployeeID, req.Date, func(ctx context.Context) error {
		if _, err := s.AbsenceRepository.Delete(ctx, req.EmployeeID, req.Date); err != nil {
			return fmt.Errorf("failed to delete absence: %w", err)
		}

		_, created, err := s.AttendanceRepository.CreateIfAbsent(ctx, attendance.Attendance{
			EmployeeID:       req.EmployeeID,
			Date:             req.Date,
			CheckIn:          s.deadline.On(req.Date, s.clock.Location()),
			LocationMode:     attendance.LocationModeOffice,
			LocationVerified: false,
		})
		if err != nil {
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		if !created {
			slog.Debug("Correction approved over existing attendance", "employee_id", req.EmployeeID, "date", clock.FormatDate(req.Date))
		}
		return nil
	})
}

// Get implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Get(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	req, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.NewCorrectionResponse(req), nil
}

// ListPending implements correction.CorrectionService.
func (s *CorrectionServiceImpl) ListPending(ctx context.Context) ([]correction.CorrectionResponse, error) {
	pending, err := s.Repository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending corrections: %w", err)
	}

	responses := make([]correction.CorrectionResponse, 0, len(pending))
	for _, p := range pending {
		responses = append(responses, correction.NewCorrectionResponse(p))
	}
	return responses, nil
}
