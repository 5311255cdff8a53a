package attendance

import (
	"context"
	"time"
)

// AttendanceService turns presence events into check-ins, check-outs and absences.
type AttendanceService interface {
	RecordPresence(ctx context.Context, req RecordPresenceRequest) (PresenceResult, error)

	// RecordFacePresence resolves the employee through the identity matcher first.
	RecordFacePresence(ctx context.Context, req FacePresenceRequest) (PresenceResult, error)

	GetTodayStatus(ctx context.Context, employeeID string) (TodayStatus, error)
}

// SweepService marks every rostered employee without a check-in absent for a date.
type SweepService interface {
	// RunAbsenceSweep processes date, or today when date is nil.
	RunAbsenceSweep(ctx context.Context, date *time.Time) (SweepSummary, error)
}
