package notification

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
)

// Sink receives the outcome of every absence sweep that was not skipped.
// Failures are logged by the caller and never undo the sweep.
type Sink interface {
	NotifySweep(ctx context.Context, summary attendance.SweepSummary) error
}
