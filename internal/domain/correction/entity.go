package correction

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request asks a reviewer to turn an absence (or a missing check-in) into attendance.
// There is at most one request per (employee, date).
type Request struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	Reason         string
	Status         Status
	ReviewerID     *string
	ReviewerRemark *string
	ReviewedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r Request) IsPending() bool {
	return r.Status == StatusPending
}
