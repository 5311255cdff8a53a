package employee

import "time"

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

// Employee is the roster entry the attendance engine works against.
type Employee struct {
	ID               string
	Email            string
	FullName         string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	DeletedAt        *time.Time
}

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive && e.DeletedAt == nil
}
