package attendance

import "time"

// LocationMode tells how a presence event was captured.
type LocationMode string

const (
	LocationModeOffice LocationMode = "office"
	LocationModeRemote LocationMode = "remote"
)

func (m LocationMode) IsValid() bool {
	return m == LocationModeOffice || m == LocationModeRemote
}

// Attendance is the single presence record of one employee on one civil date.
// Open while CheckOut is nil, closed (and immutable) once both timestamps are set.
type Attendance struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	CheckIn          time.Time
	CheckOut         *time.Time
	Latitude         *float64
	Longitude        *float64
	LocationMode     LocationMode
	LocationVerified bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsClosed reports whether the record already has a check-out.
func (a Attendance) IsClosed() bool {
	return a.CheckOut != nil
}

// AbsenceSource records which process wrote an absence.
type AbsenceSource string

const (
	AbsenceSourceEngine AbsenceSource = "engine"
	AbsenceSourceSweep  AbsenceSource = "sweep"
)

// Absence marks an employee absent for one civil date.
type Absence struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Source     AbsenceSource
	CreatedAt  time.Time
}

// PresenceStatus is the outcome of a presence event. Policy rejections are statuses, not errors.
type PresenceStatus string

const (
	StatusCheckedIn           PresenceStatus = "checked_in"
	StatusCheckedOut          PresenceStatus = "checked_out"
	StatusAlreadyComplete     PresenceStatus = "already_complete"
	StatusTooEarly            PresenceStatus = "too_early"
	StatusTooLateMarkedAbsent PresenceStatus = "too_late_marked_absent"
	StatusTooFar              PresenceStatus = "too_far"
	StatusError               PresenceStatus = "error"
)
