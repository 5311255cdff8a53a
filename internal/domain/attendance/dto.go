package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/validator"
)

// ========================================
// PRESENCE DTOs
// ========================================

type RecordPresenceRequest struct {
	EmployeeID string       `json:"employee_id"`
	ObservedAt time.Time    `json:"observed_at"`
	Latitude   *float64     `json:"latitude"`
	Longitude  *float64     `json:"longitude"`
	Mode       LocationMode `json:"mode"`
}

func (r *RecordPresenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.Mode.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: office, remote",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Mode == LocationModeOffice && (r.Latitude == nil || r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "office check-in requires latitude and longitude",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FacePresenceRequest struct {
	Image     []byte       `json:"-"`
	Filename  string       `json:"-"`
	Latitude  *float64     `json:"latitude"`
	Longitude *float64     `json:"longitude"`
	Mode      LocationMode `json:"mode"`
}

func (r *FacePresenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Image) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo is required",
		})
	} else if len(r.Image) > 10<<20 {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo size must not exceed 10MB",
		})
	}

	if r.Mode == "" {
		r.Mode = LocationModeOffice
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PresenceResult is returned for every presence event, including policy rejections.
type PresenceResult struct {
	Status         PresenceStatus      `json:"status"`
	Message        string              `json:"message"`
	EmployeeID     string              `json:"employee_id"`
	Date           string              `json:"date"`
	Attendance     *AttendanceResponse `json:"attendance,omitempty"`
	DistanceMeters *float64            `json:"distance_meters,omitempty"`
}

type AttendanceResponse struct {
	ID               string       `json:"id"`
	EmployeeID       string       `json:"employee_id"`
	Date             string       `json:"date"`
	CheckIn          time.Time    `json:"check_in"`
	CheckOut         *time.Time   `json:"check_out,omitempty"`
	Latitude         *float64     `json:"latitude,omitempty"`
	Longitude        *float64     `json:"longitude,omitempty"`
	LocationMode     LocationMode `json:"location_mode"`
	LocationVerified bool         `json:"location_verified"`
}

func NewAttendanceResponse(a Attendance) *AttendanceResponse {
	return &AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		Date:             clock.FormatDate(a.Date),
		CheckIn:          a.CheckIn,
		CheckOut:         a.CheckOut,
		Latitude:         a.Latitude,
		Longitude:        a.Longitude,
		LocationMode:     a.LocationMode,
		LocationVerified: a.LocationVerified,
	}
}

// TodayStatus summarizes an employee's day so a client can offer check-in or check-out.
type TodayStatus struct {
	EmployeeID    string              `json:"employee_id"`
	Date          string              `json:"date"`
	RestDay       bool                `json:"rest_day"`
	RestDayReason string              `json:"rest_day_reason,omitempty"`
	Absent        bool                `json:"absent"`
	Attendance    *AttendanceResponse `json:"attendance,omitempty"`
	NextAction    string              `json:"next_action"` // check_in | check_out | none
}

// ========================================
// SWEEP DTOs
// ========================================

type RunSweepRequest struct {
	Date *string `json:"date"`
}

// ParseDate returns nil when no date was supplied.
func (r *RunSweepRequest) ParseDate() (*time.Time, error) {
	if r.Date == nil || validator.IsEmpty(*r.Date) {
		return nil, nil
	}
	d, err := clock.ParseDate(*r.Date)
	if err != nil {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return &d, nil
}

type SweepSummary struct {
	Date           string    `json:"date"`
	Skipped        bool      `json:"skipped"`
	Reason         string    `json:"reason,omitempty"`
	RosterSize     int       `json:"roster_size"`
	NewlyAbsent    int       `json:"newly_absent"`
	AlreadyAbsent  int       `json:"already_absent"`
	Present        int       `json:"present"`
	Failed         int       `json:"failed"`
	NewlyAbsentIDs []string  `json:"newly_absent_ids"`
	Interrupted    bool      `json:"interrupted"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}
