package correction

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/validator"
)

type RaiseCorrectionRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`

	date time.Time
}

// Validate checks the request against today, the current civil date.
func (r *RaiseCorrectionRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, err := clock.ParseDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else if d.After(today) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date cannot be in the future",
		})
	} else {
		r.date = d
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if validator.ExceedsLength(r.Reason, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *RaiseCorrectionRequest) ParsedDate() time.Time {
	return r.date
}

type ReviewCorrectionRequest struct {
	ID         string  `json:"-"`
	Approved   bool    `json:"-"`
	ReviewerID string  `json:"-"`
	Remark     *string `json:"remark"`
}

func (r *ReviewCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}

	// The remark is optional for either decision; a blank one is stored as none.
	if r.Remark != nil && validator.IsEmpty(*r.Remark) {
		r.Remark = nil
	}
	if r.Remark != nil && validator.ExceedsLength(*r.Remark, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "remark",
			Message: "remark must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CorrectionResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	Date           string     `json:"date"`
	Reason         string     `json:"reason"`
	Status         Status     `json:"status"`
	ReviewerID     *string    `json:"reviewer_id,omitempty"`
	ReviewerRemark *string    `json:"reviewer_remark,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewCorrectionResponse(r Request) CorrectionResponse {
	return CorrectionResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Date:           clock.FormatDate(r.Date),
		Reason:         r.Reason,
		Status:         r.Status,
		ReviewerID:     r.ReviewerID,
		ReviewerRemark: r.ReviewerRemark,
		ReviewedAt:     r.ReviewedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
