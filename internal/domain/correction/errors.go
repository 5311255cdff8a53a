package correction

import "errors"

var (
	ErrCorrectionNotFound        = errors.New("correction request not found")
	ErrCorrectionAlreadyReviewed = errors.New("correction request has already been reviewed")
	ErrCorrectionAlreadyApproved = errors.New("an approved correction already exists for this date")
	ErrSelfReview                = errors.New("you cannot review your own correction request")
)
