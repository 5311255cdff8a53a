package attendance

import "errors"

// Attendance domain errors
var (
	ErrCollaboratorUnavailable = errors.New("identity or location service is unavailable, please try again")
	ErrIdentityNotRecognized   = errors.New("face not recognized")
	ErrCheckOutBeforeCheckIn   = errors.New("check-out time cannot be earlier than check-in time")

	// Sweep errors
	ErrSweepInProgress = errors.New("an absence sweep for this date is already running")
	ErrFutureSweepDate = errors.New("cannot run an absence sweep for a future date")
)
