package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/config"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/geo"
)

// Policy is the attendance configuration the engine evaluates presence events against.
// Times of day are interpreted in the engine clock's location.
type Policy struct {
	OpensAt             clock.TimeOfDay
	Deadline            clock.TimeOfDay
	Office              geo.Point
	RadiusMeters        float64
	CollaboratorTimeout time.Duration
	FaceMinConfidence   float64
}

func PolicyFromConfig(cfg config.AttendanceConfig, face config.FaceConfig) Policy {
	return Policy{
		OpensAt:             cfg.CheckInOpensAt,
		Deadline:            cfg.CheckInDeadline,
		Office:              geo.Point{Latitude: cfg.OfficeLatitude, Longitude: cfg.OfficeLongitude},
		RadiusMeters:        cfg.OfficeRadiusMeters,
		CollaboratorTimeout: cfg.CollaboratorTimeout,
		FaceMinConfidence:   face.MinConfidence,
	}
}
