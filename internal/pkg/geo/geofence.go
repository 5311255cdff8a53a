package geo

import (
	"context"
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Validate checks the coordinate ranges.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", p.Longitude)
	}
	return nil
}

// Fence decides whether a point lies inside a circular zone around a reference point.
// Implementations may call out to a remote service, so callers bound them with a context deadline.
type Fence interface {
	WithinRadius(ctx context.Context, point Point, ref Point, radiusMeters float64) (within bool, distanceMeters float64, err error)
}

// HaversineFence computes great-circle distances locally.
type HaversineFence struct{}

// NewHaversineFence returns the default, in-process Fence.
func NewHaversineFence() *HaversineFence {
	return &HaversineFence{}
}

// WithinRadius implements Fence.
func (HaversineFence) WithinRadius(ctx context.Context, point Point, ref Point, radiusMeters float64) (bool, float64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	if err := point.Validate(); err != nil {
		return false, 0, err
	}
	distance := Distance(point, ref)
	return distance <= radiusMeters, distance, nil
}

// Distance returns the haversine distance between a and b in meters.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
