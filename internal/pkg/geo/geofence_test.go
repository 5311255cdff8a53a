package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One degree of latitude is ~111.195 km on a 6371 km sphere.
const metersPerDegreeLat = 111194.93

func TestDistance(t *testing.T) {
	office := Point{Latitude: 12.9716, Longitude: 77.5946}

	assert.InDelta(t, 0, Distance(office, office), 1e-9)

	north := Point{Latitude: office.Latitude + 80/metersPerDegreeLat, Longitude: office.Longitude}
	assert.InDelta(t, 80, Distance(office, north), 0.5)

	// Symmetric.
	assert.InDelta(t, Distance(office, north), Distance(north, office), 1e-9)
}

func TestHaversineFence_WithinRadius(t *testing.T) {
	fence := NewHaversineFence()
	office := Point{Latitude: 12.9716, Longitude: 77.5946}
	ctx := context.Background()

	near := Point{Latitude: office.Latitude + 80/metersPerDegreeLat, Longitude: office.Longitude}
	within, distance, err := fence.WithinRadius(ctx, near, office, 100)
	require.NoError(t, err)
	assert.True(t, within)
	assert.InDelta(t, 80, distance, 0.5)

	far := Point{Latitude: office.Latitude + 150/metersPerDegreeLat, Longitude: office.Longitude}
	within, distance, err = fence.WithinRadius(ctx, far, office, 100)
	require.NoError(t, err)
	assert.False(t, within)
	assert.InDelta(t, 150, distance, 0.5)
}

func TestHaversineFence_RejectsInvalidPoint(t *testing.T) {
	_, _, err := NewHaversineFence().WithinRadius(context.Background(), Point{Latitude: 91}, Point{}, 100)
	assert.Error(t, err)
}

func TestHaversineFence_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewHaversineFence().WithinRadius(ctx, Point{}, Point{}, 100)
	assert.ErrorIs(t, err, context.Canceled)
}
