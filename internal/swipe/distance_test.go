package swipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// kmPerDegree is the arc length of one degree on the 6371 km sphere.
const kmPerDegree = earthRadiusKm * math.Pi / 180

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(51.5, -0.12, 51.5, -0.12), 1e-9)
	assert.InDelta(t, 100, HaversineKm(0, 0, 100/kmPerDegree, 0), 1e-6)
	// London to Paris
	assert.InDelta(t, 343.5, HaversineKm(51.5074, -0.1278, 48.8566, 2.3522), 1.0)
	// symmetric
	assert.InDelta(t,
		HaversineKm(10, 20, -30, 40),
		HaversineKm(-30, 40, 10, 20),
		1e-9)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 12.3, RoundKm(12.34))
	assert.Equal(t, 12.4, RoundKm(12.36))
	assert.Equal(t, 0.0, RoundKm(0.04))
}

func TestWithinRadius(t *testing.T) {
	assert.True(t, withinRadius(HaversineKm(0, 0, 100/kmPerDegree, 0), 100))
	assert.False(t, withinRadius(HaversineKm(0, 0, 100.1/kmPerDegree, 0), 100))
}
