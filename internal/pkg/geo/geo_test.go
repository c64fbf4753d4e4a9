package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_Symmetric(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"same point", 12.9716, 77.5946, 12.9716, 77.5946},
		{"across city", 12.9716, 77.5946, 13.0827, 80.2707},
		{"across equator", -1.2921, 36.8219, 1.3521, 103.8198},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			forward := HaversineDistance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			backward := HaversineDistance(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
			assert.InDelta(t, forward, backward, 1e-9)
		})
	}
}

func TestHaversineDistance_KnownDistance(t *testing.T) {
	// ~200m north of the reference point: 1 degree latitude ~ 111.19km,
	// so 200m ~ 0.0017986 degrees.
	lat, lon := 12.9716, 77.5946
	dist := HaversineDistance(lat, lon, lat+0.0017986, lon)
	assert.InDelta(t, 200, dist, 1.0)
}

func TestWithinFence_BoundaryIsWithin(t *testing.T) {
	fence := Fence{Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 0}
	res := WithinFence(12.9716, 77.5946, fence)
	assert.True(t, res.IsWithin)
	assert.Equal(t, float64(0), res.DistanceMeters)

	// Exactly at the radius counts as within.
	dist := HaversineDistance(12.9716, 77.5946, 12.9734, 77.5946)
	fence.RadiusMeters = dist
	res = WithinFence(12.9734, 77.5946, fence)
	assert.True(t, res.IsWithin)
}

func TestWithinFence_OutOfRange(t *testing.T) {
	fence := Fence{Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}
	// ~200m away
	res := WithinFence(12.9716+0.0017986, 77.5946, fence)
	assert.False(t, res.IsWithin)
	assert.InDelta(t, 200, res.DistanceMeters, 1.0)
	assert.Equal(t, float64(100), res.AllowedRadius)
}

func TestWithinFence_NaNInput(t *testing.T) {
	fence := Fence{Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}
	res := WithinFence(math.NaN(), 77.5946, fence)
	assert.False(t, res.IsWithin)
	assert.True(t, math.IsInf(res.DistanceMeters, 1))
}
