package geo

import "math"

const earthRadiusMeters = 6371000

// Fence is a circular geofence: a center point plus an allowed radius.
type Fence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Result is the outcome of a geofence check.
type Result struct {
	IsWithin       bool
	DistanceMeters float64
	AllowedRadius  float64
}

// HaversineDistance returns the great-circle distance between two coordinates
// in meters, using a spherical-earth approximation.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinFence reports whether the point (lat, lng) lies inside the fence.
// A distance exactly equal to the radius counts as within. NaN inputs are
// rejected with an infinite distance.
func WithinFence(lat, lng float64, fence Fence) Result {
	if math.IsNaN(lat) || math.IsNaN(lng) ||
		math.IsNaN(fence.Latitude) || math.IsNaN(fence.Longitude) || math.IsNaN(fence.RadiusMeters) {
		return Result{
			IsWithin:       false,
			DistanceMeters: math.Inf(1),
			AllowedRadius:  fence.RadiusMeters,
		}
	}

	distance := HaversineDistance(lat, lng, fence.Latitude, fence.Longitude)
	return Result{
		IsWithin:       distance <= fence.RadiusMeters,
		DistanceMeters: distance,
		AllowedRadius:  fence.RadiusMeters,
	}
}
