package branch

type Branch struct {
	ID           string
	Name         string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters *float64
}

// HasGeofence reports whether the branch carries a usable geofence.
func (b Branch) HasGeofence() bool {
	return b.Latitude != nil && b.Longitude != nil && b.RadiusMeters != nil && *b.RadiusMeters > 0
}
