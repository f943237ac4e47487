package verifier

import "math"

const (
	earthRadiusKm = 6371.0
	degToRad      = math.Pi / 180.0
)

// HaversineKm returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	lat1R := lat1 * degToRad
	lat2R := lat2 * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1R)*math.Cos(lat2R)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// InitialBearing returns the initial compass bearing in degrees [0, 360)
// from the first point toward the second.
func InitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1R := lat1 * degToRad
	lat2R := lat2 * degToRad
	dLon := (lon2 - lon1) * degToRad
	y := math.Sin(dLon) * math.Cos(lat2R)
	x := math.Cos(lat1R)*math.Sin(lat2R) - math.Sin(lat1R)*math.Cos(lat2R)*math.Cos(dLon)
	bearing := math.Atan2(y, x) / degToRad
	return math.Mod(bearing+360, 360)
}

// compassPoints are the eight-wind compass labels, clockwise from north.
var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassPoint converts a bearing in degrees to an eight-wind compass label.
func CompassPoint(bearing float64) string {
	idx := int(math.Mod(bearing+22.5, 360) / 45)
	return compassPoints[idx]
}
