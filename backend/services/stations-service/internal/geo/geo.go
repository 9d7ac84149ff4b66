package geo

import "math"

const (
	// MilesPerDegreeLat is the approximate length of one degree of latitude.
	MilesPerDegreeLat = 69.0

	earthRadiusMiles = 3958.8
)

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DestinationPoint offsets origin by a bearing (radians) and a distance in
// miles using a flat-earth approximation: miles convert to degrees of
// latitude via a 69 mi/degree constant and longitude is scaled by
// cos(latitude) for meridian convergence. Good enough for metro-area radii
// (<= 50 miles); the error grows at high latitudes and long distances, and
// the cos(latitude) divisor degenerates at the poles, where an origin at
// lat = +-90 yields unbounded longitude offsets.
func DestinationPoint(origin Point, bearingRad, distanceMiles float64) Point {
	lat := origin.Latitude + (distanceMiles/MilesPerDegreeLat)*math.Cos(bearingRad)
	lng := origin.Longitude + (distanceMiles/MilesPerDegreeLat)*math.Sin(bearingRad)/math.Cos(origin.Latitude*math.Pi/180)
	return Point{Latitude: lat, Longitude: lng}
}

// DistanceMiles returns the great-circle distance between two points using
// the haversine formula.
func DistanceMiles(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
