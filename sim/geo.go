package sim

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// Coordinate is a (longitude, latitude) pair in degrees.
// Coordinates are opaque to the rest of the engine: they are only ever
// compared through Distance or for exact equality.
type Coordinate struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

// Distance returns the great-circle surface distance between a and b in
// meters, computed with the haversine formula.
func Distance(a, b Coordinate) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := lat2 - lat1
	dLon := degToRad(b.Lon) - degToRad(a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return c * EarthRadiusMeters
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// round2 rounds to two decimal places, the precision used for all reported
// distances.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
