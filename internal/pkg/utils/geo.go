package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

const earthRadiusMeters = 6371000

// CalculateHaversineDistance returns the great-circle distance between two coordinates in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Distance is a measured distance rendered for API responses.
type Distance struct {
	Meters     int64           `json:"distance_m"`
	Kilometers decimal.Decimal `json:"distance_km"`
}

// NewDistance rounds meters to the nearest whole meter and kilometers to two places.
func NewDistance(meters float64) Distance {
	m := decimal.NewFromFloat(meters)
	return Distance{
		Meters:     m.Round(0).IntPart(),
		Kilometers: m.Div(decimal.NewFromInt(1000)).Round(2),
	}
}
