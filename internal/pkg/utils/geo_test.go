package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// Same point
	assert.InDelta(t, 0, CalculateHaversineDistance(12.9716, 77.5946, 12.9716, 77.5946), 1e-9)

	// One degree of latitude is roughly 111.19 km
	d := CalculateHaversineDistance(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 5)

	// Symmetric
	ab := CalculateHaversineDistance(12.9716, 77.5946, 13.0827, 80.2707)
	ba := CalculateHaversineDistance(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, ab, ba, 1e-6)
}

func TestNewDistance(t *testing.T) {
	d := NewDistance(1234.56)
	assert.Equal(t, int64(1235), d.Meters)
	assert.Equal(t, "1.23", d.Kilometers.String())

	d = NewDistance(349.4)
	assert.Equal(t, int64(349), d.Meters)
	assert.Equal(t, "0.35", d.Kilometers.String())
}

func TestDistance_JSON(t *testing.T) {
	b, err := json.Marshal(NewDistance(2500))
	require.NoError(t, err)
	assert.JSONEq(t, `{"distance_m":2500,"distance_km":"2.5"}`, string(b))
}
