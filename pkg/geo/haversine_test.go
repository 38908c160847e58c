package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{12.9716, 77.5946},
		{-33.8688, 151.2093},
		{90, 0},
		{-90, 180},
	}
	for _, p := range points {
		assert.Zero(t, HaversineKm(p[0], p[1], p[0], p[1]))
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := [2]float64{12.9716, 77.5946}
	b := [2]float64{13.0827, 80.2707} // Bangalore -> Chennai
	assert.Equal(t,
		HaversineKm(a[0], a[1], b[0], b[1]),
		HaversineKm(b[0], b[1], a[0], a[1]))
}

func TestHaversineKm_KnownDistances(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km.
	assert.InDelta(t, 111.19, HaversineKm(0, 0, 0, 1), 0.05)

	// 0.01 deg of longitude at Bangalore's latitude is ~1.08 km.
	assert.InDelta(t, 1.08, HaversineKm(12.9716, 77.5946, 12.9716, 77.6046), 0.02)

	// Bangalore -> Chennai is ~290 km.
	assert.InDelta(t, 290, HaversineKm(12.9716, 77.5946, 13.0827, 80.2707), 5)
}

func TestHaversineMeters(t *testing.T) {
	km := HaversineKm(12.9716, 77.5946, 12.9716, 77.6046)
	assert.InDelta(t, km*1000, HaversineMeters(12.9716, 77.5946, 12.9716, 77.6046), 0.001)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(90, 180))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.False(t, ValidCoordinates(90.0001, 0))
	assert.False(t, ValidCoordinates(-90.0001, 0))
	assert.False(t, ValidCoordinates(0, 180.0001))
	assert.False(t, ValidCoordinates(0, -180.0001))
}
