package pickup

import (
	"testing"

	"github.com/ecovolt/ewaste-backend/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_ExactCoordinates(t *testing.T) {
	jobs := []Location{
		{ID: "a", Coordinates: geo.Coordinates{Lat: 28.6139, Lng: 77.2090}},
		{ID: "b", Coordinates: geo.Coordinates{Lat: 28.7041, Lng: 77.1025}},
	}

	matched, ok := Match(geo.Coordinates{Lat: 28.7041, Lng: 77.1025}, jobs)

	require.True(t, ok)
	assert.Equal(t, "b", matched.ID)
}

func TestMatch_OffsetBeyondEpsilonMissesEverything(t *testing.T) {
	jobs := []Location{
		{ID: "a", Coordinates: geo.Coordinates{Lat: 28.6139, Lng: 77.2090}},
	}

	_, ok := Match(geo.Coordinates{Lat: 28.6139 + 0.0002, Lng: 77.2090}, jobs)

	assert.False(t, ok)
}

func TestMatch_WithinEpsilon(t *testing.T) {
	jobs := []Location{
		{ID: "a", Coordinates: geo.Coordinates{Lat: 28.6139, Lng: 77.2090}},
	}

	_, ok := Match(geo.Coordinates{Lat: 28.6139 + 0.00005, Lng: 77.2090 - 0.00005}, jobs)

	assert.True(t, ok)
}

func TestMatch_FirstOfClusteredPointsWins(t *testing.T) {
	jobs := []Location{
		{ID: "first", Coordinates: geo.Coordinates{Lat: 28.61390, Lng: 77.20900}},
		{ID: "second", Coordinates: geo.Coordinates{Lat: 28.61392, Lng: 77.20901}},
	}

	matched, ok := Match(geo.Coordinates{Lat: 28.61391, Lng: 77.20900}, jobs)

	require.True(t, ok)
	assert.Equal(t, "first", matched.ID)
}

func TestMatch_EmptyList(t *testing.T) {
	_, ok := Match(geo.Coordinates{Lat: 0, Lng: 0}, nil)
	assert.False(t, ok)
}
