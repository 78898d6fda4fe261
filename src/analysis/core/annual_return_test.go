package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-chart/src/helpers"
	m "jyotish-chart/src/models"
)

func linearSun(jd float64) (float64, float64, error) {
	return Normalize(0.9856 * (jd - 2451545)), 0.9856, nil
}

func TestSolveSolarReturnConverges(t *testing.T) {
	res, err := SolveSolarReturn(2451545, 50, 0.01, 50, linearSun)
	require.NoError(t, err)
	assert.Less(t, math.Abs(AngularDiff(res.SunLongitude, 50)), 0.01)
	assert.LessOrEqual(t, res.Iterations, 3)
	assert.InDelta(t, 2451545+50/0.9856, res.JulianDay, 0.02)
}

func TestSolveSolarReturnWrapsAcrossZero(t *testing.T) {
	res, err := SolveSolarReturn(2451545, 355, 0.01, 50, linearSun)
	require.NoError(t, err)
	assert.Less(t, res.JulianDay, 2451545.0, "solves backwards across 0°")
}

func TestSolveSolarReturnReportsNonConvergence(t *testing.T) {
	stuck := func(float64) (float64, float64, error) { return 10, 0.9856, nil }
	_, err := SolveSolarReturn(2451545, 50, 0.01, 5, stuck)
	require.Error(t, err)
	assert.True(t, helpers.IsComputationError(err))
}

func TestSolveSolarReturnWrapsProviderError(t *testing.T) {
	failing := func(float64) (float64, float64, error) { return 0, 0, errors.New("out of range") }
	_, err := SolveSolarReturn(2451545, 50, 0.01, 5, failing)
	assert.True(t, helpers.IsComputationError(err))
	assert.Contains(t, err.Error(), "out of range")
}

func TestMuntha(t *testing.T) {
	assert.Equal(t, m.Taurus, Muntha(m.Aries, 1))
	assert.Equal(t, m.Aries, Muntha(m.Aries, 12))
	assert.Equal(t, m.Leo, Muntha(m.Aries, 28))
}
