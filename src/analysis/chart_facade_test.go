package analysis

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-chart/src/analysis/core"
	"jyotish-chart/src/ephemeris"
	"jyotish-chart/src/helpers"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
)

var ctx = context.Background()

// fakeEphemeris serves fixed positions. The Sun moves one degree a day from
// its base longitude so annual returns are solvable.
type fakeEphemeris struct {
	calls     atomic.Int32
	baseJD    float64
	lons      map[models.Body]float64
	speeds    map[models.Body]float64
	sunSpeed  float64 // reported solar speed; the true motion is 1°/day
	ascendant float64
	ayanamsa  float64
	failBody  *models.Body
}

func newFake() *fakeEphemeris {
	return &fakeEphemeris{
		baseJD: ephemeris.JulianDay(1990, 5, 15, 4.5),
		lons: map[models.Body]float64{
			models.Sun:     54,  // sidereal 30, Taurus
			models.Moon:    124, // sidereal 100, Cancer
			models.Mars:    304,
			models.Mercury: 84,
			models.Jupiter: 124,
			models.Venus:   24,
			models.Saturn:  294,
			models.Rahu:    330,
		},
		speeds: map[models.Body]float64{
			models.Moon:    13.2,
			models.Mars:    0.6,
			models.Mercury: -0.4,
			models.Jupiter: 0.2,
			models.Venus:   1.2,
			models.Saturn:  -0.05,
			models.Rahu:    -0.053,
		},
		sunSpeed:  1,
		ascendant: 24, // sidereal 0, Aries
		ayanamsa:  24,
	}
}

func (f *fakeEphemeris) Name() string { return "fake" }

func (f *fakeEphemeris) JulianDay(_ context.Context, year, month, day int, utcHour float64) (float64, error) {
	f.calls.Add(1)
	return ephemeris.JulianDay(year, month, day, utcHour), nil
}

func (f *fakeEphemeris) TropicalLongitudeAndSpeed(_ context.Context, jd float64, body models.Body) (float64, float64, error) {
	f.calls.Add(1)
	if f.failBody != nil && *f.failBody == body {
		return 0, 0, errors.New("no data")
	}
	if body == models.Sun {
		return core.Normalize(f.lons[models.Sun] + (jd - f.baseJD)), f.sunSpeed, nil
	}
	return f.lons[body], f.speeds[body], nil
}

func (f *fakeEphemeris) Ascendant(_ context.Context, _, _, _ float64) (float64, error) {
	f.calls.Add(1)
	return f.ascendant, nil
}

func (f *fakeEphemeris) Ayanamsa(_ context.Context, _ float64) (float64, error) {
	f.calls.Add(1)
	return f.ayanamsa, nil
}

// -----------------------------------------------------------------------------

func birthInDelhi() models.MBirthData {
	b := models.NewBirthData(1990, 5, 15, 10, 0, 28.6139, 77.2090, 5.5)
	transit := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	year := 2024
	b.TransitDate = &transit
	b.AnnualReturnYear = &year
	return b
}

func newFacade(eph *fakeEphemeris) *ChartFacade {
	return NewChartFacade(models.DefaultChartConfig(), eph, "lahiri", logger.NewNop())
}

func byBody(chart *models.MChart, b models.Body) models.MGrahaPosition {
	for _, p := range chart.Grahas {
		if p.Body == b {
			return p
		}
	}
	return models.MGrahaPosition{}
}

// -----------------------------------------------------------------------------

func TestCalculateRejectsInputBeforeEphemeris(t *testing.T) {
	eph := newFake()
	b := birthInDelhi()
	b.Hour = nil

	_, err := newFacade(eph).Calculate(ctx, b)
	require.Error(t, err)
	assert.True(t, helpers.IsInputError(err))
	assert.Equal(t, int32(0), eph.calls.Load())
}

func TestCalculateWithFakeEphemeris(t *testing.T) {
	eph := newFake()
	chart, err := newFacade(eph).Calculate(ctx, birthInDelhi())
	require.NoError(t, err)

	_, err = uuid.Parse(chart.ID)
	assert.NoError(t, err)
	assert.Equal(t, 24.0, chart.Ayanamsa)
	assert.Equal(t, models.Aries, chart.Lagna.Sign)
	assert.Equal(t, models.Mars, chart.Lagna.Lord)
	require.Len(t, chart.Grahas, models.NumBodies)

	sun := byBody(chart, models.Sun)
	assert.Equal(t, models.Taurus, sun.Sign)
	assert.Equal(t, 2, sun.House)
	assert.Len(t, sun.Vargas, 20)

	moon := byBody(chart, models.Moon)
	assert.Equal(t, models.Cancer, moon.Sign)
	assert.Equal(t, 4, moon.House)

	mercury := byBody(chart, models.Mercury)
	assert.True(t, mercury.Retrograde)

	rahu := byBody(chart, models.Rahu)
	ketu := byBody(chart, models.Ketu)
	assert.InDelta(t, 306.0, rahu.Longitude, 1e-9)
	assert.InDelta(t, 126.0, ketu.Longitude, 1e-9)
	assert.InDelta(t, 0.053, ketu.Speed, 1e-12)
	assert.Equal(t, 5, ketu.House)
	assert.False(t, rahu.Retrograde, "nodes never carry the retrograde flag")
	assert.Equal(t, models.NotApplicable, rahu.Dignity)

	assert.Equal(t, "1990-05-15", chart.Metadata.Date)
	assert.Equal(t, "10:00", chart.Metadata.Time)
	assert.Equal(t, "28.6139°N, 77.2090°E", chart.Metadata.Location)
	assert.Equal(t, 5.5, chart.Metadata.Timezone)
	assert.Equal(t, time.Date(1990, 5, 15, 4, 30, 0, 0, time.UTC), chart.Metadata.BirthInstant)

	assert.Equal(t, 203, chart.Ashtakavarga.Total)
	assert.Len(t, chart.Shadbala, 7)
	assert.Len(t, chart.Dasha.Mahadashas, 9)
	require.NotNil(t, chart.Dasha.Current)
	assert.Len(t, chart.Transits.Transits, models.NumBodies)
	assert.Len(t, chart.Arudha.Padas, 12)
	assert.GreaterOrEqual(t, chart.ArgalaTotal, len(chart.Argala))

	ar := chart.AnnualReturn
	assert.Equal(t, 2024, ar.Year)
	assert.InDelta(t, 0.0, core.AngularDiff(ar.SunLongitude, sun.Longitude), 0.01)
	assert.LessOrEqual(t, ar.Iterations, 3)
	assert.Equal(t, models.Aries, ar.AscendantSign)
	assert.Equal(t, models.Mars, ar.YearLord)
	assert.Equal(t, models.Aries.Add(34), ar.MunthaSign)
}

func TestCalculateAnnualReturnNonConvergence(t *testing.T) {
	eph := newFake()
	eph.sunSpeed = 1000 // each step covers a thousandth of the remaining arc

	_, err := newFacade(eph).Calculate(ctx, birthInDelhi())
	require.Error(t, err)
	assert.True(t, helpers.IsComputationError(err))
	assert.Contains(t, err.Error(), "no convergence")
}

func TestCalculateWrapsEphemerisFailure(t *testing.T) {
	eph := newFake()
	mars := models.Mars
	eph.failBody = &mars

	_, err := newFacade(eph).Calculate(ctx, birthInDelhi())
	require.Error(t, err)
	assert.True(t, helpers.IsComputationError(err))
	assert.Contains(t, err.Error(), "position of Mars")
}

// -----------------------------------------------------------------------------

func TestCalculateWithAnalyticEphemeris(t *testing.T) {
	eph := ephemeris.NewAnalyticEphemeris(ephemeris.DefaultConfig())
	facade := NewChartFacade(models.DefaultChartConfig(), eph, "lahiri", logger.NewNop())

	chart, err := facade.Calculate(ctx, birthInDelhi())
	require.NoError(t, err)

	assert.InDelta(t, 23.72, chart.Ayanamsa, 0.05)
	assert.Equal(t, models.Taurus, byBody(chart, models.Sun).Sign)

	rahu := byBody(chart, models.Rahu)
	ketu := byBody(chart, models.Ketu)
	assert.InDelta(t, 180.0, math.Abs(core.AngularDiff(rahu.Longitude, ketu.Longitude)), 1e-9)

	ar := chart.AnnualReturn
	assert.InDelta(t, 0.0, core.AngularDiff(ar.SunLongitude, byBody(chart, models.Sun).Longitude), 0.01)
	birthday := time.Date(2024, 5, 15, 4, 30, 0, 0, time.UTC)
	assert.WithinDuration(t, birthday, ar.Instant, 72*time.Hour)
	assert.Equal(t, core.LordOf(ar.AscendantSign), ar.YearLord)

	current := chart.Dasha.Current
	require.NotNil(t, current)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), current.AsOf)
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "33.8688°S, 151.2093°E", FormatLocation(-33.8688, 151.2093))
	assert.Equal(t, "40.7128°N, 74.0060°W", FormatLocation(40.7128, -74.006))
}

func TestJulianDayRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 14, 18, 45, 0, 0, time.UTC)
	assert.InDelta(t, ephemeris.JulianDay(2024, 5, 14, 18.75), julianDayOf(at), 1e-6)
	assert.Equal(t, at, timeOfJulianDay(julianDayOf(at)))
}
