package ephemeris

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-chart/src/analysis/core"
	"jyotish-chart/src/helpers"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
	"jyotish-chart/src/network"
)

var ctx = context.Background()

func TestJulianDay(t *testing.T) {
	assert.InDelta(t, 2451545.0, JulianDay(2000, 1, 1, 12), 1e-9)
	assert.InDelta(t, 2451179.5, JulianDay(1999, 1, 1, 0), 1e-9)
	assert.InDelta(t, 2447187.5, JulianDay(1988, 1, 27, 0), 1e-9)
	assert.InDelta(t, 2436116.31, JulianDay(1957, 10, 4, 0.81*24), 1e-6)
	// hours past midnight roll into the next day
	assert.InDelta(t, JulianDay(2000, 1, 2, 1), JulianDay(2000, 1, 1, 25), 1e-9)
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderAnalytic, cfg.Provider())
	assert.Equal(t, Lahiri, cfg.SiderealMode())
	assert.Equal(t, NodeMean, cfg.NodeType())
	assert.Equal(t, 10*time.Second, cfg.Timeout())

	_, err := NewConfig(models.MEphemerisConfig{Provider: "remote"})
	assert.Error(t, err)

	_, err = NewConfig(models.MEphemerisConfig{SiderealMode: "fagan"})
	assert.Error(t, err)

	_, err = NewConfig(models.MEphemerisConfig{NodeType: "true"})
	assert.Error(t, err)

	cfg, err = NewConfig(models.MEphemerisConfig{Provider: "Remote", RemoteURL: "http://eph/", SiderealMode: "RAMAN", Timeout: 3, MaxRetries: 2})
	require.NoError(t, err)
	assert.Equal(t, "http://eph", cfg.RemoteURL())
	assert.Equal(t, Raman, cfg.SiderealMode())
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, 2, cfg.MaxRetries())
}

func TestSunAtJ2000(t *testing.T) {
	eph := NewAnalyticEphemeris(DefaultConfig())
	lon, speed, err := eph.TropicalLongitudeAndSpeed(ctx, j2000, models.Sun)
	require.NoError(t, err)
	assert.InDelta(t, 280.37, lon, 0.1)
	assert.InDelta(t, 1.019, speed, 0.01)
}

func TestBodySpeeds(t *testing.T) {
	eph := NewAnalyticEphemeris(DefaultConfig())
	jd := JulianDay(1990, 5, 15, 4.5)

	_, moon, err := eph.TropicalLongitudeAndSpeed(ctx, jd, models.Moon)
	require.NoError(t, err)
	assert.Greater(t, moon, 11.0)
	assert.Less(t, moon, 15.5)

	_, node, err := eph.TropicalLongitudeAndSpeed(ctx, jd, models.Rahu)
	require.NoError(t, err)
	assert.InDelta(t, -0.053, node, 0.001)

	_, _, err = eph.TropicalLongitudeAndSpeed(ctx, jd, models.Ketu)
	assert.True(t, helpers.IsComputationError(err))
}

func TestInnerPlanetsStayNearTheSun(t *testing.T) {
	eph := NewAnalyticEphemeris(DefaultConfig())
	for jd := JulianDay(1950, 1, 1, 0); jd < JulianDay(2030, 1, 1, 0); jd += 97 {
		sun, _, err := eph.TropicalLongitudeAndSpeed(ctx, jd, models.Sun)
		require.NoError(t, err)
		mercury, _, err := eph.TropicalLongitudeAndSpeed(ctx, jd, models.Mercury)
		require.NoError(t, err)
		venus, _, err := eph.TropicalLongitudeAndSpeed(ctx, jd, models.Venus)
		require.NoError(t, err)

		assert.Less(t, math.Abs(core.AngularDiff(sun, mercury)), 29.0)
		assert.Less(t, math.Abs(core.AngularDiff(sun, venus)), 48.5)
	}
}

func TestMarsRetrogradeAtOpposition(t *testing.T) {
	eph := NewAnalyticEphemeris(DefaultConfig())
	_, speed, err := eph.TropicalLongitudeAndSpeed(ctx, JulianDay(2003, 8, 28, 0), models.Mars)
	require.NoError(t, err)
	assert.Less(t, speed, 0.0)

	_, speed, err = eph.TropicalLongitudeAndSpeed(ctx, JulianDay(2003, 1, 1, 0), models.Mars)
	require.NoError(t, err)
	assert.Greater(t, speed, 0.0)
}

func TestAscendant(t *testing.T) {
	eph := NewAnalyticEphemeris(DefaultConfig())
	jd := JulianDay(2010, 3, 21, 6)

	asc, err := eph.Ascendant(ctx, jd, 0, -gmst(jd))
	require.NoError(t, err)
	assert.InDelta(t, 90.0, asc, 1e-6, "MC at 0° Aries puts 0° Cancer rising on the equator")

	asc, err = eph.Ascendant(ctx, jd, 0, 90-gmst(jd))
	require.NoError(t, err)
	assert.InDelta(t, 180.0, asc, 1e-6)

	first, err := eph.Ascendant(ctx, jd, 28.6, 77.2)
	require.NoError(t, err)
	again, err := eph.Ascendant(ctx, jd+0.99726957, 28.6, 77.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, core.AngularDiff(first, again), 0.05, "one sidereal day later")

	_, err = eph.Ascendant(ctx, jd, 90, 0)
	assert.True(t, helpers.IsComputationError(err))
}

func TestAyanamsaModes(t *testing.T) {
	lahiri, err := NewAnalyticEphemeris(DefaultConfig()).Ayanamsa(ctx, j2000)
	require.NoError(t, err)
	assert.InDelta(t, 23.85306, lahiri, 1e-9)

	cfg, err := NewConfig(models.MEphemerisConfig{SiderealMode: "raman"})
	require.NoError(t, err)
	raman, err := NewAnalyticEphemeris(cfg).Ayanamsa(ctx, j2000)
	require.NoError(t, err)
	assert.InDelta(t, lahiri+ramanOffset, raman, 1e-9)

	// fifty Julian years later, still inside the supported range
	later, err := NewAnalyticEphemeris(DefaultConfig()).Ayanamsa(ctx, j2000+18262.5)
	require.NoError(t, err)
	assert.InDelta(t, lahiri+50.2875*50/3600, later, 1e-6)

	_, err = NewAnalyticEphemeris(DefaultConfig()).Ayanamsa(ctx, j2000+36525)
	assert.True(t, helpers.IsComputationError(err), "2100 is outside the analytic range")
}

func TestOutOfRangeIsComputationError(t *testing.T) {
	eph := NewAnalyticEphemeris(DefaultConfig())
	jd := JulianDay(1700, 1, 1, 0)

	_, _, err := eph.TropicalLongitudeAndSpeed(ctx, jd, models.Sun)
	assert.True(t, helpers.IsComputationError(err))
	_, err = eph.Ascendant(ctx, jd, 10, 10)
	assert.True(t, helpers.IsComputationError(err))
	_, err = eph.Ayanamsa(ctx, jd)
	assert.True(t, helpers.IsComputationError(err))
}

// -----------------------------------------------------------------------------

func newRemote(t *testing.T, handler http.HandlerFunc) *RemoteEphemeris {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg, err := NewConfig(models.MEphemerisConfig{Provider: "remote", RemoteURL: srv.URL, MaxRetries: 1})
	require.NoError(t, err)
	return NewRemoteEphemeris(cfg, network.NewNetworkManager(time.Second, 1, logger.NewNop()))
}

func TestRemoteEphemeris(t *testing.T) {
	eph := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/position":
			assert.Equal(t, "Mars", q.Get("body"))
			_ = json.NewEncoder(w).Encode(map[string]float64{"longitude": 123.5, "speed": -0.2})
		case "/ascendant":
			assert.Equal(t, "28.6", q.Get("lat"))
			_ = json.NewEncoder(w).Encode(map[string]float64{"ascendant": 15.25})
		case "/ayanamsa":
			assert.Equal(t, "lahiri", q.Get("mode"))
			_ = json.NewEncoder(w).Encode(map[string]float64{"ayanamsa": 24.1})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	lon, speed, err := eph.TropicalLongitudeAndSpeed(ctx, 2451545, models.Mars)
	require.NoError(t, err)
	assert.Equal(t, 123.5, lon)
	assert.Equal(t, -0.2, speed)

	asc, err := eph.Ascendant(ctx, 2451545, 28.6, 77.2)
	require.NoError(t, err)
	assert.Equal(t, 15.25, asc)

	ay, err := eph.Ayanamsa(ctx, 2451545)
	require.NoError(t, err)
	assert.Equal(t, 24.1, ay)

	jd, err := eph.JulianDay(ctx, 2000, 1, 1, 12)
	require.NoError(t, err)
	assert.InDelta(t, 2451545.0, jd, 1e-9)
}

func TestRemoteEphemerisSendsDataPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/opt/ephe", r.URL.Query().Get("ephe_path"))
		_ = json.NewEncoder(w).Encode(map[string]float64{"ayanamsa": 24.1})
	}))
	t.Cleanup(srv.Close)

	cfg, err := NewConfig(models.MEphemerisConfig{Provider: "remote", RemoteURL: srv.URL, DataPath: "/opt/ephe"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/ephe", cfg.DataPath())

	eph := NewProvider(cfg, logger.NewNop())
	ay, err := eph.Ayanamsa(ctx, 2451545)
	require.NoError(t, err)
	assert.Equal(t, 24.1, ay)
}

func TestRemoteEphemerisFailures(t *testing.T) {
	eph := newRemote(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/position" {
			_, _ = w.Write([]byte(`{"speed": 1}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := eph.TropicalLongitudeAndSpeed(ctx, 2451545, models.Sun)
	assert.True(t, helpers.IsComputationError(err))

	_, err = eph.Ascendant(ctx, 2451545, 10, 10)
	assert.True(t, helpers.IsComputationError(err))
}
