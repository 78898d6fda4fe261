package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveChart(t *testing.T) {
	c := NewCollector("jyotish")
	c.ObserveChart(StatusOK, 20*time.Millisecond, 3)
	c.ObserveChart(StatusOK, 10*time.Millisecond, 2)
	c.ObserveChart(StatusInput, time.Millisecond, 0)
	c.ObserveChart(StatusComputation, time.Millisecond, 50)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ChartsComputed.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ChartsComputed.WithLabelValues(StatusInput)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ChartsComputed.WithLabelValues(StatusComputation)))

	count, err := testutil.GatherAndCount(c.GetRegistry(), "jyotish_annual_return_iterations")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expected := `
# HELP jyotish_annual_return_iterations Iterations needed for the annual return to converge
# TYPE jyotish_annual_return_iterations histogram
jyotish_annual_return_iterations_bucket{le="1"} 0
jyotish_annual_return_iterations_bucket{le="2"} 1
jyotish_annual_return_iterations_bucket{le="3"} 2
jyotish_annual_return_iterations_bucket{le="4"} 2
jyotish_annual_return_iterations_bucket{le="5"} 2
jyotish_annual_return_iterations_bucket{le="8"} 2
jyotish_annual_return_iterations_bucket{le="13"} 2
jyotish_annual_return_iterations_bucket{le="21"} 2
jyotish_annual_return_iterations_bucket{le="34"} 2
jyotish_annual_return_iterations_bucket{le="50"} 2
jyotish_annual_return_iterations_bucket{le="+Inf"} 2
jyotish_annual_return_iterations_sum 5
jyotish_annual_return_iterations_count 2
`
	assert.NoError(t, testutil.GatherAndCompare(c.GetRegistry(), strings.NewReader(expected), "jyotish_annual_return_iterations"))
}

func TestObserveHTTPAndArchive(t *testing.T) {
	c := NewCollector("jyotish")
	c.ObserveHTTP("POST", "/api/calculate-chart", 200, time.Millisecond)
	c.ObserveHTTP("POST", "/api/calculate-chart", 400, time.Millisecond)
	c.ObserveHTTP("POST", "/api/calculate-chart", 200, time.Millisecond)
	c.ObserveArchive(nil)
	c.ObserveArchive(errors.New("disk full"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("POST", "/api/calculate-chart", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("POST", "/api/calculate-chart", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ChartsArchived.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ChartsArchived.WithLabelValues(StatusInternal)))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("jyotish")
	b := NewCollector("jyotish")
	a.WebsocketClients.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.WebsocketClients))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.WebsocketClients))
}

func TestHandlerServesRegistry(t *testing.T) {
	c := NewCollector("jyotish")
	c.ObserveChart(StatusOK, time.Millisecond, 1)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `jyotish_charts_computed_total{status="ok"} 1`)
}
