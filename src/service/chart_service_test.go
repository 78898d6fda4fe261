package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-chart/src/analysis"
	"jyotish-chart/src/ephemeris"
	"jyotish-chart/src/helpers"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/metrics"
	"jyotish-chart/src/models"
	"jyotish-chart/src/storage"
)

type failingArchive struct{}

func (failingArchive) Initialize() error                             { return nil }
func (failingArchive) SaveChart(models.MChartRecord) error           { return errors.New("disk full") }
func (failingArchive) GetChart(string) (*models.MChartRecord, error) { return nil, nil }
func (failingArchive) ListCharts(int) ([]models.MChartSummary, error) {
	return nil, nil
}
func (failingArchive) Close() error { return nil }

func newService(t *testing.T, withArchive bool) *ChartService {
	log := logger.NewNop()
	eph := ephemeris.NewAnalyticEphemeris(ephemeris.DefaultConfig())
	facade := analysis.NewChartFacade(models.DefaultChartConfig(), eph, "lahiri", log)

	var svc *ChartService
	if withArchive {
		cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "sqlite", DBPath: ":memory:"}}
		archive, err := storage.NewArchive(cfg, log)
		require.NoError(t, err)
		t.Cleanup(func() { _ = archive.Close() })
		svc = NewChartService("jyotish-chart", facade, archive, metrics.NewCollector("jyotish"), log)
	} else {
		svc = NewChartService("jyotish-chart", facade, nil, metrics.NewCollector("jyotish"), log)
	}
	return svc
}

func birth() models.MBirthData {
	b := models.NewBirthData(1990, 5, 15, 10, 0, 28.6139, 77.209, 5.5)
	transit := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	b.TransitDate = &transit
	return b
}

// -----------------------------------------------------------------------------

func TestCalculateArchivesAndNotifies(t *testing.T) {
	svc := newService(t, true)
	var notified []models.MChartSummary
	svc.OnComputed = func(s models.MChartSummary) { notified = append(notified, s) }

	chart, err := svc.Calculate(context.Background(), birth())
	require.NoError(t, err)

	require.Len(t, notified, 1)
	assert.Equal(t, chart.ID, notified[0].ID)
	assert.Equal(t, chart.Lagna.Sign, notified[0].LagnaSign)

	rec, err := svc.GetChart(chart.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, chart.Lagna.Sign, rec.Chart.Lagna.Sign)
	assert.Equal(t, 1990, *rec.Birth.Year)

	list, err := svc.ListCharts(10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.ChartsComputed.WithLabelValues(metrics.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.ChartsArchived.WithLabelValues(metrics.StatusOK)))
}

func TestCalculateInputErrorIsCounted(t *testing.T) {
	svc := newService(t, false)
	b := birth()
	b.Latitude = nil

	_, err := svc.Calculate(context.Background(), b)
	require.Error(t, err)
	assert.True(t, helpers.IsInputError(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.ChartsComputed.WithLabelValues(metrics.StatusInput)))
	assert.Equal(t, map[string]int{"input": 1}, svc.Status().Errors)
}

func TestArchiveFailureDoesNotFailCalculation(t *testing.T) {
	svc := newService(t, false)
	svc.Archive = failingArchive{}

	_, err := svc.Calculate(context.Background(), birth())
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.ChartsArchived.WithLabelValues(metrics.StatusInternal)))
	assert.Equal(t, 1, svc.Status().Errors["internal"])
}

func TestArchiveDisabled(t *testing.T) {
	svc := newService(t, false)
	_, err := svc.GetChart("x")
	assert.ErrorIs(t, err, ErrArchiveDisabled)
	_, err = svc.ListCharts(5)
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}

func TestStatus(t *testing.T) {
	svc := newService(t, true)
	st := svc.Status()
	assert.Equal(t, "jyotish-chart", st.Name)
	assert.Equal(t, "ok", st.Status)
	assert.Equal(t, ephemeris.ProviderAnalytic, st.Ephemeris)
	assert.Equal(t, "lahiri", st.SiderealMode)
	assert.Equal(t, models.NodesExcluded, st.NodePolicy)
	assert.Equal(t, "enabled", st.Archive)
	assert.GreaterOrEqual(t, st.UptimeSeconds, 0.0)
	assert.Greater(t, st.Resources.Goroutines, 0)
}
