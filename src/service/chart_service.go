package service

import (
	"context"
	"errors"
	"time"

	"jyotish-chart/src/analysis"
	"jyotish-chart/src/helpers"
	"jyotish-chart/src/interfaces"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/metrics"
	"jyotish-chart/src/models"
	"jyotish-chart/src/storage"
)

// ErrArchiveDisabled is returned by archive reads when storage is "none".
var ErrArchiveDisabled = errors.New("chart archive is disabled")

// ChartService is shared by every transport: it runs the facade, archives the
// result, and records metrics.
type ChartService struct {
	Name         string
	Facade       *analysis.ChartFacade
	Archive      interfaces.IChartArchive
	Metrics      *metrics.Collector
	ErrorHandler *helpers.ErrorHandler
	Logger       *logger.Logger

	// OnComputed is called after every successful calculation.
	OnComputed func(models.MChartSummary)

	startedAt time.Time
	now       func() time.Time
}

// -----------------------------------------------------------------------------

// NewChartService wires the service. archive may be nil.
func NewChartService(name string, facade *analysis.ChartFacade, archive interfaces.IChartArchive, m *metrics.Collector, log *logger.Logger) *ChartService {
	return &ChartService{
		Name:         name,
		Facade:       facade,
		Archive:      archive,
		Metrics:      m,
		ErrorHandler: helpers.NewErrorHandler(log),
		Logger:       log,
		startedAt:    time.Now(),
		now:          time.Now,
	}
}

// -----------------------------------------------------------------------------

// Calculate derives a chart and archives it. Archive failures are logged and
// counted but never fail the calculation.
func (s *ChartService) Calculate(ctx context.Context, birth models.MBirthData) (*models.MChart, error) {
	start := s.now()
	chart, err := s.Facade.Calculate(ctx, birth)
	elapsed := s.now().Sub(start)

	if err != nil {
		s.ErrorHandler.Handle(err, "chart calculation")
		s.Metrics.ObserveChart(statusOf(err), elapsed, 0)
		return nil, err
	}
	s.Metrics.ObserveChart(metrics.StatusOK, elapsed, chart.AnnualReturn.Iterations)
	s.Logger.Info("Computed chart %s (%s lagna) in %s", chart.ID, chart.Lagna.Rashi, elapsed)

	record := models.MChartRecord{
		ID:        chart.ID,
		CreatedAt: chart.Metadata.ComputedAt,
		Birth:     birth,
		Chart:     chart,
	}
	if s.Archive != nil {
		archiveErr := s.Archive.SaveChart(record)
		s.Metrics.ObserveArchive(archiveErr)
		if archiveErr != nil {
			s.ErrorHandler.Handle(archiveErr, "chart archive")
		}
	}

	if s.OnComputed != nil {
		s.OnComputed(storage.Summarize(record))
	}
	return chart, nil
}

// -----------------------------------------------------------------------------

// GetChart loads an archived record; (nil, nil) means not found.
func (s *ChartService) GetChart(id string) (*models.MChartRecord, error) {
	if s.Archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.Archive.GetChart(id)
}

// -----------------------------------------------------------------------------

func (s *ChartService) ListCharts(limit int) ([]models.MChartSummary, error) {
	if s.Archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.Archive.ListCharts(limit)
}

// -----------------------------------------------------------------------------

func (s *ChartService) Status() models.MServiceStatus {
	archive := "none"
	if s.Archive != nil {
		archive = "enabled"
	}
	return models.MServiceStatus{
		Name:          s.Name,
		Status:        "ok",
		Ephemeris:     s.Facade.Ephemeris.Name(),
		SiderealMode:  s.Facade.SiderealMode,
		NodePolicy:    s.Facade.Config.NodePolicy,
		Archive:       archive,
		UptimeSeconds: s.now().Sub(s.startedAt).Seconds(),
		Errors:        s.ErrorHandler.Counts(),
		Resources:     helpers.ResourceUsage(),
	}
}

// -----------------------------------------------------------------------------

func statusOf(err error) string {
	switch helpers.Category(err) {
	case "input":
		return metrics.StatusInput
	case "computation":
		return metrics.StatusComputation
	default:
		return metrics.StatusInternal
	}
}
