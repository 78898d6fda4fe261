package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jyotish-chart/src/helpers"
	"jyotish-chart/src/interfaces"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"
)

// DefaultListLimit caps ListCharts when the caller passes no limit.
const DefaultListLimit = 50

const (
	initRetries = 3
	initBackoff = 500 * time.Millisecond
)

// chartRow is the flattened form shared by both backends.
type chartRow struct {
	id           string
	createdAt    int64
	birthInstant int64
	location     string
	lagnaSign    int
	moonSign     int
	birthJSON    string
	chartJSON    string
}

// -----------------------------------------------------------------------------

// NewArchive opens the backend selected by the storage section. It returns
// (nil, nil) when archiving is disabled.
func NewArchive(cfg *models.MConfig, log *logger.Logger) (interfaces.IChartArchive, error) {
	var archive interfaces.IChartArchive
	var err error

	switch cfg.Storage.DBType {
	case "", "none":
		return nil, nil
	case "postgres":
		archive, err = NewPostgresDB(cfg, log)
	case "sqlite":
		archive, err = NewSQLiteDB(cfg, log)
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.Storage.DBType)
	}
	if err != nil {
		return nil, err
	}

	// The server backend may still be starting next to us
	_, err = helpers.RetryWithBackoff(context.Background(), "archive initialize", initRetries, initBackoff, log, func() (struct{}, error) {
		return struct{}{}, archive.Initialize()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s archive: %w", cfg.Storage.DBType, err)
	}
	return archive, nil
}

// -----------------------------------------------------------------------------

func toRow(r models.MChartRecord) (chartRow, error) {
	if r.Chart == nil {
		return chartRow{}, fmt.Errorf("record %s has no chart", r.ID)
	}
	birth, err := json.Marshal(r.Birth)
	if err != nil {
		return chartRow{}, fmt.Errorf("failed to encode birth data: %w", err)
	}
	chart, err := json.Marshal(r.Chart)
	if err != nil {
		return chartRow{}, fmt.Errorf("failed to encode chart: %w", err)
	}

	s := Summarize(r)
	return chartRow{
		id:           r.ID,
		createdAt:    r.CreatedAt.UTC().UnixMilli(),
		birthInstant: s.BirthInstant.UnixMilli(),
		location:     s.Location,
		lagnaSign:    int(s.LagnaSign),
		moonSign:     int(s.MoonSign),
		birthJSON:    string(birth),
		chartJSON:    string(chart),
	}, nil
}

// -----------------------------------------------------------------------------

func fromRow(row chartRow) (*models.MChartRecord, error) {
	r := &models.MChartRecord{
		ID:        row.id,
		CreatedAt: time.UnixMilli(row.createdAt).UTC(),
		Chart:     &models.MChart{},
	}
	if err := json.Unmarshal([]byte(row.birthJSON), &r.Birth); err != nil {
		return nil, fmt.Errorf("failed to decode birth data of %s: %w", row.id, err)
	}
	if err := json.Unmarshal([]byte(row.chartJSON), r.Chart); err != nil {
		return nil, fmt.Errorf("failed to decode chart %s: %w", row.id, err)
	}
	return r, nil
}

// -----------------------------------------------------------------------------

func summaryFromRow(row chartRow) models.MChartSummary {
	return models.MChartSummary{
		ID:           row.id,
		CreatedAt:    time.UnixMilli(row.createdAt).UTC(),
		BirthInstant: time.UnixMilli(row.birthInstant).UTC(),
		Location:     row.location,
		LagnaSign:    models.Sign(row.lagnaSign),
		MoonSign:     models.Sign(row.moonSign),
	}
}

// -----------------------------------------------------------------------------

// Summarize extracts the listing view of a record.
func Summarize(r models.MChartRecord) models.MChartSummary {
	s := models.MChartSummary{ID: r.ID, CreatedAt: r.CreatedAt.UTC()}
	if r.Chart == nil {
		return s
	}
	s.BirthInstant = r.Chart.Metadata.BirthInstant
	s.Location = r.Chart.Metadata.Location
	s.LagnaSign = r.Chart.Lagna.Sign
	for _, p := range r.Chart.Grahas {
		if p.Body == models.Moon {
			s.MoonSign = p.Sign
		}
	}
	return s
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
