package interfaces

import "jyotish-chart/src/models"

// -----------------------------------------------------------------------------
// IChartArchive defines the contract for storing finished chart records.
// -----------------------------------------------------------------------------

type IChartArchive interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveChart stores one calculation (request and output).
	SaveChart(record models.MChartRecord) error

	// -----------------------------------------------------------------------------

	// GetChart loads a record by ID. It returns (nil, nil) when absent.
	GetChart(id string) (*models.MChartRecord, error)

	// -----------------------------------------------------------------------------

	// ListCharts returns the most recent summaries, newest first.
	ListCharts(limit int) ([]models.MChartSummary, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
