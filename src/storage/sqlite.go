package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	if cfg.Storage.DBPath == "" {
		return nil, fmt.Errorf("sqlite archive needs a db_path")
	}
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	// A single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// SQLite types: INTEGER for int64, TEXT for string and JSON
	query := `
		CREATE TABLE IF NOT EXISTS charts (
			id TEXT PRIMARY KEY,
			created_at INTEGER,
			birth_instant INTEGER,
			location TEXT,
			lagna_sign INTEGER,
			moon_sign INTEGER,
			birth TEXT,
			chart TEXT
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create charts: %w", err)
	}
	if _, err := d.DB.Exec("CREATE INDEX IF NOT EXISTS charts_created_at ON charts (created_at)"); err != nil {
		return fmt.Errorf("failed to index charts: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveChart(record models.MChartRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}

	_, err = d.DB.Exec(`
		INSERT INTO charts (id, created_at, birth_instant, location, lagna_sign, moon_sign, birth, chart)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			created_at = excluded.created_at,
			birth_instant = excluded.birth_instant,
			location = excluded.location,
			lagna_sign = excluded.lagna_sign,
			moon_sign = excluded.moon_sign,
			birth = excluded.birth,
			chart = excluded.chart
	`, row.id, row.createdAt, row.birthInstant, row.location, row.lagnaSign, row.moonSign, row.birthJSON, row.chartJSON)
	if err != nil {
		return fmt.Errorf("failed to save chart %s: %w", record.ID, err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) GetChart(id string) (*models.MChartRecord, error) {
	var row chartRow
	err := d.DB.QueryRow(`SELECT id, created_at, birth, chart FROM charts WHERE id = ?`, id).
		Scan(&row.id, &row.createdAt, &row.birthJSON, &row.chartJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", id, err)
	}
	return fromRow(row)
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) ListCharts(limit int) ([]models.MChartSummary, error) {
	rows, err := d.DB.Query(`
		SELECT id, created_at, birth_instant, location, lagna_sign, moon_sign
		FROM charts ORDER BY created_at DESC, id LIMIT ?
	`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	defer rows.Close()

	out := make([]models.MChartSummary, 0)
	for rows.Next() {
		var row chartRow
		if err := rows.Scan(&row.id, &row.createdAt, &row.birthInstant, &row.location, &row.lagnaSign, &row.moonSign); err != nil {
			return nil, err
		}
		out = append(out, summaryFromRow(row))
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
