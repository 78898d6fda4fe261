package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jyotish-chart/src/logger"
	"jyotish-chart/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	// Use the executable name for the schema
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresDB{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) table() string {
	return fmt.Sprintf(`"%s"."charts"`, d.Schema)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			created_at BIGINT,
			birth_instant BIGINT,
			location TEXT,
			lagna_sign SMALLINT,
			moon_sign SMALLINT,
			birth JSONB,
			chart JSONB
		);
	`, d.table())
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create charts: %w", err)
	}

	query = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS charts_created_at ON %s (created_at)`, d.table())
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to index charts: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveChart(record models.MChartRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, created_at, birth_instant, location, lagna_sign, moon_sign, birth, chart)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			birth_instant = EXCLUDED.birth_instant,
			location = EXCLUDED.location,
			lagna_sign = EXCLUDED.lagna_sign,
			moon_sign = EXCLUDED.moon_sign,
			birth = EXCLUDED.birth,
			chart = EXCLUDED.chart
	`, d.table())
	_, err = d.DB.Exec(query, row.id, row.createdAt, row.birthInstant, row.location, row.lagnaSign, row.moonSign, row.birthJSON, row.chartJSON)
	if err != nil {
		return fmt.Errorf("failed to save chart %s: %w", record.ID, err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) GetChart(id string) (*models.MChartRecord, error) {
	var row chartRow
	query := fmt.Sprintf(`SELECT id, created_at, birth, chart FROM %s WHERE id = $1`, d.table())
	err := d.DB.QueryRow(query, id).Scan(&row.id, &row.createdAt, &row.birthJSON, &row.chartJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", id, err)
	}
	return fromRow(row)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ListCharts(limit int) ([]models.MChartSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, created_at, birth_instant, location, lagna_sign, moon_sign
		FROM %s ORDER BY created_at DESC, id LIMIT $1
	`, d.table())
	rows, err := d.DB.Query(query, listLimit(limit))
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

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
