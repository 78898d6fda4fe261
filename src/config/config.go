package config

import (
	"fmt"
	"os"
	"strings"

	"jyotish-chart/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal over the defaults so omitted keys keep their default
	modelConfig := Default()
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Default mirrors config/default.yaml.
func Default() models.MConfig {
	return models.MConfig{
		Name:             "jyotish-chart",
		Host:             "0.0.0.0",
		Port:             8080,
		LogLevel:         "INFO",
		GrpcHost:         "0.0.0.0",
		GrpcPort:         50051,
		CorsOriginPrefix: "http://localhost",
		Storage: models.MStorageConfig{
			DBType: "none",
		},
		Ephemeris: models.MEphemerisConfig{
			Provider:     "analytic",
			SiderealMode: "lahiri",
			NodeType:     "mean",
			Timeout:      10,
			MaxRetries:   3,
		},
		Chart: models.DefaultChartConfig(),
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARNING", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535) {
		return fmt.Errorf("invalid grpc port number: %d", c.GrpcPort)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "none":
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unknown database type %q", c.Storage.DBType)
	}

	// Validate Ephemeris configuration
	if c.Ephemeris.Timeout <= 0 {
		return fmt.Errorf("ephemeris timeout must be greater than 0")
	}
	if c.Ephemeris.MaxRetries < 0 {
		return fmt.Errorf("ephemeris retries cannot be negative")
	}

	// Validate Chart configuration
	switch c.Chart.NodePolicy {
	case models.NodesExcluded, models.NodesFunctional:
	default:
		return fmt.Errorf("node policy must be %q or %q", models.NodesExcluded, models.NodesFunctional)
	}
	if c.Chart.ArgalaLimit < 0 {
		return fmt.Errorf("argala limit cannot be negative")
	}
	if c.Chart.AnnualReturn.ToleranceDeg <= 0 {
		return fmt.Errorf("annual return tolerance must be greater than 0")
	}
	if c.Chart.AnnualReturn.MaxIterations <= 0 {
		return fmt.Errorf("annual return iterations must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
