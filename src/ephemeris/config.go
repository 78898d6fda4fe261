package ephemeris

import (
	"fmt"
	"strings"
	"time"

	"jyotish-chart/src/models"
)

// SiderealMode selects the ayanamsa model.
type SiderealMode string

const (
	Lahiri       SiderealMode = "lahiri"
	Raman        SiderealMode = "raman"
	Krishnamurti SiderealMode = "krishnamurti"
)

const (
	ProviderAnalytic = "analytic"
	ProviderRemote   = "remote"
	NodeMean         = "mean"
)

// Config is the process-wide ephemeris configuration. It is built once at
// start-up and never mutated; providers hold a pointer to it.
type Config struct {
	provider   string
	dataPath   string
	mode       SiderealMode
	nodeType   string
	remoteURL  string
	timeout    time.Duration
	maxRetries int
}

// -----------------------------------------------------------------------------

// NewConfig validates the YAML section and freezes it.
func NewConfig(c models.MEphemerisConfig) (*Config, error) {
	cfg := &Config{
		provider:   strings.ToLower(c.Provider),
		dataPath:   c.DataPath,
		mode:       SiderealMode(strings.ToLower(c.SiderealMode)),
		nodeType:   strings.ToLower(c.NodeType),
		remoteURL:  strings.TrimRight(c.RemoteURL, "/"),
		timeout:    time.Duration(c.Timeout) * time.Second,
		maxRetries: c.MaxRetries,
	}

	if cfg.provider == "" {
		cfg.provider = ProviderAnalytic
	}
	if cfg.mode == "" {
		cfg.mode = Lahiri
	}
	if cfg.nodeType == "" {
		cfg.nodeType = NodeMean
	}
	if cfg.timeout <= 0 {
		cfg.timeout = 10 * time.Second
	}
	if cfg.maxRetries < 1 {
		cfg.maxRetries = 1
	}

	switch cfg.provider {
	case ProviderAnalytic:
	case ProviderRemote:
		if cfg.remoteURL == "" {
			return nil, fmt.Errorf("ephemeris.remote_url is required for the remote provider")
		}
	default:
		return nil, fmt.Errorf("unknown ephemeris provider %q", c.Provider)
	}

	switch cfg.mode {
	case Lahiri, Raman, Krishnamurti:
	default:
		return nil, fmt.Errorf("unknown sidereal mode %q", c.SiderealMode)
	}

	if cfg.nodeType != NodeMean {
		return nil, fmt.Errorf("unsupported node type %q", c.NodeType)
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------

// DefaultConfig is the analytic provider with the Lahiri ayanamsa.
func DefaultConfig() *Config {
	cfg, _ := NewConfig(models.MEphemerisConfig{})
	return cfg
}

// -----------------------------------------------------------------------------

func (c *Config) Provider() string           { return c.provider }
func (c *Config) DataPath() string           { return c.dataPath }
func (c *Config) SiderealMode() SiderealMode { return c.mode }
func (c *Config) NodeType() string           { return c.nodeType }
func (c *Config) RemoteURL() string          { return c.remoteURL }
func (c *Config) Timeout() time.Duration     { return c.timeout }
func (c *Config) MaxRetries() int            { return c.maxRetries }
