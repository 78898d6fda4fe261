package models

// MConfig Structure
type MConfig struct {
	Name             string           `yaml:"name"`
	Host             string           `yaml:"host"`
	Port             int              `yaml:"port"`
	LogLevel         string           `yaml:"log_level"`
	GrpcHost         string           `yaml:"grpc_host"`
	GrpcPort         int              `yaml:"grpc_port"`
	CorsOriginPrefix string           `yaml:"cors_origin_prefix"`
	Storage          MStorageConfig   `yaml:"storage"`
	Ephemeris        MEphemerisConfig `yaml:"ephemeris"`
	Chart            MChartConfig     `yaml:"chart"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // none, sqlite or postgres
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MEphemerisConfig struct {
	Provider     string `yaml:"provider"` // analytic or remote
	DataPath     string `yaml:"data_path"`
	SiderealMode string `yaml:"sidereal_mode"`
	NodeType     string `yaml:"node_type"`
	RemoteURL    string `yaml:"remote_url"`
	Timeout      int    `yaml:"timeout"`
	MaxRetries   int    `yaml:"retries"`
}

type MChartConfig struct {
	NodePolicy      NodePolicy          `yaml:"node_policy" json:"node_policy"`
	ArudhaException bool                `yaml:"arudha_exception" json:"arudha_exception"`
	ArgalaLimit     int                 `yaml:"argala_limit" json:"argala_limit"` // 0 keeps every relation
	AnnualReturn    MAnnualReturnConfig `yaml:"annual_return" json:"annual_return"`
}

type MAnnualReturnConfig struct {
	ToleranceDeg  float64 `yaml:"tolerance_deg" json:"tolerance_deg"`
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
}

// -----------------------------------------------------------------------------

// DefaultChartConfig mirrors config/default.yaml for callers that build a
// facade without a file (CLI one-shots, tests).
func DefaultChartConfig() MChartConfig {
	return MChartConfig{
		NodePolicy:      NodesExcluded,
		ArudhaException: true,
		ArgalaLimit:     24,
		AnnualReturn: MAnnualReturnConfig{
			ToleranceDeg:  0.01,
			MaxIterations: 50,
		},
	}
}
