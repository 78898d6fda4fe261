package ephemeris

import (
	"jyotish-chart/src/interfaces"
	"jyotish-chart/src/logger"
	"jyotish-chart/src/network"
)

// -----------------------------------------------------------------------------

// NewProvider builds the ephemeris selected by the configuration.
func NewProvider(cfg *Config, log *logger.Logger) interfaces.IEphemeris {
	if cfg.Provider() == ProviderRemote {
		log.Info("Using remote ephemeris at %s (%s ayanamsa)", cfg.RemoteURL(), cfg.SiderealMode())
		return NewRemoteEphemeris(cfg, network.NewNetworkManager(cfg.Timeout(), cfg.MaxRetries(), log.Named("Network")))
	}
	if cfg.DataPath() != "" {
		log.Warning("ephemeris.data_path %q is only used by the remote provider", cfg.DataPath())
	}
	log.Info("Using analytic ephemeris (%s ayanamsa)", cfg.SiderealMode())
	return NewAnalyticEphemeris(cfg)
}
