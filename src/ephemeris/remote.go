package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"jyotish-chart/src/helpers"
	"jyotish-chart/src/interfaces"
	"jyotish-chart/src/models"
)

// RemoteEphemeris delegates positions to an external ephemeris service
// speaking JSON over HTTP:
//
//	GET {url}/position?jd=..&body=Sun        -> {"longitude": .., "speed": ..}
//	GET {url}/ascendant?jd=..&lat=..&lon=..  -> {"ascendant": ..}
//	GET {url}/ayanamsa?jd=..&mode=lahiri     -> {"ayanamsa": ..}
//
// The Julian Day conversion is computed locally.
type RemoteEphemeris struct {
	cfg *Config
	net interfaces.INetworkManager
}

func NewRemoteEphemeris(cfg *Config, net interfaces.INetworkManager) *RemoteEphemeris {
	return &RemoteEphemeris{cfg: cfg, net: net}
}

func (r *RemoteEphemeris) Name() string { return ProviderRemote }

type positionResponse struct {
	Longitude *float64 `json:"longitude"`
	Speed     float64  `json:"speed"`
}

type ascendantResponse struct {
	Ascendant *float64 `json:"ascendant"`
}

type ayanamsaResponse struct {
	Ayanamsa *float64 `json:"ayanamsa"`
}

// -----------------------------------------------------------------------------

func (r *RemoteEphemeris) JulianDay(_ context.Context, year, month, day int, utcHour float64) (float64, error) {
	return JulianDay(year, month, day, utcHour), nil
}

// -----------------------------------------------------------------------------

func (r *RemoteEphemeris) TropicalLongitudeAndSpeed(ctx context.Context, jd float64, body models.Body) (float64, float64, error) {
	var resp positionResponse
	err := r.fetch(ctx, "position", map[string]string{"jd": formatFloat(jd), "body": body.String()}, &resp)
	if err != nil {
		return 0, 0, err
	}
	if resp.Longitude == nil {
		return 0, 0, helpers.NewComputationError("remote position", fmt.Errorf("missing longitude for %s", body))
	}
	return *resp.Longitude, resp.Speed, nil
}

// -----------------------------------------------------------------------------

func (r *RemoteEphemeris) Ascendant(ctx context.Context, jd, latitude, longitude float64) (float64, error) {
	var resp ascendantResponse
	params := map[string]string{"jd": formatFloat(jd), "lat": formatFloat(latitude), "lon": formatFloat(longitude)}
	if err := r.fetch(ctx, "ascendant", params, &resp); err != nil {
		return 0, err
	}
	if resp.Ascendant == nil {
		return 0, helpers.NewComputationError("remote ascendant", fmt.Errorf("missing ascendant"))
	}
	return *resp.Ascendant, nil
}

// -----------------------------------------------------------------------------

func (r *RemoteEphemeris) Ayanamsa(ctx context.Context, jd float64) (float64, error) {
	var resp ayanamsaResponse
	params := map[string]string{"jd": formatFloat(jd), "mode": string(r.cfg.SiderealMode())}
	if err := r.fetch(ctx, "ayanamsa", params, &resp); err != nil {
		return 0, err
	}
	if resp.Ayanamsa == nil {
		return 0, helpers.NewComputationError("remote ayanamsa", fmt.Errorf("missing ayanamsa"))
	}
	return *resp.Ayanamsa, nil
}

// -----------------------------------------------------------------------------

// fetch adds the configured data path so the service reads the same
// ephemeris files for every request.
func (r *RemoteEphemeris) fetch(ctx context.Context, endpoint string, params map[string]string, out interface{}) error {
	if path := r.cfg.DataPath(); path != "" {
		params["ephe_path"] = path
	}
	body, err := r.net.Get(ctx, r.cfg.RemoteURL()+"/"+endpoint, params)
	if err != nil {
		return helpers.NewComputationError("remote "+endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return helpers.NewComputationError("remote "+endpoint, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
