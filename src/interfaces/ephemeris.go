package interfaces

import (
	"context"

	"jyotish-chart/src/models"
)

// -----------------------------------------------------------------------------
// IEphemeris is the astronomical collaborator. Every method may fail with a
// ComputationError, e.g. for a date outside the supported range.
// -----------------------------------------------------------------------------

type IEphemeris interface {

	// -----------------------------------------------------------------------------

	// Name identifies the provider in logs and chart metadata.
	Name() string

	// -----------------------------------------------------------------------------

	// JulianDay converts a UTC calendar instant; utcHour may be fractional
	// and may fall outside 0..24.
	JulianDay(ctx context.Context, year, month, day int, utcHour float64) (float64, error)

	// -----------------------------------------------------------------------------

	// TropicalLongitudeAndSpeed returns the ecliptic longitude in degrees and
	// its daily motion (negative when retrograde). Ketu is not served; it is
	// derived from Rahu.
	TropicalLongitudeAndSpeed(ctx context.Context, jd float64, body models.Body) (float64, float64, error)

	// -----------------------------------------------------------------------------

	// Ascendant returns the tropical ascendant for a geographic location.
	Ascendant(ctx context.Context, jd, latitude, longitude float64) (float64, error)

	// -----------------------------------------------------------------------------

	// Ayanamsa returns the sidereal offset for the configured mode.
	Ayanamsa(ctx context.Context, jd float64) (float64, error)
}
