package core

import (
	"math"

	m "jyotish-chart/src/models"
)

// -----------------------------------------------------------------------------

// Normalize wraps any angle into [0,360).
func Normalize(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// math.Mod of a tiny negative value plus 360 can round up to 360
	if r >= 360 {
		r = 0
	}
	return r
}

// -----------------------------------------------------------------------------

// ToSidereal subtracts the ayanamsa from a tropical longitude.
func ToSidereal(tropical, ayanamsa float64) float64 {
	return Normalize(tropical - ayanamsa)
}

// -----------------------------------------------------------------------------

// SignOf returns the rashi containing a sidereal longitude.
func SignOf(lon float64) m.Sign {
	s := int(math.Floor(Normalize(lon) / 30))
	if s > 11 {
		s = 11
	}
	return m.Sign(s)
}

// -----------------------------------------------------------------------------

// DegreeInSign returns the position inside the sign, in [0,30).
func DegreeInSign(lon float64) float64 {
	d := Normalize(lon) - float64(SignOf(lon))*30
	if d < 0 {
		d = 0
	}
	return d
}

// -----------------------------------------------------------------------------

// NodeOpposite derives Ketu from Rahu.
func NodeOpposite(rahuLon, rahuSpeed float64) (float64, float64) {
	return Normalize(rahuLon + 180), -rahuSpeed
}

// -----------------------------------------------------------------------------

// AngularDiff returns b - a wrapped into (-180,180].
func AngularDiff(a, b float64) float64 {
	d := Normalize(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}
