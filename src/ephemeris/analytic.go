package ephemeris

import (
	"context"
	"fmt"
	"math"

	"jyotish-chart/src/analysis/core"
	"jyotish-chart/src/helpers"
	"jyotish-chart/src/models"
)

const (
	j2000 = 2451545.0
	// Keplerian elements below are fitted for 1800..2050.
	minJulianDay = 2378496.5 // 1800-01-01
	maxJulianDay = 2470172.5 // 2051-01-01

	lahiriAtJ2000    = 23.85306
	precessionPerDay = 50.2875 / 3600 / 365.25
	ramanOffset      = -1.4333
	kpOffset         = -0.0939

	speedStep = 0.5 // days either side for the numerical derivative
)

// AnalyticEphemeris computes positions from closed-form series: a Meeus-style
// solar and lunar theory, Keplerian planets and the mean lunar node.
// Accuracy is within a few arc-minutes for the planets and better for the
// luminaries, enough to place bodies in signs and nakshatras.
type AnalyticEphemeris struct {
	cfg *Config
}

func NewAnalyticEphemeris(cfg *Config) *AnalyticEphemeris {
	return &AnalyticEphemeris{cfg: cfg}
}

func (a *AnalyticEphemeris) Name() string { return ProviderAnalytic }

// -----------------------------------------------------------------------------

// JulianDay converts a Gregorian UTC instant (Meeus, chapter 7).
func (a *AnalyticEphemeris) JulianDay(_ context.Context, year, month, day int, utcHour float64) (float64, error) {
	return JulianDay(year, month, day, utcHour), nil
}

// JulianDay is shared by every provider: the calendar conversion needs no
// ephemeris data.
func JulianDay(year, month, day int, utcHour float64) float64 {
	y, mo := float64(year), float64(month)
	if month <= 2 {
		y--
		mo += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(mo+1)) + float64(day) + b - 1524.5 + utcHour/24
}

// -----------------------------------------------------------------------------

func (a *AnalyticEphemeris) TropicalLongitudeAndSpeed(_ context.Context, jd float64, body models.Body) (float64, float64, error) {
	if err := checkRange(jd); err != nil {
		return 0, 0, err
	}
	lonAt, err := longitudeFunc(body)
	if err != nil {
		return 0, 0, helpers.NewComputationError("ephemeris position", err)
	}

	lon := lonAt(jd)
	delta := core.AngularDiff(lonAt(jd-speedStep), lonAt(jd+speedStep))
	return lon, delta / (2 * speedStep), nil
}

func longitudeFunc(body models.Body) (func(float64) float64, error) {
	switch body {
	case models.Sun:
		return sunLongitude, nil
	case models.Moon:
		return moonLongitude, nil
	case models.Rahu:
		return meanNode, nil
	case models.Mercury, models.Venus, models.Mars, models.Jupiter, models.Saturn:
		el := planetElements[body]
		return func(jd float64) float64 { return planetLongitude(el, jd) }, nil
	}
	return nil, fmt.Errorf("body %s is not served by the ephemeris", body)
}

// -----------------------------------------------------------------------------

// Ascendant intersects the eastern horizon with the ecliptic using the local
// sidereal time.
func (a *AnalyticEphemeris) Ascendant(_ context.Context, jd, latitude, longitude float64) (float64, error) {
	if err := checkRange(jd); err != nil {
		return 0, err
	}
	if latitude <= -90 || latitude >= 90 {
		return 0, helpers.NewComputationError("ascendant", fmt.Errorf("latitude %.4f has no horizon", latitude))
	}
	t := centuries(jd)
	ramc := rad(norm(gmst(jd) + longitude))
	eps := rad(23.439291 - 0.0130042*t)
	phi := rad(latitude)

	asc := math.Atan2(math.Cos(ramc), -(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	return norm(deg(asc)), nil
}

// -----------------------------------------------------------------------------

// Ayanamsa is linear in time from the Lahiri value at J2000; the other modes
// are fixed offsets from it.
func (a *AnalyticEphemeris) Ayanamsa(_ context.Context, jd float64) (float64, error) {
	if err := checkRange(jd); err != nil {
		return 0, err
	}
	return ayanamsa(a.cfg.SiderealMode(), jd), nil
}

func ayanamsa(mode SiderealMode, jd float64) float64 {
	v := lahiriAtJ2000 + (jd-j2000)*precessionPerDay
	switch mode {
	case Raman:
		v += ramanOffset
	case Krishnamurti:
		v += kpOffset
	}
	return v
}

// -----------------------------------------------------------------------------
// Series
// -----------------------------------------------------------------------------

func sunLongitude(jd float64) float64 {
	t := centuries(jd)
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := rad(357.52911 + 35999.05029*t - 0.0001537*t*t)
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	omega := rad(125.04 - 1934.136*t)
	return norm(l0 + c - 0.00569 - 0.00478*math.Sin(omega))
}

// moonLongitude keeps the largest periodic terms of the lunar theory.
func moonLongitude(jd float64) float64 {
	t := centuries(jd)
	lp := 218.3164477 + 481267.88123421*t
	d := rad(297.8501921 + 445267.1114034*t)
	m := rad(357.5291092 + 35999.0502909*t)
	mp := rad(134.9633964 + 477198.8675055*t)
	f := rad(93.2720950 + 483202.0175233*t)

	lon := lp +
		6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m) -
		0.040923*math.Sin(m-mp) -
		0.034720*math.Sin(d) -
		0.030383*math.Sin(m+mp)
	return norm(lon)
}

func meanNode(jd float64) float64 {
	t := centuries(jd)
	return norm(125.04452 - 1934.136261*t + 0.0020708*t*t + t*t*t/450000)
}

// -----------------------------------------------------------------------------
// Keplerian planets
// -----------------------------------------------------------------------------

// elements holds J2000 values and per-century rates: semi-major axis (AU),
// eccentricity, inclination, mean longitude, longitude of perihelion and
// longitude of the ascending node (degrees).
type elements struct {
	a, e, i, l, peri, node       float64
	da, de, di, dl, dperi, dnode float64
}

var planetElements = map[models.Body]elements{
	models.Mercury: {0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081},
	models.Venus: {0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418},
	models.Mars: {1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343},
	models.Jupiter: {5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106},
	models.Saturn: {9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794},
}

var earthElements = elements{1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
	0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0}

// planetLongitude returns the geocentric ecliptic longitude of date.
func planetLongitude(el elements, jd float64) float64 {
	px, py, _ := heliocentric(el, jd)
	ex, ey, _ := heliocentric(earthElements, jd)
	lon := deg(math.Atan2(py-ey, px-ex))
	// J2000 ecliptic to ecliptic of date
	return norm(lon + 1.396971*centuries(jd))
}

func heliocentric(el elements, jd float64) (float64, float64, float64) {
	t := centuries(jd)
	a := el.a + el.da*t
	e := el.e + el.de*t
	inc := rad(el.i + el.di*t)
	l := el.l + el.dl*t
	peri := el.peri + el.dperi*t
	node := el.node + el.dnode*t

	w := rad(peri - node)
	om := rad(node)
	m := rad(norm(l - peri))
	ecc := solveKepler(m, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cw, sw := math.Cos(w), math.Sin(w)
	co, so := math.Cos(om), math.Sin(om)
	ci, si := math.Cos(inc), math.Sin(inc)

	x := (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp
	y := (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp
	z := (sw*si)*xp + (cw*si)*yp
	return x, y, z
}

func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for i := 0; i < 30; i++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// gmst is the Greenwich mean sidereal time in degrees.
func gmst(jd float64) float64 {
	t := centuries(jd)
	return norm(280.46061837 + 360.98564736629*(jd-j2000) + 0.000387933*t*t - t*t*t/38710000)
}

func checkRange(jd float64) error {
	if jd < minJulianDay || jd >= maxJulianDay {
		return helpers.NewComputationError("ephemeris",
			fmt.Errorf("julian day %.1f outside supported range 1800-2050", jd))
	}
	return nil
}

func centuries(jd float64) float64 { return (jd - j2000) / 36525 }
func rad(d float64) float64        { return d * math.Pi / 180 }
func deg(r float64) float64        { return r * 180 / math.Pi }
func norm(d float64) float64       { return core.Normalize(d) }
