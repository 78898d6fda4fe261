package core

import (
	"fmt"
	"math"

	"jyotish-chart/src/helpers"
	m "jyotish-chart/src/models"
)

// vargaRule maps (sign, degree in sign) to the divisional sign.
type vargaRule func(sign m.Sign, deg float64) m.Sign

// vargaRules is the dispatch table; one rule per supported divisor.
var vargaRules = map[m.Divisor]vargaRule{
	1:  uniformRule(1),
	2:  horaRule,
	3:  parityRule(3, 4, relative(0), relative(0)),
	4:  parityRule(4, 3, relative(0), relative(0)),
	5:  panchamsaRule,
	6:  parityRule(6, 1, absolute(m.Aries), absolute(m.Libra)),
	7:  uniformRule(7),
	8:  parityRule(8, 1, absolute(m.Aries), absolute(m.Sagittarius)),
	9:  uniformRule(9),
	10: uniformRule(10),
	11: uniformRule(11),
	12: parityRule(12, 1, relative(0), relative(0)),
	16: parityRule(16, 1, absolute(m.Aries), absolute(m.Leo)),
	20: modalityRule(20, [3]anchor{absolute(m.Aries), absolute(m.Sagittarius), absolute(m.Leo)}),
	24: modalityRule(24, [3]anchor{relative(0), relative(8), relative(4)}),
	27: uniformRule(27),
	30: trimsamsaRule,
	40: parityRule(40, 1, absolute(m.Aries), absolute(m.Libra)),
	45: uniformRule(45),
	60: parityRule(60, 1, relative(0), relative(0)),
}

// -----------------------------------------------------------------------------

// VargaPart returns the index of the D-th part of the sign holding deg.
func VargaPart(deg float64, d int) int {
	part := int(math.Floor(deg / (30 / float64(d))))
	if part >= d {
		part = d - 1
	}
	if part < 0 {
		part = 0
	}
	return part
}

// -----------------------------------------------------------------------------

// VargaSign computes the divisional sign of a sidereal longitude. An unknown
// divisor is an error; a rule producing a sign outside 0..11 panics.
func VargaSign(lon float64, d m.Divisor) (m.Sign, error) {
	rule, ok := vargaRules[d]
	if !ok {
		return 0, fmt.Errorf("unsupported divisor %s", d)
	}
	s := rule(SignOf(lon), DegreeInSign(lon))
	if !s.Valid() {
		helpers.Invariant("varga %s produced sign %d for longitude %.6f", d, int(s), lon)
	}
	return s, nil
}

// -----------------------------------------------------------------------------

// AllVargas computes every supported divisional sign for one longitude.
func AllVargas(lon float64) map[m.Divisor]m.Sign {
	out := make(map[m.Divisor]m.Sign, len(m.AllDivisors))
	for _, d := range m.AllDivisors {
		s, err := VargaSign(lon, d)
		if err != nil {
			helpers.Invariant("divisor %s listed but not registered", d)
		}
		out[d] = s
	}
	return out
}

// -----------------------------------------------------------------------------
// Rule families
// -----------------------------------------------------------------------------

// anchor is the sign counting starts from: either an absolute sign or an
// offset from the natal sign.
type anchor struct {
	absolute bool
	value    int
}

func absolute(s m.Sign) anchor { return anchor{absolute: true, value: int(s)} }
func relative(n int) anchor    { return anchor{value: n} }

func (a anchor) from(sign m.Sign) m.Sign {
	if a.absolute {
		return m.Sign(a.value)
	}
	return sign.Add(a.value)
}

// uniformRule keeps counting D parts per sign across the zodiac.
func uniformRule(d int) vargaRule {
	return func(sign m.Sign, deg float64) m.Sign {
		return m.Sign((int(sign)*d + VargaPart(deg, d)) % m.NumSigns)
	}
}

// parityRule starts from an odd- or even-sign anchor and steps k signs per part.
func parityRule(d, k int, odd, even anchor) vargaRule {
	return func(sign m.Sign, deg float64) m.Sign {
		start := even.from(sign)
		if sign.IsOdd() {
			start = odd.from(sign)
		}
		return start.Add(VargaPart(deg, d) * k)
	}
}

// modalityRule starts from a movable, fixed or dual anchor.
func modalityRule(d int, anchors [3]anchor) vargaRule {
	return func(sign m.Sign, deg float64) m.Sign {
		return anchors[sign.Modality()].from(sign).Add(VargaPart(deg, d))
	}
}

// -----------------------------------------------------------------------------
// Fixed tables
// -----------------------------------------------------------------------------

// band is a degree range [0,upper) closing at upper, mapped to a sign.
type band struct {
	upper float64
	sign  m.Sign
}

func lookupBand(bands []band, deg float64) m.Sign {
	for _, b := range bands {
		if deg < b.upper {
			return b.sign
		}
	}
	return bands[len(bands)-1].sign
}

var (
	horaOdd  = []band{{15, m.Leo}, {30, m.Cancer}}
	horaEven = []band{{15, m.Cancer}, {30, m.Leo}}

	panchamsaOdd  = []band{{6, m.Aries}, {12, m.Aquarius}, {18, m.Sagittarius}, {24, m.Gemini}, {30, m.Libra}}
	panchamsaEven = []band{{6, m.Taurus}, {12, m.Virgo}, {18, m.Pisces}, {24, m.Capricorn}, {30, m.Scorpio}}

	trimsamsaOdd  = []band{{5, m.Aries}, {10, m.Aquarius}, {18, m.Sagittarius}, {25, m.Gemini}, {30, m.Libra}}
	trimsamsaEven = []band{{5, m.Taurus}, {12, m.Virgo}, {20, m.Pisces}, {25, m.Capricorn}, {30, m.Scorpio}}
)

func tableRule(odd, even []band) vargaRule {
	return func(sign m.Sign, deg float64) m.Sign {
		if sign.IsOdd() {
			return lookupBand(odd, deg)
		}
		return lookupBand(even, deg)
	}
}

var (
	horaRule      = tableRule(horaOdd, horaEven)
	panchamsaRule = tableRule(panchamsaOdd, panchamsaEven)
	trimsamsaRule = tableRule(trimsamsaOdd, trimsamsaEven)
)
