package core

import (
	"math"

	m "jyotish-chart/src/models"
)

var (
	AngularHouses  = []int{1, 4, 7, 10}
	TrineHouses    = []int{1, 5, 9}
	DusthanaHouses = []int{6, 8, 12}
)

// -----------------------------------------------------------------------------

// HouseOf counts the house of a body from the ascendant longitude, 1..12.
func HouseOf(bodyLon, ascLon float64) int {
	h := int(math.Floor(Normalize(bodyLon-ascLon)/30)) + 1
	if h > m.NumSigns {
		h = m.NumSigns
	}
	return h
}

// -----------------------------------------------------------------------------

func IsAngular(house int) bool  { return containsInt(AngularHouses, house) }
func IsTrine(house int) bool    { return containsInt(TrineHouses, house) }
func IsDusthana(house int) bool { return containsInt(DusthanaHouses, house) }

// -----------------------------------------------------------------------------

// AddHouses moves n houses forward from house, wrapping 12 to 1.
func AddHouses(house, n int) int {
	return ((house-1+n)%m.NumSigns+m.NumSigns)%m.NumSigns + 1
}

// -----------------------------------------------------------------------------

// HouseSign returns the sign occupying a house for a given lagna sign.
func HouseSign(lagna m.Sign, house int) m.Sign {
	return lagna.Add(house - 1)
}

// HouseLord returns the ruler of a house for a given lagna sign.
func HouseLord(lagna m.Sign, house int) m.Body {
	return LordOf(HouseSign(lagna, house))
}
