package core

import (
	m "jyotish-chart/src/models"
)

// specialAspects lists the extra aspects (counted as "nth house from") on top
// of the seventh that every body casts.
var specialAspects = map[m.Body][]int{
	m.Mars:    {4, 8},
	m.Jupiter: {5, 9},
	m.Saturn:  {3, 10},
}

// -----------------------------------------------------------------------------

// AspectDistances returns the house counts aspected by body, seventh first.
func AspectDistances(body m.Body) []int {
	out := []int{7}
	return append(out, specialAspects[body]...)
}

// -----------------------------------------------------------------------------

// AspectedHouses converts aspect distances into absolute houses from a body's
// own house. Counting is inclusive, so the seventh from house 1 is house 7.
func AspectedHouses(body m.Body, house int) []int {
	dists := AspectDistances(body)
	out := make([]int, len(dists))
	for i, n := range dists {
		out[i] = AddHouses(house, n-1)
	}
	return out
}

// -----------------------------------------------------------------------------

// Argala derives house interventions. For every (body, target house) pair a
// body placed 2nd, 4th or 11th from the target intervenes, the 11th strongly.
// limit caps the returned list (0 keeps every relation); the full count is
// returned separately.
func Argala(houses map[m.Body]int, limit int) ([]m.MArgala, int) {
	var all []m.MArgala
	for target := 1; target <= m.NumSigns; target++ {
		for _, b := range m.AllBodies {
			h, ok := houses[b]
			if !ok {
				continue
			}
			rel := (h-target+m.NumSigns)%m.NumSigns + 1
			var strength m.ArgalaStrength
			switch rel {
			case 11:
				strength = m.ArgalaStrong
			case 2, 4:
				strength = m.ArgalaModerate
			default:
				continue
			}
			all = append(all, m.MArgala{Body: b, TargetHouse: target, FromHouse: rel, Strength: strength})
		}
	}

	total := len(all)
	if limit > 0 && total > limit {
		all = all[:limit]
	}
	return all, total
}
