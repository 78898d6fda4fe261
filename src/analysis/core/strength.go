package core

import (
	"sort"

	m "jyotish-chart/src/models"
)

// -----------------------------------------------------------------------------

// Shadbala scores the seven classical bodies. Nodes are skipped. Rank 1 is
// the strongest body; ties keep body order.
func Shadbala(list []m.MGrahaPosition) []m.MShadbala {
	g := IndexGrahas(list)
	out := make([]m.MShadbala, 0, len(m.ClassicalBodies))

	for _, b := range m.ClassicalBodies {
		p, ok := g[b]
		if !ok {
			continue
		}
		s := m.MShadbala{
			Body:        b,
			Positional:  PositionalStrength[p.Dignity],
			Directional: directionalStrength(b, p.House),
			Temporal:    temporalStrength(b, p.House),
			Motional:    MotionDirect,
			Natural:     NaturalStrength[b],
		}
		if p.Retrograde {
			s.Motional = MotionRetrograde
		}
		s.Total = s.Positional + s.Directional + s.Temporal + s.Motional + s.Natural
		s.Rupas = s.Total / VirupasPerRupa
		out = append(out, s)
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return out[order[i]].Total > out[order[j]].Total
	})
	for rank, idx := range order {
		out[idx].Rank = rank + 1
	}
	return out
}

func directionalStrength(b m.Body, house int) float64 {
	if h, ok := DirectionalHouses[b]; ok && h == house {
		return DirectionalBonus
	}
	return 0
}

// temporalStrength treats houses 7..12 as the day half of the chart.
func temporalStrength(b m.Body, house int) float64 {
	day := house > 6
	switch {
	case b == m.Mercury:
		return TemporalBonus
	case DayBodies[b] && day:
		return TemporalBonus
	case NightBodies[b] && !day:
		return TemporalBonus
	}
	return 0
}

// -----------------------------------------------------------------------------

// Ashtakavarga adds each classical body's points to every house whose sign
// sits at a qualifying offset from that body's sign.
func Ashtakavarga(lagna m.Sign, list []m.MGrahaPosition) m.MAshtakavarga {
	g := IndexGrahas(list)
	av := m.MAshtakavarga{ByBody: make(map[m.Body][m.NumSigns]int, len(m.ClassicalBodies))}

	for _, b := range m.ClassicalBodies {
		p, ok := g[b]
		if !ok {
			continue
		}
		points := MaleficPoints
		if NaturalBenefics[b] {
			points = BeneficPoints
		}

		var row [m.NumSigns]int
		for h := 1; h <= m.NumSigns; h++ {
			if containsInt(AshtakavargaOffsets, p.Sign.Distance(HouseSign(lagna, h))) {
				row[h-1] = points
				av.Houses[h-1] += points
				av.Total += points
			}
		}
		av.ByBody[b] = row
	}
	return av
}
