package core

import (
	m "jyotish-chart/src/models"
)

// -----------------------------------------------------------------------------

// ArudhaPada projects a house through its lord: the pada lies as far from the
// lord as the lord lies from the house. With exception enabled, a pada that
// lands in the house itself or in the 7th from it moves to the 10th from there.
func ArudhaPada(lagna m.Sign, house int, g Grahas, exception bool) m.MArudhaPada {
	houseSign := HouseSign(lagna, house)
	lord := LordOf(houseSign)
	lordSign := houseSign
	if p, ok := g[lord]; ok {
		lordSign = p.Sign
	}

	pada := lordSign.Add(houseSign.Distance(lordSign))
	adjusted := false
	if exception && (pada == houseSign || pada == houseSign.Add(6)) {
		pada = pada.Add(9)
		adjusted = true
	}

	return m.MArudhaPada{
		House:    house,
		Sign:     pada,
		Rashi:    pada.String(),
		Adjusted: adjusted,
	}
}

// -----------------------------------------------------------------------------

// Arudhas computes A1 (the Arudha Lagna) through A12.
func Arudhas(lagna m.Sign, list []m.MGrahaPosition, exception bool) m.MArudha {
	g := IndexGrahas(list)
	padas := make([]m.MArudhaPada, 0, m.NumSigns)
	for h := 1; h <= m.NumSigns; h++ {
		padas = append(padas, ArudhaPada(lagna, h, g, exception))
	}
	return m.MArudha{Lagna: padas[0], Padas: padas}
}
