package core

import (
	"fmt"
	"strings"

	m "jyotish-chart/src/models"
)

// Grahas indexes a chart's per-body records.
type Grahas map[m.Body]m.MGrahaPosition

// IndexGrahas builds the lookup from the aggregated list.
func IndexGrahas(list []m.MGrahaPosition) Grahas {
	g := make(Grahas, len(list))
	for _, p := range list {
		g[p.Body] = p
	}
	return g
}

var mahapurusha = []struct {
	body m.Body
	name string
}{
	{m.Mars, "Ruchaka"},
	{m.Mercury, "Bhadra"},
	{m.Jupiter, "Hamsa"},
	{m.Venus, "Malavya"},
	{m.Saturn, "Sasa"},
}

var (
	gajaKesariDistances = []int{1, 4, 7, 10}
	kendraDistances     = []int{0, 3, 6, 9}
	saraswatiHouses     = []int{1, 2, 4, 5, 7, 9, 10}
	naturalMalefics     = []m.Body{m.Sun, m.Mars, m.Saturn, m.Rahu, m.Ketu}
)

// -----------------------------------------------------------------------------

// DetectYogas runs every rule against the aggregated chart. Each rule emits
// zero or one pattern; all matching patterns are returned in rule order.
func DetectYogas(lagna m.Sign, list []m.MGrahaPosition) []m.MYoga {
	g := IndexGrahas(list)
	yogas := make([]m.MYoga, 0)

	yogas = append(yogas, mahapurushaYogas(g)...)
	if y, ok := gajaKesari(g); ok {
		yogas = append(yogas, y)
	}
	yogas = append(yogas, neechaBhanga(lagna, g)...)

	for _, rule := range compoundRules {
		if y, ok := rule(lagna, g); ok {
			yogas = append(yogas, y)
		}
	}
	return yogas
}

// -----------------------------------------------------------------------------

func mahapurushaYogas(g Grahas) []m.MYoga {
	var out []m.MYoga
	for _, mp := range mahapurusha {
		p, ok := g[mp.body]
		if !ok {
			continue
		}
		if (p.Dignity == m.Exalted || p.Dignity == m.OwnSign) && IsAngular(p.House) {
			out = append(out, m.MYoga{
				Name:        mp.name + " Yoga",
				Category:    m.YogaMahapurusha,
				Bodies:      []m.Body{mp.body},
				Description: fmt.Sprintf("%s is %s in angular house %d", mp.body, p.Dignity, p.House),
			})
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// gajaKesari compares the raw sign indices of Jupiter and the Moon without
// wrapping around the zodiac.
func gajaKesari(g Grahas) (m.MYoga, bool) {
	jup, ok1 := g[m.Jupiter]
	moon, ok2 := g[m.Moon]
	if !ok1 || !ok2 {
		return m.MYoga{}, false
	}
	dist := int(jup.Sign) - int(moon.Sign)
	if dist < 0 {
		dist = -dist
	}
	if !containsInt(gajaKesariDistances, dist) {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Gaja Kesari Yoga",
		Category:    m.YogaLunar,
		Bodies:      []m.Body{m.Jupiter, m.Moon},
		Description: fmt.Sprintf("Jupiter in %s and Moon in %s are %d signs apart", jup.Rashi, moon.Rashi, dist),
	}, true
}

// -----------------------------------------------------------------------------

// neechaBhanga tests the three cancellation conditions for every debilitated
// body. Condition (c) is skipped for the Moon, which is always 0 signs from itself.
func neechaBhanga(lagna m.Sign, g Grahas) []m.MYoga {
	var out []m.MYoga
	moon, haveMoon := g[m.Moon]

	for _, b := range m.ClassicalBodies {
		p, ok := g[b]
		if !ok || p.Dignity != m.Debilitated {
			continue
		}

		var fired []string
		debLord := LordOf(p.Sign)
		if lp, ok := g[debLord]; ok && IsAngular(lp.House) {
			fired = append(fired, fmt.Sprintf("(a) %s, lord of the debilitation sign, occupies angular house %d", debLord, lp.House))
		}

		exLord := LordOf(ExaltationSigns[b])
		if lp, ok := g[exLord]; ok && lp.Dignity == m.Exalted {
			fired = append(fired, fmt.Sprintf("(b) %s, lord of the exaltation sign, is itself exalted", exLord))
		}

		if haveMoon && b != m.Moon {
			dist := moon.Sign.Distance(p.Sign)
			if containsInt(kendraDistances, dist) {
				fired = append(fired, fmt.Sprintf("(c) %s is %d signs from the Moon", b, dist))
			}
		}

		if len(fired) == 0 {
			continue
		}
		out = append(out, m.MYoga{
			Name:        "Neecha Bhanga Raja Yoga",
			Category:    m.YogaCancellation,
			Bodies:      []m.Body{b},
			Description: fmt.Sprintf("Debilitation of %s cancelled: %s", b, strings.Join(fired, "; ")),
		})
	}
	return out
}

// -----------------------------------------------------------------------------
// Compound rules
// -----------------------------------------------------------------------------

type yogaRule func(lagna m.Sign, g Grahas) (m.MYoga, bool)

var compoundRules = []yogaRule{
	dhanaYoga,
	rajaYoga,
	lakshmiYoga,
	daridraYoga,
	kemadrumaYoga,
	papaKartariYoga,
	chandraMangalaYoga,
	budhaAdityaYoga,
	saraswatiYoga,
	vipareetaRajaYoga,
}

func sameSign(g Grahas, a, b m.Body) bool {
	pa, ok1 := g[a]
	pb, ok2 := g[b]
	return ok1 && ok2 && pa.Sign == pb.Sign
}

// exchange reports a parivartana: each body sits in a sign ruled by the other.
func exchange(g Grahas, a, b m.Body) bool {
	pa, ok1 := g[a]
	pb, ok2 := g[b]
	return ok1 && ok2 && a != b && LordOf(pa.Sign) == b && LordOf(pb.Sign) == a
}

func dhanaYoga(lagna m.Sign, g Grahas) (m.MYoga, bool) {
	l2, l11 := HouseLord(lagna, 2), HouseLord(lagna, 11)
	if l2 == l11 || !(sameSign(g, l2, l11) || exchange(g, l2, l11)) {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Dhana Yoga",
		Category:    m.YogaWealth,
		Bodies:      []m.Body{l2, l11},
		Description: fmt.Sprintf("Lords of the 2nd (%s) and 11th (%s) are conjunct or exchange signs", l2, l11),
	}, true
}

func rajaYoga(lagna m.Sign, g Grahas) (m.MYoga, bool) {
	l9, l10 := HouseLord(lagna, 9), HouseLord(lagna, 10)
	p9, ok1 := g[l9]
	p10, ok2 := g[l10]
	if !ok1 || !ok2 {
		return m.MYoga{}, false
	}
	if l9 == l10 {
		return m.MYoga{
			Name:        "Raja Yoga",
			Category:    m.YogaPower,
			Bodies:      []m.Body{l9},
			Description: fmt.Sprintf("%s rules both the 9th and the 10th house", l9),
		}, true
	}
	dist := p9.Sign.Distance(p10.Sign)
	if dist != 0 && dist != 6 {
		return m.MYoga{}, false
	}
	relation := "are conjunct"
	if dist == 6 {
		relation = "aspect each other from the 7th"
	}
	return m.MYoga{
		Name:        "Raja Yoga",
		Category:    m.YogaPower,
		Bodies:      []m.Body{l9, l10},
		Description: fmt.Sprintf("Lords of the 9th (%s) and 10th (%s) %s", l9, l10, relation),
	}, true
}

func lakshmiYoga(lagna m.Sign, g Grahas) (m.MYoga, bool) {
	l9, l1 := HouseLord(lagna, 9), HouseLord(lagna, 1)
	p9, ok1 := g[l9]
	p1, ok2 := g[l1]
	if !ok1 || !ok2 {
		return m.MYoga{}, false
	}
	ninthStrong := IsAngular(p9.House) && (p9.Dignity == m.Exalted || p9.Dignity == m.OwnSign)
	lagnaStrong := IsStrong(p1.Dignity) || IsAngular(p1.House) || IsTrine(p1.House)
	if !ninthStrong || !lagnaStrong {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Lakshmi Yoga",
		Category:    m.YogaWealth,
		Bodies:      []m.Body{l9, l1},
		Description: fmt.Sprintf("9th lord %s is %s in angular house %d and lagna lord %s is strong", l9, p9.Dignity, p9.House, l1),
	}, true
}

func daridraYoga(lagna m.Sign, g Grahas) (m.MYoga, bool) {
	l11 := HouseLord(lagna, 11)
	p, ok := g[l11]
	if !ok || !IsDusthana(p.House) {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Daridra Yoga",
		Category:    m.YogaPoverty,
		Bodies:      []m.Body{l11},
		Description: fmt.Sprintf("11th lord %s occupies dusthana house %d", l11, p.House),
	}, true
}

// kemadrumaYoga: no planet other than the Sun and the nodes flanks the Moon,
// and the Moon is not angular.
func kemadrumaYoga(_ m.Sign, g Grahas) (m.MYoga, bool) {
	moon, ok := g[m.Moon]
	if !ok || IsAngular(moon.House) {
		return m.MYoga{}, false
	}
	second, twelfth := moon.Sign.Add(1), moon.Sign.Add(-1)
	for _, b := range m.ClassicalBodies {
		if b == m.Sun || b == m.Moon {
			continue
		}
		if p, ok := g[b]; ok && (p.Sign == second || p.Sign == twelfth) {
			return m.MYoga{}, false
		}
	}
	return m.MYoga{
		Name:        "Kemadruma Yoga",
		Category:    m.YogaMisfortune,
		Bodies:      []m.Body{m.Moon},
		Description: "No planet occupies the 2nd or 12th from the Moon and the Moon is not angular",
	}, true
}

func papaKartariYoga(_ m.Sign, g Grahas) (m.MYoga, bool) {
	var in2, in12 []m.Body
	for _, b := range naturalMalefics {
		p, ok := g[b]
		if !ok {
			continue
		}
		switch p.House {
		case 2:
			in2 = append(in2, b)
		case 12:
			in12 = append(in12, b)
		}
	}
	if len(in2) == 0 || len(in12) == 0 {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Papa Kartari Yoga",
		Category:    m.YogaMisfortune,
		Bodies:      append(in2, in12...),
		Description: "Malefics hem in the lagna from the 2nd and 12th houses",
	}, true
}

func chandraMangalaYoga(_ m.Sign, g Grahas) (m.MYoga, bool) {
	if !sameSign(g, m.Moon, m.Mars) {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Chandra-Mangala Yoga",
		Category:    m.YogaWealth,
		Bodies:      []m.Body{m.Moon, m.Mars},
		Description: fmt.Sprintf("Moon and Mars are conjunct in %s", g[m.Moon].Rashi),
	}, true
}

func budhaAdityaYoga(_ m.Sign, g Grahas) (m.MYoga, bool) {
	if !sameSign(g, m.Sun, m.Mercury) {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Budha-Aditya Yoga",
		Category:    m.YogaLearning,
		Bodies:      []m.Body{m.Sun, m.Mercury},
		Description: fmt.Sprintf("Sun and Mercury are conjunct in %s", g[m.Sun].Rashi),
	}, true
}

func saraswatiYoga(_ m.Sign, g Grahas) (m.MYoga, bool) {
	bodies := []m.Body{m.Jupiter, m.Venus, m.Mercury}
	for _, b := range bodies {
		p, ok := g[b]
		if !ok || !containsInt(saraswatiHouses, p.House) {
			return m.MYoga{}, false
		}
	}
	return m.MYoga{
		Name:        "Saraswati Yoga",
		Category:    m.YogaLearning,
		Bodies:      bodies,
		Description: "Jupiter, Venus and Mercury occupy angular, trine or 2nd houses",
	}, true
}

func vipareetaRajaYoga(lagna m.Sign, g Grahas) (m.MYoga, bool) {
	var lords []m.Body
	var parts []string
	for _, h := range DusthanaHouses {
		lord := HouseLord(lagna, h)
		p, ok := g[lord]
		if !ok || !IsDusthana(p.House) || containsBody(lords, lord) {
			continue
		}
		lords = append(lords, lord)
		parts = append(parts, fmt.Sprintf("%s (lord of %d) in house %d", lord, h, p.House))
	}
	if len(lords) == 0 {
		return m.MYoga{}, false
	}
	return m.MYoga{
		Name:        "Vipareeta Raja Yoga",
		Category:    m.YogaPower,
		Bodies:      lords,
		Description: "Dusthana lords in dusthanas: " + strings.Join(parts, ", "),
	}, true
}
