package core

import (
	m "jyotish-chart/src/models"
)

const transitNeutral = "Neutral"

// transitEffects is the gochara reading of each body by house offset from
// its natal sign. Offsets missing from a row read as Neutral.
var transitEffects = map[m.Body]map[int]string{
	m.Sun: {
		3: "Favourable: courage and success", 6: "Favourable: victory over rivals",
		10: "Favourable: recognition at work", 11: "Favourable: gains and promotion",
		8: "Challenging: health and vitality", 12: "Challenging: expenses and fatigue",
	},
	m.Moon: {
		1: "Favourable: comfort", 3: "Favourable: initiative", 6: "Favourable: relief from troubles",
		7: "Favourable: companionship", 10: "Favourable: success in undertakings", 11: "Favourable: gains",
		8: "Challenging: anxiety", 12: "Challenging: losses",
	},
	m.Mars: {
		3: "Favourable: energy and gains", 6: "Favourable: defeat of enemies", 11: "Favourable: property gains",
		1: "Challenging: irritability", 8: "Challenging: accidents",
	},
	m.Mercury: {
		2: "Favourable: earnings", 4: "Favourable: family harmony", 6: "Favourable: recognition",
		8: "Favourable: prosperity", 10: "Favourable: good trade", 11: "Favourable: gains",
		12: "Challenging: misunderstandings",
	},
	m.Jupiter: {
		2: "Favourable: wealth", 5: "Favourable: children and wisdom", 7: "Favourable: marriage and partnerships",
		9: "Favourable: fortune and dharma", 11: "Favourable: all-round gains",
		8: "Challenging: obstacles", 12: "Challenging: expenditure",
	},
	m.Venus: {
		1: "Favourable: pleasures", 2: "Favourable: wealth", 3: "Favourable: prosperity",
		4: "Favourable: friends", 5: "Favourable: children", 8: "Favourable: possessions",
		9: "Favourable: fortune", 11: "Favourable: gains", 12: "Favourable: comforts",
		6: "Challenging: disputes", 7: "Challenging: relationship strain",
	},
	m.Saturn: {
		3: "Favourable: perseverance rewarded", 6: "Favourable: victory over enemies", 11: "Favourable: steady gains",
		1: "Challenging: Sade Sati peak", 8: "Challenging: Ashtama Shani", 12: "Challenging: Sade Sati onset",
	},
	m.Rahu: {
		3: "Favourable: bold ventures", 6: "Favourable: overcoming rivals", 11: "Favourable: sudden gains",
		8: "Challenging: hidden troubles",
	},
	m.Ketu: {
		3: "Favourable: detachment brings ease", 6: "Favourable: health recovery", 11: "Favourable: spiritual gains",
		8: "Challenging: sudden setbacks",
	},
}

// -----------------------------------------------------------------------------

// TransitOffset counts the house of the current sign from the natal sign, 1..12.
func TransitOffset(birth, current m.Sign) int {
	return (int(current)-int(birth)+m.NumSigns)%m.NumSigns + 1
}

// TransitEffect looks up the reading for a body at an offset.
func TransitEffect(b m.Body, offset int) string {
	if e, ok := transitEffects[b][offset]; ok {
		return e
	}
	return transitNeutral
}

// -----------------------------------------------------------------------------

// Transits compares current sidereal longitudes against the natal signs.
// Bodies without a current position are skipped.
func Transits(natal []m.MGrahaPosition, current map[m.Body]float64) []m.MTransit {
	out := make([]m.MTransit, 0, len(natal))
	for _, p := range natal {
		lon, ok := current[p.Body]
		if !ok {
			continue
		}
		cur := SignOf(lon)
		offset := TransitOffset(p.Sign, cur)
		out = append(out, m.MTransit{
			Body:             p.Body,
			BirthSign:        p.Sign,
			CurrentSign:      cur,
			CurrentLongitude: Normalize(lon),
			HouseOffset:      offset,
			Effect:           TransitEffect(p.Body, offset),
		})
	}
	return out
}
