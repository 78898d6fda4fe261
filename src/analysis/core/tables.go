package core

import (
	m "jyotish-chart/src/models"
)

// Static classical lookup tables. Every table is keyed by the Body or Sign
// enum so a single rule can be tested on its own.

// SignLords maps each sign to its ruling body.
var SignLords = [m.NumSigns]m.Body{
	m.Mars, m.Venus, m.Mercury, m.Moon, m.Sun, m.Mercury,
	m.Venus, m.Mars, m.Jupiter, m.Saturn, m.Saturn, m.Jupiter,
}

// ExaltationSigns lists the exaltation sign of each classical body.
var ExaltationSigns = map[m.Body]m.Sign{
	m.Sun:     m.Aries,
	m.Moon:    m.Taurus,
	m.Mars:    m.Capricorn,
	m.Mercury: m.Virgo,
	m.Jupiter: m.Cancer,
	m.Venus:   m.Pisces,
	m.Saturn:  m.Libra,
}

// OwnSigns lists the signs ruled by each classical body.
var OwnSigns = map[m.Body][]m.Sign{
	m.Sun:     {m.Leo},
	m.Moon:    {m.Cancer},
	m.Mars:    {m.Aries, m.Scorpio},
	m.Mercury: {m.Gemini, m.Virgo},
	m.Jupiter: {m.Sagittarius, m.Pisces},
	m.Venus:   {m.Taurus, m.Libra},
	m.Saturn:  {m.Capricorn, m.Aquarius},
}

// MoolatrikonaSigns lists the moolatrikona sign of each classical body. Each
// one is also an own or exaltation sign, which ClassifyDignity tests first.
var MoolatrikonaSigns = map[m.Body]m.Sign{
	m.Sun:     m.Leo,
	m.Moon:    m.Taurus,
	m.Mars:    m.Aries,
	m.Mercury: m.Virgo,
	m.Jupiter: m.Sagittarius,
	m.Venus:   m.Libra,
	m.Saturn:  m.Aquarius,
}

// NaturalFriends and NaturalEnemies are the naisargika relationships.
var NaturalFriends = map[m.Body][]m.Body{
	m.Sun:     {m.Moon, m.Mars, m.Jupiter},
	m.Moon:    {m.Sun, m.Mercury},
	m.Mars:    {m.Sun, m.Moon, m.Jupiter},
	m.Mercury: {m.Sun, m.Venus},
	m.Jupiter: {m.Sun, m.Moon, m.Mars},
	m.Venus:   {m.Mercury, m.Saturn},
	m.Saturn:  {m.Mercury, m.Venus},
}

var NaturalEnemies = map[m.Body][]m.Body{
	m.Sun:     {m.Venus, m.Saturn},
	m.Moon:    {},
	m.Mars:    {m.Mercury},
	m.Mercury: {m.Moon},
	m.Jupiter: {m.Mercury, m.Venus},
	m.Venus:   {m.Sun, m.Moon},
	m.Saturn:  {m.Sun, m.Moon, m.Mars},
}

// NaturalBenefics are the bodies scored as benefic by ashtakavarga and the
// functional-nature reading.
var NaturalBenefics = map[m.Body]bool{
	m.Moon:    true,
	m.Mercury: true,
	m.Jupiter: true,
	m.Venus:   true,
}

// -----------------------------------------------------------------------------
// Vimshottari
// -----------------------------------------------------------------------------

// DashaOrder is the fixed Vimshottari sequence, starting from Ashwini's lord.
var DashaOrder = [m.NumBodies]m.Body{
	m.Ketu, m.Venus, m.Sun, m.Moon, m.Mars, m.Rahu, m.Jupiter, m.Saturn, m.Mercury,
}

// DashaYears is the full period of each lord; the values sum to DashaCycleYears.
var DashaYears = map[m.Body]float64{
	m.Ketu:    7,
	m.Venus:   20,
	m.Sun:     6,
	m.Moon:    10,
	m.Mars:    7,
	m.Rahu:    18,
	m.Jupiter: 16,
	m.Saturn:  19,
	m.Mercury: 17,
}

const DashaCycleYears = 120.0

// -----------------------------------------------------------------------------
// Nakshatras
// -----------------------------------------------------------------------------

const (
	NumNakshatras = 27
	NakshatraSpan = 360.0 / NumNakshatras
	PadaSpan      = NakshatraSpan / 4
)

var NakshatraNames = [NumNakshatras]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// -----------------------------------------------------------------------------
// Strength constants
// -----------------------------------------------------------------------------

// PositionalStrength scores a dignity in virupas. The Moolatrikona entry
// completes the scale but ClassifyDignity never yields that category.
var PositionalStrength = map[m.Dignity]float64{
	m.Exalted:      60,
	m.Moolatrikona: 50,
	m.OwnSign:      45,
	m.FriendSign:   30,
	m.Neutral:      22.5,
	m.EnemySign:    15,
	m.Debilitated:  0,
}

// DirectionalHouses is the house in which each body gains dig bala.
var DirectionalHouses = map[m.Body]int{
	m.Jupiter: 1,
	m.Mercury: 1,
	m.Moon:    4,
	m.Venus:   4,
	m.Saturn:  7,
	m.Sun:     10,
	m.Mars:    10,
}

// DayBodies gain temporal strength above the horizon, night bodies below it.
// Mercury is strong in both.
var DayBodies = map[m.Body]bool{m.Sun: true, m.Jupiter: true, m.Venus: true}
var NightBodies = map[m.Body]bool{m.Moon: true, m.Mars: true, m.Saturn: true}

// NaturalStrength is the naisargika bala in virupas.
var NaturalStrength = map[m.Body]float64{
	m.Sun:     60,
	m.Moon:    51.43,
	m.Venus:   42.86,
	m.Jupiter: 34.29,
	m.Mercury: 25.71,
	m.Mars:    17.14,
	m.Saturn:  8.57,
}

const (
	DirectionalBonus = 60.0
	TemporalBonus    = 30.0
	MotionDirect     = 30.0
	MotionRetrograde = 60.0
	VirupasPerRupa   = 60.0
)

// AshtakavargaOffsets are the sign offsets (from the contributor's sign)
// that receive a point.
var AshtakavargaOffsets = []int{0, 2, 4, 5, 8, 9, 11}

const (
	BeneficPoints = 5
	MaleficPoints = 3
)

// -----------------------------------------------------------------------------

func containsBody(list []m.Body, b m.Body) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}

func containsSign(list []m.Sign, s m.Sign) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// LordOf returns the ruler of a sign.
func LordOf(s m.Sign) m.Body {
	return SignLords[s]
}

// DebilitationSign is always six signs from the exaltation sign.
func DebilitationSign(b m.Body) (m.Sign, bool) {
	ex, ok := ExaltationSigns[b]
	if !ok {
		return 0, false
	}
	return ex.Add(6), true
}
