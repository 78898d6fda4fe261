package models

import "fmt"

// Sign is a rashi index 0 (Mesha) through 11 (Meena).
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// NumSigns is the number of rashis in the zodiac.
const NumSigns = 12

var signNames = [NumSigns]string{
	"Mesha (Aries)", "Vrishabha (Taurus)", "Mithuna (Gemini)", "Karka (Cancer)",
	"Simha (Leo)", "Kanya (Virgo)", "Tula (Libra)", "Vrishchika (Scorpio)",
	"Dhanus (Sagittarius)", "Makara (Capricorn)", "Kumbha (Aquarius)", "Meena (Pisces)",
}

// Modality is the movable / fixed / dual grouping of the signs.
type Modality int

const (
	Movable Modality = iota
	Fixed
	Dual
)

// -----------------------------------------------------------------------------

func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// -----------------------------------------------------------------------------

// Valid reports whether s is within 0..11.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

// -----------------------------------------------------------------------------

// IsOdd reports whether s is an odd sign in 1-based counting (Aries, Gemini, ...).
func (s Sign) IsOdd() bool {
	return int(s)%2 == 0
}

// -----------------------------------------------------------------------------

// Modality classifies the sign into groups of four.
func (s Sign) Modality() Modality {
	return Modality(int(s) % 3)
}

// -----------------------------------------------------------------------------

// Add moves n signs forward (negative n moves backward), wrapping around the zodiac.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%NumSigns + NumSigns) % NumSigns)
}

// -----------------------------------------------------------------------------

// Distance counts signs forward from s to other, in 0..11.
func (s Sign) Distance(other Sign) int {
	return ((int(other)-int(s))%NumSigns + NumSigns) % NumSigns
}

// -----------------------------------------------------------------------------

// HouseName returns the classical name of a 1-based house.
func HouseName(house int) string {
	names := [NumSigns]string{
		"Lagna (1st)", "Dhana (2nd)", "Sahaja (3rd)", "Sukha (4th)",
		"Putra (5th)", "Ripu (6th)", "Kalatra (7th)", "Mrityu (8th)",
		"Dharma (9th)", "Karma (10th)", "Labha (11th)", "Vyaya (12th)",
	}
	if house < 1 || house > NumSigns {
		return fmt.Sprintf("House(%d)", house)
	}
	return names[house-1]
}
