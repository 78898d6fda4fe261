package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Dignity is the strength category of a body in a sign.
type Dignity int

const (
	Exalted Dignity = iota
	Debilitated
	OwnSign
	Moolatrikona
	FriendSign
	EnemySign
	Neutral
	NotApplicable
)

var dignityNames = map[Dignity]string{
	Exalted:       "Exalted (Uccha)",
	Debilitated:   "Debilitated (Neecha)",
	OwnSign:       "Own Sign (Sva-kshetra)",
	Moolatrikona:  "Moolatrikona",
	FriendSign:    "Friend Sign (Mitra-kshetra)",
	EnemySign:     "Enemy Sign (Shatru-kshetra)",
	Neutral:       "Neutral/Guest",
	NotApplicable: "Not Applicable",
}

func (d Dignity) String() string {
	if n, ok := dignityNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Dignity(%d)", int(d))
}

func (d Dignity) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dignity) UnmarshalText(text []byte) error {
	for k, n := range dignityNames {
		if n == string(text) {
			*d = k
			return nil
		}
	}
	return fmt.Errorf("unknown dignity %q", string(text))
}

// -----------------------------------------------------------------------------

// NodePolicy selects how Rahu and Ketu are treated by the dignity classifier.
type NodePolicy string

const (
	// NodesExcluded reports NotApplicable for the nodes.
	NodesExcluded NodePolicy = "excluded"
	// NodesFunctional reports Neutral with a tentative malefic functional nature.
	NodesFunctional NodePolicy = "functional"
)

// -----------------------------------------------------------------------------

// FunctionalNature is the simplified benefic/malefic reading of a body.
type FunctionalNature string

const (
	FunctionalBenefic FunctionalNature = "Functional Benefic (tentative)"
	FunctionalMalefic FunctionalNature = "Functional Malefic (tentative)"
	FunctionalNeutral FunctionalNature = "Neutral"
)

// -----------------------------------------------------------------------------

// Divisor names a divisional chart (D1, D9, ...).
type Divisor int

// AllDivisors is the fixed set of supported divisional charts.
var AllDivisors = []Divisor{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 16, 20, 24, 27, 30, 40, 45, 60}

func (d Divisor) String() string {
	return "D" + strconv.Itoa(int(d))
}

func (d Divisor) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Divisor) UnmarshalText(text []byte) error {
	n, err := strconv.Atoi(strings.TrimPrefix(string(text), "D"))
	if err != nil {
		return fmt.Errorf("invalid divisor %q: %w", string(text), err)
	}
	*d = Divisor(n)
	return nil
}
