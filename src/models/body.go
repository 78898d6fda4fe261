package models

import "fmt"

// Body identifies one of the nine grahas. The numeric value is the fixed body
// index used by every lookup table.
type Body int

const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// NumBodies is the number of grahas in a chart.
const NumBodies = 9

var bodyNames = [NumBodies]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"}

// AllBodies lists the nine grahas in index order.
var AllBodies = [NumBodies]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// ClassicalBodies lists the seven visible planets (nodes excluded).
var ClassicalBodies = [7]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

// -----------------------------------------------------------------------------

func (b Body) String() string {
	if b < 0 || int(b) >= NumBodies {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// -----------------------------------------------------------------------------

// IsNode reports whether b is one of the lunar nodes.
func (b Body) IsNode() bool {
	return b == Rahu || b == Ketu
}

// -----------------------------------------------------------------------------

// Valid reports whether b is one of the nine defined grahas.
func (b Body) Valid() bool {
	return b >= Sun && b <= Ketu
}

// -----------------------------------------------------------------------------

func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid body %d", int(b))
	}
	return []byte(bodyNames[b]), nil
}

// -----------------------------------------------------------------------------

func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// -----------------------------------------------------------------------------

// ParseBody resolves a graha by its English name.
func ParseBody(name string) (Body, error) {
	for i, n := range bodyNames {
		if n == name {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", name)
}
