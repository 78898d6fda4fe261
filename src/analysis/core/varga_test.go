package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jyotish-chart/src/models"
)

func lonOf(s m.Sign, deg float64) float64 {
	return float64(s)*30 + deg
}

func TestNavamsaLastPartOfPisces(t *testing.T) {
	assert.Equal(t, 8, VargaPart(29.99, 9))

	got, err := VargaSign(lonOf(m.Pisces, 29.99), 9)
	require.NoError(t, err)
	assert.Equal(t, m.Sign((11*9+8)%12), got)
}

func TestVargaRules(t *testing.T) {
	tests := []struct {
		name string
		sign m.Sign
		deg  float64
		d    m.Divisor
		want m.Sign
	}{
		{"rasi", m.Virgo, 12, 1, m.Virgo},
		{"hora odd first half", m.Aries, 10, 2, m.Leo},
		{"hora odd second half", m.Aries, 20, 2, m.Cancer},
		{"hora even first half", m.Taurus, 10, 2, m.Cancer},
		{"drekkana second part", m.Aries, 15, 3, m.Leo},
		{"drekkana third part", m.Taurus, 25, 3, m.Capricorn},
		{"chaturthamsa", m.Aries, 8, 4, m.Cancer},
		{"panchamsa odd", m.Gemini, 13, 5, m.Sagittarius},
		{"panchamsa even", m.Cancer, 1, 5, m.Taurus},
		{"shashtamsa even", m.Taurus, 0, 6, m.Libra},
		{"saptamsa", m.Aries, 5, 7, m.Taurus},
		{"ashtamsa even", m.Cancer, 0, 8, m.Sagittarius},
		{"navamsa aries start", m.Aries, 0, 9, m.Aries},
		{"navamsa taurus start", m.Taurus, 0, 9, m.Capricorn},
		{"dasamsa", m.Gemini, 3, 10, m.Capricorn},
		{"dwadasamsa", m.Taurus, 0, 12, m.Taurus},
		{"dwadasamsa wraps", m.Pisces, 29.5, 12, m.Aquarius},
		{"shodasamsa even", m.Taurus, 0, 16, m.Leo},
		{"vimsamsa fixed", m.Taurus, 0, 20, m.Sagittarius},
		{"vimsamsa dual", m.Gemini, 3, 20, m.Libra},
		{"chaturvimsamsa dual", m.Gemini, 0, 24, m.Libra},
		{"chaturvimsamsa movable", m.Cancer, 2.5, 24, m.Virgo},
		{"trimsamsa odd", m.Aries, 7, 30, m.Aquarius},
		{"trimsamsa even", m.Taurus, 7, 30, m.Virgo},
		{"trimsamsa even last", m.Taurus, 29, 30, m.Scorpio},
		{"khavedamsa even", m.Taurus, 0, 40, m.Libra},
		{"shashtyamsa", m.Aries, 29.75, 60, m.Sign(59 % 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VargaSign(lonOf(tt.sign, tt.deg), tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllVargasStayInRange(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 0.61 {
		vargas := AllVargas(lon)
		require.Len(t, vargas, len(m.AllDivisors))
		for d, s := range vargas {
			require.True(t, s.Valid(), "%s of %.2f", d, lon)
		}
		assert.Equal(t, SignOf(lon), vargas[1])
	}
}

func TestVargaPartNeverOverflows(t *testing.T) {
	for _, d := range m.AllDivisors {
		assert.Equal(t, int(d)-1, VargaPart(29.999999, int(d)), "%s", d)
		assert.Equal(t, 0, VargaPart(0, int(d)), "%s", d)
	}
}

func TestUnsupportedDivisor(t *testing.T) {
	_, err := VargaSign(10, 13)
	assert.Error(t, err)
}
