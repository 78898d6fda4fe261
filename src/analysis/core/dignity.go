package core

import (
	m "jyotish-chart/src/models"
)

// -----------------------------------------------------------------------------

// ClassifyDignity returns the single dignity of body in sign. Categories are
// tested in priority order and the first match wins. Every moolatrikona sign
// is also an own or exaltation sign, so Moolatrikona is never returned.
func ClassifyDignity(body m.Body, sign m.Sign, policy m.NodePolicy) m.Dignity {
	if body.IsNode() {
		if policy == m.NodesFunctional {
			return m.Neutral
		}
		return m.NotApplicable
	}

	if ex, ok := ExaltationSigns[body]; ok && ex == sign {
		return m.Exalted
	}
	if deb, ok := DebilitationSign(body); ok && deb == sign {
		return m.Debilitated
	}
	if containsSign(OwnSigns[body], sign) {
		return m.OwnSign
	}
	if mt, ok := MoolatrikonaSigns[body]; ok && mt == sign {
		return m.Moolatrikona
	}

	lord := LordOf(sign)
	if containsBody(NaturalFriends[body], lord) {
		return m.FriendSign
	}
	if containsBody(NaturalEnemies[body], lord) {
		return m.EnemySign
	}
	return m.Neutral
}

// -----------------------------------------------------------------------------

// FunctionalNatureOf gives the simplified benefic/malefic reading of a body.
// Nodes are tentatively malefic only under the functional node policy.
func FunctionalNatureOf(body m.Body, policy m.NodePolicy) m.FunctionalNature {
	if body.IsNode() {
		if policy == m.NodesFunctional {
			return m.FunctionalMalefic
		}
		return m.FunctionalNeutral
	}
	if NaturalBenefics[body] {
		return m.FunctionalBenefic
	}
	return m.FunctionalMalefic
}

// -----------------------------------------------------------------------------

// IsStrong reports exaltation or own-sign placement.
func IsStrong(d m.Dignity) bool {
	return d == m.Exalted || d == m.OwnSign || d == m.Moolatrikona
}
