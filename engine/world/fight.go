package world

// Exchange is the result of one discrete fight exchange.
type Exchange int

const (
	// ExchangeIgnored: the monster does not care about the attack.
	ExchangeIgnored Exchange = iota
	// ExchangeHit: the blow landed; whether the monster died is surfaced
	// by the next world update.
	ExchangeHit
	// ExchangeFinalHit: the last-chance blow killed the monster.
	ExchangeFinalHit
	// ExchangePlayerDied: the final exchange went to the monster.
	ExchangePlayerDied
)

// ResolveExchange resolves one exchange of a fight against m. The kill
// threshold is the monster's strength lowered by the carried weapon, by
// the player's strength advantage and by how long the fight has been
// going. The third failed exchange is lethal for the player.
//
// The monster's History counter is advanced by the world update, not
// here; each Submit therefore sees the fight state the previous turn
// left behind.
func (w *World) ResolveExchange(m *Monster, playerStrength int, weaponBonus float64) Exchange {
	if m.History == -1 {
		return ExchangeIgnored
	}

	advantage := w.historyBonus * float64(playerStrength-1)
	effective := m.Strength - weaponBonus - advantage

	if m.History < 2 {
		threshold := effective - w.historyBonus*float64(m.History)
		if threshold <= 0 || w.rng.Float() > threshold {
			m.Kill()
		}
		return ExchangeHit
	}

	// Final exchange: either the monster dies now or the player does.
	threshold := effective - w.lastChanceBonus
	if threshold <= 0 || w.rng.Float() > threshold {
		m.Kill()
		return ExchangeFinalHit
	}
	return ExchangePlayerDied
}
