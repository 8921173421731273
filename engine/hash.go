package engine

// StateHash returns a fast 64-bit FNV-1a hash over the public match state.
// Two matches driven by the same seed and action sequence hash identically,
// which makes replay divergence cheap to detect.
func (g *Game) StateHash() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)

	mix := func(v uint64) {
		h ^= v
		h *= prime
	}
	mixCard := func(c *CardDef) {
		for i := 0; i < len(c.ID); i++ {
			mix(uint64(c.ID[i]))
		}
	}
	mixPokemon := func(p *PlayedCard) {
		if p == nil {
			mix(0xff)
			return
		}
		mixCard(p.Def)
		mix(uint64(p.DamageCounters))
		mix(uint64(len(p.AttachedEnergy)))
		for _, e := range p.AttachedEnergy {
			mix(uint64(e))
		}
		for s := StatusCondition(0); s < numStatusConditions; s++ {
			if p.Status[s] {
				mix(uint64(s) + 1)
			}
		}
		if p.Tool != nil {
			mixCard(p.Tool)
		}
	}

	for i := range g.Players {
		ps := &g.Players[i]
		for _, c := range ps.Deck {
			mixCard(c)
		}
		for _, c := range ps.Hand {
			mixCard(c)
		}
		for _, c := range ps.Discard {
			mixCard(c)
		}
		for pos := uint8(0); pos < BoardSlots; pos++ {
			mixPokemon(ps.Pokemon(pos))
		}
		mix(uint64(ps.EnergyZone))
		mix(uint64(ps.PrizeRemaining) << 8)
	}

	mix(uint64(g.TurnNumber) << 32)
	mix(uint64(g.Current) << 48)
	mix(uint64(g.Phase) << 52)
	mix(uint64(len(g.Pending)) << 56)
	return h
}
