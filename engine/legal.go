package engine

// LegalMask is the bitmask of legal action indices. Bit i of word i/64 is set
// when action i is legal.
type LegalMask [8]uint64

// setBit sets bit idx in the bitmask.
func setBit(mask *LegalMask, idx uint16) {
	mask[idx/64] |= 1 << (idx % 64)
}

// Has reports whether action idx is set.
func (m LegalMask) Has(idx uint16) bool {
	if idx >= ActionSpaceSize {
		return false
	}
	return m[idx/64]>>(idx%64)&1 == 1
}

// LegalActions returns a bitmask of legal action indices for the acting
// player. Zero heap allocation.
func (g *Game) LegalActions() LegalMask {
	var mask LegalMask

	switch {
	case g.Phase == PhaseOver:
		// No legal actions.

	case len(g.Pending) > 0:
		g.legalChoice(&mask)

	case g.Phase == PhaseSetup:
		g.legalSetup(&mask)

	case g.Phase == PhaseMain:
		g.legalMain(&mask)
	}

	return mask
}

// LegalActionsList returns legal actions as a slice (for testing; allocates).
func (g *Game) LegalActionsList() []uint16 {
	mask := g.LegalActions()
	var actions []uint16
	for i := uint16(0); i < ActionSpaceSize; i++ {
		if mask.Has(i) {
			actions = append(actions, i)
		}
	}
	return actions
}

// handEncodeLimit caps hand indices to the encodable range. Cards past the
// limit stay in hand but cannot be selected until the hand shrinks.
func handEncodeLimit(hand []*CardDef) uint8 {
	if len(hand) > MaxHandEncode {
		return MaxHandEncode
	}
	return uint8(len(hand))
}

// legalSetup populates legal actions for the setup phase.
func (g *Game) legalSetup(mask *LegalMask) {
	ps := g.current()
	limit := handEncodeLimit(ps.Hand)

	if ps.Active == nil {
		for i := uint8(0); i < limit; i++ {
			if ps.Hand[i].IsBasicPokemon() {
				setBit(mask, EncodePlaceActive(i))
			}
		}
		return
	}

	if ps.FindEmptyBench() >= 0 {
		for i := uint8(0); i < limit; i++ {
			if ps.Hand[i].IsBasicPokemon() {
				setBit(mask, EncodePlaceBench(i))
			}
		}
	}

	if ps.EnergyZone == EnergyNone {
		for _, et := range g.deckEnergyTypes(ps) {
			setBit(mask, EncodeSetEnergyZone(et))
		}
		return
	}

	setBit(mask, ActionConfirmSetup)
}

// deckEnergyTypes lists the concrete energy colors among the player's Pokemon
// across all zones. A deck without colored Pokemon may pick any color.
func (g *Game) deckEnergyTypes(ps *PlayerState) []EnergyType {
	var seen [NumConcreteEnergy]bool
	mark := func(c *CardDef) {
		if c.IsPokemon() && c.EnergyType != EnergyColorless && c.EnergyType != EnergyNone {
			seen[c.EnergyType] = true
		}
	}
	for _, c := range ps.Deck {
		mark(c)
	}
	for _, c := range ps.Hand {
		mark(c)
	}
	for pos := uint8(0); pos < BoardSlots; pos++ {
		if p := ps.Pokemon(pos); p != nil {
			mark(p.Def)
		}
	}

	var types []EnergyType
	for et := EnergyType(0); et < NumConcreteEnergy; et++ {
		if seen[et] {
			types = append(types, et)
		}
	}
	if len(types) == 0 {
		for et := EnergyType(0); et < NumConcreteEnergy; et++ {
			types = append(types, et)
		}
	}
	return types
}

// legalMain populates legal actions for the main phase.
func (g *Game) legalMain(mask *LegalMask) {
	ps := g.current()
	limit := handEncodeLimit(ps.Hand)
	benchRoom := ps.FindEmptyBench() >= 0

	for i := uint8(0); i < limit; i++ {
		c := ps.Hand[i]
		switch {
		case c.IsBasicPokemon():
			if benchRoom {
				setBit(mask, EncodePlayToBench(i))
			}
		case c.IsEvolution():
			for pos := uint8(0); pos < BoardSlots; pos++ {
				if g.canEvolveAt(ps, c, pos) {
					setBit(mask, EncodeEvolve(i, pos))
				}
			}
		case c.CardType == TypeItem:
			setBit(mask, EncodePlayItem(i))
		case c.CardType == TypeTool:
			if ps.Active != nil && ps.Active.Tool == nil {
				setBit(mask, EncodePlayItem(i))
			}
		case c.CardType == TypeFossil:
			if benchRoom {
				setBit(mask, EncodePlayItem(i))
			}
		case c.CardType == TypeSupporter:
			if !ps.SupporterPlayed {
				setBit(mask, EncodePlaySupporter(i))
			}
		}
	}

	// The opening player skips energy on the very first turn.
	if !ps.EnergyAttached && ps.EnergyZone != EnergyNone && !g.FirstTurn {
		for pos := uint8(0); pos < BoardSlots; pos++ {
			if ps.Pokemon(pos) != nil {
				setBit(mask, EncodeAttachEnergy(pos))
			}
		}
	}

	g.legalRetreat(mask, ps)
	g.legalAbilities(mask, ps)
	g.legalAttacks(mask, ps)

	setBit(mask, ActionEndTurn)
}

// canEvolveAt reports whether the evolution card may be played onto the
// Pokemon at board position pos.
func (g *Game) canEvolveAt(ps *PlayerState, c *CardDef, pos uint8) bool {
	p := ps.Pokemon(pos)
	if p == nil || g.TurnNumber < 2 {
		return false
	}
	return c.EvolvesFrom == p.Def.Name && p.CanEvolve(g.TurnNumber)
}

func (g *Game) legalRetreat(mask *LegalMask, ps *PlayerState) {
	active := ps.Active
	if active == nil || ps.Retreated || active.Flags.CantRetreat {
		return
	}
	if active.HasStatus(StatusAsleep) || active.HasStatus(StatusParalyzed) {
		return
	}
	if len(active.AttachedEnergy) < g.effectiveRetreatCost(ps, active) {
		return
	}
	for i, b := range ps.Bench {
		if b != nil {
			setBit(mask, EncodeRetreat(uint8(i)))
		}
	}
}

// effectiveRetreatCost applies per-turn discounts and passive tool reductions.
func (g *Game) effectiveRetreatCost(ps *PlayerState, p *PlayedCard) int {
	cost := int(p.Def.RetreatCost) - int(ps.RetreatDiscount)
	if p.Tool != nil {
		for _, m := range g.registry.ToolEffects(p.Tool.ID) {
			if m.Kind == MechPassiveRetreatReduction {
				cost -= int(m.Amount)
			}
		}
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

func (g *Game) legalAbilities(mask *LegalMask, ps *PlayerState) {
	for pos := uint8(0); pos < BoardSlots; pos++ {
		p := ps.Pokemon(pos)
		if p == nil || p.Def.Ability == nil || p.Flags.UsedAbility {
			continue
		}
		effects := g.registry.AbilityEffects(p.Def.ID)
		if len(effects) == 0 {
			continue
		}
		// Purely passive abilities never appear as actions.
		activated := false
		for i := range effects {
			if !effects[i].isPassive() {
				activated = true
				break
			}
		}
		if activated {
			setBit(mask, EncodeUseAbility(pos))
		}
	}
}

func (g *Game) legalAttacks(mask *LegalMask, ps *PlayerState) {
	active := ps.Active
	if active == nil || g.FirstTurn || active.Flags.CantAttack {
		return
	}
	if active.HasStatus(StatusAsleep) || active.HasStatus(StatusParalyzed) {
		return
	}
	for k := range active.Def.Attacks {
		if active.Def.CanUseAttack(k, active.AttachedEnergy) {
			setBit(mask, EncodeAttack(uint8(k)))
		}
	}
}

// legalChoice populates legal actions while a pending choice is on top.
func (g *Game) legalChoice(mask *LegalMask) {
	pc := g.topPending()
	chooser := &g.Players[pc.Chooser]

	switch pc.Kind {
	case PendingPromote:
		for i, b := range chooser.Bench {
			if b != nil {
				setBit(mask, EncodePromote(uint8(i)))
			}
		}

	case PendingChooseTarget:
		for _, pos := range pc.Targets {
			setBit(mask, EncodeChooseTarget(pos))
		}

	case PendingDiscardHand:
		limit := handEncodeLimit(chooser.Hand)
		for i := uint8(0); i < limit; i++ {
			setBit(mask, EncodeChooseOption(i))
		}

	case PendingDiscardEnergy:
		side := chooser
		if p := side.Pokemon(pc.Position); p != nil {
			n := len(p.AttachedEnergy)
			if n > MaxHandEncode {
				n = MaxHandEncode
			}
			for i := uint8(0); i < uint8(n); i++ {
				setBit(mask, EncodeChooseOption(i))
			}
		}
	}
}
