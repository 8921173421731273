package engine

// executeAttackEffects runs the mechanics of an attack. Damage-modifier
// mechanics resolve first and may replace or extend the printed damage; all
// remaining mechanics execute immediately after. Returns the damage override
// and whether one applies.
func (g *Game) executeAttackEffects(cardID string, attackIdx int) (uint16, bool) {
	effects := g.registry.AttackEffects(cardID, attackIdx)
	var override uint16
	hasOverride := false

	for i := range effects {
		m := &effects[i]
		switch m.Kind {
		case MechNoDamageOnTails:
			if !g.RNG.CoinFlip() {
				override = 0
				hasOverride = true
			}
		case MechDamagePerCoinFlip:
			heads := g.RNG.CoinFlips(int(m.Flips))
			override = uint16(heads) * m.Per
			hasOverride = true
		case MechConditionalDamage:
			if g.checkCondition(m) {
				override += m.Amount
				hasOverride = true
			}
		case MechDamageMultiplied:
			override = g.countCondition(m) * m.Per
			hasOverride = true
		case MechDamagePerEnergy:
			if active := g.current().Active; active != nil {
				count := uint16(0)
				for _, e := range active.AttachedEnergy {
					if m.Energy == EnergyNone || e == m.Energy {
						count++
					}
				}
				override = count * m.Per
				hasOverride = true
			}
		case MechDamagePerBench:
			side := g.opponent()
			if m.Own {
				side = g.current()
			}
			override = uint16(side.BenchCount()) * m.Per
			hasOverride = true
		case MechDamagePerDamageCounter:
			if active := g.current().Active; active != nil {
				override = active.DamageCounters * m.Per
				hasOverride = true
			}
		}
	}

	for i := range effects {
		m := &effects[i]
		if m.isDamageModifier() {
			continue
		}
		g.executeMechanic(m)
	}

	return override, hasOverride
}

func (g *Game) checkCondition(m *Mechanic) bool {
	switch m.Cond {
	case CondTargetHasDamage:
		opp := g.opponent().Active
		return opp != nil && opp.DamageCounters > 0
	case CondCoinFlipHeads:
		return g.RNG.CoinFlip()
	case CondPerOwnBench:
		return g.current().BenchCount() > 0
	case CondPerOpponentBench:
		return g.opponent().BenchCount() > 0
	case CondPerDamageOnSelf:
		active := g.current().Active
		return active != nil && active.DamageCounters > 0
	case CondPerEnergyAttached:
		active := g.current().Active
		return active != nil && len(active.AttachedEnergy) > 0
	}
	return false
}

func (g *Game) countCondition(m *Mechanic) uint16 {
	switch m.Cond {
	case CondPerOwnBench:
		return uint16(g.current().BenchCount())
	case CondPerOpponentBench:
		return uint16(g.opponent().BenchCount())
	case CondPerDamageOnSelf:
		if active := g.current().Active; active != nil {
			return active.DamageCounters
		}
	case CondPerEnergyAttached:
		if active := g.current().Active; active != nil {
			count := uint16(0)
			for _, e := range active.AttachedEnergy {
				if m.Energy == EnergyNone || e == m.Energy {
					count++
				}
			}
			return count
		}
	case CondCoinFlipHeads:
		if g.RNG.CoinFlip() {
			return 1
		}
	case CondTargetHasDamage:
		if opp := g.opponent().Active; opp != nil && opp.DamageCounters > 0 {
			return 1
		}
	}
	return 0
}

// executeMechanic applies one non-modifier mechanic to the game state.
// Unmet preconditions fizzle silently and bump the fizzle counter; choices
// with several candidates are pushed onto the pending stack instead of being
// resolved arbitrarily.
func (g *Game) executeMechanic(m *Mechanic) {
	cur := g.current()
	opp := g.opponent()

	switch m.Kind {
	case MechHeal, MechFullHeal, MechApplyStatus, MechCureStatus,
		MechDiscardAllEnergy, MechBenchDamage:
		g.applyToTarget(m, m.Target)

	case MechApplyStatusOnCoinFlip:
		if g.RNG.CoinFlip() {
			g.applyToTarget(m, m.Target)
		}

	case MechDiscardEnergy:
		g.applyToTarget(m, m.Target)

	case MechDiscardOpponentEnergy:
		if opp.Active == nil || len(opp.Active.AttachedEnergy) == 0 {
			g.FizzleCount++
			return
		}
		for i := 0; i < int(m.Count) && len(opp.Active.AttachedEnergy) > 0; i++ {
			opp.Active.AttachedEnergy = opp.Active.AttachedEnergy[:len(opp.Active.AttachedEnergy)-1]
		}

	case MechMoveEnergy, MechMoveAllEnergy:
		g.applyToTarget(m, m.From)

	case MechAttachEnergyFromDiscard, MechAttachEnergyFromZone:
		g.applyToTarget(m, m.Target)

	case MechDrawCards:
		drawn := 0
		for i := 0; i < int(m.Count) && len(cur.Deck) > 0; i++ {
			last := len(cur.Deck) - 1
			cur.Hand = append(cur.Hand, cur.Deck[last])
			cur.Deck = cur.Deck[:last]
			drawn++
		}
		if drawn == 0 {
			g.FizzleCount++
		}

	case MechOpponentDiscard:
		// The opponent's hand is hidden, so the discard is random.
		for i := 0; i < int(m.Count); i++ {
			if len(opp.Hand) == 0 {
				g.FizzleCount++
				break
			}
			idx := g.RNG.IntN(len(opp.Hand))
			opp.Discard = append(opp.Discard, opp.Hand[idx])
			opp.Hand = append(opp.Hand[:idx], opp.Hand[idx+1:]...)
		}

	case MechSearchDeckRandom:
		for i := 0; i < int(m.Count); i++ {
			if len(cur.Deck) == 0 {
				g.FizzleCount++
				break
			}
			idx := g.RNG.IntN(len(cur.Deck))
			cur.Hand = append(cur.Hand, cur.Deck[idx])
			cur.Deck = append(cur.Deck[:idx], cur.Deck[idx+1:]...)
		}

	case MechShuffleHandDraw:
		g.shuffleHandDraw(cur, int(m.Count))

	case MechOpponentShuffleHandDraw:
		g.shuffleHandDraw(opp, int(m.Count))

	case MechBothShuffleHandDraw:
		for i := range g.Players {
			ps := &g.Players[i]
			g.shuffleHandDraw(ps, len(ps.Hand))
		}

	case MechRecoverFromDiscard:
		for i := 0; i < int(m.Count); i++ {
			if len(cur.Discard) == 0 {
				g.FizzleCount++
				break
			}
			idx := g.RNG.IntN(len(cur.Discard))
			cur.Hand = append(cur.Hand, cur.Discard[idx])
			cur.Discard = append(cur.Discard[:idx], cur.Discard[idx+1:]...)
		}

	case MechDiscardFromHand:
		if len(cur.Hand) == 0 {
			g.FizzleCount++
			return
		}
		g.pushPending(PendingChoice{
			Kind:    PendingDiscardHand,
			Chooser: g.Current,
			Count:   m.Count,
		})

	case MechPeekDeck, MechNoOp:
		// Information-only effects carry no state change.

	case MechSwitchOpponentActive:
		g.switchActive(1-g.Current, m)

	case MechSwitchOwnActive:
		g.switchActive(g.Current, m)

	case MechBounceToHand:
		g.bounceActive(m, false)

	case MechShuffleIntoDeck:
		g.bounceActive(m, true)

	case MechPutOnOpponentBench:
		slot := opp.FindEmptyBench()
		if slot < 0 {
			g.FizzleCount++
			return
		}
		for idx, c := range opp.Discard {
			if c.IsBasicPokemon() {
				opp.Bench[slot] = newPlayedCard(c, g.TurnNumber)
				opp.Discard = append(opp.Discard[:idx], opp.Discard[idx+1:]...)
				return
			}
		}
		g.FizzleCount++

	case MechCantRetreat:
		if opp.Active == nil {
			g.FizzleCount++
			return
		}
		opp.Active.Flags.CantRetreat = true

	case MechCantAttackNextTurn:
		if cur.Active == nil {
			g.FizzleCount++
			return
		}
		cur.Active.Flags.CantAttack = true

	case MechSelfDamage:
		if cur.Active == nil {
			g.FizzleCount++
			return
		}
		cur.Active.DamageCounters += m.Amount / 10

	case MechMoveDamage:
		g.applyToTarget(m, m.From)

	case MechDamageBoost:
		if cur.Active == nil {
			g.FizzleCount++
			return
		}
		cur.Active.Flags.BonusDamage += m.Amount

	case MechDamageReduction:
		for pos := uint8(0); pos < BoardSlots; pos++ {
			if p := cur.Pokemon(pos); p != nil {
				p.Flags.PreventDamage += m.Amount
			}
		}

	case MechRetreatCostReduction:
		cur.RetreatDiscount += uint8(m.Amount)

	case MechPreventDamage:
		if cur.Active == nil {
			g.FizzleCount++
			return
		}
		cur.Active.Flags.PreventDamage = m.Amount

	case MechInvulnerable:
		if cur.Active == nil {
			g.FizzleCount++
			return
		}
		cur.Active.Flags.PreventDamage = 9999

	case MechGuaranteedHeads:
		g.RNG.ForceHeads()

	case MechSurviveKO:
		if cur.Active == nil {
			g.FizzleCount++
			return
		}
		cur.Active.Flags.SurviveKO = true

	case MechEndTurn:
		// Forced turn end is handled by the caller after all mechanics run.

	case MechCustom:
		// Unique card behavior without a structured mechanic. Treated as a
		// no-op so the card is still playable.
		g.FizzleCount++

	default:
		if m.isPassive() {
			return // passives apply at game events, never on play
		}
	}
}

// shuffleHandDraw shuffles a player's hand into their deck and draws count.
func (g *Game) shuffleHandDraw(ps *PlayerState, count int) {
	ps.Deck = append(ps.Deck, ps.Hand...)
	ps.Hand = ps.Hand[:0]
	g.RNG.Shuffle(ps.Deck)
	for i := 0; i < count && len(ps.Deck) > 0; i++ {
		last := len(ps.Deck) - 1
		ps.Hand = append(ps.Hand, ps.Deck[last])
		ps.Deck = ps.Deck[:last]
	}
}

// switchActive swaps a player's active with a bench Pokemon. With several
// candidates the decision goes to the pending stack.
func (g *Game) switchActive(player uint8, m *Mechanic) {
	ps := &g.Players[player]
	if ps.Active == nil {
		g.FizzleCount++
		return
	}
	var candidates []uint8
	for i, b := range ps.Bench {
		if b != nil {
			candidates = append(candidates, uint8(i+1))
		}
	}
	switch len(candidates) {
	case 0:
		g.FizzleCount++
	case 1:
		g.swapActiveWithBench(ps, candidates[0])
	default:
		g.pushPending(PendingChoice{
			Kind:     PendingChooseTarget,
			Chooser:  g.Current,
			Targets:  candidates,
			Opponent: player != g.Current,
			Effect:   *m,
		})
	}
}

func (g *Game) swapActiveWithBench(ps *PlayerState, benchPos uint8) {
	i := benchPos - 1
	ps.Active, ps.Bench[i] = ps.Bench[i], ps.Active
}

// bounceActive returns the player's active Pokemon stack to hand or deck and
// promotes the first bench Pokemon.
func (g *Game) bounceActive(m *Mechanic, toDeck bool) {
	cur := g.current()
	active := cur.Active
	if active == nil {
		g.FizzleCount++
		return
	}
	cur.Active = nil

	if toDeck {
		cur.Deck = append(cur.Deck, active.Def)
		cur.Deck = append(cur.Deck, active.EvolvedFrom...)
		g.RNG.Shuffle(cur.Deck)
	} else {
		cur.Hand = append(cur.Hand, active.Def)
		cur.Hand = append(cur.Hand, active.EvolvedFrom...)
	}
	if active.Tool != nil {
		cur.Discard = append(cur.Discard, active.Tool)
	}
	// Attached energy returns to the zone pool and is lost.

	for i, b := range cur.Bench {
		if b != nil {
			cur.Active = b
			cur.Bench[i] = nil
			break
		}
	}
}

// applyToTarget resolves a mechanic's target to board positions and applies
// it. Choose* targets with several candidates become pending choices; empty
// candidate sets fizzle.
func (g *Game) applyToTarget(m *Mechanic, target Target) {
	var (
		positions []uint8
		opponent  bool
		choose    bool
	)

	switch target {
	case TargetSelf, TargetOwnActive:
		if g.current().Active != nil {
			positions = []uint8{0}
		}
	case TargetOpponentActive:
		opponent = true
		if g.opponent().Active != nil {
			positions = []uint8{0}
		}
	case TargetOpponentBench:
		opponent = true
		for i, b := range g.opponent().Bench {
			if b != nil {
				positions = append(positions, uint8(i+1))
			}
		}
	case TargetAllOwn:
		for pos := uint8(0); pos < BoardSlots; pos++ {
			if g.current().Pokemon(pos) != nil {
				positions = append(positions, pos)
			}
		}
	case TargetChooseOwn:
		choose = true
		for pos := uint8(0); pos < BoardSlots; pos++ {
			if g.current().Pokemon(pos) != nil {
				positions = append(positions, pos)
			}
		}
	case TargetChooseOwnBench:
		choose = true
		for i, b := range g.current().Bench {
			if b != nil {
				positions = append(positions, uint8(i+1))
			}
		}
	case TargetChooseOpponentBench:
		choose = true
		opponent = true
		for i, b := range g.opponent().Bench {
			if b != nil {
				positions = append(positions, uint8(i+1))
			}
		}
	}

	if len(positions) == 0 {
		g.FizzleCount++
		return
	}
	if choose && len(positions) > 1 {
		g.pushPending(PendingChoice{
			Kind:     PendingChooseTarget,
			Chooser:  g.Current,
			Targets:  positions,
			Opponent: opponent,
			Effect:   *m,
		})
		return
	}
	for _, pos := range positions {
		g.applyMechanicAt(m, pos, opponent)
	}
}

// applyMechanicAt applies a targeted mechanic to one resolved board position.
func (g *Game) applyMechanicAt(m *Mechanic, pos uint8, opponentSide bool) {
	side := g.current()
	if opponentSide {
		side = g.opponent()
	}
	p := side.Pokemon(pos)
	if p == nil {
		g.FizzleCount++
		return
	}

	switch m.Kind {
	case MechHeal:
		if p.DamageCounters == 0 {
			g.FizzleCount++
			return
		}
		p.heal(m.Amount)

	case MechFullHeal:
		p.DamageCounters = 0

	case MechApplyStatus, MechApplyStatusOnCoinFlip:
		if g.statusImmune(p) {
			g.FizzleCount++
			return
		}
		p.ApplyStatus(m.Status)

	case MechCureStatus:
		p.ClearStatus()

	case MechDiscardEnergy:
		g.discardEnergyFrom(p, pos, opponentSide, m)

	case MechDiscardAllEnergy:
		if len(p.AttachedEnergy) == 0 {
			g.FizzleCount++
			return
		}
		p.AttachedEnergy = p.AttachedEnergy[:0]

	case MechBenchDamage:
		p.DamageCounters += m.Amount / 10

	case MechAttachEnergyFromDiscard, MechAttachEnergyFromZone:
		et := m.Energy
		if et == EnergyNone {
			g.FizzleCount++
			return
		}
		for i := 0; i < int(m.Count); i++ {
			p.AttachedEnergy = append(p.AttachedEnergy, et)
		}

	case MechMoveEnergy:
		moved := 0
		for i := 0; i < int(m.Count) && len(p.AttachedEnergy) > 0; i++ {
			last := len(p.AttachedEnergy) - 1
			e := p.AttachedEnergy[last]
			p.AttachedEnergy = p.AttachedEnergy[:last]
			g.attachToTarget(m.To, e)
			moved++
		}
		if moved == 0 {
			g.FizzleCount++
		}

	case MechMoveAllEnergy:
		kept := p.AttachedEnergy[:0]
		moved := 0
		for _, e := range p.AttachedEnergy {
			if m.Energy == EnergyNone || e == m.Energy {
				g.attachToTarget(m.To, e)
				moved++
			} else {
				kept = append(kept, e)
			}
		}
		p.AttachedEnergy = kept
		if moved == 0 {
			g.FizzleCount++
		}

	case MechMoveDamage:
		counters := m.Amount / 10
		if counters > p.DamageCounters {
			counters = p.DamageCounters
		}
		if counters == 0 {
			g.FizzleCount++
			return
		}
		p.DamageCounters -= counters
		if to := g.opponent().Active; to != nil && m.To == TargetOpponentActive {
			to.DamageCounters += counters
		}

	case MechSwitchOpponentActive, MechSwitchOwnActive:
		g.swapActiveWithBench(side, pos)
	}
}

// attachToTarget attaches one energy to a fixed (non-choice) destination.
func (g *Game) attachToTarget(to Target, e EnergyType) {
	var p *PlayedCard
	switch to {
	case TargetSelf, TargetOwnActive:
		p = g.current().Active
	case TargetOpponentActive:
		p = g.opponent().Active
	}
	if p != nil {
		p.AttachedEnergy = append(p.AttachedEnergy, e)
	}
}

// discardEnergyFrom discards energy from a Pokemon. When the owner has more
// attached than the effect removes, the pick goes to the pending stack.
func (g *Game) discardEnergyFrom(p *PlayedCard, pos uint8, opponentSide bool, m *Mechanic) {
	if len(p.AttachedEnergy) == 0 {
		g.FizzleCount++
		return
	}
	if !opponentSide && len(p.AttachedEnergy) > int(m.Count) {
		g.pushPending(PendingChoice{
			Kind:     PendingDiscardEnergy,
			Chooser:  g.Current,
			Position: pos,
			Count:    m.Count,
		})
		return
	}
	for i := 0; i < int(m.Count) && len(p.AttachedEnergy) > 0; i++ {
		if m.Energy != EnergyNone {
			removed := false
			for j, e := range p.AttachedEnergy {
				if e == m.Energy {
					p.AttachedEnergy = append(p.AttachedEnergy[:j], p.AttachedEnergy[j+1:]...)
					removed = true
					break
				}
			}
			if !removed {
				g.FizzleCount++
				break
			}
		} else {
			p.AttachedEnergy = p.AttachedEnergy[:len(p.AttachedEnergy)-1]
		}
	}
}

// statusImmune reports whether a tool shields the Pokemon from conditions.
func (g *Game) statusImmune(p *PlayedCard) bool {
	if p.Tool == nil {
		return false
	}
	for _, m := range g.registry.ToolEffects(p.Tool.ID) {
		if m.Kind == MechStatusImmunity {
			return true
		}
	}
	return false
}
