package engine

import "fmt"

// Apply executes one action index against the current state. Illegal indices
// return ErrIllegalAction and leave the state untouched; legality is decided
// by the same mask handed to callers.
func (g *Game) Apply(idx uint16) error {
	mask := g.LegalActions()
	if !mask.Has(idx) {
		return fmt.Errorf("%w: action %d in phase %d", ErrIllegalAction, idx, g.Phase)
	}

	if handIdx, ok := ActionIsPlaceActive(idx); ok {
		return g.applyPlaceActive(handIdx)
	}
	if handIdx, ok := ActionIsPlaceBench(idx); ok {
		return g.applyPlaceBench(handIdx)
	}
	if idx == ActionConfirmSetup {
		return g.applyConfirmSetup()
	}
	if handIdx, ok := ActionIsPlayToBench(idx); ok {
		return g.applyPlayToBench(handIdx)
	}
	if handIdx, boardPos, ok := ActionIsEvolve(idx); ok {
		return g.applyEvolve(handIdx, boardPos)
	}
	if et, ok := ActionIsSetEnergyZone(idx); ok {
		return g.applySetEnergyZone(et)
	}
	if boardPos, ok := ActionIsAttachEnergy(idx); ok {
		return g.applyAttachEnergy(boardPos)
	}
	if benchIdx, ok := ActionIsRetreat(idx); ok {
		return g.applyRetreat(benchIdx)
	}
	if boardPos, ok := ActionIsUseAbility(idx); ok {
		return g.applyUseAbility(boardPos)
	}
	if handIdx, ok := ActionIsPlayItem(idx); ok {
		return g.applyPlayItem(handIdx)
	}
	if handIdx, ok := ActionIsPlaySupporter(idx); ok {
		return g.applyPlaySupporter(handIdx)
	}
	if attackIdx, ok := ActionIsAttack(idx); ok {
		return g.applyAttack(attackIdx)
	}
	if idx == ActionEndTurn {
		g.endTurn()
		return nil
	}
	if boardPos, ok := ActionIsChooseTarget(idx); ok {
		return g.applyChooseTarget(boardPos)
	}
	if optIdx, ok := ActionIsChooseOption(idx); ok {
		return g.applyChooseOption(optIdx)
	}
	if benchIdx, ok := ActionIsPromote(idx); ok {
		return g.applyPromote(benchIdx)
	}

	return fmt.Errorf("%w: action %d is reserved", ErrIllegalAction, idx)
}

// ---------------------------------------------------------------------------
// Setup actions
// ---------------------------------------------------------------------------

func (g *Game) applyPlaceActive(handIdx uint8) error {
	ps := g.current()
	c := ps.Hand[handIdx]
	ps.Active = newPlayedCard(c, g.TurnNumber)
	ps.Hand = append(ps.Hand[:handIdx], ps.Hand[handIdx+1:]...)
	return nil
}

func (g *Game) applyPlaceBench(handIdx uint8) error {
	ps := g.current()
	slot := ps.FindEmptyBench()
	c := ps.Hand[handIdx]
	ps.Bench[slot] = newPlayedCard(c, g.TurnNumber)
	ps.Hand = append(ps.Hand[:handIdx], ps.Hand[handIdx+1:]...)
	return nil
}

// applyConfirmSetup locks in the current player's opening board. When both
// sides have confirmed, the first turn begins with a draw.
func (g *Game) applyConfirmSetup() error {
	if g.Current == 0 && g.Players[1].Active == nil {
		g.Current = 1
		return nil
	}
	g.Current = 0
	g.Phase = PhaseMain
	g.drawCard()
	return nil
}

// ---------------------------------------------------------------------------
// Main-phase actions
// ---------------------------------------------------------------------------

func (g *Game) applyPlayToBench(handIdx uint8) error {
	ps := g.current()
	slot := ps.FindEmptyBench()
	c := ps.Hand[handIdx]
	ps.Bench[slot] = newPlayedCard(c, g.TurnNumber)
	ps.Hand = append(ps.Hand[:handIdx], ps.Hand[handIdx+1:]...)
	return nil
}

// applyEvolve stacks the evolution on top of the board Pokemon. Damage and
// energy carry over, conditions are cured, and the pre-evolution joins the
// stack so a knockout discards everything together.
func (g *Game) applyEvolve(handIdx, boardPos uint8) error {
	ps := g.current()
	c := ps.Hand[handIdx]
	old := ps.Pokemon(boardPos)

	next := newPlayedCard(c, g.TurnNumber)
	next.AttachedEnergy = old.AttachedEnergy
	next.DamageCounters = old.DamageCounters
	next.Tool = old.Tool
	next.EvolvedFrom = append([]*CardDef{old.Def}, old.EvolvedFrom...)

	ps.setPokemon(boardPos, next)
	ps.Hand = append(ps.Hand[:handIdx], ps.Hand[handIdx+1:]...)
	return nil
}

func (g *Game) applySetEnergyZone(et EnergyType) error {
	g.current().EnergyZone = et
	return nil
}

func (g *Game) applyAttachEnergy(boardPos uint8) error {
	ps := g.current()
	p := ps.Pokemon(boardPos)
	p.AttachedEnergy = append(p.AttachedEnergy, ps.EnergyZone)
	ps.EnergyAttached = true
	return nil
}

func (g *Game) applyRetreat(benchIdx uint8) error {
	ps := g.current()
	active := ps.Active

	cost := g.effectiveRetreatCost(ps, active)
	active.AttachedEnergy = active.AttachedEnergy[:len(active.AttachedEnergy)-cost]
	active.ClearStatus()

	ps.Active, ps.Bench[benchIdx] = ps.Bench[benchIdx], active
	ps.Retreated = true
	return nil
}

func (g *Game) applyUseAbility(boardPos uint8) error {
	ps := g.current()
	p := ps.Pokemon(boardPos)

	effects := g.registry.AbilityEffects(p.Def.ID)
	for i := range effects {
		g.executeMechanic(&effects[i])
	}
	p.Flags.UsedAbility = true
	g.sweepBenchKnockouts()
	g.checkWinConditions()
	return nil
}

// applyPlayItem plays an item, attaches a tool, or benches a fossil.
func (g *Game) applyPlayItem(handIdx uint8) error {
	ps := g.current()
	c := ps.Hand[handIdx]
	ps.Hand = append(ps.Hand[:handIdx], ps.Hand[handIdx+1:]...)

	switch c.CardType {
	case TypeTool:
		ps.Active.Tool = c
		return nil
	case TypeFossil:
		slot := ps.FindEmptyBench()
		ps.Bench[slot] = newPlayedCard(c, g.TurnNumber)
		return nil
	}

	ps.Discard = append(ps.Discard, c)
	forceEnd := g.runTrainerEffects(c)
	g.checkWinConditions()
	if forceEnd && !g.IsTerminal() {
		g.endTurn()
	}
	return nil
}

func (g *Game) applyPlaySupporter(handIdx uint8) error {
	ps := g.current()
	c := ps.Hand[handIdx]
	ps.Hand = append(ps.Hand[:handIdx], ps.Hand[handIdx+1:]...)
	ps.Discard = append(ps.Discard, c)
	ps.SupporterPlayed = true

	forceEnd := g.runTrainerEffects(c)
	g.checkWinConditions()
	if forceEnd && !g.IsTerminal() {
		g.endTurn()
	}
	return nil
}

// runTrainerEffects executes a trainer card's mechanics and reports whether
// one of them forces the turn to end.
func (g *Game) runTrainerEffects(c *CardDef) bool {
	effects := g.registry.TrainerEffects(c.ID)
	if len(effects) == 0 {
		g.FizzleCount++
		return false
	}
	forceEnd := false
	for i := range effects {
		if effects[i].Kind == MechEndTurn {
			forceEnd = true
			continue
		}
		g.executeMechanic(&effects[i])
	}
	g.sweepBenchKnockouts()
	return forceEnd
}

// ---------------------------------------------------------------------------
// Attack resolution
// ---------------------------------------------------------------------------

// applyAttack resolves one attack end to end and then ends the turn. A KO
// promotion raised mid-resolution parks the turn end until the choice lands.
func (g *Game) applyAttack(attackIdx uint8) error {
	attacker := g.current().Active
	defenderSide := g.opponent()

	// Confusion: tails means the attack fails outright.
	if attacker.HasStatus(StatusConfused) && !g.RNG.CoinFlip() {
		g.endTurn()
		return nil
	}

	attack := &attacker.Def.Attacks[attackIdx]
	override, hasOverride := g.executeAttackEffects(attacker.Def.ID, int(attackIdx))

	damage := attack.Damage
	if hasOverride {
		if damage > 0 && override > 0 {
			damage += override
		} else {
			damage = override
		}
	}

	defender := defenderSide.Active
	if defender != nil && damage > 0 {
		if defender.Def.Weakness != EnergyNone && defender.Def.Weakness == attacker.Def.EnergyType {
			damage += g.Rules.WeaknessBonus
		}
	}
	// Temp bonuses and passive boosts apply even when the printed damage
	// zeroed out on a tails.
	damage += attacker.Flags.BonusDamage
	damage += g.attackerPassiveBoost(attacker)
	if defender != nil {
		damage = g.reduceIncoming(defender, damage)
	}

	if defender != nil && damage > 0 {
		defender.DamageCounters += damage / 10
		g.retaliate(defender, attacker)
	}

	if defender != nil && defender.IsKnockedOut(g.registry) {
		g.handleKnockout(g.OpponentOf(g.Current))
	}
	if attacker.IsKnockedOut(g.registry) && g.current().Active == attacker {
		g.handleKnockout(g.Current)
	}
	g.sweepBenchKnockouts()
	g.checkWinConditions()
	if g.IsTerminal() {
		return nil
	}

	if len(g.Pending) > 0 {
		g.deferred = deferFullEnd
		g.deferredOwner = g.Current
		return nil
	}

	g.endTurn()
	return nil
}

// attackerPassiveBoost sums tool boosts on the attacking Pokemon, including
// per-point scaling off the prize countdown.
func (g *Game) attackerPassiveBoost(attacker *PlayedCard) uint16 {
	if attacker.Tool == nil {
		return 0
	}
	var boost uint16
	points := uint16(g.Rules.PointsToWin - g.current().PrizeRemaining)
	for _, m := range g.registry.ToolEffects(attacker.Tool.ID) {
		switch m.Kind {
		case MechPassiveDamageBoost:
			boost += m.Amount
		case MechDamageBoostPerPoint:
			boost += m.Per * points
		}
	}
	return boost
}

// reduceIncoming applies the defender's prevention flag and passive damage
// reduction from its tool and ability.
func (g *Game) reduceIncoming(defender *PlayedCard, damage uint16) uint16 {
	reduction := defender.Flags.PreventDamage
	if defender.Tool != nil {
		for _, m := range g.registry.ToolEffects(defender.Tool.ID) {
			if m.Kind == MechPassiveDamageReduction {
				reduction += m.Amount
			}
		}
	}
	for _, m := range g.registry.AbilityEffects(defender.Def.ID) {
		if m.Kind == MechPassiveDamageReduction {
			reduction += m.Amount
		}
	}
	if reduction >= damage {
		return 0
	}
	return damage - reduction
}

// retaliate applies the defender's tool counterattack to the attacker.
func (g *Game) retaliate(defender, attacker *PlayedCard) {
	if defender.Tool == nil {
		return
	}
	for _, m := range g.registry.ToolEffects(defender.Tool.ID) {
		switch m.Kind {
		case MechRetaliationDamage:
			attacker.DamageCounters += m.Amount / 10
		case MechRetaliationStatus:
			attacker.ApplyStatus(m.Status)
		}
	}
}

// ---------------------------------------------------------------------------
// Choice actions
// ---------------------------------------------------------------------------

func (g *Game) applyPromote(benchIdx uint8) error {
	pc := *g.topPending()
	ps := &g.Players[pc.Chooser]

	ps.Active = ps.Bench[benchIdx]
	ps.Bench[benchIdx] = nil

	g.popPending()
	g.resumeDeferred()
	g.checkWinConditions()
	return nil
}

func (g *Game) applyChooseTarget(boardPos uint8) error {
	pc := *g.topPending()
	g.popPending()
	g.applyMechanicAt(&pc.Effect, boardPos, pc.Opponent)
	g.sweepBenchKnockouts()
	g.resumeDeferred()
	g.checkWinConditions()
	return nil
}

func (g *Game) applyChooseOption(optIdx uint8) error {
	pc := *g.topPending()
	g.popPending()
	ps := &g.Players[pc.Chooser]

	switch pc.Kind {
	case PendingDiscardHand:
		ps.Discard = append(ps.Discard, ps.Hand[optIdx])
		ps.Hand = append(ps.Hand[:optIdx], ps.Hand[optIdx+1:]...)
		if pc.Count > 1 && len(ps.Hand) > 0 {
			pc.Count--
			g.pushPending(pc)
			return nil
		}

	case PendingDiscardEnergy:
		p := ps.Pokemon(pc.Position)
		if p != nil && int(optIdx) < len(p.AttachedEnergy) {
			p.AttachedEnergy = append(p.AttachedEnergy[:optIdx], p.AttachedEnergy[optIdx+1:]...)
			if pc.Count > 1 && len(p.AttachedEnergy) > 0 {
				pc.Count--
				g.pushPending(pc)
				return nil
			}
		}
	}

	g.resumeDeferred()
	return nil
}
