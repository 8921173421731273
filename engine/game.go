// Package engine implements a deterministic two-player Pokemon TCG Pocket
// battle simulator.
//
// The engine exposes a fixed discrete action universe and a bitmask of legal
// action indices, so the same state machine serves both scripted play and
// reinforcement-learning rollouts. All randomness flows through an explicit
// seedable source; replaying a seed and action sequence reproduces the match
// exactly.
package engine

import "fmt"

// TempFlags are per-turn effect flags on a played Pokemon.
type TempFlags struct {
	PreventDamage uint16 // damage shaved off the next hit received
	BonusDamage   uint16 // extra damage on this Pokemon's next attack
	CantRetreat   bool
	CantAttack    bool
	UsedAbility   bool
	SurviveKO     bool // survives the next KO with 10 HP
}

// PlayedCard is a Pokemon on the board together with its mutable state.
type PlayedCard struct {
	Def            *CardDef
	AttachedEnergy []EnergyType
	DamageCounters uint16 // each counter is 10 damage
	Status         [numStatusConditions]bool
	EvolvedFrom    []*CardDef // full pre-evolution stack, innermost last
	TurnPlayed     uint16
	Tool           *CardDef
	Flags          TempFlags
}

func newPlayedCard(def *CardDef, turn uint16) *PlayedCard {
	return &PlayedCard{Def: def, TurnPlayed: turn}
}

// MaxHP is the Pokemon's hit points including tool bonuses.
func (p *PlayedCard) MaxHP(reg *Registry) uint16 {
	hp := p.Def.HP
	if p.Tool != nil && reg != nil {
		for _, m := range reg.ToolEffects(p.Tool.ID) {
			if m.Kind == MechPassiveHPBoost {
				hp += m.Amount
			}
		}
	}
	return hp
}

// RemainingHP is the current hit points; never below zero.
func (p *PlayedCard) RemainingHP(reg *Registry) int {
	hp := int(p.MaxHP(reg)) - int(p.DamageCounters)*10
	if hp < 0 {
		return 0
	}
	return hp
}

// IsKnockedOut reports whether damage has reached the Pokemon's HP.
func (p *PlayedCard) IsKnockedOut(reg *Registry) bool {
	return int(p.DamageCounters)*10 >= int(p.MaxHP(reg))
}

// CanEvolve reports whether the Pokemon has been in play for a full turn.
func (p *PlayedCard) CanEvolve(currentTurn uint16) bool {
	return currentTurn > p.TurnPlayed
}

// HasStatus reports whether the given condition is active.
func (p *PlayedCard) HasStatus(s StatusCondition) bool { return p.Status[s] }

// ApplyStatus adds a condition. Asleep, Confused, and Paralyzed are mutually
// exclusive; applying one clears the others.
func (p *PlayedCard) ApplyStatus(s StatusCondition) {
	switch s {
	case StatusAsleep, StatusConfused, StatusParalyzed:
		p.Status[StatusAsleep] = false
		p.Status[StatusConfused] = false
		p.Status[StatusParalyzed] = false
	}
	p.Status[s] = true
}

// ClearStatus removes all conditions (evolving, retreating).
func (p *PlayedCard) ClearStatus() {
	p.Status = [numStatusConditions]bool{}
}

func (p *PlayedCard) clearTempFlags() {
	p.Flags = TempFlags{}
}

// heal removes up to amount damage (rounded to counters).
func (p *PlayedCard) heal(amount uint16) {
	counters := amount / 10
	if counters > p.DamageCounters {
		counters = p.DamageCounters
	}
	p.DamageCounters -= counters
}

// PlayerState holds one side of the match.
type PlayerState struct {
	Deck    []*CardDef
	Hand    []*CardDef
	Active  *PlayedCard
	Bench   [MaxBench]*PlayedCard
	Discard []*CardDef

	EnergyZone EnergyType // EnergyNone until chosen

	// Once-per-turn limits.
	EnergyAttached  bool
	SupporterPlayed bool
	Retreated       bool
	RetreatDiscount uint8 // retreat cost reduction active this turn

	// PrizeRemaining counts down from Rules.PointsToWin; reaching zero wins.
	PrizeRemaining uint8
}

// BenchCount returns the number of occupied bench slots.
func (ps *PlayerState) BenchCount() int {
	n := 0
	for _, b := range ps.Bench {
		if b != nil {
			n++
		}
	}
	return n
}

// FindEmptyBench returns the first empty bench slot, or -1.
func (ps *PlayerState) FindEmptyBench() int {
	for i, b := range ps.Bench {
		if b == nil {
			return i
		}
	}
	return -1
}

// Pokemon returns the Pokemon at board position pos (0 = active, 1..3 =
// bench), or nil.
func (ps *PlayerState) Pokemon(pos uint8) *PlayedCard {
	if pos == 0 {
		return ps.Active
	}
	if int(pos) <= MaxBench {
		return ps.Bench[pos-1]
	}
	return nil
}

// setPokemon replaces the Pokemon at board position pos.
func (ps *PlayerState) setPokemon(pos uint8, p *PlayedCard) {
	if pos == 0 {
		ps.Active = p
	} else if int(pos) <= MaxBench {
		ps.Bench[pos-1] = p
	}
}

// HasPokemonInPlay reports whether any board slot is occupied.
func (ps *PlayerState) HasPokemonInPlay() bool {
	if ps.Active != nil {
		return true
	}
	for _, b := range ps.Bench {
		if b != nil {
			return true
		}
	}
	return false
}

// HasBasicInHand reports whether the hand holds a basic Pokemon.
func (ps *PlayerState) HasBasicInHand() bool {
	for _, c := range ps.Hand {
		if c.IsBasicPokemon() {
			return true
		}
	}
	return false
}

// CardsInPlay counts every card the player owns across all zones. The total
// stays equal to DeckSize for the whole match.
func (ps *PlayerState) CardsInPlay() int {
	n := len(ps.Deck) + len(ps.Hand) + len(ps.Discard)
	for pos := uint8(0); pos < BoardSlots; pos++ {
		if p := ps.Pokemon(pos); p != nil {
			n += 1 + len(p.EvolvedFrom)
			if p.Tool != nil {
				n++
			}
		}
	}
	return n
}

// resetPerTurn clears the once-per-turn limits and all temp flags.
func (ps *PlayerState) resetPerTurn() {
	ps.EnergyAttached = false
	ps.SupporterPlayed = false
	ps.Retreated = false
	ps.RetreatDiscount = 0
	for pos := uint8(0); pos < BoardSlots; pos++ {
		if p := ps.Pokemon(pos); p != nil {
			p.clearTempFlags()
		}
	}
}

// Game is the complete state of one match.
type Game struct {
	Players    [2]PlayerState
	Current    uint8
	TurnNumber uint16
	Phase      TurnPhase
	FirstTurn  bool
	Outcome    Result

	// Pending is a LIFO stack of unresolved effect choices. The top entry
	// determines the acting player and the legal actions.
	Pending []PendingChoice

	// FizzleCount tracks effects that resolved as no-ops.
	FizzleCount uint16

	RNG      Rand
	Rules    Rules
	registry *Registry

	deferred      deferredEnd
	deferredOwner uint8
}

// NewGame shuffles and deals both decks and returns a match in the setup
// phase. Decks must already be validated.
func NewGame(reg *Registry, deckA, deckB Deck, seed uint64, rules Rules) *Game {
	g := &Game{
		Phase:     PhaseSetup,
		FirstTurn: true,
		RNG:       NewRand(seed),
		Rules:     rules,
		registry:  reg,
	}

	for i, deck := range [2]Deck{deckA, deckB} {
		cards := make([]*CardDef, len(deck.Cards))
		copy(cards, deck.Cards)
		g.RNG.Shuffle(cards)

		ps := &g.Players[i]
		ps.Hand = cards[:StartingHand]
		ps.Deck = cards[StartingHand:]
		ps.EnergyZone = EnergyNone
		ps.PrizeRemaining = rules.PointsToWin
		g.mulligan(ps)
	}
	return g
}

// mulligan reshuffles the hand into the deck until a basic Pokemon is dealt,
// bounded by Rules.MaxMulliganRetries.
func (g *Game) mulligan(ps *PlayerState) {
	for attempt := uint8(0); attempt < g.Rules.MaxMulliganRetries && !ps.HasBasicInHand(); attempt++ {
		all := make([]*CardDef, 0, len(ps.Hand)+len(ps.Deck))
		all = append(all, ps.Hand...)
		all = append(all, ps.Deck...)
		g.RNG.Shuffle(all)
		ps.Hand = all[:StartingHand]
		ps.Deck = all[StartingHand:]
	}
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal reports whether the match is over.
func (g *Game) IsTerminal() bool { return g.Phase == PhaseOver }

// Winner returns the match outcome (ResultNone while running).
func (g *Game) Winner() Result { return g.Outcome }

// ActingPlayer returns the player who must act next. A pending choice takes
// priority over the turn player.
func (g *Game) ActingPlayer() uint8 {
	if len(g.Pending) > 0 {
		return g.Pending[len(g.Pending)-1].Chooser
	}
	return g.Current
}

// OpponentOf returns the other player's index.
func (g *Game) OpponentOf(player uint8) uint8 { return 1 - player }

// Registry returns the effect registry the match was created with.
func (g *Game) Registry() *Registry { return g.registry }

func (g *Game) current() *PlayerState  { return &g.Players[g.Current] }
func (g *Game) opponent() *PlayerState { return &g.Players[1-g.Current] }

// topPending returns the top of the pending-choice stack, or nil.
func (g *Game) topPending() *PendingChoice {
	if len(g.Pending) == 0 {
		return nil
	}
	return &g.Pending[len(g.Pending)-1]
}

func (g *Game) pushPending(pc PendingChoice) {
	g.Pending = append(g.Pending, pc)
	g.Phase = PhaseChoice
}

func (g *Game) popPending() {
	g.Pending = g.Pending[:len(g.Pending)-1]
	if len(g.Pending) == 0 && g.Phase == PhaseChoice {
		g.Phase = PhaseMain
	}
}

// ---------------------------------------------------------------------------
// Turn flow
// ---------------------------------------------------------------------------

// drawCard moves the top deck card into the hand. Drawing from an empty deck
// ends the match in the opponent's favor.
func (g *Game) drawCard() {
	ps := g.current()
	if len(ps.Deck) == 0 {
		g.setWinner(g.OpponentOf(g.Current))
		return
	}
	last := len(ps.Deck) - 1
	ps.Hand = append(ps.Hand, ps.Deck[last])
	ps.Deck = ps.Deck[:last]
}

// endTurn resolves between-turns effects and hands the turn over. A KO
// promotion raised between turns defers the switch until resolved.
func (g *Game) endTurn() {
	if g.Rules.ResetPerTurnAtEnd {
		g.current().resetPerTurn()
	}

	g.resolveBetweenTurns()
	if g.IsTerminal() {
		return
	}

	if len(g.Pending) > 0 {
		g.deferred = deferTurnSwitch
		g.deferredOwner = g.Current
		return
	}

	g.completeTurnSwitch()
}

// completeTurnSwitch advances to the next player, resets limits, and draws.
func (g *Game) completeTurnSwitch() {
	g.Current = 1 - g.Current
	g.TurnNumber++
	g.FirstTurn = false

	if g.Rules.MaxGameTurns > 0 && g.TurnNumber >= g.Rules.MaxGameTurns {
		g.Outcome = ResultDraw
		g.Phase = PhaseOver
		return
	}

	if !g.Rules.ResetPerTurnAtEnd {
		g.current().resetPerTurn()
	}

	g.drawCard()
	if g.Phase != PhaseOver {
		g.Phase = PhaseMain
	}
}

// resolveBetweenTurns applies status damage and tool ticks to the turn
// player's active Pokemon, then handles any status knockout.
func (g *Game) resolveBetweenTurns() {
	active := g.current().Active
	if active != nil {
		if active.HasStatus(StatusPoisoned) {
			active.DamageCounters++
		}
		if active.HasStatus(StatusBurned) && !g.RNG.CoinFlip() {
			active.DamageCounters += 2
		}
		if active.HasStatus(StatusAsleep) && g.RNG.CoinFlip() {
			active.Status[StatusAsleep] = false
		}
		// Paralysis wears off after the turn.
		active.Status[StatusParalyzed] = false

		if active.Tool != nil {
			for _, m := range g.registry.ToolEffects(active.Tool.ID) {
				switch m.Kind {
				case MechHealBetweenTurns:
					active.heal(m.Amount)
				case MechCureStatusBetweenTurns:
					active.ClearStatus()
				}
			}
		}
	}

	if active != nil && active.IsKnockedOut(g.registry) {
		g.handleKnockout(g.Current)
	}
	g.checkWinConditions()
}

// setWinner ends the match in favor of the given player.
func (g *Game) setWinner(player uint8) {
	if g.Phase == PhaseOver {
		return
	}
	if player == 0 {
		g.Outcome = ResultPlayer0
	} else {
		g.Outcome = ResultPlayer1
	}
	g.Phase = PhaseOver
}

// checkWinConditions ends the match when a prize countdown reaches zero or a
// side has no Pokemon in play after setup.
func (g *Game) checkWinConditions() {
	if g.Phase == PhaseOver {
		return
	}
	for i := uint8(0); i < 2; i++ {
		if g.Players[i].PrizeRemaining == 0 {
			g.setWinner(i)
			return
		}
	}
	if g.Phase == PhaseSetup {
		return
	}
	for i := uint8(0); i < 2; i++ {
		if !g.Players[i].HasPokemonInPlay() {
			g.setWinner(g.OpponentOf(i))
			return
		}
	}
}

// handleKnockout discards the knocked-out Pokemon's whole stack, credits the
// opposing prize countdown, and raises a promotion choice when needed.
func (g *Game) handleKnockout(koPlayer uint8) {
	attacker := g.OpponentOf(koPlayer)
	ps := &g.Players[koPlayer]

	ko := ps.Active
	if ko == nil {
		return
	}

	if ko.Flags.SurviveKO {
		ko.Flags.SurviveKO = false
		counters := ko.MaxHP(g.registry)/10 - 1
		ko.DamageCounters = counters
		return
	}

	ps.Active = nil

	points := uint8(1)
	if ko.Def.IsEX {
		points = 2
	}
	atk := &g.Players[attacker]
	if points > atk.PrizeRemaining {
		atk.PrizeRemaining = 0
	} else {
		atk.PrizeRemaining -= points
	}

	bounce := false
	moveEnergy := 0
	if ko.Tool != nil {
		for _, m := range g.registry.ToolEffects(ko.Tool.ID) {
			switch m.Kind {
			case MechOnKOBounceToHand:
				bounce = true
			case MechOnKOMoveEnergy:
				moveEnergy = int(m.Count)
			}
		}
	}
	if atk.Active != nil && atk.Active.Tool != nil {
		for _, m := range g.registry.ToolEffects(atk.Active.Tool.ID) {
			if m.Kind == MechOnKODrawCard && len(atk.Deck) > 0 {
				last := len(atk.Deck) - 1
				atk.Hand = append(atk.Hand, atk.Deck[last])
				atk.Deck = atk.Deck[:last]
			}
		}
	}

	if moveEnergy > 0 {
		moved := 0
		for _, energy := range ko.AttachedEnergy {
			if moved >= moveEnergy {
				break
			}
			for _, b := range ps.Bench {
				if b != nil {
					b.AttachedEnergy = append(b.AttachedEnergy, energy)
					moved++
					break
				}
			}
			if ps.BenchCount() == 0 {
				break
			}
		}
	}

	// The whole evolution stack and any tool leave play together.
	if bounce {
		ps.Hand = append(ps.Hand, ko.Def)
	} else {
		ps.Discard = append(ps.Discard, ko.Def)
	}
	ps.Discard = append(ps.Discard, ko.EvolvedFrom...)
	if ko.Tool != nil {
		ps.Discard = append(ps.Discard, ko.Tool)
	}

	switch ps.BenchCount() {
	case 0:
		// No replacement; win conditions end the match.
	case 1:
		for i, b := range ps.Bench {
			if b != nil {
				ps.Active = b
				ps.Bench[i] = nil
				break
			}
		}
	default:
		g.pushPending(PendingChoice{Kind: PendingPromote, Chooser: koPlayer})
	}
}

// benchKnockout discards a knocked-out bench Pokemon's whole stack and
// credits the opposing prize countdown. Bench knockouts never raise a
// promotion; the slot simply empties.
func (g *Game) benchKnockout(side uint8, benchIdx int) {
	ps := &g.Players[side]
	ko := ps.Bench[benchIdx]

	if ko.Flags.SurviveKO {
		ko.Flags.SurviveKO = false
		ko.DamageCounters = ko.MaxHP(g.registry)/10 - 1
		return
	}

	ps.Bench[benchIdx] = nil

	points := uint8(1)
	if ko.Def.IsEX {
		points = 2
	}
	atk := &g.Players[1-side]
	if points > atk.PrizeRemaining {
		atk.PrizeRemaining = 0
	} else {
		atk.PrizeRemaining -= points
	}

	bounce := false
	if ko.Tool != nil {
		for _, m := range g.registry.ToolEffects(ko.Tool.ID) {
			if m.Kind == MechOnKOBounceToHand {
				bounce = true
			}
		}
	}
	if bounce {
		ps.Hand = append(ps.Hand, ko.Def)
	} else {
		ps.Discard = append(ps.Discard, ko.Def)
	}
	ps.Discard = append(ps.Discard, ko.EvolvedFrom...)
	if ko.Tool != nil {
		ps.Discard = append(ps.Discard, ko.Tool)
	}
}

// sweepBenchKnockouts clears knocked-out bench Pokemon on both sides after
// damage-dealing effects resolve. The active slot goes through handleKnockout
// instead so promotion can run.
func (g *Game) sweepBenchKnockouts() {
	for side := uint8(0); side < 2; side++ {
		ps := &g.Players[side]
		for i, b := range ps.Bench {
			if b != nil && b.IsKnockedOut(g.registry) {
				g.benchKnockout(side, i)
			}
		}
	}
}

// resumeDeferred finishes a turn whose switch was parked behind a promotion.
// The turn stays parked while other choices remain on the stack.
func (g *Game) resumeDeferred() {
	if len(g.Pending) > 0 {
		return
	}
	switch g.deferred {
	case deferFullEnd:
		g.deferred = deferNone
		g.Current = g.deferredOwner
		g.endTurn()
	case deferTurnSwitch:
		g.deferred = deferNone
		g.Current = g.deferredOwner
		g.completeTurnSwitch()
	default:
		if len(g.Pending) == 0 && g.Phase == PhaseChoice {
			g.Phase = PhaseMain
		}
	}
}

// String summarizes the match for logs and test failures.
func (g *Game) String() string {
	return fmt.Sprintf("turn=%d current=%d phase=%d prizes=[%d %d]",
		g.TurnNumber, g.Current, g.Phase,
		g.Players[0].PrizeRemaining, g.Players[1].PrizeRemaining)
}
