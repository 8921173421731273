// Package agent encodes match state into fixed-size feature vectors for
// reinforcement-learning policies. The observation only exposes what the
// encoded player could legitimately see: the opponent's hand and both decks
// appear as counts.
package agent

import engine "github.com/friday-james/tcg-pocket-rl/engine"

const (
	// ObsDim is the fixed observation vector size. The layout uses the
	// first 292 dims; the remainder is zero padding for model-width headroom.
	ObsDim     = 512
	NumActions = int(engine.ActionSpaceSize)

	MaxHandCards    = engine.MaxHandEncode // 10
	CardFeatures    = 12                   // per hand card
	PokemonFeatures = 20                   // per board slot
	BoardSlots      = int(engine.BoardSlots)
)

// energyScalar packs an energy type into a single (index+1)/10 feature;
// zero means no type.
func energyScalar(et engine.EnergyType) float32 {
	if et == engine.EnergyNone {
		return 0
	}
	return (float32(et) + 1) / float32(engine.NumEnergyTypes)
}

// Encode writes the observation vector for the given player into out.
// out is zeroed internally before writing.
func Encode(g *engine.Game, player uint8, out *[ObsDim]float32) {
	*out = [ObsDim]float32{}

	ps := &g.Players[player]
	opp := &g.Players[1-player]
	offset := 0

	// Game metadata (8 features).
	out[offset] = float32(g.TurnNumber) / 50.0
	offset++
	if g.Current == player {
		out[offset] = 1.0
	}
	offset++
	out[offset] = points(g, ps) / float32(g.Rules.PointsToWin)
	offset++
	out[offset] = points(g, opp) / float32(g.Rules.PointsToWin)
	offset++
	if ps.EnergyAttached {
		out[offset] = 1.0
	}
	offset++
	if ps.SupporterPlayed {
		out[offset] = 1.0
	}
	offset++
	if ps.Retreated {
		out[offset] = 1.0
	}
	offset++
	out[offset] = energyScalar(ps.EnergyZone)
	offset++
	// offset = 8

	// Own board: active + bench, 4 × 20.
	for pos := uint8(0); pos < uint8(BoardSlots); pos++ {
		encodePokemon(g, ps.Pokemon(pos), out, offset)
		offset += PokemonFeatures
	}
	// offset = 88

	// Opponent board: 4 × 20.
	for pos := uint8(0); pos < uint8(BoardSlots); pos++ {
		encodePokemon(g, opp.Pokemon(pos), out, offset)
		offset += PokemonFeatures
	}
	// offset = 168

	// Own hand: 10 × 12. Slots past the hand stay zero.
	for i := 0; i < MaxHandCards; i++ {
		if i < len(ps.Hand) {
			encodeHandCard(ps.Hand[i], out, offset)
		}
		offset += CardFeatures
	}
	// offset = 288

	// Hidden-information counts.
	out[offset] = float32(len(ps.Hand)) / float32(MaxHandCards)
	offset++
	out[offset] = float32(len(ps.Deck)) / float32(engine.DeckSize)
	offset++
	out[offset] = float32(len(opp.Hand)) / float32(MaxHandCards)
	offset++
	out[offset] = float32(len(opp.Deck)) / float32(engine.DeckSize)
	// offset = 292 — the rest is padding (already zero).
}

// points converts the prize countdown back into points scored.
func points(g *engine.Game, ps *engine.PlayerState) float32 {
	return float32(g.Rules.PointsToWin - ps.PrizeRemaining)
}

// encodePokemon writes one board slot's 20 features. An empty slot stays
// all zeros.
func encodePokemon(g *engine.Game, p *engine.PlayedCard, out *[ObsDim]float32, offset int) {
	if p == nil {
		return
	}
	i := offset

	out[i] = 1.0 // occupied
	i++

	maxHP := p.MaxHP(g.Registry())
	out[i] = float32(maxHP) / 300.0
	i++
	if maxHP > 0 {
		out[i] = float32(p.RemainingHP(g.Registry())) / float32(maxHP)
	}
	i++

	// Energy type one-hot (10 types).
	if p.Def.EnergyType != engine.EnergyNone {
		out[i+int(p.Def.EnergyType)] = 1.0
	}
	i += int(engine.NumEnergyTypes)

	out[i] = float32(len(p.AttachedEnergy)) / 5.0
	i++
	if p.Def.IsEX {
		out[i] = 1.0
	}
	i++

	if p.HasStatus(engine.StatusPoisoned) {
		out[i] = 1.0
	}
	i++
	if p.HasStatus(engine.StatusBurned) {
		out[i] = 1.0
	}
	i++
	if p.HasStatus(engine.StatusAsleep) {
		out[i] = 1.0
	}
	i++
	if p.HasStatus(engine.StatusParalyzed) {
		out[i] = 1.0
	}
}

// encodeHandCard writes one hand slot's 12 features.
func encodeHandCard(c *engine.CardDef, out *[ObsDim]float32, offset int) {
	i := offset

	out[i] = 1.0 // card present
	i++
	if c.IsPokemon() {
		out[i] = 1.0
	}
	i++
	if c.IsBasicPokemon() {
		out[i] = 1.0
	}
	i++
	if c.IsEvolution() {
		out[i] = 1.0
	}
	i++
	if c.IsTrainer() {
		out[i] = 1.0
	}
	i++

	out[i] = float32(c.HP) / 300.0
	i++
	out[i] = energyScalar(c.EnergyType)
	i++
	out[i] = float32(c.RetreatCost) / 4.0
	i++
	if c.IsEX {
		out[i] = 1.0
	}
	i++

	out[i] = float32(len(c.Attacks)) / 3.0
	i++

	var maxDamage uint16
	minCost := -1
	for _, a := range c.Attacks {
		if a.Damage > maxDamage {
			maxDamage = a.Damage
		}
		if minCost < 0 || len(a.EnergyCost) < minCost {
			minCost = len(a.EnergyCost)
		}
	}
	out[i] = float32(maxDamage) / 200.0
	i++
	if minCost > 0 {
		out[i] = float32(minCost) / 5.0
	}
}

// ActionMask writes the legal action mask into out.
// mask is the bitmask from Game.LegalActions().
func ActionMask(mask engine.LegalMask, out *[NumActions]bool) {
	*out = [NumActions]bool{}
	for i := uint16(0); i < engine.ActionSpaceSize; i++ {
		if mask.Has(i) {
			out[i] = true
		}
	}
}
