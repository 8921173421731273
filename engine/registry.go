package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Registry maps card ids to structured mechanics. Attack and ability effects
// are parsed from printed effect text; items, supporters, and tools use
// curated by-name tables because their wording is too irregular to parse.
// A Registry is built once per database and is read-only afterwards.
type Registry struct {
	attackEffects  map[string][][]Mechanic // card id -> attack index -> mechanics
	abilityEffects map[string][]Mechanic
	trainerEffects map[string][]Mechanic
	toolEffects    map[string][]Mechanic
}

// NewRegistry builds a registry covering every card in the database.
func NewRegistry(db *CardDatabase) *Registry {
	r := &Registry{
		attackEffects:  make(map[string][][]Mechanic),
		abilityEffects: make(map[string][]Mechanic),
		trainerEffects: make(map[string][]Mechanic),
		toolEffects:    make(map[string][]Mechanic),
	}
	for _, c := range db.Cards() {
		r.registerCard(&c)
	}
	return r
}

func (r *Registry) registerCard(c *CardDef) {
	if len(c.Attacks) > 0 {
		perAttack := make([][]Mechanic, len(c.Attacks))
		for i, atk := range c.Attacks {
			if atk.Effect != "" {
				perAttack[i] = ParseEffectText(atk.Effect)
			}
		}
		r.attackEffects[c.ID] = perAttack
	}
	if c.Ability != nil {
		r.abilityEffects[c.ID] = ParseEffectText(c.Ability.Description)
	}
	if c.IsTrainer() {
		if mechs, ok := trainerByName[c.Name]; ok {
			r.trainerEffects[c.ID] = mechs
		} else if c.Effect != "" {
			r.trainerEffects[c.ID] = ParseEffectText(c.Effect)
		}
		if mechs, ok := toolByName[c.Name]; ok {
			r.toolEffects[c.ID] = mechs
		}
	}
}

// AttackEffects returns the mechanics of attack attackIdx on card id.
func (r *Registry) AttackEffects(id string, attackIdx int) []Mechanic {
	if attacks, ok := r.attackEffects[id]; ok && attackIdx >= 0 && attackIdx < len(attacks) {
		return attacks[attackIdx]
	}
	return nil
}

// AbilityEffects returns the mechanics of the ability on card id.
func (r *Registry) AbilityEffects(id string) []Mechanic { return r.abilityEffects[id] }

// TrainerEffects returns the mechanics run when trainer card id is played.
func (r *Registry) TrainerEffects(id string) []Mechanic { return r.trainerEffects[id] }

// ToolEffects returns the passive mechanics of tool card id.
func (r *Registry) ToolEffects(id string) []Mechanic { return r.toolEffects[id] }

// ---------------------------------------------------------------------------
// Effect text parsing
// ---------------------------------------------------------------------------

var (
	reMoreDamage       = regexp.MustCompile(`(\d+) more damage`)
	reMultiFlip        = regexp.MustCompile(`flip (\d+) coins.*?(\d+) damage.*?each heads`)
	rePerEnergy        = regexp.MustCompile(`(\d+) (?:more )?damage for each (?:\w+ )?energy attached`)
	rePerBench         = regexp.MustCompile(`(\d+) (?:more )?damage for each.*?benched pok`)
	rePerDamageCounter = regexp.MustCompile(`(\d+) (?:more )?damage for each damage counter`)
	reHealSelf         = regexp.MustCompile(`heal (\d+) damage from this`)
	reHealActive       = regexp.MustCompile(`heal (\d+) damage from your active`)
	reDiscardSelf      = regexp.MustCompile(`discard (\d+|an?) .*?energy.*?from this`)
	reDiscardOpp       = regexp.MustCompile(`discard.*energy.*from.*opponent`)
	reDraw             = regexp.MustCompile(`draw (\d+) cards?`)
	reSelfDamage       = regexp.MustCompile(`(\d+) damage to itself`)
	reBenchDamage      = regexp.MustCompile(`(\d+) damage to.*?opponent'?s? benched`)
	reAttachDiscard    = regexp.MustCompile(`attach.*energy.*from.*discard`)
	rePrevent          = regexp.MustCompile(`prevent (\d+) damage`)
	reLessDamage       = regexp.MustCompile(`takes? (\d+) less damage`)
	reLessNextTurn     = regexp.MustCompile(`[-−](\d+) damage.*next turn`)
)

var statusWords = []struct {
	word   string
	status StatusCondition
}{
	{"poisoned", StatusPoisoned},
	{"burned", StatusBurned},
	{"asleep", StatusAsleep},
	{"paralyzed", StatusParalyzed},
	{"confused", StatusConfused},
}

func atoi(s string) uint16 {
	n, _ := strconv.Atoi(s)
	return uint16(n)
}

// ParseEffectText maps one effect sentence to mechanics using the wording
// patterns that cover the card pool. Unmatched non-empty text becomes a
// Custom mechanic so no effect silently disappears.
func ParseEffectText(text string) []Mechanic {
	t := strings.ToLower(text)
	var mechs []Mechanic

	hasKind := func(k MechanicKind) bool {
		for _, m := range mechs {
			if m.Kind == k {
				return true
			}
		}
		return false
	}

	if strings.Contains(t, "flip a coin") &&
		(strings.Contains(t, "does nothing") || strings.Contains(t, "no damage")) {
		mechs = append(mechs, Mechanic{Kind: MechNoDamageOnTails})
	}

	if strings.Contains(t, "flip a coin") && strings.Contains(t, "more damage") {
		if m := reMoreDamage.FindStringSubmatch(t); m != nil {
			mechs = append(mechs, Mechanic{
				Kind:   MechConditionalDamage,
				Amount: atoi(m[1]),
				Cond:   CondCoinFlipHeads,
			})
		}
	}

	if m := reMultiFlip.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{
			Kind:  MechDamagePerCoinFlip,
			Per:   atoi(m[2]),
			Flips: uint8(atoi(m[1])),
		})
	}

	if m := rePerEnergy.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechDamagePerEnergy, Per: atoi(m[1]), Energy: EnergyNone})
	}

	if m := rePerBench.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{
			Kind: MechDamagePerBench,
			Per:  atoi(m[1]),
			Own:  strings.Contains(t, "your benched"),
		})
	}

	if m := rePerDamageCounter.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechDamagePerDamageCounter, Per: atoi(m[1])})
	}

	for _, sw := range statusWords {
		if strings.Contains(t, "is now "+sw.word) {
			kind := MechApplyStatus
			if strings.Contains(t, "flip a coin") {
				kind = MechApplyStatusOnCoinFlip
			}
			mechs = append(mechs, Mechanic{Kind: kind, Status: sw.status, Target: TargetOpponentActive})
		}
	}

	if m := reHealSelf.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechHeal, Amount: atoi(m[1]), Target: TargetSelf})
	}
	if m := reHealActive.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechHeal, Amount: atoi(m[1]), Target: TargetOwnActive})
	}

	if m := reDiscardSelf.FindStringSubmatch(t); m != nil {
		count := uint8(1)
		if !strings.HasPrefix(m[1], "a") {
			count = uint8(atoi(m[1]))
		}
		mechs = append(mechs, Mechanic{
			Kind: MechDiscardEnergy, Count: count, Energy: EnergyNone, Target: TargetSelf,
		})
	}
	if reDiscardOpp.MatchString(t) && !hasKind(MechDiscardOpponentEnergy) {
		mechs = append(mechs, Mechanic{Kind: MechDiscardOpponentEnergy, Count: 1})
	}

	if m := reDraw.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechDrawCards, Count: uint8(atoi(m[1]))})
	}

	if m := reSelfDamage.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechSelfDamage, Amount: atoi(m[1])})
	}

	if m := reBenchDamage.FindStringSubmatch(t); m != nil {
		target := TargetChooseOpponentBench
		if strings.Contains(t, "each of") || strings.Contains(t, "all") {
			target = TargetOpponentBench
		}
		mechs = append(mechs, Mechanic{Kind: MechBenchDamage, Amount: atoi(m[1]), Target: target})
	}

	if reAttachDiscard.MatchString(t) {
		et := textEnergyType(t)
		mechs = append(mechs, Mechanic{
			Kind: MechAttachEnergyFromDiscard, Energy: et, Count: 1, Target: TargetSelf,
		})
	}

	if strings.Contains(t, "switch") && strings.Contains(t, "opponent") &&
		strings.Contains(t, "bench") && !hasKind(MechSwitchOpponentActive) {
		mechs = append(mechs, Mechanic{Kind: MechSwitchOpponentActive})
	}

	if strings.Contains(t, "prevent all damage") {
		mechs = append(mechs, Mechanic{Kind: MechInvulnerable})
	} else if m := rePrevent.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechPreventDamage, Amount: atoi(m[1])})
	}

	if m := reLessDamage.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechDamageReduction, Amount: atoi(m[1])})
	} else if m := reLessNextTurn.FindStringSubmatch(t); m != nil {
		mechs = append(mechs, Mechanic{Kind: MechDamageReduction, Amount: atoi(m[1])})
	}

	if strings.Contains(t, "can't retreat") || strings.Contains(t, "cannot retreat") {
		mechs = append(mechs, Mechanic{Kind: MechCantRetreat})
	}

	if strings.Contains(t, "can't use this attack") || strings.Contains(t, "can't attack during") {
		mechs = append(mechs, Mechanic{Kind: MechCantAttackNextTurn})
	}

	if (strings.Contains(t, "return") || strings.Contains(t, "put")) &&
		strings.Contains(t, "into your hand") && strings.Contains(t, "this pok") {
		mechs = append(mechs, Mechanic{Kind: MechBounceToHand, Target: TargetSelf})
	}

	if strings.Contains(t, "shuffle") && strings.Contains(t, "deck") &&
		strings.Contains(t, "this pok") &&
		(strings.Contains(t, "into") || strings.Contains(t, "back")) {
		mechs = append(mechs, Mechanic{Kind: MechShuffleIntoDeck, Target: TargetSelf})
	}

	if strings.Contains(t, "has damage") && strings.Contains(t, "more damage") &&
		!hasKind(MechConditionalDamage) {
		if m := reMoreDamage.FindStringSubmatch(t); m != nil {
			mechs = append(mechs, Mechanic{
				Kind:   MechConditionalDamage,
				Amount: atoi(m[1]),
				Cond:   CondTargetHasDamage,
			})
		}
	}

	if len(mechs) == 0 && strings.TrimSpace(t) != "" {
		mechs = append(mechs, Mechanic{Kind: MechCustom, Note: t})
	}
	return mechs
}

func textEnergyType(t string) EnergyType {
	for _, name := range []string{
		"fire", "water", "grass", "lightning", "electric",
		"psychic", "fighting", "darkness", "metal", "dragon",
	} {
		if strings.Contains(t, name) {
			et, _ := ParseEnergyType(name)
			return et
		}
	}
	return EnergyNone
}

// ---------------------------------------------------------------------------
// Curated trainer and tool tables
// ---------------------------------------------------------------------------

var trainerByName = map[string][]Mechanic{
	// Items.
	"Poké Ball":             {{Kind: MechSearchDeckRandom, Count: 1}},
	"Professor's Research":  {{Kind: MechDrawCards, Count: 2}},
	"Potion":                {{Kind: MechHeal, Amount: 20, Target: TargetChooseOwn}},
	"X Speed":               {{Kind: MechRetreatCostReduction, Amount: 1}},
	"Red Card":              {{Kind: MechOpponentShuffleHandDraw, Count: 3}},
	"Pokédex":               {{Kind: MechPeekDeck, Count: 3}},
	"Pokémon Communication": {{Kind: MechCustom, Note: "swap_pokemon_hand_deck"}},
	"Rare Candy":            {{Kind: MechCustom, Note: "evolve_skip_stage"}},
	"Fishing Net":           {{Kind: MechRecoverFromDiscard, Count: 1}},
	"Mythical Slab":         {{Kind: MechPeekDeck, Count: 1}},
	"Squirt Bottle":         {{Kind: MechDiscardOpponentEnergy, Count: 1}},
	"Elemental Switch": {{
		Kind: MechMoveEnergy, Count: 1, From: TargetChooseOwnBench, To: TargetOwnActive,
	}},
	"Flame Patch": {{
		Kind: MechAttachEnergyFromDiscard, Energy: EnergyFire, Count: 1, Target: TargetOwnActive,
	}},
	"Big Malasada": {
		{Kind: MechHeal, Amount: 10, Target: TargetOwnActive},
		{Kind: MechCureStatus, Target: TargetOwnActive},
	},
	"Hand Scope":    {{Kind: MechNoOp}},
	"Repel":         {{Kind: MechSwitchOpponentActive}},
	"Pokémon Flute": {{Kind: MechPutOnOpponentBench}},
	"Rotom Dex":     {{Kind: MechPeekDeck, Count: 1}},

	// Supporters: damage swing.
	"Giovanni": {{Kind: MechDamageBoost, Amount: 10}},
	"Red":      {{Kind: MechDamageBoost, Amount: 20}},
	"Blaine":   {{Kind: MechDamageBoost, Amount: 30}},
	"Cynthia":  {{Kind: MechDamageBoost, Amount: 50}},
	"Blue":     {{Kind: MechDamageReduction, Amount: 10}},
	"Adaman":   {{Kind: MechDamageReduction, Amount: 20}},
	"Jasmine":  {{Kind: MechDamageReduction, Amount: 50}},

	// Supporters: healing.
	"Erika":  {{Kind: MechHeal, Amount: 50, Target: TargetChooseOwn}},
	"Irida":  {{Kind: MechHeal, Amount: 40, Target: TargetAllOwn}},
	"Lillie": {{Kind: MechHeal, Amount: 60, Target: TargetChooseOwn}},
	"Whitney": {
		{Kind: MechHeal, Amount: 60, Target: TargetChooseOwn},
		{Kind: MechCureStatus, Target: TargetChooseOwn},
	},
	"Mallow": {
		{Kind: MechFullHeal, Target: TargetChooseOwn},
		{Kind: MechDiscardAllEnergy, Target: TargetChooseOwn},
	},

	// Supporters: energy.
	"Brock": {{
		Kind: MechAttachEnergyFromZone, Energy: EnergyFighting, Count: 1, Target: TargetChooseOwn,
	}},
	"Misty": {{Kind: MechCustom, Note: "misty_coin_attach"}},
	"Volkner": {{
		Kind: MechAttachEnergyFromDiscard, Energy: EnergyLightning, Count: 2, Target: TargetChooseOwn,
	}},
	"Kiawe": {
		{Kind: MechAttachEnergyFromZone, Energy: EnergyFire, Count: 2, Target: TargetChooseOwn},
		{Kind: MechEndTurn},
	},
	"Dawn": {{
		Kind: MechMoveEnergy, Count: 1, From: TargetChooseOwnBench, To: TargetOwnActive,
	}},

	// Supporters: search and draw.
	"Lisia":               {{Kind: MechSearchDeckRandom, Count: 2}},
	"Team Galactic Grunt": {{Kind: MechSearchDeckRandom, Count: 1}},
	"Gladion":             {{Kind: MechSearchDeckRandom, Count: 1}},
	"Celestic Town Elder": {{Kind: MechRecoverFromDiscard, Count: 1}},
	"May":                 {{Kind: MechSearchDeckRandom, Count: 2}},
	"Copycat":             {{Kind: MechCustom, Note: "copycat"}},

	// Supporters: switching and disruption.
	"Sabrina": {{Kind: MechSwitchOpponentActive}},
	"Cyrus":   {{Kind: MechSwitchOpponentActive}},
	"Lyra":    {{Kind: MechSwitchOwnActive}},
	"Koga":    {{Kind: MechBounceToHand, Target: TargetOwnActive}},
	"Ilima":   {{Kind: MechBounceToHand, Target: TargetChooseOwn}},
	"Iono":    {{Kind: MechBothShuffleHandDraw}},
	"Mars":    {{Kind: MechCustom, Note: "mars"}},
	"Guzma":   {{Kind: MechCustom, Note: "guzma_discard_tools"}},
	"Looker":  {{Kind: MechNoOp}},

	// Supporters: unique.
	"Hala": {{Kind: MechSurviveKO}},
	"Will": {{Kind: MechGuaranteedHeads}},
	"Acerola": {{
		Kind: MechMoveDamage, Amount: 40, From: TargetChooseOwn, To: TargetOpponentActive,
	}},
	"Leaf": {{Kind: MechRetreatCostReduction, Amount: 2}},
}

var toolByName = map[string][]Mechanic{
	"Giant Cape":      {{Kind: MechPassiveHPBoost, Amount: 20}},
	"Leaf Cape":       {{Kind: MechPassiveHPBoost, Amount: 30}},
	"Rocky Helmet":    {{Kind: MechRetaliationDamage, Amount: 20}},
	"Poison Barb":     {{Kind: MechRetaliationStatus, Status: StatusPoisoned}},
	"Heavy Helmet":    {{Kind: MechPassiveDamageReduction, Amount: 20}},
	"Steel Apron": {
		{Kind: MechPassiveDamageReduction, Amount: 10},
		{Kind: MechStatusImmunity},
	},
	"Leftovers":       {{Kind: MechHealBetweenTurns, Amount: 10}},
	"Lum Berry":       {{Kind: MechCureStatusBetweenTurns}},
	"Sitrus Berry":    {{Kind: MechHealBetweenTurns, Amount: 30}},
	"Inflatable Boat": {{Kind: MechPassiveRetreatReduction, Amount: 1}},
	"Rescue Scarf":    {{Kind: MechOnKOBounceToHand}},
	"Electrical Cord": {{Kind: MechOnKOMoveEnergy, Count: 2}},
	"Lucky Mittens":   {{Kind: MechOnKODrawCard}},
	"Beastite":        {{Kind: MechDamageBoostPerPoint, Per: 10}},
	"Memory Light":    {{Kind: MechUsePreEvoAttacks}},
}
