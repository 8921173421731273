package engine

// StatusCondition is a special condition on a played Pokemon.
type StatusCondition uint8

const (
	StatusPoisoned StatusCondition = iota
	StatusBurned
	StatusAsleep
	StatusParalyzed
	StatusConfused

	numStatusConditions
)

// Target selects which Pokemon a mechanic applies to. Choose* targets
// require a player decision and surface as pending choices when more than
// one candidate exists.
type Target uint8

const (
	TargetSelf Target = iota // the acting Pokemon (own active)
	TargetOwnActive
	TargetOpponentActive
	TargetOpponentBench     // every opponent bench Pokemon
	TargetChooseOwn         // any of the player's Pokemon
	TargetChooseOwnBench    // one of the player's bench Pokemon
	TargetChooseOpponentBench
	TargetAllOwn // every one of the player's Pokemon
)

// Condition gates or scales damage mechanics.
type Condition uint8

const (
	CondNone Condition = iota
	CondTargetHasDamage
	CondCoinFlipHeads
	CondPerEnergyAttached // scaled by attached energy, filtered by Mechanic.Energy
	CondPerDamageOnSelf
	CondPerOwnBench
	CondPerOpponentBench
)

// MechanicKind enumerates the closed vocabulary of card effects.
type MechanicKind uint8

const (
	// Damage modifiers, resolved before damage is dealt.
	MechNoDamageOnTails MechanicKind = iota
	MechDamagePerCoinFlip
	MechConditionalDamage
	MechDamageMultiplied
	MechDamagePerEnergy
	MechDamagePerBench
	MechDamagePerDamageCounter

	// Healing.
	MechHeal
	MechFullHeal

	// Status.
	MechApplyStatus
	MechApplyStatusOnCoinFlip
	MechCureStatus

	// Energy.
	MechDiscardEnergy
	MechDiscardAllEnergy
	MechDiscardOpponentEnergy
	MechMoveEnergy
	MechMoveAllEnergy
	MechAttachEnergyFromDiscard
	MechAttachEnergyFromZone

	// Cards.
	MechDrawCards
	MechOpponentDiscard
	MechSearchDeckRandom
	MechShuffleHandDraw
	MechOpponentShuffleHandDraw
	MechBothShuffleHandDraw
	MechRecoverFromDiscard
	MechDiscardFromHand
	MechPeekDeck

	// Board manipulation.
	MechSwitchOpponentActive
	MechSwitchOwnActive
	MechBounceToHand
	MechShuffleIntoDeck
	MechPutOnOpponentBench
	MechCantRetreat
	MechCantAttackNextTurn
	MechBenchDamage
	MechSelfDamage
	MechMoveDamage

	// Turn-scoped modifiers.
	MechDamageBoost
	MechDamageReduction
	MechRetreatCostReduction
	MechPreventDamage
	MechInvulnerable
	MechGuaranteedHeads
	MechEndTurn

	// Passives, checked at game events rather than executed on play.
	MechPassiveHPBoost
	MechPassiveDamageReduction
	MechPassiveDamageBoost
	MechPassiveRetreatReduction
	MechRetaliationDamage
	MechRetaliationStatus
	MechOnKOBounceToHand
	MechOnKOMoveEnergy
	MechOnKODrawCard
	MechHealBetweenTurns
	MechCureStatusBetweenTurns
	MechStatusImmunity
	MechUsePreEvoAttacks
	MechDamageBoostPerPoint
	MechSurviveKO

	// Escape hatches.
	MechCustom
	MechNoOp
)

// Mechanic is one structured card effect. The Kind selects which fields are
// meaningful; unused fields stay zero.
type Mechanic struct {
	Kind   MechanicKind
	Amount uint16 // fixed damage, heal, boost, or reduction
	Per    uint16 // per-unit damage for scaling kinds
	Flips  uint8  // coin count for DamagePerCoinFlip
	Count  uint8  // card or energy count
	Energy EnergyType
	Status StatusCondition
	Target Target
	From   Target
	To     Target
	Cond   Condition
	Own    bool   // DamagePerBench counts own bench instead of opponent's
	Note   string // identifier for Custom effects
}

// isDamageModifier reports whether the mechanic resolves before damage and
// may override or extend the attack's printed damage.
func (m *Mechanic) isDamageModifier() bool {
	switch m.Kind {
	case MechNoDamageOnTails, MechDamagePerCoinFlip, MechConditionalDamage,
		MechDamageMultiplied, MechDamagePerEnergy, MechDamagePerBench,
		MechDamagePerDamageCounter:
		return true
	}
	return false
}

// isPassive reports whether the mechanic is only checked at game events.
func (m *Mechanic) isPassive() bool {
	switch m.Kind {
	case MechPassiveHPBoost, MechPassiveDamageReduction, MechPassiveDamageBoost,
		MechPassiveRetreatReduction, MechRetaliationDamage, MechRetaliationStatus,
		MechOnKOBounceToHand, MechOnKOMoveEnergy, MechOnKODrawCard,
		MechHealBetweenTurns, MechCureStatusBetweenTurns, MechStatusImmunity,
		MechUsePreEvoAttacks, MechDamageBoostPerPoint, MechSurviveKO:
		return true
	}
	return false
}
