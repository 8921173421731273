package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEffectText covers the wording patterns the parser recognizes.
func TestParseEffectText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Mechanic
	}{
		{
			name: "no damage on tails",
			text: "Flip a coin. If tails, this attack does nothing.",
			want: Mechanic{Kind: MechNoDamageOnTails},
		},
		{
			name: "coin flip bonus",
			text: "Flip a coin. If heads, this attack does 30 more damage.",
			want: Mechanic{Kind: MechConditionalDamage, Amount: 30, Cond: CondCoinFlipHeads},
		},
		{
			name: "multi flip",
			text: "Flip 3 coins. This attack does 50 damage for each heads.",
			want: Mechanic{Kind: MechDamagePerCoinFlip, Per: 50, Flips: 3},
		},
		{
			name: "per energy",
			text: "This attack does 20 damage for each Energy attached to this Pokémon.",
			want: Mechanic{Kind: MechDamagePerEnergy, Per: 20, Energy: EnergyNone},
		},
		{
			name: "per own bench",
			text: "This attack does 30 damage for each of your Benched Pokémon.",
			want: Mechanic{Kind: MechDamagePerBench, Per: 30, Own: true},
		},
		{
			name: "per damage counter",
			text: "This attack does 10 more damage for each damage counter on this Pokémon.",
			want: Mechanic{Kind: MechDamagePerDamageCounter, Per: 10},
		},
		{
			name: "apply status",
			text: "Your opponent's Active Pokémon is now Poisoned.",
			want: Mechanic{Kind: MechApplyStatus, Status: StatusPoisoned, Target: TargetOpponentActive},
		},
		{
			name: "status on coin flip",
			text: "Flip a coin. If heads, your opponent's Active Pokémon is now Paralyzed.",
			want: Mechanic{Kind: MechApplyStatusOnCoinFlip, Status: StatusParalyzed, Target: TargetOpponentActive},
		},
		{
			name: "heal self",
			text: "Heal 30 damage from this Pokémon.",
			want: Mechanic{Kind: MechHeal, Amount: 30, Target: TargetSelf},
		},
		{
			name: "discard own energy",
			text: "Discard 2 Fire Energy from this Pokémon.",
			want: Mechanic{Kind: MechDiscardEnergy, Count: 2, Energy: EnergyNone, Target: TargetSelf},
		},
		{
			name: "draw",
			text: "Draw 2 cards.",
			want: Mechanic{Kind: MechDrawCards, Count: 2},
		},
		{
			name: "self damage",
			text: "This Pokémon also does 20 damage to itself.",
			want: Mechanic{Kind: MechSelfDamage, Amount: 20},
		},
		{
			name: "bench damage choose",
			text: "This attack does 20 damage to 1 of your opponent's Benched Pokémon.",
			want: Mechanic{Kind: MechBenchDamage, Amount: 20, Target: TargetChooseOpponentBench},
		},
		{
			name: "bench damage all",
			text: "This attack also does 10 damage to each of your opponent's Benched Pokémon.",
			want: Mechanic{Kind: MechBenchDamage, Amount: 10, Target: TargetOpponentBench},
		},
		{
			name: "switch opponent",
			text: "Switch your opponent's Active Pokémon with 1 of their Benched Pokémon.",
			want: Mechanic{Kind: MechSwitchOpponentActive},
		},
		{
			name: "prevent all",
			text: "During your opponent's next turn, prevent all damage done to this Pokémon.",
			want: Mechanic{Kind: MechInvulnerable},
		},
		{
			name: "takes less",
			text: "During your opponent's next turn, this Pokémon takes 20 less damage from attacks.",
			want: Mechanic{Kind: MechDamageReduction, Amount: 20},
		},
		{
			name: "cant retreat",
			text: "During your opponent's next turn, the Defending Pokémon can't retreat.",
			want: Mechanic{Kind: MechCantRetreat},
		},
		{
			name: "bonus if damaged",
			text: "If your opponent's Active Pokémon has damage on it, this attack does 40 more damage.",
			want: Mechanic{Kind: MechConditionalDamage, Amount: 40, Cond: CondTargetHasDamage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mechs := ParseEffectText(tt.text)
			require.NotEmpty(t, mechs, "no mechanics parsed")
			assert.Equal(t, tt.want, mechs[0])
		})
	}
}

// TestParseEffectTextFallback verifies unrecognized wording becomes a Custom
// mechanic instead of vanishing.
func TestParseEffectTextFallback(t *testing.T) {
	mechs := ParseEffectText("Something entirely novel happens.")
	require.Len(t, mechs, 1)
	assert.Equal(t, MechCustom, mechs[0].Kind)
	assert.NotEmpty(t, mechs[0].Note)
}

// TestRegistryCuratedTables verifies trainers and tools resolve through the
// by-name tables.
func TestRegistryCuratedTables(t *testing.T) {
	db, err := LoadCardDatabase("testdata/cards.yaml")
	require.NoError(t, err)
	reg := NewRegistry(db)

	research, err := db.LookupName("Professor's Research")
	require.NoError(t, err)
	mechs := reg.TrainerEffects(research.ID)
	require.Len(t, mechs, 1)
	assert.Equal(t, MechDrawCards, mechs[0].Kind)
	assert.Equal(t, uint8(2), mechs[0].Count)

	cape, err := db.LookupName("Giant Cape")
	require.NoError(t, err)
	tool := reg.ToolEffects(cape.ID)
	require.Len(t, tool, 1)
	assert.Equal(t, MechPassiveHPBoost, tool[0].Kind)
	assert.Equal(t, uint16(20), tool[0].Amount)

	helmet, err := db.LookupName("Rocky Helmet")
	require.NoError(t, err)
	retaliation := reg.ToolEffects(helmet.ID)
	require.Len(t, retaliation, 1)
	assert.Equal(t, MechRetaliationDamage, retaliation[0].Kind)
}

// TestRegistryAttackEffects verifies attack effect text is parsed per attack
// index.
func TestRegistryAttackEffects(t *testing.T) {
	db, err := LoadCardDatabase("testdata/cards.yaml")
	require.NoError(t, err)
	reg := NewRegistry(db)

	charmander, err := db.LookupName("Charmander")
	require.NoError(t, err)
	mechs := reg.AttackEffects(charmander.ID, 0)
	require.Len(t, mechs, 1)
	assert.Equal(t, MechDiscardEnergy, mechs[0].Kind)

	assert.Nil(t, reg.AttackEffects(charmander.ID, 5), "out-of-range attack index")
	assert.Nil(t, reg.AttackEffects("no-such-card", 0))
}
