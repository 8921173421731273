package engine

import "testing"

// TestCanUseAttack covers the color-first, colorless-from-remainder cost
// matching.
func TestCanUseAttack(t *testing.T) {
	card := &CardDef{
		CardType: TypePokemon,
		Attacks: []Attack{
			{Name: "Jab", EnergyCost: []EnergyType{EnergyFire}},
			{Name: "Combo", EnergyCost: []EnergyType{EnergyFire, EnergyColorless}},
			{Name: "Flail", EnergyCost: []EnergyType{EnergyColorless, EnergyColorless}},
			{Name: "Blast", EnergyCost: []EnergyType{EnergyFire, EnergyFire, EnergyColorless}},
		},
	}

	cases := []struct {
		name     string
		idx      int
		attached []EnergyType
		want     bool
	}{
		{"exact color", 0, []EnergyType{EnergyFire}, true},
		{"wrong color", 0, []EnergyType{EnergyWater}, false},
		{"no energy", 0, nil, false},
		{"color plus spare fills colorless", 1, []EnergyType{EnergyFire, EnergyWater}, true},
		{"color consumed before colorless", 1, []EnergyType{EnergyFire}, false},
		{"two fire fills color then colorless", 1, []EnergyType{EnergyFire, EnergyFire}, true},
		{"colorless accepts any color", 2, []EnergyType{EnergyPsychic, EnergyGrass}, true},
		{"colorless short one", 2, []EnergyType{EnergyPsychic}, false},
		{"double color not double-counted", 3, []EnergyType{EnergyFire, EnergyWater, EnergyWater}, false},
		{"double color satisfied", 3, []EnergyType{EnergyFire, EnergyFire, EnergyWater}, true},
		{"overpaying is fine", 0, []EnergyType{EnergyFire, EnergyFire, EnergyFire}, true},
		{"out of range", 4, []EnergyType{EnergyFire}, false},
		{"negative index", -1, []EnergyType{EnergyFire}, false},
	}

	for _, tc := range cases {
		if got := card.CanUseAttack(tc.idx, tc.attached); got != tc.want {
			t.Errorf("%s: CanUseAttack(%d, %v) = %v, want %v", tc.name, tc.idx, tc.attached, got, tc.want)
		}
	}
}

// TestParseEnergyType checks the name table including aliases.
func TestParseEnergyType(t *testing.T) {
	cases := []struct {
		in   string
		want EnergyType
		ok   bool
	}{
		{"grass", EnergyGrass, true},
		{"fire", EnergyFire, true},
		{"lightning", EnergyLightning, true},
		{"electric", EnergyLightning, true},
		{"darkness", EnergyDarkness, true},
		{"dark", EnergyDarkness, true},
		{"metal", EnergyMetal, true},
		{"steel", EnergyMetal, true},
		{"normal", EnergyColorless, true},
		{"colorless", EnergyColorless, true},
		{"Fire", 0, false},
		{"", 0, false},
		{"fairy", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseEnergyType(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseEnergyType(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

// TestEnergyTypeStringRoundtrip checks String output feeds back through the
// parser for every concrete color.
func TestEnergyTypeStringRoundtrip(t *testing.T) {
	for et := EnergyType(0); et < NumEnergyTypes; et++ {
		got, ok := ParseEnergyType(et.String())
		if !ok || got != et {
			t.Errorf("ParseEnergyType(%q) = %v, %v; want %v, true", et.String(), got, ok, et)
		}
	}
	if EnergyNone.String() != "none" {
		t.Errorf("EnergyNone.String() = %q, want none", EnergyNone.String())
	}
}

// TestCardClassPredicates checks the card-class helpers.
func TestCardClassPredicates(t *testing.T) {
	basic := &CardDef{CardType: TypePokemon, Stage: StageBasic}
	stage2 := &CardDef{CardType: TypePokemon, Stage: Stage2}
	item := &CardDef{CardType: TypeItem}

	if !basic.IsBasicPokemon() || basic.IsEvolution() || basic.IsTrainer() {
		t.Error("basic Pokemon misclassified")
	}
	if stage2.IsBasicPokemon() || !stage2.IsEvolution() {
		t.Error("stage 2 misclassified")
	}
	if item.IsPokemon() || !item.IsTrainer() {
		t.Error("item misclassified")
	}
}
