package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCardDatabase(t *testing.T) {
	db, err := LoadCardDatabase(filepath.Join("testdata", "cards.yaml"))
	require.NoError(t, err)
	require.NotZero(t, db.Len())

	rat, err := db.Lookup("pk-rattata")
	require.NoError(t, err)
	assert.Equal(t, "Rattata", rat.Name)
	assert.Equal(t, TypePokemon, rat.CardType)
	assert.Equal(t, StageBasic, rat.Stage)
	assert.Equal(t, EnergyColorless, rat.EnergyType)
	assert.Equal(t, uint16(60), rat.HP)
	require.Len(t, rat.Attacks, 1)
	assert.Equal(t, []EnergyType{EnergyColorless}, rat.Attacks[0].EnergyCost)

	char, err := db.Lookup("pk-charmander")
	require.NoError(t, err)
	assert.Equal(t, EnergyWater, char.Weakness)

	cate, err := db.LookupName("Raticate")
	require.NoError(t, err)
	assert.Equal(t, "Rattata", cate.EvolvesFrom)
	assert.True(t, cate.IsEvolution())

	ex, err := db.Lookup("pk-pikachu-ex")
	require.NoError(t, err)
	assert.True(t, ex.IsEX)

	cape, err := db.Lookup("tr-giant-cape")
	require.NoError(t, err)
	assert.Equal(t, TypeTool, cape.CardType)
	assert.Equal(t, EnergyNone, cape.EnergyType)
}

func TestLookupUnknownCard(t *testing.T) {
	db := mustDB(t, nil)

	_, err := db.Lookup("no-such-id")
	assert.ErrorIs(t, err, ErrUnknownCard)

	_, err = db.LookupName("No Such Name")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestDuplicateCardID(t *testing.T) {
	_, err := NewCardDatabase([]CardDef{
		{ID: "dup", Name: "A"},
		{ID: "dup", Name: "B"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")
}

func TestLookupNameSharedPrintings(t *testing.T) {
	db := mustDB(t, []CardDef{
		{ID: "p1", Name: "Twin", CardType: TypePokemon, HP: 60},
		{ID: "p2", Name: "Twin", CardType: TypePokemon, HP: 70},
	})

	c, err := db.LookupName("Twin")
	require.NoError(t, err)
	assert.Equal(t, "p1", c.ID, "first printing wins")
}

func TestLoadCardDatabaseBadRecords(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing id", "cards:\n  - name: Nameless\n"},
		{"bad card type", "cards:\n  - id: x\n    card_type: stadium\n"},
		{"bad stage", "cards:\n  - id: x\n    stage: mega\n"},
		{"bad energy", "cards:\n  - id: x\n    energy_type: fairy\n"},
		{"bad weakness", "cards:\n  - id: x\n    weakness: sound\n"},
		{"bad attack cost", "cards:\n  - id: x\n    attacks:\n      - name: Hit\n        energy_cost: [mystery]\n"},
		{"not yaml", "cards: [unterminated\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cards.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o644))
			_, err := LoadCardDatabase(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadCardDatabaseMissingFile(t *testing.T) {
	_, err := LoadCardDatabase(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func mustDB(t *testing.T, cards []CardDef) *CardDatabase {
	t.Helper()
	db, err := NewCardDatabase(cards)
	require.NoError(t, err)
	return db
}
