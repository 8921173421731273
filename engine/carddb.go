package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rawCard mirrors one card record in the database file. Fields are loosely
// typed; conversion to CardDef normalizes names and drops unknowns.
type rawCard struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	CardType    string       `yaml:"card_type"`
	HP          uint16       `yaml:"hp"`
	Stage       string       `yaml:"stage"`
	EnergyType  string       `yaml:"energy_type"`
	Weakness    string       `yaml:"weakness"`
	RetreatCost uint8        `yaml:"retreat_cost"`
	Attacks     []rawAttack  `yaml:"attacks"`
	Ability     *Ability     `yaml:"ability"`
	EvolvesFrom string       `yaml:"evolves_from"`
	IsEX        bool         `yaml:"is_ex"`
	Effect      string       `yaml:"effect"`
}

type rawAttack struct {
	Name       string   `yaml:"name"`
	EnergyCost []string `yaml:"energy_cost"`
	Damage     uint16   `yaml:"damage"`
	Effect     string   `yaml:"effect"`
}

type cardFile struct {
	Cards []rawCard `yaml:"cards"`
}

// CardDatabase is an immutable catalogue of card definitions. It is built
// once at startup and safe for concurrent reads.
type CardDatabase struct {
	cards  []CardDef
	byID   map[string]*CardDef
	byName map[string][]*CardDef
}

// NewCardDatabase indexes the given defs by id and name. Multiple printings
// may share a name; ids must be unique.
func NewCardDatabase(cards []CardDef) (*CardDatabase, error) {
	db := &CardDatabase{
		cards:  cards,
		byID:   make(map[string]*CardDef, len(cards)),
		byName: make(map[string][]*CardDef),
	}
	for i := range db.cards {
		c := &db.cards[i]
		if _, dup := db.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", c.ID)
		}
		db.byID[c.ID] = c
		db.byName[c.Name] = append(db.byName[c.Name], c)
	}
	return db, nil
}

// LoadCardDatabase reads and indexes a YAML card file.
func LoadCardDatabase(path string) (*CardDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card database: %w", err)
	}
	var file cardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse card database: %w", err)
	}

	cards := make([]CardDef, 0, len(file.Cards))
	for _, raw := range file.Cards {
		def, err := convertRawCard(raw)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", raw.ID, err)
		}
		cards = append(cards, def)
	}
	return NewCardDatabase(cards)
}

func convertRawCard(raw rawCard) (CardDef, error) {
	def := CardDef{
		ID:          raw.ID,
		Name:        raw.Name,
		HP:          raw.HP,
		RetreatCost: raw.RetreatCost,
		Ability:     raw.Ability,
		EvolvesFrom: raw.EvolvesFrom,
		IsEX:        raw.IsEX,
		Effect:      raw.Effect,
		EnergyType:  EnergyNone,
		Weakness:    EnergyNone,
	}
	if def.ID == "" {
		return def, fmt.Errorf("missing id")
	}

	switch raw.CardType {
	case "", "pokemon":
		def.CardType = TypePokemon
	case "supporter":
		def.CardType = TypeSupporter
	case "item":
		def.CardType = TypeItem
	case "tool":
		def.CardType = TypeTool
	case "fossil":
		def.CardType = TypeFossil
	default:
		return def, fmt.Errorf("unknown card type %q", raw.CardType)
	}

	switch raw.Stage {
	case "":
		def.Stage = StageNone
	case "basic":
		def.Stage = StageBasic
	case "stage1", "stage-1", "stage 1":
		def.Stage = Stage1
	case "stage2", "stage-2", "stage 2":
		def.Stage = Stage2
	default:
		return def, fmt.Errorf("unknown stage %q", raw.Stage)
	}

	if raw.EnergyType != "" {
		et, ok := ParseEnergyType(raw.EnergyType)
		if !ok {
			return def, fmt.Errorf("unknown energy type %q", raw.EnergyType)
		}
		def.EnergyType = et
	}
	if raw.Weakness != "" {
		et, ok := ParseEnergyType(raw.Weakness)
		if !ok {
			return def, fmt.Errorf("unknown weakness %q", raw.Weakness)
		}
		def.Weakness = et
	}

	for _, ra := range raw.Attacks {
		atk := Attack{Name: ra.Name, Damage: ra.Damage, Effect: ra.Effect}
		for _, cost := range ra.EnergyCost {
			et, ok := ParseEnergyType(cost)
			if !ok {
				return def, fmt.Errorf("attack %q: unknown energy %q", ra.Name, cost)
			}
			atk.EnergyCost = append(atk.EnergyCost, et)
		}
		def.Attacks = append(def.Attacks, atk)
	}
	return def, nil
}

// Lookup returns the card def with the given id, or ErrUnknownCard.
func (db *CardDatabase) Lookup(id string) (*CardDef, error) {
	if c, ok := db.byID[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: id %q", ErrUnknownCard, id)
}

// LookupName returns the first printing with the given name, or ErrUnknownCard.
func (db *CardDatabase) LookupName(name string) (*CardDef, error) {
	if cs, ok := db.byName[name]; ok && len(cs) > 0 {
		return cs[0], nil
	}
	return nil, fmt.Errorf("%w: name %q", ErrUnknownCard, name)
}

// Cards returns all defs in load order.
func (db *CardDatabase) Cards() []CardDef { return db.cards }

// Len returns the number of cards in the database.
func (db *CardDatabase) Len() int { return len(db.cards) }
