package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DeckSize is the exact number of cards in a deck.
	DeckSize = 20
	// MaxCopies limits copies of any card name in a deck.
	MaxCopies = 2
)

// Deck is a validated list of card defs.
type Deck struct {
	Cards []*CardDef
}

// NewDeck validates the card list and returns a Deck.
func NewDeck(cards []*CardDef) (Deck, error) {
	d := Deck{Cards: cards}
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// Validate checks deck construction rules: exact size, the per-name copy
// limit, at least one basic Pokemon, and unbroken evolution lines.
func (d *Deck) Validate() error {
	if len(d.Cards) != DeckSize {
		return fmt.Errorf("%w: has %d cards, expected %d", ErrInvalidDeck, len(d.Cards), DeckSize)
	}

	counts := make(map[string]int)
	names := make(map[string]bool)
	for _, c := range d.Cards {
		counts[c.Name]++
		names[c.Name] = true
		if counts[c.Name] > MaxCopies {
			return fmt.Errorf("%w: %d copies of %q (max %d)", ErrInvalidDeck, counts[c.Name], c.Name, MaxCopies)
		}
	}

	hasBasic := false
	for _, c := range d.Cards {
		if c.IsBasicPokemon() {
			hasBasic = true
			break
		}
	}
	if !hasBasic {
		return fmt.Errorf("%w: no basic Pokemon", ErrInvalidDeck)
	}

	for _, c := range d.Cards {
		if c.EvolvesFrom != "" && !names[c.EvolvesFrom] {
			return fmt.Errorf("%w: %q needs %q in the deck", ErrInvalidDeck, c.Name, c.EvolvesFrom)
		}
	}
	return nil
}

// BasicCount returns how many basic Pokemon the deck holds.
func (d *Deck) BasicCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.IsBasicPokemon() {
			n++
		}
	}
	return n
}

// TrainerCount returns how many trainer cards the deck holds.
func (d *Deck) TrainerCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.IsTrainer() {
			n++
		}
	}
	return n
}

// ResolveDeck maps a list of card ids to defs and validates the result.
func ResolveDeck(db *CardDatabase, ids []string) (Deck, error) {
	cards := make([]*CardDef, 0, len(ids))
	for _, id := range ids {
		def, err := db.Lookup(id)
		if err != nil {
			return Deck{}, err
		}
		cards = append(cards, def)
	}
	return NewDeck(cards)
}

// deckListFile is the YAML layout for a file of named deck lists.
type deckListFile struct {
	Decks []deckListEntry `yaml:"decks"`
}

type deckListEntry struct {
	Name  string `yaml:"name"`
	Cards []struct {
		Card  string `yaml:"card"`
		Count int    `yaml:"count"`
	} `yaml:"cards"`
}

// LoadDeckLists reads a YAML deck file and resolves each list against the
// database. Entries reference cards by id with a copy count.
func LoadDeckLists(db *CardDatabase, path string) (map[string]Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	var file deckListFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse deck file: %w", err)
	}

	decks := make(map[string]Deck, len(file.Decks))
	for _, entry := range file.Decks {
		var ids []string
		for _, c := range entry.Cards {
			for i := 0; i < c.Count; i++ {
				ids = append(ids, c.Card)
			}
		}
		deck, err := ResolveDeck(db, ids)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", entry.Name, err)
		}
		decks[entry.Name] = deck
	}
	return decks, nil
}
