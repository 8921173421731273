// Package env wraps the battle engine in a gym-style episode interface for
// reinforcement-learning training loops.
package env

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/friday-james/tcg-pocket-rl/engine"
	"github.com/friday-james/tcg-pocket-rl/engine/agent"
)

// Rewards from the acting player's perspective.
const (
	RewardWin  float32 = 1.0
	RewardLoss float32 = -1.0
	RewardDraw float32 = 0.0
)

// Step carries everything a policy needs after one transition: both players'
// observations, the acting player's legal mask, and terminal info.
type Step struct {
	// Obs holds one observation per player, indexed by player number.
	Obs    [2][agent.ObsDim]float32
	Mask   [agent.NumActions]bool
	Acting uint8
	Done   bool
	Winner engine.Result

	// Reward is for the player who took the action that produced this step.
	Reward float32
}

// Env hosts one match at a time on top of a shared card database.
type Env struct {
	db    *engine.CardDatabase
	reg   *engine.Registry
	decks map[string]engine.Deck
	rules engine.Rules
	log   *logrus.Logger

	game    *engine.Game
	matchID uuid.UUID
	steps   int
}

// New builds an environment from a card database file and a deck list file.
func New(cardsPath, decksPath string, rules engine.Rules, log *logrus.Logger) (*Env, error) {
	db, err := engine.LoadCardDatabase(cardsPath)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	decks, err := engine.LoadDeckLists(db, decksPath)
	if err != nil {
		return nil, fmt.Errorf("load decks: %w", err)
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Env{
		db:    db,
		reg:   engine.NewRegistry(db),
		decks: decks,
		rules: rules,
		log:   log,
	}, nil
}

// NewFromDatabase builds an environment around an existing database and
// explicit decks, for callers that assemble decks programmatically.
func NewFromDatabase(db *engine.CardDatabase, decks map[string]engine.Deck, rules engine.Rules, log *logrus.Logger) *Env {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Env{
		db:    db,
		reg:   engine.NewRegistry(db),
		decks: decks,
		rules: rules,
		log:   log,
	}
}

// Decks lists the loaded deck names.
func (e *Env) Decks() []string {
	names := make([]string, 0, len(e.decks))
	for name := range e.decks {
		names = append(names, name)
	}
	return names
}

// MatchID identifies the current episode.
func (e *Env) MatchID() uuid.UUID { return e.matchID }

// Game exposes the underlying match state (read-only use expected).
func (e *Env) Game() *engine.Game { return e.game }

// Reset starts a new match from two ordered card-id lists with the given
// seed and returns the first step. Unknown ids surface ErrUnknownCard and
// rule violations ErrInvalidDeck.
func (e *Env) Reset(seed uint64, deckA, deckB []string) (*Step, error) {
	da, err := engine.ResolveDeck(e.db, deckA)
	if err != nil {
		return nil, err
	}
	db, err := engine.ResolveDeck(e.db, deckB)
	if err != nil {
		return nil, err
	}
	return e.start(seed, da, db, "", ""), nil
}

// ResetNamed starts a new match between two decks from the loaded deck file.
func (e *Env) ResetNamed(seed uint64, deckA, deckB string) (*Step, error) {
	da, ok := e.decks[deckA]
	if !ok {
		return nil, fmt.Errorf("%w: deck %q not loaded", engine.ErrInvalidDeck, deckA)
	}
	db, ok := e.decks[deckB]
	if !ok {
		return nil, fmt.Errorf("%w: deck %q not loaded", engine.ErrInvalidDeck, deckB)
	}
	if err := da.Validate(); err != nil {
		return nil, err
	}
	if err := db.Validate(); err != nil {
		return nil, err
	}
	return e.start(seed, da, db, deckA, deckB), nil
}

func (e *Env) start(seed uint64, deckA, deckB engine.Deck, nameA, nameB string) *Step {
	e.game = engine.NewGame(e.reg, deckA, deckB, seed, e.rules)
	e.matchID = uuid.New()
	e.steps = 0

	fields := logrus.Fields{
		"match": e.matchID,
		"seed":  seed,
	}
	if nameA != "" {
		fields["deckA"] = nameA
		fields["deckB"] = nameB
	}
	e.log.WithFields(fields).Info("match started")

	return e.observe(0)
}

// LegalMask returns the current legal action mask without advancing.
func (e *Env) LegalMask() engine.LegalMask {
	if e.game == nil {
		return engine.LegalMask{}
	}
	return e.game.LegalActions()
}

// Observe returns the observation for an arbitrary player, independent of
// whose turn it is.
func (e *Env) Observe(player uint8, out *[agent.ObsDim]float32) {
	agent.Encode(e.game, player, out)
}

// Apply advances the match by one action. The returned step is addressed to
// the next acting player; its Reward belongs to the player who acted.
func (e *Env) Apply(actionIdx uint16) (*Step, error) {
	if e.game == nil {
		return nil, fmt.Errorf("%w: no active match", engine.ErrIllegalAction)
	}
	actor := e.game.ActingPlayer()
	if err := e.game.Apply(actionIdx); err != nil {
		return nil, err
	}
	e.steps++

	step := e.observe(actor)
	if step.Done {
		e.log.WithFields(logrus.Fields{
			"match":   e.matchID,
			"steps":   e.steps,
			"turns":   e.game.TurnNumber,
			"outcome": e.game.Winner(),
			"fizzles": e.game.FizzleCount,
		}).Info("match finished")
	}
	return step, nil
}

// Steps returns the number of actions applied this episode.
func (e *Env) Steps() int { return e.steps }

func (e *Env) observe(rewardFor uint8) *Step {
	s := &Step{
		Acting: e.game.ActingPlayer(),
		Done:   e.game.IsTerminal(),
		Winner: e.game.Winner(),
	}
	agent.Encode(e.game, 0, &s.Obs[0])
	agent.Encode(e.game, 1, &s.Obs[1])
	agent.ActionMask(e.game.LegalActions(), &s.Mask)

	if s.Done {
		switch s.Winner {
		case engine.ResultPlayer0:
			if rewardFor == 0 {
				s.Reward = RewardWin
			} else {
				s.Reward = RewardLoss
			}
		case engine.ResultPlayer1:
			if rewardFor == 1 {
				s.Reward = RewardWin
			} else {
				s.Reward = RewardLoss
			}
		default:
			s.Reward = RewardDraw
		}
	}
	return s
}
