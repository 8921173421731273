// Command pocketsim runs random-legal playouts against the battle engine and
// reports episode statistics. It doubles as a smoke test for card data files.
package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/friday-james/tcg-pocket-rl/engine"
	"github.com/friday-james/tcg-pocket-rl/engine/agent"
	"github.com/friday-james/tcg-pocket-rl/env"
)

type config struct {
	CardsFile string
	DecksFile string
	DeckA     string
	DeckB     string
	Episodes  int
	Seed      uint64
}

func loadConfig() config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config{
		CardsFile: envStr("CARDS_FILE", "data/cards.yaml"),
		DecksFile: envStr("DECKS_FILE", "data/decks.yaml"),
		DeckA:     envStr("DECK_A", ""),
		DeckB:     envStr("DECK_B", ""),
		Episodes:  envInt("EPISODES", 100),
		Seed:      uint64(envInt("SEED", 1)),
	}
	return cfg
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := loadConfig()

	e, err := env.New(cfg.CardsFile, cfg.DecksFile, engine.DefaultRules(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to load data files")
	}

	decks := e.Decks()
	if len(decks) == 0 {
		log.Fatal("no decks loaded")
	}
	deckA, deckB := cfg.DeckA, cfg.DeckB
	if deckA == "" {
		deckA = decks[0]
	}
	if deckB == "" {
		deckB = decks[len(decks)-1]
	}

	var wins [3]int // player 0, player 1, draws
	var totalSteps, totalTurns int

	rng := engine.NewRand(cfg.Seed)
	for ep := 0; ep < cfg.Episodes; ep++ {
		step, err := e.ResetNamed(rng.Uint64(), deckA, deckB)
		if err != nil {
			log.WithError(err).Fatal("reset failed")
		}

		for !step.Done {
			action, ok := pickRandomLegal(&rng, &step.Mask)
			if !ok {
				log.WithField("match", e.MatchID()).Error("no legal actions in live state")
				break
			}
			step, err = e.Apply(action)
			if err != nil {
				log.WithError(err).WithField("action", action).Fatal("apply failed")
			}
		}

		switch step.Winner {
		case engine.ResultPlayer0:
			wins[0]++
		case engine.ResultPlayer1:
			wins[1]++
		default:
			wins[2]++
		}
		totalSteps += e.Steps()
		totalTurns += int(e.Game().TurnNumber)
	}

	log.WithFields(logrus.Fields{
		"episodes":  cfg.Episodes,
		"deckA":     deckA,
		"deckB":     deckB,
		"winsA":     wins[0],
		"winsB":     wins[1],
		"draws":     wins[2],
		"avg_steps": float64(totalSteps) / float64(cfg.Episodes),
		"avg_turns": float64(totalTurns) / float64(cfg.Episodes),
	}).Info("playouts complete")
}

// pickRandomLegal samples uniformly over the set bits of the mask.
func pickRandomLegal(rng *engine.Rand, mask *[agent.NumActions]bool) (uint16, bool) {
	n := 0
	for _, ok := range mask {
		if ok {
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	k := rng.IntN(n)
	for i, ok := range mask {
		if !ok {
			continue
		}
		if k == 0 {
			return uint16(i), true
		}
		k--
	}
	return 0, false
}
