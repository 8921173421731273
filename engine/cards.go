package engine

// EnergyType is one of the ten energy colors.
type EnergyType uint8

const (
	EnergyGrass EnergyType = iota
	EnergyFire
	EnergyWater
	EnergyLightning
	EnergyPsychic
	EnergyFighting
	EnergyDarkness
	EnergyMetal
	EnergyDragon
	EnergyColorless

	// EnergyNone marks the absence of an energy type (e.g. unset energy zone).
	EnergyNone EnergyType = 0xFF
)

// NumEnergyTypes counts the encodable energy colors (Colorless included).
const NumEnergyTypes = 10

// NumConcreteEnergy counts the colors a player may pick for the energy zone.
// Colorless is a cost wildcard, never a zone type.
const NumConcreteEnergy = 9

var energyNames = map[string]EnergyType{
	"grass":     EnergyGrass,
	"fire":      EnergyFire,
	"water":     EnergyWater,
	"lightning": EnergyLightning,
	"electric":  EnergyLightning,
	"psychic":   EnergyPsychic,
	"fighting":  EnergyFighting,
	"darkness":  EnergyDarkness,
	"dark":      EnergyDarkness,
	"metal":     EnergyMetal,
	"steel":     EnergyMetal,
	"dragon":    EnergyDragon,
	"colorless": EnergyColorless,
	"normal":    EnergyColorless,
}

// ParseEnergyType maps a lowercase color name to an EnergyType.
func ParseEnergyType(s string) (EnergyType, bool) {
	et, ok := energyNames[s]
	return et, ok
}

func (e EnergyType) String() string {
	switch e {
	case EnergyGrass:
		return "grass"
	case EnergyFire:
		return "fire"
	case EnergyWater:
		return "water"
	case EnergyLightning:
		return "lightning"
	case EnergyPsychic:
		return "psychic"
	case EnergyFighting:
		return "fighting"
	case EnergyDarkness:
		return "darkness"
	case EnergyMetal:
		return "metal"
	case EnergyDragon:
		return "dragon"
	case EnergyColorless:
		return "colorless"
	}
	return "none"
}

// Stage is the evolution stage of a Pokemon card.
type Stage uint8

const (
	StageNone Stage = iota
	StageBasic
	Stage1
	Stage2
)

// CardType distinguishes Pokemon from the trainer card classes.
type CardType uint8

const (
	TypePokemon CardType = iota
	TypeSupporter
	TypeItem
	TypeTool
	TypeFossil
)

// Attack is one attack printed on a Pokemon card.
type Attack struct {
	Name       string       `yaml:"name"`
	EnergyCost []EnergyType `yaml:"-"`
	Damage     uint16       `yaml:"damage"`
	Effect     string       `yaml:"effect"`
}

// Ability is a passive ability printed on a Pokemon card.
type Ability struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// CardDef is an immutable card definition. Instances on the board reference
// the same def; all mutable state lives in PlayedCard.
type CardDef struct {
	ID       string
	Name     string
	CardType CardType

	// Pokemon fields. Zero values for trainer cards.
	HP          uint16
	Stage       Stage
	EnergyType  EnergyType // EnergyNone for trainers
	Weakness    EnergyType // EnergyNone if no weakness
	RetreatCost uint8
	Attacks     []Attack
	Ability     *Ability
	EvolvesFrom string
	IsEX        bool

	// Effect text for trainer cards.
	Effect string
}

func (c *CardDef) IsPokemon() bool { return c.CardType == TypePokemon }

func (c *CardDef) IsBasicPokemon() bool {
	return c.CardType == TypePokemon && c.Stage == StageBasic
}

func (c *CardDef) IsEvolution() bool {
	return c.CardType == TypePokemon && (c.Stage == Stage1 || c.Stage == Stage2)
}

func (c *CardDef) IsTrainer() bool {
	switch c.CardType {
	case TypeSupporter, TypeItem, TypeTool, TypeFossil:
		return true
	}
	return false
}

// CanUseAttack reports whether the attached energy satisfies the cost of
// attack attackIdx. Specific colors are consumed first; colorless slots are
// filled from whatever remains.
func (c *CardDef) CanUseAttack(attackIdx int, attached []EnergyType) bool {
	if attackIdx < 0 || attackIdx >= len(c.Attacks) {
		return false
	}
	cost := c.Attacks[attackIdx].EnergyCost

	remaining := make([]EnergyType, len(attached))
	copy(remaining, attached)

	colorless := 0
	for _, req := range cost {
		if req == EnergyColorless {
			colorless++
			continue
		}
		found := false
		for i, have := range remaining {
			if have == req {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(remaining) >= colorless
}
