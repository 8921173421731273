package engine

// MaxBench is the number of bench slots per player.
const MaxBench = 3

// BoardSlots counts board positions per player: 0 = active, 1..3 = bench.
const BoardSlots = 4

// StartingHand is the number of cards dealt at game start.
const StartingHand = 5

// MaxHandEncode is the number of hand slots the action universe can address.
// Cards beyond this index stay in hand but cannot be played until the hand
// shrinks.
const MaxHandEncode = 10

// TurnPhase is the coarse state-machine phase. Draw and between-turns steps
// resolve automatically inside transitions and never surface as phases.
type TurnPhase uint8

const (
	PhaseSetup TurnPhase = iota // players place their opening Pokemon
	PhaseMain                   // normal turn actions
	PhaseChoice                 // a pending effect choice must be resolved
	PhaseOver                   // terminal
)

// Result is the outcome of a finished match.
type Result uint8

const (
	ResultNone Result = iota // match still running
	ResultPlayer0
	ResultPlayer1
	ResultDraw
)

// PendingKind identifies what a pending choice is asking for.
type PendingKind uint8

const (
	PendingPromote       PendingKind = iota // promote a bench Pokemon after a KO
	PendingChooseTarget                     // pick a board position for an effect
	PendingDiscardHand                      // pick a hand card to discard
	PendingDiscardEnergy                    // pick an energy to discard from a Pokemon
)

// PendingChoice is one entry on the pending-choice stack. Chooser acts next
// regardless of whose turn it is; Apply resumes the effect with the chosen
// index.
type PendingChoice struct {
	Kind    PendingKind
	Chooser uint8

	// ChooseTarget fields: board positions that may be picked, whether they
	// index the opponent's board, and the mechanic to apply to the pick.
	Targets  []uint8
	Opponent bool
	Effect   Mechanic

	// DiscardHand / DiscardEnergy fields.
	Count    uint8
	Position uint8 // board position holding the energy
}

// deferredEnd records how to finish a turn once a pending promotion resolves.
type deferredEnd uint8

const (
	deferNone       deferredEnd = iota
	deferFullEnd                // run the full end-of-turn sequence
	deferTurnSwitch             // between-turns already ran; just switch
)

// ---------------------------------------------------------------------------
// Action index constants
// ---------------------------------------------------------------------------

// ActionSpaceSize is the fixed size of the discrete action universe.
// Indices at and above actionReserved are permanently unused.
const ActionSpaceSize uint16 = 512

const (
	ActionBasePlaceActive    uint16 = 0   // PlaceActive(hand 0..9)
	ActionBasePlaceBench     uint16 = 10  // PlaceBench(hand 0..9)
	ActionConfirmSetup       uint16 = 20
	ActionBasePlayToBench    uint16 = 21  // PlayToBench(hand 0..9)
	ActionBaseEvolve         uint16 = 31  // Evolve(hand*4+board), 40 entries
	ActionBaseSetEnergyZone  uint16 = 71  // SetEnergyZone(0..8), concrete colors
	ActionBaseAttachEnergy   uint16 = 80  // AttachEnergy(board 0..3)
	ActionBaseRetreat        uint16 = 84  // Retreat(bench 0..2)
	ActionBaseUseAbility     uint16 = 87  // UseAbility(board 0..3)
	ActionBasePlayItem       uint16 = 91  // PlayItem(hand 0..9)
	ActionBasePlaySupporter  uint16 = 101 // PlaySupporter(hand 0..9)
	ActionBaseAttack         uint16 = 111 // Attack(0..2)
	ActionEndTurn            uint16 = 114
	ActionBaseChooseTarget   uint16 = 115 // ChooseTarget(board 0..3)
	ActionBaseChooseOption   uint16 = 119 // ChooseOption(0..9)
	ActionBasePromote        uint16 = 129 // Promote(bench 0..2)

	actionReserved uint16 = 132
)

// ---------------------------------------------------------------------------
// Encode functions
// ---------------------------------------------------------------------------

// EncodePlaceActive returns the action index for placing hand card handIdx
// as the opening active Pokemon.
func EncodePlaceActive(handIdx uint8) uint16 { return ActionBasePlaceActive + uint16(handIdx) }

// EncodePlaceBench returns the action index for benching hand card handIdx
// during setup.
func EncodePlaceBench(handIdx uint8) uint16 { return ActionBasePlaceBench + uint16(handIdx) }

// EncodePlayToBench returns the action index for playing hand card handIdx
// to the bench in the main phase.
func EncodePlayToBench(handIdx uint8) uint16 { return ActionBasePlayToBench + uint16(handIdx) }

// EncodeEvolve returns the action index for evolving the Pokemon at board
// position boardPos with hand card handIdx.
func EncodeEvolve(handIdx, boardPos uint8) uint16 {
	return ActionBaseEvolve + uint16(handIdx)*BoardSlots + uint16(boardPos)
}

// EncodeSetEnergyZone returns the action index for picking a zone color.
func EncodeSetEnergyZone(et EnergyType) uint16 { return ActionBaseSetEnergyZone + uint16(et) }

// EncodeAttachEnergy returns the action index for attaching the zone energy
// to board position boardPos.
func EncodeAttachEnergy(boardPos uint8) uint16 { return ActionBaseAttachEnergy + uint16(boardPos) }

// EncodeRetreat returns the action index for retreating into bench slot benchIdx.
func EncodeRetreat(benchIdx uint8) uint16 { return ActionBaseRetreat + uint16(benchIdx) }

// EncodeUseAbility returns the action index for using the ability of the
// Pokemon at board position boardPos.
func EncodeUseAbility(boardPos uint8) uint16 { return ActionBaseUseAbility + uint16(boardPos) }

// EncodePlayItem returns the action index for playing the item, tool, or
// fossil at hand index handIdx.
func EncodePlayItem(handIdx uint8) uint16 { return ActionBasePlayItem + uint16(handIdx) }

// EncodePlaySupporter returns the action index for playing the supporter at
// hand index handIdx.
func EncodePlaySupporter(handIdx uint8) uint16 { return ActionBasePlaySupporter + uint16(handIdx) }

// EncodeAttack returns the action index for using attack attackIdx.
func EncodeAttack(attackIdx uint8) uint16 { return ActionBaseAttack + uint16(attackIdx) }

// EncodeChooseTarget returns the action index for choosing board position
// boardPos in a pending choice.
func EncodeChooseTarget(boardPos uint8) uint16 { return ActionBaseChooseTarget + uint16(boardPos) }

// EncodeChooseOption returns the action index for choosing option optIdx in
// a pending choice.
func EncodeChooseOption(optIdx uint8) uint16 { return ActionBaseChooseOption + uint16(optIdx) }

// EncodePromote returns the action index for promoting bench slot benchIdx.
func EncodePromote(benchIdx uint8) uint16 { return ActionBasePromote + uint16(benchIdx) }

// ---------------------------------------------------------------------------
// Decode / predicate functions
// ---------------------------------------------------------------------------

// ActionIsPlaceActive returns the hand index if idx encodes a PlaceActive action.
func ActionIsPlaceActive(idx uint16) (handIdx uint8, ok bool) {
	if idx < ActionBasePlaceBench {
		return uint8(idx - ActionBasePlaceActive), true
	}
	return 0, false
}

// ActionIsPlaceBench returns the hand index if idx encodes a PlaceBench action.
func ActionIsPlaceBench(idx uint16) (handIdx uint8, ok bool) {
	if idx >= ActionBasePlaceBench && idx < ActionConfirmSetup {
		return uint8(idx - ActionBasePlaceBench), true
	}
	return 0, false
}

// ActionIsPlayToBench returns the hand index if idx encodes a PlayToBench action.
func ActionIsPlayToBench(idx uint16) (handIdx uint8, ok bool) {
	if idx >= ActionBasePlayToBench && idx < ActionBaseEvolve {
		return uint8(idx - ActionBasePlayToBench), true
	}
	return 0, false
}

// ActionIsEvolve returns hand and board indices if idx encodes an Evolve action.
func ActionIsEvolve(idx uint16) (handIdx, boardPos uint8, ok bool) {
	if idx >= ActionBaseEvolve && idx < ActionBaseSetEnergyZone {
		offset := idx - ActionBaseEvolve
		return uint8(offset / BoardSlots), uint8(offset % BoardSlots), true
	}
	return 0, 0, false
}

// ActionIsSetEnergyZone returns the energy type if idx encodes a SetEnergyZone action.
func ActionIsSetEnergyZone(idx uint16) (et EnergyType, ok bool) {
	if idx >= ActionBaseSetEnergyZone && idx < ActionBaseAttachEnergy {
		return EnergyType(idx - ActionBaseSetEnergyZone), true
	}
	return EnergyNone, false
}

// ActionIsAttachEnergy returns the board position if idx encodes an AttachEnergy action.
func ActionIsAttachEnergy(idx uint16) (boardPos uint8, ok bool) {
	if idx >= ActionBaseAttachEnergy && idx < ActionBaseRetreat {
		return uint8(idx - ActionBaseAttachEnergy), true
	}
	return 0, false
}

// ActionIsRetreat returns the bench index if idx encodes a Retreat action.
func ActionIsRetreat(idx uint16) (benchIdx uint8, ok bool) {
	if idx >= ActionBaseRetreat && idx < ActionBaseUseAbility {
		return uint8(idx - ActionBaseRetreat), true
	}
	return 0, false
}

// ActionIsUseAbility returns the board position if idx encodes a UseAbility action.
func ActionIsUseAbility(idx uint16) (boardPos uint8, ok bool) {
	if idx >= ActionBaseUseAbility && idx < ActionBasePlayItem {
		return uint8(idx - ActionBaseUseAbility), true
	}
	return 0, false
}

// ActionIsPlayItem returns the hand index if idx encodes a PlayItem action.
func ActionIsPlayItem(idx uint16) (handIdx uint8, ok bool) {
	if idx >= ActionBasePlayItem && idx < ActionBasePlaySupporter {
		return uint8(idx - ActionBasePlayItem), true
	}
	return 0, false
}

// ActionIsPlaySupporter returns the hand index if idx encodes a PlaySupporter action.
func ActionIsPlaySupporter(idx uint16) (handIdx uint8, ok bool) {
	if idx >= ActionBasePlaySupporter && idx < ActionBaseAttack {
		return uint8(idx - ActionBasePlaySupporter), true
	}
	return 0, false
}

// ActionIsAttack returns the attack index if idx encodes an Attack action.
func ActionIsAttack(idx uint16) (attackIdx uint8, ok bool) {
	if idx >= ActionBaseAttack && idx < ActionEndTurn {
		return uint8(idx - ActionBaseAttack), true
	}
	return 0, false
}

// ActionIsChooseTarget returns the board position if idx encodes a ChooseTarget action.
func ActionIsChooseTarget(idx uint16) (boardPos uint8, ok bool) {
	if idx >= ActionBaseChooseTarget && idx < ActionBaseChooseOption {
		return uint8(idx - ActionBaseChooseTarget), true
	}
	return 0, false
}

// ActionIsChooseOption returns the option index if idx encodes a ChooseOption action.
func ActionIsChooseOption(idx uint16) (optIdx uint8, ok bool) {
	if idx >= ActionBaseChooseOption && idx < ActionBasePromote {
		return uint8(idx - ActionBaseChooseOption), true
	}
	return 0, false
}

// ActionIsPromote returns the bench index if idx encodes a Promote action.
func ActionIsPromote(idx uint16) (benchIdx uint8, ok bool) {
	if idx >= ActionBasePromote && idx < actionReserved {
		return uint8(idx - ActionBasePromote), true
	}
	return 0, false
}
