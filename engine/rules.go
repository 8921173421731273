package engine

// Rules holds configurable match rule settings.
type Rules struct {
	PointsToWin        uint8  // knockout points needed to win
	MaxGameTurns       uint16 // turn cap before the match is called a draw; 0 = unlimited
	MaxMulliganRetries uint8  // reshuffle attempts when no basic is dealt
	WeaknessBonus      uint16 // extra damage when the attacker hits a weakness
	ResetPerTurnAtEnd  bool   // reset once-per-turn limits at end of turn instead of start
}

// DefaultRules returns the standard match rules.
func DefaultRules() Rules {
	return Rules{
		PointsToWin:        3,
		MaxGameTurns:       100,
		MaxMulliganRetries: 10,
		WeaknessBonus:      20,
	}
}
