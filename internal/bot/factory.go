package bot

import (
	"cardclash/internal/domain"
)

// NewBrain returns the strategy for the given difficulty tier. Unrecognized
// values degrade to the first-card strategy rather than failing.
func NewBrain(difficulty domain.Difficulty) Brain {
	switch difficulty {
	case domain.DifficultyBeginner:
		return &BeginnerBot{}
	case domain.DifficultyIntermediate:
		return &IntermediateBot{}
	case domain.DifficultyAdvanced:
		return &AdvancedBot{}
	case domain.DifficultyNightmare:
		return &NightmareBot{}
	default:
		return &BeginnerBot{}
	}
}
