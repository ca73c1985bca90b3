package bot

import (
	"cardclash/internal/domain"
)

// AdvancedBot projects every card's outcome and chases the target while
// penalizing overshoot: a projection past the target is valued as if every
// excess point cost double. Ties keep the earliest candidate.
type AdvancedBot struct{}

func (b *AdvancedBot) ChooseCard(hand []domain.Card, score int) *domain.Card {
	if len(hand) == 0 {
		return nil
	}

	best := &hand[0]
	bestValue := moveValue(hand[0], score)
	for i := 1; i < len(hand); i++ {
		if v := moveValue(hand[i], score); v > bestValue {
			best = &hand[i]
			bestValue = v
		}
	}
	return best
}

func moveValue(card domain.Card, score int) int {
	projected := ProjectScore(card, score)
	if projected <= domain.TargetScore {
		return projected
	}
	overshoot := projected - domain.TargetScore
	return domain.TargetScore - overshoot*DefaultTuning.OvershootPenalty
}
