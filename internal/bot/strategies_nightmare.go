package bot

import (
	"cardclash/internal/domain"
)

// NightmareBot plays a winning card the moment one exists and otherwise
// climbs toward the target, stacking bonuses as projections close in on it.
// Ties keep the earliest candidate.
type NightmareBot struct{}

func (b *NightmareBot) ChooseCard(hand []domain.Card, score int) *domain.Card {
	if len(hand) == 0 {
		return nil
	}

	best := &hand[0]
	bestValue := nightmareValue(hand[0], score)
	for i := 1; i < len(hand); i++ {
		if v := nightmareValue(hand[i], score); v > bestValue {
			best = &hand[i]
			bestValue = v
		}
	}
	return best
}

func nightmareValue(card domain.Card, score int) int {
	projected := ProjectScore(card, score)
	if projected >= domain.TargetScore {
		return DefaultTuning.WinValue
	}

	value := projected
	if projected >= DefaultTuning.NearTargetFloor {
		value += DefaultTuning.NearTargetBonus
	}
	if projected >= DefaultTuning.CloseTargetFloor {
		value += DefaultTuning.CloseTargetBonus
	}
	return value
}
