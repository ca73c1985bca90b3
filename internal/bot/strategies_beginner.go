package bot

import (
	"cardclash/internal/domain"
)

// BeginnerBot plays whatever is first in hand. The order of the hand is the
// deal/draw order, so this is positional, not random, despite the thinking
// message shown to the player.
type BeginnerBot struct{}

func (b *BeginnerBot) ChooseCard(hand []domain.Card, score int) *domain.Card {
	if len(hand) == 0 {
		return nil
	}
	return &hand[0]
}
