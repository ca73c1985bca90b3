package bot

import (
	"cardclash/internal/domain"
)

// IntermediateBot prefers the first card with a guaranteed positive effect:
// a positive number card or the flat bonus symbol. When nothing qualifies it
// falls back to the first card in hand.
type IntermediateBot struct{}

func (b *IntermediateBot) ChooseCard(hand []domain.Card, score int) *domain.Card {
	if len(hand) == 0 {
		return nil
	}
	for i := range hand {
		if hand[i].IsFavorable() {
			return &hand[i]
		}
	}
	return &hand[0]
}
