package bot

import (
	"cardclash/internal/domain"
)

// Brain is the interface all computer strategies implement. ChooseCard picks
// the card to play from the hand at the given score, or returns nil to
// signal that the hand is empty and the caller must draw instead.
type Brain interface {
	ChooseCard(hand []domain.Card, score int) *domain.Card
}
