package domain

import "math/rand"

// Draw takes the top card of the draw pile, recycling the played pile first
// when the draw pile is exhausted: every played card except the most recent
// is shuffled into a fresh draw pile and the played pile keeps only its most
// recent card, so repeat resolution still sees the last play. Returns a nil
// card when nothing is available, which callers treat as a no-op.
func Draw(drawPile, playedPile []Card, rng *rand.Rand) (card *Card, newDraw, newPlayed []Card) {
	newDraw, newPlayed = drawPile, playedPile

	if len(newDraw) == 0 && len(newPlayed) > 1 {
		newDraw = ShuffleDeck(newPlayed[:len(newPlayed)-1], rng)
		newPlayed = []Card{newPlayed[len(newPlayed)-1]}
	}

	if len(newDraw) == 0 {
		return nil, newDraw, newPlayed
	}

	drawn := newDraw[0]
	newDraw = newDraw[1:]
	return &drawn, newDraw, newPlayed
}

// PlayFromHand moves the card with the given ID from hand to the played
// pile. ok is false, and both slices are returned unchanged, when the hand
// does not contain the ID.
func PlayFromHand(hand, played []Card, id string) (newHand, newPlayed []Card, ok bool) {
	for i, c := range hand {
		if c.ID == id {
			newHand = make([]Card, 0, len(hand)-1)
			newHand = append(newHand, hand[:i]...)
			newHand = append(newHand, hand[i+1:]...)
			return newHand, append(played, c), true
		}
	}
	return hand, played, false
}

// FindCard returns the card with the given ID, or nil if absent.
func FindCard(hand []Card, id string) *Card {
	for i := range hand {
		if hand[i].ID == id {
			return &hand[i]
		}
	}
	return nil
}
