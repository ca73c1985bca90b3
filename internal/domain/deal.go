package domain

import (
	"math/rand"
	"sort"
)

// OpeningHandSize is the number of cards each side starts with.
const OpeningHandSize = 4

// DealOpeningHands splits a shuffled deck into the two opening hands and the
// initial draw pile. The split is deliberately skewed per difficulty: higher
// tiers stack the computer's opening hand. Every card of the deck ends up in
// exactly one of the three returned slices.
func DealOpeningHands(deck []Card, difficulty Difficulty, rng *rand.Rand) (player, computer, draw []Card) {
	switch difficulty {
	case DifficultyNightmare:
		return dealNightmare(deck, rng)
	case DifficultyAdvanced:
		return dealAdvanced(deck)
	default:
		player = append([]Card{}, deck[:OpeningHandSize]...)
		computer = append([]Card{}, deck[OpeningHandSize:2*OpeningHandSize]...)
		draw = append([]Card{}, deck[2*OpeningHandSize:]...)
		return player, computer, draw
	}
}

// dealAdvanced gives the computer two positive number cards up front. The
// player also receives two, but after the computer picked, so the computer
// sees the stronger half of the split.
func dealAdvanced(deck []Card) (player, computer, draw []Card) {
	var good, other []Card
	for _, c := range deck {
		if c.Kind == KindNumber && c.Effect > 0 {
			good = append(good, c)
		} else {
			other = append(other, c)
		}
	}

	computer = append(computer, good[:2]...)
	computer = append(computer, other[:2]...)
	player = append(player, other[2:4]...)
	player = append(player, good[2:4]...)

	draw = append(draw, good[4:]...)
	draw = append(draw, other[4:]...)
	return player, computer, draw
}

// dealNightmare hands the computer the four most desirable cards in the
// whole deck, then deals the player off a reshuffle of what is left.
func dealNightmare(deck []Card, rng *rand.Rand) (player, computer, draw []Card) {
	ranked := make([]Card, len(deck))
	copy(ranked, deck)
	sort.SliceStable(ranked, func(i, j int) bool {
		return dealDesirability(ranked[i]) > dealDesirability(ranked[j])
	})
	computer = append([]Card{}, ranked[:OpeningHandSize]...)

	remaining := ShuffleDeck(ranked[OpeningHandSize:], rng)
	player = append([]Card{}, remaining[:OpeningHandSize]...)
	draw = append([]Card{}, remaining[OpeningHandSize:]...)
	return player, computer, draw
}

func dealDesirability(c Card) int {
	switch {
	case c.Kind == KindNumber:
		return c.Effect
	case c.Kind == KindSymbol && c.Symbol == SymbolBonus:
		return 10
	default:
		return 5
	}
}
