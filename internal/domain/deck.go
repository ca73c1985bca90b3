package domain

import (
	"fmt"
	"math/rand"
)

// NumberCardCount is the fixed number-card share of every deck.
const NumberCardCount = 30

// DeckSize is the total card count of every deck regardless of difficulty.
const DeckSize = 40

var letterAlphabet = []string{"A", "B", "C", "D", "E", "F"}

// BuildDeck returns the ordered, unshuffled 40-card deck for a difficulty:
// 30 number cards split per the tier's favorable ratio, 6 letter cards and
// 4 symbol cards. Favorable magnitudes are the first even numbers from 2,
// unfavorable the first odd numbers from 1, so IDs never collide.
func BuildDeck(difficulty Difficulty) []Card {
	favorable := int(float64(NumberCardCount) * difficulty.FavorableRatio())
	unfavorable := NumberCardCount - favorable

	deck := make([]Card, 0, DeckSize)

	for i := 0; i < favorable; i++ {
		val := (i + 1) * 2
		deck = append(deck, Card{
			ID:     fmt.Sprintf("N%d", val),
			Kind:   KindNumber,
			Value:  val,
			Effect: val,
		})
	}
	for i := 0; i < unfavorable; i++ {
		val := i*2 + 1
		deck = append(deck, Card{
			ID:     fmt.Sprintf("N%d", val),
			Kind:   KindNumber,
			Value:  val,
			Effect: -val,
		})
	}

	for i, letter := range letterAlphabet {
		deck = append(deck, Card{
			ID:     "A" + letter,
			Kind:   KindLetter,
			Rank:   i + 1,
			Letter: letter,
		})
	}

	deck = append(deck,
		Card{ID: "S*1", Kind: KindSymbol, Symbol: SymbolRepeat},
		Card{ID: "S$1", Kind: KindSymbol, Symbol: SymbolBonus},
		Card{ID: "S@1", Kind: KindSymbol, Symbol: SymbolFlex},
		Card{ID: "S@2", Kind: KindSymbol, Symbol: SymbolFlex},
	)

	return deck
}

// ShuffleDeck returns a shuffled copy of the given cards.
func ShuffleDeck(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
