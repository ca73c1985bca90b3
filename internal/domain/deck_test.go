package domain

import (
	"math/rand"
	"testing"
)

func TestBuildDeckComposition(t *testing.T) {
	tests := []struct {
		difficulty    Difficulty
		wantFavorable int
	}{
		{DifficultyBeginner, 21},
		{DifficultyIntermediate, 15},
		{DifficultyAdvanced, 9},
		{DifficultyNightmare, 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			deck := BuildDeck(tt.difficulty)
			if len(deck) != DeckSize {
				t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
			}

			var numbers, letters, symbols, favorable int
			for _, c := range deck {
				switch c.Kind {
				case KindNumber:
					numbers++
					if c.Effect > 0 {
						favorable++
					}
				case KindLetter:
					letters++
				case KindSymbol:
					symbols++
				}
			}

			if numbers != NumberCardCount {
				t.Errorf("number cards = %d, want %d", numbers, NumberCardCount)
			}
			if letters != 6 {
				t.Errorf("letter cards = %d, want 6", letters)
			}
			if symbols != 4 {
				t.Errorf("symbol cards = %d, want 4", symbols)
			}
			if favorable != tt.wantFavorable {
				t.Errorf("favorable cards = %d, want %d", favorable, tt.wantFavorable)
			}
		})
	}
}

func TestBuildDeckUniqueIDs(t *testing.T) {
	for _, difficulty := range []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyNightmare} {
		deck := BuildDeck(difficulty)
		seen := make(map[string]bool, len(deck))
		for _, c := range deck {
			if seen[c.ID] {
				t.Fatalf("%s: duplicate card id %q", difficulty, c.ID)
			}
			seen[c.ID] = true
		}
	}
}

func TestBuildDeckSymbolMix(t *testing.T) {
	deck := BuildDeck(DifficultyIntermediate)
	counts := make(map[SymbolEffect]int)
	for _, c := range deck {
		if c.Kind == KindSymbol {
			counts[c.Symbol]++
		}
	}
	if counts[SymbolRepeat] != 1 || counts[SymbolBonus] != 1 || counts[SymbolFlex] != 2 {
		t.Errorf("symbol mix = %v, want 1 repeat, 1 bonus, 2 flex", counts)
	}
}

func TestParseDifficultyFallback(t *testing.T) {
	if got := ParseDifficulty("impossible"); got != DifficultyIntermediate {
		t.Errorf("ParseDifficulty(impossible) = %s, want intermediate", got)
	}
	if got := ParseDifficulty("nightmare"); got != DifficultyNightmare {
		t.Errorf("ParseDifficulty(nightmare) = %s, want nightmare", got)
	}
}

func TestShuffleDeckPreservesCards(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	deck := BuildDeck(DifficultyBeginner)
	shuffled := ShuffleDeck(deck, rng)

	if len(shuffled) != len(deck) {
		t.Fatalf("shuffled size = %d, want %d", len(shuffled), len(deck))
	}
	ids := make(map[string]bool, len(shuffled))
	for _, c := range shuffled {
		ids[c.ID] = true
	}
	for _, c := range deck {
		if !ids[c.ID] {
			t.Fatalf("card %s lost in shuffle", c.ID)
		}
	}
}
