package domain

// TargetScore is the score that ends the game in favor of whoever reaches it.
const TargetScore = 45

// FlexWindow is how close to the target a flex card must be to snap to it.
const FlexWindow = 5

// Side identifies one of the two participants in a game.
type Side string

const (
	SidePlayer   Side = "player"
	SideComputer Side = "computer"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideComputer
	}
	return SidePlayer
}

// Difficulty selects the deck composition and the computer strategy tier.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyNightmare    Difficulty = "nightmare"
)

// ParseDifficulty maps a client-supplied tag to a known difficulty.
// Unknown tags degrade to intermediate rather than failing.
func ParseDifficulty(tag string) Difficulty {
	switch Difficulty(tag) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyNightmare:
		return Difficulty(tag)
	default:
		return DifficultyIntermediate
	}
}

// FavorableRatio returns the share of the 30 number cards that carry a
// positive effect for this difficulty.
func (d Difficulty) FavorableRatio() float64 {
	switch d {
	case DifficultyBeginner:
		return 0.7
	case DifficultyAdvanced:
		return 0.3
	case DifficultyNightmare:
		return 0.2
	default:
		return 0.5
	}
}

// CardKind tags the three card variants.
type CardKind string

const (
	KindNumber CardKind = "number"
	KindLetter CardKind = "letter"
	KindSymbol CardKind = "symbol"
)

// SymbolEffect identifies the behavior of a symbol card.
type SymbolEffect string

const (
	// SymbolRepeat reapplies the effect of the previously played card.
	SymbolRepeat SymbolEffect = "repeat"
	// SymbolBonus adds a flat 10 to the score.
	SymbolBonus SymbolEffect = "bonus10"
	// SymbolFlex snaps the score to the target when within the flex window.
	SymbolFlex SymbolEffect = "flex"
)

// Card is a single immutable card. Kind selects which payload fields are
// meaningful: number cards carry Value and Effect, letter cards carry Rank,
// symbol cards carry Symbol. IDs are unique across one deck.
type Card struct {
	ID     string       `json:"id"`
	Kind   CardKind     `json:"kind"`
	Value  int          `json:"value,omitempty"`  // number magnitude 1..30
	Effect int          `json:"effect,omitempty"` // signed: +Value if even, -Value if odd
	Rank   int          `json:"rank,omitempty"`   // letter divisor 1..6
	Letter string       `json:"letter,omitempty"` // A..F
	Symbol SymbolEffect `json:"symbol,omitempty"`
}

// IsFavorable reports whether the card raises the score unconditionally:
// a positive number card or the flat bonus symbol.
func (c Card) IsFavorable() bool {
	switch c.Kind {
	case KindNumber:
		return c.Effect > 0
	case KindSymbol:
		return c.Symbol == SymbolBonus
	default:
		return false
	}
}
