package bot

import (
	"cardclash/internal/domain"
)

// ProjectScore estimates the score a card would produce if played now.
// It models number, letter, bonus and flex effects directly. The repeat
// symbol is deliberately not modelled: its outcome depends on the played
// pile, which the projection tiers do not consult, so it projects to the
// unchanged score.
func ProjectScore(card domain.Card, score int) int {
	if card.Kind == domain.KindSymbol && card.Symbol == domain.SymbolRepeat {
		return score
	}
	return domain.ResolveEffect(card, score, nil)
}
