package domain

// ResolveEffect computes the score produced by playing card at the current
// score. prev is the most recently played card, consulted only by the repeat
// symbol; pass nil when nothing has been played. The function is total: every
// card kind resolves to a value and no input can fail.
func ResolveEffect(card Card, score int, prev *Card) int {
	switch card.Kind {
	case KindNumber:
		return score + card.Effect
	case KindLetter:
		// Rank is 1..6 by construction, so the division is always defined.
		// Floored, not truncated: negative scores round down.
		return floorDiv(score, card.Rank)
	case KindSymbol:
		switch card.Symbol {
		case SymbolBonus:
			return score + 10
		case SymbolFlex:
			if diff := TargetScore - score; diff >= -FlexWindow && diff <= FlexWindow {
				return TargetScore
			}
			return score
		case SymbolRepeat:
			if prev == nil {
				return score
			}
			// Resolve the previous card without its own predecessor, capping
			// the recursion at depth one: a repeat of a repeat is a no-op.
			return ResolveEffect(*prev, score, nil)
		}
	}
	return score
}

// floorDiv divides rounding toward negative infinity. Go's integer division
// truncates toward zero, which differs for negative dividends.
func floorDiv(score, rank int) int {
	q := score / rank
	if score < 0 && score%rank != 0 {
		q--
	}
	return q
}
