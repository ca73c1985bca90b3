package nakama

import (
	"cardclash/internal/domain"
)

// WireCard is the client-facing card representation.
type WireCard struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Value  int    `json:"value,omitempty"`
	Effect int    `json:"effect,omitempty"`
	Rank   int    `json:"rank,omitempty"`
	Letter string `json:"letter,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// StartGameRequest is the OpStartGame payload.
type StartGameRequest struct {
	Difficulty string `json:"difficulty"`
}

// PlayCardRequest is the OpPlayCard payload.
type PlayCardRequest struct {
	CardID string `json:"card_id"`
}

// GameStartedEvent is broadcast when a new game begins.
type GameStartedEvent struct {
	Difficulty   string `json:"difficulty"`
	OpponentName string `json:"opponent_name"`
	ThinkingLine string `json:"thinking_line"`
	AvatarIndex  int    `json:"avatar_index"`
	FirstTurn    string `json:"first_turn"`
	DrawCount    int    `json:"draw_count"`
	TargetScore  int    `json:"target_score"`
}

// HandDealtEvent carries a private hand to its owner.
type HandDealtEvent struct {
	Hand []WireCard `json:"hand"`
}

// CardPlayedEvent is broadcast for every resolved play.
type CardPlayedEvent struct {
	Side     string   `json:"side"`
	Card     WireCard `json:"card"`
	Score    int      `json:"score"`
	NextTurn string   `json:"next_turn"`
}

// CardDrawnEvent is sent privately to the drawing side.
type CardDrawnEvent struct {
	Side      string   `json:"side"`
	Card      WireCard `json:"card"`
	DrawCount int      `json:"draw_count"`
}

// PileRecycledEvent is broadcast when the played pile folds back into the draw pile.
type PileRecycledEvent struct {
	DrawCount int      `json:"draw_count"`
	LastCard  WireCard `json:"last_card"`
}

// GameEndedEvent is broadcast when a side reaches the target score.
type GameEndedEvent struct {
	Winner      string `json:"winner"`
	Score       int    `json:"score"`
	RewardChips int64  `json:"reward_chips,omitempty"`
	Balance     int64  `json:"balance,omitempty"`
	ResultToken string `json:"result_token,omitempty"`
}

// GameErrorEvent is sent to a specific user after a rejected action.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StateSnapshot is the redacted full-state view sent on join and reconcile.
// The opponent hand is never exposed, only its size.
type StateSnapshot struct {
	Difficulty    string     `json:"difficulty"`
	OpponentName  string     `json:"opponent_name"`
	Score         int        `json:"score"`
	Turn          string     `json:"turn"`
	Winner        string     `json:"winner,omitempty"`
	Hand          []WireCard `json:"hand"`
	OpponentCards int        `json:"opponent_cards"`
	DrawCount     int        `json:"draw_count"`
	LastPlayed    *WireCard  `json:"last_played,omitempty"`
	TargetScore   int        `json:"target_score"`
}

func toWireCard(card domain.Card) WireCard {
	return WireCard{
		ID:     card.ID,
		Kind:   string(card.Kind),
		Value:  card.Value,
		Effect: card.Effect,
		Rank:   card.Rank,
		Letter: card.Letter,
		Symbol: string(card.Symbol),
	}
}

func toWireCards(cards []domain.Card) []WireCard {
	wire := make([]WireCard, len(cards))
	for i, card := range cards {
		wire[i] = toWireCard(card)
	}
	return wire
}

// toStateSnapshot builds the human player's redacted view of a game.
func toStateSnapshot(game *domain.Game, opponentName string) StateSnapshot {
	snapshot := StateSnapshot{
		Difficulty:    string(game.Difficulty),
		OpponentName:  opponentName,
		Score:         game.Score,
		Turn:          string(game.Turn),
		Winner:        string(game.Winner),
		Hand:          toWireCards(game.PlayerHand),
		OpponentCards: len(game.ComputerHand),
		DrawCount:     len(game.DrawPile),
		TargetScore:   domain.TargetScore,
	}
	if last := game.LastPlayed(); last != nil {
		card := toWireCard(*last)
		snapshot.LastPlayed = &card
	}
	return snapshot
}
