package app

import "cardclash/internal/domain"

// EventKind identifies emitted engine events for transport dispatch.
type EventKind string

const (
	EventGameStarted  EventKind = "game_started"
	EventHandDealt    EventKind = "hand_dealt"
	EventCardPlayed   EventKind = "card_played"
	EventCardDrawn    EventKind = "card_drawn"
	EventPileRecycled EventKind = "pile_recycled"
	EventGameEnded    EventKind = "game_ended"
)

// Event is an engine event with optional targeted recipients. An empty
// Recipients slice means the event is for every observer; otherwise only
// the named sides should see the full payload.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Side
}

type GameStartedPayload struct {
	Difficulty domain.Difficulty `json:"difficulty"`
	FirstTurn  domain.Side       `json:"first_turn"`
	DrawCount  int               `json:"draw_count"`
}

type HandDealtPayload struct {
	Side domain.Side   `json:"side"`
	Hand []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	Side     domain.Side `json:"side"`
	Card     domain.Card `json:"card"`
	Score    int         `json:"score"`
	NextTurn domain.Side `json:"next_turn"`
}

type CardDrawnPayload struct {
	Side      domain.Side `json:"side"`
	Card      domain.Card `json:"card"`
	DrawCount int         `json:"draw_count"`
}

type PileRecycledPayload struct {
	DrawCount int         `json:"draw_count"`
	LastCard  domain.Card `json:"last_card"`
}

type GameEndedPayload struct {
	Winner domain.Side `json:"winner"`
	Score  int         `json:"score"`
}
