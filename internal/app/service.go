package app

import (
	"errors"
	"math/rand"
	"time"

	"cardclash/internal/bot"
	"cardclash/internal/domain"
)

// Service contains the turn-engine use-cases operating on one game's
// domain state. Every operation either completes fully or rejects with the
// state untouched; rejected moves are expected to be treated as no-ops by
// callers, not as fatal errors.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrGameEnded     = errors.New("game has ended")
	ErrNotYourTurn   = errors.New("not this side's turn")
	ErrCardNotInHand = errors.New("card not in hand")
)

// StartGame builds and shuffles a fresh deck for the difficulty, deals the
// opening hands per the tier's deal policy and returns the new game with the
// player to move.
func (s *Service) StartGame(difficulty domain.Difficulty) (*domain.Game, []Event) {
	game := &domain.Game{Difficulty: difficulty}
	events := s.reset(game)
	return game, events
}

// Restart rebuilds the given game in place, keeping its difficulty.
func (s *Service) Restart(game *domain.Game) []Event {
	return s.reset(game)
}

func (s *Service) reset(game *domain.Game) []Event {
	deck := domain.ShuffleDeck(domain.BuildDeck(game.Difficulty), s.rng)
	player, computer, draw := domain.DealOpeningHands(deck, game.Difficulty, s.rng)

	game.PlayerHand = player
	game.ComputerHand = computer
	game.DrawPile = draw
	game.PlayedPile = nil
	game.Score = 0
	game.Turn = domain.SidePlayer
	game.Winner = ""

	return []Event{
		{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Side: domain.SidePlayer,
				Hand: game.PlayerHand,
			},
			Recipients: []domain.Side{domain.SidePlayer},
		},
		{
			Kind: EventGameStarted,
			Payload: GameStartedPayload{
				Difficulty: game.Difficulty,
				FirstTurn:  game.Turn,
				DrawCount:  len(game.DrawPile),
			},
		},
	}
}

// PlayCard plays the identified card from side's hand: the effect is
// resolved against the most recently played card, the score updated, the
// card moved to the played pile and the turn handed over. Reaching the
// target score ends the game for side immediately.
func (s *Service) PlayCard(game *domain.Game, side domain.Side, cardID string) ([]Event, error) {
	if game.Ended() {
		return nil, ErrGameEnded
	}
	if game.Turn != side {
		return nil, ErrNotYourTurn
	}

	card := domain.FindCard(game.Hand(side), cardID)
	if card == nil {
		return nil, ErrCardNotInHand
	}
	played := *card

	newScore := domain.ResolveEffect(played, game.Score, game.LastPlayed())

	if side == domain.SidePlayer {
		game.PlayerHand, game.PlayedPile, _ = domain.PlayFromHand(game.PlayerHand, game.PlayedPile, cardID)
	} else {
		game.ComputerHand, game.PlayedPile, _ = domain.PlayFromHand(game.ComputerHand, game.PlayedPile, cardID)
	}
	game.Score = newScore
	game.Turn = side.Other()

	events := []Event{
		{
			Kind: EventCardPlayed,
			Payload: CardPlayedPayload{
				Side:     side,
				Card:     played,
				Score:    game.Score,
				NextTurn: game.Turn,
			},
		},
	}

	if game.Score >= domain.TargetScore {
		game.Winner = side
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{Winner: side, Score: game.Score},
		})
	}

	return events, nil
}

// DrawCard draws the top card into side's hand, recycling the played pile
// when the draw pile is exhausted. Drawing does not hand the turn over, so
// the acting side may draw and still play. An exhausted draw (both piles
// empty beyond recycling) is a silent no-op.
func (s *Service) DrawCard(game *domain.Game, side domain.Side) ([]Event, error) {
	if game.Ended() {
		return nil, ErrGameEnded
	}
	if game.Turn != side {
		return nil, ErrNotYourTurn
	}

	playedBefore := len(game.PlayedPile)
	card, newDraw, newPlayed := domain.Draw(game.DrawPile, game.PlayedPile, s.rng)
	game.DrawPile = newDraw
	game.PlayedPile = newPlayed

	var events []Event
	if len(newPlayed) < playedBefore {
		events = append(events, Event{
			Kind: EventPileRecycled,
			Payload: PileRecycledPayload{
				DrawCount: len(game.DrawPile),
				LastCard:  newPlayed[0],
			},
		})
	}

	if card == nil {
		return events, nil
	}

	if side == domain.SidePlayer {
		game.PlayerHand = append(game.PlayerHand, *card)
	} else {
		game.ComputerHand = append(game.ComputerHand, *card)
	}

	events = append(events, Event{
		Kind: EventCardDrawn,
		Payload: CardDrawnPayload{
			Side:      side,
			Card:      *card,
			DrawCount: len(game.DrawPile),
		},
		Recipients: []domain.Side{side},
	})
	return events, nil
}

// ComputerMove advances the computer's turn once: it plays the strategy's
// pick, or draws when the computer hand is empty (the turn stays with the
// computer, so the caller is expected to invoke ComputerMove again).
// Calling it while the game is over or out of turn is a safe no-op.
func (s *Service) ComputerMove(game *domain.Game) ([]Event, error) {
	if game.Ended() || game.Turn != domain.SideComputer {
		return nil, nil
	}

	if len(game.ComputerHand) == 0 {
		return s.DrawCard(game, domain.SideComputer)
	}

	brain := bot.NewBrain(game.Difficulty)
	card := brain.ChooseCard(game.ComputerHand, game.Score)
	if card == nil {
		return s.DrawCard(game, domain.SideComputer)
	}
	return s.PlayCard(game, domain.SideComputer, card.ID)
}
