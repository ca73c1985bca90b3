package domain

// Game holds the authoritative state for one game instance. It is owned by
// a single app.Service caller for its whole lifetime; nothing mutates hands,
// piles or score except through the service operations.
type Game struct {
	Difficulty Difficulty

	PlayerHand   []Card
	ComputerHand []Card
	DrawPile     []Card
	PlayedPile   []Card

	Score  int
	Turn   Side
	Winner Side // empty until the game ends
}

// Ended reports whether a winner has been decided.
func (g *Game) Ended() bool {
	return g.Winner != ""
}

// Hand returns the hand belonging to the given side.
func (g *Game) Hand(side Side) []Card {
	if side == SideComputer {
		return g.ComputerHand
	}
	return g.PlayerHand
}

// LastPlayed returns the most recently played card, or nil before any play.
func (g *Game) LastPlayed() *Card {
	if len(g.PlayedPile) == 0 {
		return nil
	}
	return &g.PlayedPile[len(g.PlayedPile)-1]
}

// CardCount is the multiset size of every card collection in the game.
// It equals DeckSize for the lifetime of a well-formed game, including
// across pile recycling.
func (g *Game) CardCount() int {
	return len(g.PlayerHand) + len(g.ComputerHand) + len(g.DrawPile) + len(g.PlayedPile)
}
