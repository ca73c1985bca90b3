package bot

import (
	"cardclash/internal/domain"
)

// Agent is the computer opponent bound to one game: an identity for display
// plus the strategy matching the game's difficulty.
type Agent struct {
	Identity Identity
	Strategy Brain
}

// NewAgent creates the opponent agent for a difficulty tier.
func NewAgent(difficulty domain.Difficulty) *Agent {
	return &Agent{
		Identity: GetIdentity(difficulty),
		Strategy: NewBrain(difficulty),
	}
}

// ChooseCard asks the agent's strategy for the card to play from the
// computer hand of the given game, or nil when it must draw.
func (a *Agent) ChooseCard(game *domain.Game) *domain.Card {
	return a.Strategy.ChooseCard(game.ComputerHand, game.Score)
}
