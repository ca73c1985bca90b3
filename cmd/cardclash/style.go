package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"cardclash/internal/domain"
)

// cardLabel formats a card for menus and logs. Number cards show their
// signed effect, letter cards their divisor, symbol cards what they do.
func cardLabel(c domain.Card) string {
	switch c.Kind {
	case domain.KindNumber:
		if c.Effect >= 0 {
			return pterm.LightGreen(fmt.Sprintf("%s (+%d)", c.ID, c.Effect))
		}
		return pterm.LightRed(fmt.Sprintf("%s (%d)", c.ID, c.Effect))
	case domain.KindLetter:
		return pterm.LightBlue(fmt.Sprintf("%s (score / %d)", c.ID, c.Rank))
	case domain.KindSymbol:
		switch c.Symbol {
		case domain.SymbolRepeat:
			return pterm.LightMagenta(fmt.Sprintf("%s (repeat last card)", c.ID))
		case domain.SymbolBonus:
			return pterm.LightMagenta(fmt.Sprintf("%s (+10 bonus)", c.ID))
		case domain.SymbolFlex:
			return pterm.LightMagenta(fmt.Sprintf("%s (snap to %d within %d)", c.ID, domain.TargetScore, domain.FlexWindow))
		}
	}
	return c.ID
}

// printState renders the table: the opponent's box, the board with score and
// piles, and the player's hand.
func printState(game *domain.Game, opponentName string) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	opponent := pterm.Panel{
		Data: pbox.WithTitle(pterm.LightRed(opponentName)).WithTitleTopLeft().
			Sprintf("Cards in hand: %d", len(game.ComputerHand)),
	}

	board := pterm.Panel{Data: boardInfo(game)}

	hand := ""
	for _, c := range game.PlayerHand {
		hand += cardLabel(c) + "\n"
	}
	if hand == "" {
		hand = pterm.Gray("(empty, draw a card)")
	}
	player := pterm.Panel{
		Data: pbox.WithTitle(pterm.LightCyan("Your hand")).WithTitleTopLeft().Sprintf("%s", hand),
	}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{opponent},
		{board},
		{player},
	}).Render()
}

// boardInfo formats the shared game state line: score against target, turn,
// pile sizes and the card on top of the played pile.
func boardInfo(game *domain.Game) string {
	info := fmt.Sprintf(" Score: %d / %d | Draw pile: %d | Played: %d ",
		game.Score, domain.TargetScore, len(game.DrawPile), len(game.PlayedPile))
	if last := game.LastPlayed(); last != nil {
		info += "| Last: " + last.ID + " "
	}
	info += "| Turn: " + string(game.Turn) + " "
	return pterm.BgGreen.Sprint("\n" + info + "\n")
}

// printOutcome renders the end-of-game banner.
func printOutcome(game *domain.Game, opponentName string) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	result := ""
	if game.Winner == domain.SidePlayer {
		result = pterm.Sprintfln("%s reached %d and won!", pterm.LightCyan("You"), game.Score)
	} else {
		result = pterm.Sprintfln("%s reached %d and won. Better luck next time.", pterm.LightRed(opponentName), game.Score)
	}
	panel := pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|GAME OVER|")).WithTitleTopCenter().Sprintf(result)}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{panel}}).Render()
}
