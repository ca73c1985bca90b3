package main

import (
	"flag"
	"log/slog"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"cardclash/internal/app"
	"cardclash/internal/bot"
	"cardclash/internal/config"
	"cardclash/internal/domain"
)

const (
	actionDraw    = "Draw a card"
	actionRestart = "Restart"
	actionQuit    = "Quit"
)

func main() {
	configPath := flag.String("config", "", "path to game config JSON")
	identitiesPath := flag.String("identities", "", "path to opponent identities JSON")
	flag.Parse()

	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	if *configPath != "" {
		if err := config.LoadGameConfig(*configPath); err != nil {
			logger.Warn(err.Error())
		}
	}
	if *identitiesPath != "" {
		if err := bot.LoadIdentities(*identitiesPath); err != nil {
			logger.Warn(err.Error())
		}
	}

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Card ", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Clash", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		logger.Error(err.Error())
	}
	pterm.Print(title)
	pterm.Println()

	svc := app.NewService(nil)

	for {
		difficulty := selectDifficulty()
		agent := bot.NewAgent(difficulty)
		game, _ := svc.StartGame(difficulty)
		pterm.Info.Printfln("You are playing against %s. First to %d wins.",
			pterm.LightRed(agent.Identity.DisplayName), domain.TargetScore)

		if !runGame(svc, game, agent, logger) {
			break
		}

		printOutcome(game, agent.Identity.DisplayName)
		again, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Play again?").WithDefaultValue(true).Show()
		if !again {
			break
		}
	}

	pterm.Println("Thank you for playing...")
	pterm.Print(title)
	pterm.Println()
}

// selectDifficulty prompts for a difficulty tier.
func selectDifficulty() domain.Difficulty {
	options := []string{
		string(domain.DifficultyBeginner),
		string(domain.DifficultyIntermediate),
		string(domain.DifficultyAdvanced),
		string(domain.DifficultyNightmare),
	}
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Select difficulty").WithOptions(options).Show()
	return domain.ParseDifficulty(choice)
}

// runGame drives one game to completion. Returns false when the player quit
// instead of finishing.
func runGame(svc *app.Service, game *domain.Game, agent *bot.Agent, logger *slog.Logger) bool {
	for !game.Ended() {
		if game.Turn == domain.SidePlayer {
			printState(game, agent.Identity.DisplayName)
			if !playerTurn(svc, game, logger) {
				return false
			}
			continue
		}
		computerTurn(svc, game, agent, logger)
	}
	return true
}

// playerTurn asks for and applies one player action. Returns false on quit.
func playerTurn(svc *app.Service, game *domain.Game, logger *slog.Logger) bool {
	options := make([]string, 0, len(game.PlayerHand)+3)
	byLabel := make(map[string]string, len(game.PlayerHand))
	for _, c := range game.PlayerHand {
		label := cardLabel(c)
		options = append(options, label)
		byLabel[label] = c.ID
	}
	options = append(options, actionDraw, actionRestart, actionQuit)

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Your move").WithOptions(options).Show()

	switch choice {
	case actionQuit:
		return false
	case actionRestart:
		svc.Restart(game)
		pterm.Info.Println("New game dealt.")
		return true
	case actionDraw:
		events, err := svc.DrawCard(game, domain.SidePlayer)
		if err != nil {
			pterm.Error.Printfln("Cannot draw: %v", err)
			return true
		}
		reportEvents(events)
		return true
	default:
		cardID, ok := byLabel[choice]
		if !ok {
			return true
		}
		events, err := svc.PlayCard(game, domain.SidePlayer, cardID)
		if err != nil {
			pterm.Error.Printfln("Cannot play %s: %v", cardID, err)
			return true
		}
		reportEvents(events)
		return true
	}
}

// computerTurn waits out the difficulty's thinking delay, then applies one
// engine move. Drawing keeps the turn with the engine, so the caller loops.
func computerTurn(svc *app.Service, game *domain.Game, agent *bot.Agent, logger *slog.Logger) {
	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).
		Start(pterm.Sprintf("%s %s", pterm.LightRed(agent.Identity.DisplayName), agent.Identity.ThinkingLine))
	time.Sleep(time.Duration(config.GetThinkDelayMillis(string(game.Difficulty))) * time.Millisecond)

	events, err := svc.ComputerMove(game)
	spinner.Stop()
	if err != nil {
		logger.Error(err.Error())
		return
	}
	reportEvents(events)
}

// reportEvents prints the public outcome of an action.
func reportEvents(events []app.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case app.EventCardPlayed:
			p := ev.Payload.(app.CardPlayedPayload)
			who := "You"
			if p.Side == domain.SideComputer {
				who = "Opponent"
			}
			pterm.Info.Printfln("%s played %s, score is now %d.", who, cardLabel(p.Card), p.Score)
		case app.EventCardDrawn:
			p := ev.Payload.(app.CardDrawnPayload)
			if p.Side == domain.SidePlayer {
				pterm.Info.Printfln("You drew %s.", cardLabel(p.Card))
			} else {
				pterm.Info.Println("Opponent drew a card.")
			}
		case app.EventPileRecycled:
			p := ev.Payload.(app.PileRecycledPayload)
			pterm.Info.Printfln("Played pile shuffled back into the draw pile (%d cards).", p.DrawCount)
		case app.EventGameEnded:
			// The outcome banner is rendered by the caller.
		}
	}
}
