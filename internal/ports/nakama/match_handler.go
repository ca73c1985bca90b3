package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"cardclash/internal/app"
	"cardclash/internal/bot"
	"cardclash/internal/config"
	"cardclash/internal/domain"
	"cardclash/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// matchTickRate is ticks per second. Sub-second resolution is needed so the
// engine's configured thinking delays come out close to their millisecond
// values.
const matchTickRate = 10

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	UserID       string                      `json:"user_id"`        // The single human seat, empty until someone joins
	Tick         int64                       `json:"tick"`           // Current tick of the match for turn-based logic
	ThinkUntil   int64                       `json:"think_until"`    // Tick when the engine opponent acts, 0 when idle
	ThinkDelayMs int                         `json:"think_delay_ms"` // Env override for the thinking delay, 0 = per-difficulty config
	Presences    map[string]runtime.Presence `json:"-"`              // Map UserId -> Presence for targeted messaging
	App          *app.Service                `json:"-"`              // Card game app service with game logic
	Game         *domain.Game                `json:"-"`              // Current active game state (nil if in lobby)
	Agent        *bot.Agent                  `json:"-"`              // Engine opponent bound to the active game
	Economy      ports.EconomyPort           `json:"-"`              // Interface to Nakama wallet
	Tokens       *app.ResultTokenService     `json:"-"`              // Signs game result attestations
	Settled      bool                        `json:"settled"`        // Whether the current game's reward was paid out
}

// HasOpenSeat reports whether the single human seat is free.
func (ms *MatchState) HasOpenSeat() bool {
	return ms.UserID == ""
}

type matchHandler struct{}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	// Load opponent identities from data folder
	if err := bot.LoadIdentities("data/opponent_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load opponent identities: %v", err)
	}

	// Load game configuration
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		Economy:   NewNakamaEconomyAdapter(nk),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	// A flat env override trumps the per-difficulty config delays.
	if val, ok := env["cardclash_think_delay_ms"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.ThinkDelayMs = i
		}
	}

	// Result token credentials come from the runtime environment.
	secret := env["cardclash_result_secret"]
	issuer := env["cardclash_result_issuer"]
	if secret != "" {
		if issuer == "" {
			issuer = "cardclash"
		}
		state.Tokens = app.NewResultTokenService(secret, issuer, 0)
	} else {
		logger.Warn("MatchInit: Result token secret missing from env, result attestations disabled.")
	}

	labelJSON, err := marshalLabel(1, "lobby")
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, matchTickRate, labelJSON
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// One human seat; rejoining the same match is always allowed.
	if !matchState.HasOpenSeat() && matchState.UserID != presence.GetUserId() {
		return state, false, "Match full"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if matchState.UserID == "" {
			matchState.UserID = p.GetUserId()
			logger.Info("MatchJoin: User %s took the seat.", p.GetUserId())
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)

	// Reconcile a rejoining client with the active game state.
	if matchState.Game != nil {
		mh.sendSnapshot(matchState, dispatcher, logger)
	}

	return matchState
}

// MatchLeave is called when the player leaves the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
	}

	// The engine opponent never keeps a match alive on its own.
	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpDrawCard:
			mh.handleDrawCard(ctx, matchState, dispatcher, logger, msg)
		case OpRestart:
			mh.handleRestart(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processOpponent(ctx, matchState, dispatcher, logger)

	return matchState
}

// processOpponent drives the engine opponent: once the turn lands on the
// computer it waits out the difficulty's thinking delay, then makes one move.
// Drawing leaves the turn with the computer, so the timer restarts and the
// next move follows after another delay.
func (mh *matchHandler) processOpponent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.Ended() || state.Game.Turn != domain.SideComputer {
		state.ThinkUntil = 0
		return
	}

	if state.ThinkUntil == 0 {
		state.ThinkUntil = state.Tick + thinkDelayTicks(state.ThinkDelayMs, state.Game.Difficulty)
		logger.Debug("processOpponent: Engine acts at tick %d (current %d)", state.ThinkUntil, state.Tick)
		return
	}

	if state.Tick < state.ThinkUntil {
		return
	}
	state.ThinkUntil = 0

	events, err := state.App.ComputerMove(state.Game)
	if err != nil {
		logger.Error("processOpponent: Engine move failed: %v", err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// thinkDelayTicks converts the configured delay to match ticks. overrideMs
// wins when positive, otherwise the per-difficulty config value applies.
func thinkDelayTicks(overrideMs int, difficulty domain.Difficulty) int64 {
	ms := overrideMs
	if ms <= 0 {
		ms = config.GetThinkDelayMillis(string(difficulty))
	}
	ticks := int64(ms) * matchTickRate / 1000
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.UserID {
		logger.Warn("handleStartGame: Message from non-seated user %s ignored.", msg.GetUserId())
		return
	}
	if state.Game != nil && !state.Game.Ended() {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 409, "game already in progress")
		return
	}

	var request StartGameRequest
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			logger.Warn("handleStartGame: Invalid StartGameRequest from %s: %v", msg.GetUserId(), err)
			mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "invalid start request")
			return
		}
	}

	difficulty := domain.ParseDifficulty(request.Difficulty)
	game, events := state.App.StartGame(difficulty)
	state.Game = game
	state.Agent = bot.NewAgent(difficulty)
	state.ThinkUntil = 0
	state.Settled = false

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("handleStartGame: Game started at difficulty %s vs %s.", difficulty, state.Agent.Identity.DisplayName)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.UserID {
		return
	}
	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal PlayCardRequest: %v", err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "invalid play request")
		return
	}

	events, err := state.App.PlayCard(state.Game, domain.SidePlayer, request.CardID)
	if err != nil {
		logger.Warn("handlePlayCard: User %s failed to play %s: %v", msg.GetUserId(), request.CardID, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDrawCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.UserID {
		return
	}
	if state.Game == nil {
		logger.Warn("handleDrawCard: Game not started.")
		return
	}

	events, err := state.App.DrawCard(state.Game, domain.SidePlayer)
	if err != nil {
		logger.Warn("handleDrawCard: User %s failed to draw: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleRestart(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.UserID {
		return
	}
	if state.Game == nil {
		logger.Warn("handleRestart: Game not started.")
		return
	}

	// A pending engine move must not carry over into the fresh game.
	state.ThinkUntil = 0
	state.Settled = false

	events := state.App.Restart(state.Game)
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("handleRestart: Game restarted at difficulty %s.", state.Game.Difficulty)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload interface{}

	switch ev.Kind {
	case app.EventGameStarted:
		opCode = OpGameStarted
		p := ev.Payload.(app.GameStartedPayload)
		identity := bot.GetIdentity(p.Difficulty)
		payload = GameStartedEvent{
			Difficulty:   string(p.Difficulty),
			OpponentName: identity.DisplayName,
			ThinkingLine: identity.ThinkingLine,
			AvatarIndex:  identity.AvatarIndex,
			FirstTurn:    string(p.FirstTurn),
			DrawCount:    p.DrawCount,
			TargetScore:  domain.TargetScore,
		}
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = HandDealtEvent{Hand: toWireCards(p.Hand)}
	case app.EventCardPlayed:
		opCode = OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		payload = CardPlayedEvent{
			Side:     string(p.Side),
			Card:     toWireCard(p.Card),
			Score:    p.Score,
			NextTurn: string(p.NextTurn),
		}
	case app.EventCardDrawn:
		opCode = OpCardDrawn
		p := ev.Payload.(app.CardDrawnPayload)
		payload = CardDrawnEvent{
			Side:      string(p.Side),
			Card:      toWireCard(p.Card),
			DrawCount: p.DrawCount,
		}
	case app.EventPileRecycled:
		opCode = OpPileRecycled
		p := ev.Payload.(app.PileRecycledPayload)
		payload = PileRecycledEvent{
			DrawCount: p.DrawCount,
			LastCard:  toWireCard(p.LastCard),
		}
	case app.EventGameEnded:
		opCode = OpGameEnded
		p := ev.Payload.(app.GameEndedPayload)
		ended := GameEndedEvent{
			Winner: string(p.Winner),
			Score:  p.Score,
		}

		// Pay out the win reward once per game, human winners only.
		if p.Winner == domain.SidePlayer && !state.Settled && state.Economy != nil && state.UserID != "" {
			reward := config.GetWinReward(string(state.Game.Difficulty))
			updates := []ports.WalletUpdate{
				{
					UserID: state.UserID,
					Amount: reward,
					Metadata: map[string]interface{}{
						"match_id":   ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
						"difficulty": string(state.Game.Difficulty),
						"reason":     "game_win",
					},
				},
			}
			if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
				logger.Error("Failed to pay win reward: %v", err)
			} else {
				ended.RewardChips = reward
				state.Settled = true
			}
		}

		// Report the post-settlement chip balance so the client can refresh
		// its wallet display without a second round trip.
		if state.Economy != nil && state.UserID != "" {
			balance, err := state.Economy.GetBalance(ctx, state.UserID)
			if err != nil {
				logger.Error("Failed to read chip balance: %v", err)
			} else {
				ended.Balance = balance
			}
		}

		if state.Tokens != nil && state.UserID != "" {
			token, err := state.Tokens.GenerateToken(state.UserID, p.Winner, p.Score, state.Game.Difficulty)
			if err != nil {
				logger.Error("Failed to sign result token: %v", err)
			} else {
				ended.ResultToken = token
			}
		}

		payload = ended
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast). Events addressed to the
	// computer side have no connected presence and must not leak to the
	// human client.
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, side := range ev.Recipients {
			if side != domain.SidePlayer {
				continue
			}
			if p, ok := state.Presences[state.UserID]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendSnapshot sends the redacted game view privately to the seated player.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	presence, ok := state.Presences[state.UserID]
	if !ok {
		return
	}

	opponentName := ""
	if state.Agent != nil {
		opponentName = state.Agent.Identity.DisplayName
	}

	bytes, err := json.Marshal(toStateSnapshot(state.Game, opponentName))
	if err != nil {
		logger.Error("Failed to marshal state snapshot: %v", err)
		return
	}

	dispatcher.BroadcastMessage(OpStateSnapshot, bytes, []runtime.Presence{presence}, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

// marshalLabel builds the match label JSON used for match listing queries.
func marshalLabel(openSeats int, phase string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKey_OpenSeats: openSeats,
		"game":                  "cardclash",
		"state":                 phase,
	})
	if err != nil {
		return "", err
	}
	bytes, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		if state.Game.Ended() {
			phase = "ended"
		} else {
			phase = "playing"
		}
	}

	openSeats := 0
	if state.HasOpenSeat() {
		openSeats = 1
	}

	labelJSON, err := marshalLabel(openSeats, phase)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(labelJSON); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
