package nakama

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"cardclash/internal/app"
	"cardclash/internal/domain"
	"cardclash/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	lastRecipients []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	md.lastRecipients = presences
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

// mockPresence is a minimal runtime.Presence for one user.
type mockPresence struct {
	userID string
}

func (mp mockPresence) GetUserId() string                   { return mp.userID }
func (mp mockPresence) GetSessionId() string                { return "session-" + mp.userID }
func (mp mockPresence) GetNodeId() string                   { return "node-1" }
func (mp mockPresence) GetHidden() bool                     { return false }
func (mp mockPresence) GetPersistence() bool                { return true }
func (mp mockPresence) GetUsername() string                 { return mp.userID }
func (mp mockPresence) GetStatus() string                   { return "" }
func (mp mockPresence) GetReason() runtime.PresenceReason   { return runtime.PresenceReasonUnknown }

// mockMatchData wraps a presence with an opcode and payload.
type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (md mockMatchData) GetOpCode() int64      { return md.opCode }
func (md mockMatchData) GetData() []byte       { return md.data }
func (md mockMatchData) GetReliable() bool     { return true }
func (md mockMatchData) GetReceiveTime() int64 { return 0 }

type mockEconomy struct {
	balance int64
	updates []ports.WalletUpdate
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	return me.balance, nil
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	me.updates = append(me.updates, updates...)
	for _, u := range updates {
		me.balance += u.Amount
	}
	return nil
}

func (me *mockEconomy) GrantWelcomeChipsOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	return true, nil
}

func newTestState(userID string) *MatchState {
	return &MatchState{
		UserID: userID,
		Presences: map[string]runtime.Presence{
			userID: mockPresence{userID: userID},
		},
		App:     app.NewService(rand.New(rand.NewSource(42))),
		Economy: &mockEconomy{},
	}
}

func startMessage(userID, difficulty string) mockMatchData {
	data, _ := json.Marshal(StartGameRequest{Difficulty: difficulty})
	return mockMatchData{
		mockPresence: mockPresence{userID: userID},
		opCode:       OpStartGame,
		data:         data,
	}
}

func playMessage(userID, cardID string) mockMatchData {
	data, _ := json.Marshal(PlayCardRequest{CardID: cardID})
	return mockMatchData{
		mockPresence: mockPresence{userID: userID},
		opCode:       OpPlayCard,
		data:         data,
	}
}

func TestMarshalLabel(t *testing.T) {
	labelJSON, err := marshalLabel(1, "lobby")
	if err != nil {
		t.Fatalf("marshalLabel returned error: %v", err)
	}

	var label map[string]interface{}
	if err := json.Unmarshal([]byte(labelJSON), &label); err != nil {
		t.Fatalf("label is not valid JSON: %v", err)
	}

	if got := label[MatchLabelKey_OpenSeats]; got != float64(1) {
		t.Errorf("label open = %v, want 1", got)
	}
	if got := label["game"]; got != "cardclash" {
		t.Errorf("label game = %v, want cardclash", got)
	}
	if got := label["state"]; got != "lobby" {
		t.Errorf("label state = %v, want lobby", got)
	}
}

func TestHandleStartGame_DealsAndBroadcasts(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")

	handler.handleStartGame(context.Background(), state, dispatcher, noopLogger{}, startMessage("user-1", "advanced"))

	if state.Game == nil {
		t.Fatal("Expected game to be created")
	}
	if state.Game.Difficulty != domain.DifficultyAdvanced {
		t.Fatalf("Game difficulty = %s, want advanced", state.Game.Difficulty)
	}
	if state.Agent == nil {
		t.Fatal("Expected opponent agent to be created")
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatal("Expected label update after game start")
	}
	// Private hand deal followed by the public start event.
	if dispatcher.broadcastCount < 2 {
		t.Fatalf("Expected at least 2 broadcasts, got %d", dispatcher.broadcastCount)
	}
	if dispatcher.lastOpCode != OpGameStarted {
		t.Fatalf("Last opcode = %d, want %d", dispatcher.lastOpCode, OpGameStarted)
	}

	var started GameStartedEvent
	if err := json.Unmarshal(dispatcher.lastData, &started); err != nil {
		t.Fatalf("Failed to unmarshal GameStartedEvent: %v", err)
	}
	if started.FirstTurn != string(domain.SidePlayer) {
		t.Fatalf("First turn = %s, want player", started.FirstTurn)
	}
	if started.OpponentName == "" {
		t.Fatal("Expected an opponent display name")
	}
	if started.TargetScore != domain.TargetScore {
		t.Fatalf("Target score = %d, want %d", started.TargetScore, domain.TargetScore)
	}
}

func TestHandleStartGame_IgnoresNonSeatedUser(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")

	handler.handleStartGame(context.Background(), state, dispatcher, noopLogger{}, startMessage("intruder", "beginner"))

	if state.Game != nil {
		t.Fatal("Non-seated user must not start a game")
	}
	if dispatcher.broadcastCount != 0 {
		t.Fatalf("Expected no broadcasts, got %d", dispatcher.broadcastCount)
	}
}

func TestHandDealtIsPrivate(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")

	game, events := state.App.StartGame(domain.DifficultyBeginner)
	state.Game = game

	for _, ev := range events {
		if ev.Kind != app.EventHandDealt {
			continue
		}
		handler.broadcastEvent(context.Background(), state, dispatcher, noopLogger{}, ev)
	}

	if dispatcher.broadcastCount != 1 {
		t.Fatalf("Expected 1 private broadcast, got %d", dispatcher.broadcastCount)
	}
	if len(dispatcher.lastRecipients) != 1 || dispatcher.lastRecipients[0].GetUserId() != "user-1" {
		t.Fatalf("Hand dealt recipients = %v, want only user-1", dispatcher.lastRecipients)
	}
}

func TestHandlePlayCard_InvalidCardSendsError(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")
	state.Game, _ = state.App.StartGame(domain.DifficultyBeginner)

	handler.handlePlayCard(context.Background(), state, dispatcher, noopLogger{}, playMessage("user-1", "bogus"))

	if dispatcher.lastOpCode != OpGameError {
		t.Fatalf("Last opcode = %d, want %d", dispatcher.lastOpCode, OpGameError)
	}
	var gameErr GameErrorEvent
	if err := json.Unmarshal(dispatcher.lastData, &gameErr); err != nil {
		t.Fatalf("Failed to unmarshal GameErrorEvent: %v", err)
	}
	if gameErr.Code != 400 {
		t.Fatalf("Error code = %d, want 400", gameErr.Code)
	}
	if state.Game.Score != 0 || state.Game.Turn != domain.SidePlayer {
		t.Fatal("Rejected play mutated the game")
	}
}

func TestThinkDelayTicks(t *testing.T) {
	tests := []struct {
		name       string
		overrideMs int
		difficulty domain.Difficulty
		want       int64
	}{
		{name: "NightmareDefault", overrideMs: 0, difficulty: domain.DifficultyNightmare, want: 25},
		{name: "BeginnerDefault", overrideMs: 0, difficulty: domain.DifficultyBeginner, want: 8},
		{name: "EnvOverride", overrideMs: 100, difficulty: domain.DifficultyNightmare, want: 1},
		{name: "SubTickClampsToOne", overrideMs: 5, difficulty: domain.DifficultyBeginner, want: 1},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := thinkDelayTicks(test.overrideMs, test.difficulty); got != test.want {
				t.Fatalf("thinkDelayTicks() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestProcessOpponent_WaitsOutThinkDelay(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")
	state.Game, _ = state.App.StartGame(domain.DifficultyBeginner)
	state.Game.Turn = domain.SideComputer
	state.Tick = 100

	// First pass only arms the timer.
	handler.processOpponent(context.Background(), state, dispatcher, noopLogger{})
	if state.ThinkUntil <= state.Tick {
		t.Fatalf("ThinkUntil = %d, want a future tick past %d", state.ThinkUntil, state.Tick)
	}
	if dispatcher.broadcastCount != 0 {
		t.Fatal("Engine moved before its thinking delay elapsed")
	}

	// Not due yet.
	state.Tick = state.ThinkUntil - 1
	handler.processOpponent(context.Background(), state, dispatcher, noopLogger{})
	if dispatcher.broadcastCount != 0 {
		t.Fatal("Engine moved one tick early")
	}

	// Due now: the beginner strategy plays its first card.
	state.Tick = state.ThinkUntil
	handler.processOpponent(context.Background(), state, dispatcher, noopLogger{})
	if dispatcher.broadcastCount == 0 {
		t.Fatal("Engine did not move when its delay elapsed")
	}
	if state.ThinkUntil != 0 {
		t.Fatalf("ThinkUntil = %d, want reset to 0", state.ThinkUntil)
	}
	if state.Game.Turn != domain.SidePlayer {
		t.Fatalf("Turn after engine move = %s, want player", state.Game.Turn)
	}
}

func TestProcessOpponent_IdleOutOfTurn(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")
	state.Game, _ = state.App.StartGame(domain.DifficultyBeginner)
	state.ThinkUntil = 50
	state.Tick = 100

	handler.processOpponent(context.Background(), state, dispatcher, noopLogger{})

	if state.ThinkUntil != 0 {
		t.Fatalf("ThinkUntil = %d, want cleared while it is the player's turn", state.ThinkUntil)
	}
	if dispatcher.broadcastCount != 0 {
		t.Fatal("Engine moved out of turn")
	}
}

func TestHandleRestart_CancelsPendingMove(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState("user-1")
	state.Game, _ = state.App.StartGame(domain.DifficultyNightmare)
	state.Game.Turn = domain.SideComputer
	state.ThinkUntil = 500

	msg := mockMatchData{mockPresence: mockPresence{userID: "user-1"}, opCode: OpRestart}
	handler.handleRestart(context.Background(), state, dispatcher, noopLogger{}, msg)

	if state.ThinkUntil != 0 {
		t.Fatalf("ThinkUntil = %d, want cancelled on restart", state.ThinkUntil)
	}
	if state.Game.Score != 0 || state.Game.Turn != domain.SidePlayer || state.Game.Ended() {
		t.Fatal("Restart did not reset the game")
	}
	if state.Game.Difficulty != domain.DifficultyNightmare {
		t.Fatalf("Restart changed difficulty to %s", state.Game.Difficulty)
	}
}

func TestGameEnded_PaysRewardAndSignsToken(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{balance: 10000}
	state := newTestState("user-1")
	state.Economy = economy
	state.Tokens = app.NewResultTokenService("test-secret", "test-issuer", 0)
	state.Game, _ = state.App.StartGame(domain.DifficultyIntermediate)

	state.Game.Score = 40
	state.Game.PlayerHand = append(state.Game.PlayerHand, domain.Card{
		ID: "N6x", Kind: domain.KindNumber, Value: 6, Effect: 6,
	})

	handler.handlePlayCard(context.Background(), state, dispatcher, noopLogger{}, playMessage("user-1", "N6x"))

	if !state.Game.Ended() || state.Game.Winner != domain.SidePlayer {
		t.Fatalf("Game should have ended with a player win, got winner %q", state.Game.Winner)
	}
	if dispatcher.lastOpCode != OpGameEnded {
		t.Fatalf("Last opcode = %d, want %d", dispatcher.lastOpCode, OpGameEnded)
	}

	var ended GameEndedEvent
	if err := json.Unmarshal(dispatcher.lastData, &ended); err != nil {
		t.Fatalf("Failed to unmarshal GameEndedEvent: %v", err)
	}
	if ended.Winner != string(domain.SidePlayer) || ended.Score < domain.TargetScore {
		t.Fatalf("Ended event = %+v", ended)
	}
	if ended.RewardChips <= 0 {
		t.Fatalf("Reward chips = %d, want a positive payout", ended.RewardChips)
	}
	if ended.ResultToken == "" {
		t.Fatal("Expected a signed result token")
	}
	if ended.Balance != 10000+ended.RewardChips {
		t.Fatalf("Balance = %d, want %d", ended.Balance, 10000+ended.RewardChips)
	}

	if len(economy.updates) != 1 {
		t.Fatalf("Expected 1 wallet update, got %d", len(economy.updates))
	}
	if economy.updates[0].UserID != "user-1" || economy.updates[0].Amount != ended.RewardChips {
		t.Fatalf("Wallet update = %+v", economy.updates[0])
	}
	if !state.Settled {
		t.Fatal("Expected the game to be marked settled")
	}

	// A duplicate end event must not pay twice.
	handler.broadcastEvent(context.Background(), state, dispatcher, noopLogger{}, app.Event{
		Kind:    app.EventGameEnded,
		Payload: app.GameEndedPayload{Winner: domain.SidePlayer, Score: state.Game.Score},
	})
	if len(economy.updates) != 1 {
		t.Fatalf("Duplicate end event paid again: %d updates", len(economy.updates))
	}
}
