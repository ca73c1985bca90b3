package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a joinable match.
	RpcQuickMatch = "quick_match"

	// RpcResultToken is the Nakama RPC id clients call to verify a signed game result token.
	RpcResultToken = "result_token"

	// MatchNameCardClash is the authoritative match handler name registered with Nakama.
	MatchNameCardClash = "cardclash_match"
)

const (
	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCard  int64 = 2
	OpDrawCard  int64 = 3
	OpRestart   int64 = 4

	// Server -> Client events
	OpGameStarted   int64 = 101
	OpHandDealt     int64 = 102 // send privately
	OpCardPlayed    int64 = 103
	OpCardDrawn     int64 = 104 // send privately
	OpPileRecycled  int64 = 105
	OpGameEnded     int64 = 106
	OpStateSnapshot int64 = 107
	OpGameError     int64 = 108
)
