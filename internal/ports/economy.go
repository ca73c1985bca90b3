package ports

import "context"

// WalletUpdate represents a single chip change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort defines the interface for managing game chips.
type EconomyPort interface {
	// GetBalance retrieves the current chip balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies multiple wallet changes atomically.
	// This is used at the end of a game to settle win rewards.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error

	// GrantWelcomeChipsOnce attempts to grant a one-time welcome stake.
	// Returns granted=false when the stake was already granted.
	GrantWelcomeChipsOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
