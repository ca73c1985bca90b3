package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"cardclash/internal/config"
	"cardclash/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// WelcomeChipsGranted is false when the stake was granted previously.
	WelcomeChipsGranted bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	economy  ports.EconomyPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/economy must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, economy ports.EconomyPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		economy:  economy,
		rng:      rng,
	}
}

// OnboardNewUser initializes profile and wallet for a newly created account.
// userID identifies the new account to initialize.
// Returns a Result with any non-fatal issues and an error if the welcome stake cannot be granted.
// Side effects: updates account profile and grants a one-time chip stake.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.economy == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		// Profile updates are best-effort; wallet grants are more important.
		result.ProfileUpdateErr = err
	}

	granted, err := s.economy.GrantWelcomeChipsOnce(ctx, userID, config.GetWelcomeChips(), map[string]interface{}{
		"reason": "welcome_chips",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant welcome chips: %w", err)
	}
	result.WelcomeChipsGranted = granted

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Lucky", "Bold", "Sharp", "Quick", "Steady", "Slick", "Keen", "Daring", "Cool", "Ace"}
	nouns := []string{"Dealer", "Shuffler", "Gambit", "Joker", "Maverick", "Counter", "Bluffer", "Drawer", "Stacker", "Tactician"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
