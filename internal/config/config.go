package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// WinReward is the chip payout for beating the engine at one difficulty.
type WinReward struct {
	Difficulty string `json:"difficulty"`
	Chips      int64  `json:"chips"`
}

type GameConfig struct {
	DefaultDifficulty string      `json:"default_difficulty"`
	WinRewards        []WinReward `json:"win_rewards"`
	WelcomeChips      int64       `json:"welcome_chips"`
	// ThinkDelayMillis configures how long the engine pretends to think
	// before moving, keyed by difficulty.
	ThinkDelayMillis map[string]int `json:"think_delay_millis"`
}

var defaultThinkDelays = map[string]int{
	"beginner":     800,
	"intermediate": 1200,
	"advanced":     1800,
	"nightmare":    2500,
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetThinkDelayMillis returns the engine thinking delay for a difficulty,
// falling back to built-in defaults when unconfigured.
func GetThinkDelayMillis(difficulty string) int {
	if cfg != nil && cfg.ThinkDelayMillis != nil {
		if ms, ok := cfg.ThinkDelayMillis[difficulty]; ok && ms >= 0 {
			return ms
		}
	}
	if ms, ok := defaultThinkDelays[difficulty]; ok {
		return ms
	}
	return defaultThinkDelays["intermediate"]
}

// GetWinReward returns the chip payout for winning at the given difficulty,
// or the payout of the default difficulty when no entry matches.
func GetWinReward(difficulty string) int64 {
	if cfg == nil {
		return 500 // Safe default
	}

	target := difficulty
	if target == "" {
		target = cfg.DefaultDifficulty
	}

	for _, reward := range cfg.WinRewards {
		if reward.Difficulty == target {
			return reward.Chips
		}
	}

	// Fallback to the default difficulty if specific entry not found
	for _, reward := range cfg.WinRewards {
		if reward.Difficulty == cfg.DefaultDifficulty {
			return reward.Chips
		}
	}

	return 500
}

// GetWelcomeChips returns the one-time welcome stake for new accounts.
func GetWelcomeChips() int64 {
	if cfg == nil || cfg.WelcomeChips <= 0 {
		return 10000
	}
	return cfg.WelcomeChips
}
