package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"cardclash/internal/domain"
)

// Identity describes how the computer opponent presents itself for one
// difficulty tier: the name shown at the table and the status line displayed
// while its move is pending.
type Identity struct {
	Difficulty   string `json:"difficulty"`
	DisplayName  string `json:"display_name"`
	ThinkingLine string `json:"thinking_line"`
	AvatarIndex  int    `json:"avatar_index"`
}

var defaultIdentities = []Identity{
	{Difficulty: "beginner", DisplayName: "Rookie Unit", ThinkingLine: "Thinking...", AvatarIndex: 0},
	{Difficulty: "intermediate", DisplayName: "Tactician Unit", ThinkingLine: "Calculating...", AvatarIndex: 1},
	{Difficulty: "advanced", DisplayName: "Strategist Unit", ThinkingLine: "Strategizing...", AvatarIndex: 2},
	{Difficulty: "nightmare", DisplayName: "Nightmare Unit", ThinkingLine: "Analyzing...", AvatarIndex: 3},
}

var (
	identities    []Identity
	identityByTag map[domain.Difficulty]Identity
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads the opponent identity pool from the given path,
// replacing the built-in defaults. Safe to call more than once; only the
// first call reads the file.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read opponent identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal opponent identities: %w", err)
			return
		}

		identities = loaded
		identityByTag = mapIdentities(loaded)
	})
	return loadErr
}

func mapIdentities(list []Identity) map[domain.Difficulty]Identity {
	m := make(map[domain.Difficulty]Identity, len(list))
	for _, id := range list {
		m[domain.ParseDifficulty(id.Difficulty)] = id
	}
	return m
}

// GetIdentity returns the opponent identity for a difficulty, falling back
// to the built-in pool when no identity file was loaded or the tier is
// missing from it.
func GetIdentity(difficulty domain.Difficulty) Identity {
	if identityByTag != nil {
		if id, ok := identityByTag[difficulty]; ok {
			return id
		}
	}
	for _, id := range defaultIdentities {
		if domain.Difficulty(id.Difficulty) == difficulty {
			return id
		}
	}
	return defaultIdentities[1]
}
