package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"cardclash/internal/domain"
)

// ResultTokenService mints signed attestations of finished games. Clients
// present the token to external services (leaderboards, tournaments) as
// proof of a server-confirmed result without those services trusting the
// client.
type ResultTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// NewResultTokenService constructs a token service. ttl of zero defaults to
// one hour.
func NewResultTokenService(secret, issuer string, ttl time.Duration) *ResultTokenService {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &ResultTokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}
}

// GenerateToken signs a result claim for the given user's finished game.
func (s *ResultTokenService) GenerateToken(userID string, winner domain.Side, score int, difficulty domain.Difficulty) (string, error) {
	if s == nil {
		return "", fmt.Errorf("result token service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if winner == "" {
		return "", fmt.Errorf("game has no winner yet")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("result token config is incomplete")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":        s.issuer,
		"sub":        userID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
		"jti":        fmt.Sprintf("%d-%d", now.UnixNano(), rand.Int63()),
		"game":       "cardclash",
		"winner":     string(winner),
		"score":      score,
		"difficulty": string(difficulty),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// GameResult is the verified content of a result token.
type GameResult struct {
	UserID     string
	Winner     domain.Side
	Score      int
	Difficulty domain.Difficulty
}

// VerifyToken checks a token's signature and claims and returns the result
// it attests. Tokens signed with another key, another signing method, for
// another game, or past their expiry are rejected.
func (s *ResultTokenService) VerifyToken(tokenString string) (GameResult, error) {
	if s == nil || s.secret == "" {
		return GameResult{}, fmt.Errorf("result token config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return GameResult{}, fmt.Errorf("invalid result token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return GameResult{}, fmt.Errorf("invalid result token claims")
	}
	if game, _ := claims["game"].(string); game != "cardclash" {
		return GameResult{}, fmt.Errorf("token is not a game result")
	}

	userID, _ := claims["sub"].(string)
	winner, _ := claims["winner"].(string)
	difficulty, _ := claims["difficulty"].(string)
	score, _ := claims["score"].(float64)

	return GameResult{
		UserID:     userID,
		Winner:     domain.Side(winner),
		Score:      int(score),
		Difficulty: domain.Difficulty(difficulty),
	}, nil
}
