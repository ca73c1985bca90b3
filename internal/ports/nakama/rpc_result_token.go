package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"cardclash/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// RpcVerifyResultToken handles the RPC call from the client to verify a game
// result attestation. Tokens are only ever minted server-side when a game
// ends (GameEndedEvent); this endpoint lets clients and companion services
// confirm a presented token is genuine and read its claims.
// Payload: {"token": "..."}
func RpcVerifyResultToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userId == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.Token == "" {
		return "", runtime.NewError("Token required", 3)
	}

	// Signing credentials come from the runtime environment. Without them no
	// token can have been minted, so verification is refused rather than
	// falling back to a guessable key.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["cardclash_result_secret"]
	issuer := env["cardclash_result_issuer"]
	if secret == "" {
		logger.Error("Result token secret missing from env.")
		return "", runtime.NewError("Result tokens not configured", 9) // FAILED_PRECONDITION
	}
	if issuer == "" {
		issuer = "cardclash"
	}

	service := app.NewResultTokenService(secret, issuer, 0)
	result, err := service.VerifyToken(req.Token)
	if err != nil {
		logger.Warn("Result token verification failed for %s: %v", userId, err)
		return "", runtime.NewError("Invalid result token", 3)
	}

	res := map[string]interface{}{
		"valid":      true,
		"user_id":    result.UserID,
		"winner":     string(result.Winner),
		"score":      result.Score,
		"difficulty": string(result.Difficulty),
	}
	resBytes, _ := json.Marshal(res)
	return string(resBytes), nil
}
