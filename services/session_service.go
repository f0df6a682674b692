package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"gachigayo/services/backend"
	"gachigayo/utils"
)

// ErrSessionExpired means the caller must log in again. It covers both a
// missing session key and an access token past its exp claim; the front-end
// does not refresh tokens.
var ErrSessionExpired = errors.New("session expired")

const sessionKeyPrefix = "session:"

// SessionService keeps backend token pairs server-side in Redis and hands
// browsers an opaque session id instead.
type SessionService struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionService(redisClient *redis.Client, ttl time.Duration) *SessionService {
	return &SessionService{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Create stores a fresh token pair and returns the session id for it.
func (s *SessionService) Create(ctx context.Context, pair *backend.TokenPair) (string, error) {
	sessionID, err := utils.GenerateSessionID(32)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	key := sessionKeyPrefix + sessionID
	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, key,
		"accessToken", pair.AccessToken,
		"refreshToken", pair.RefreshToken,
	)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return sessionID, nil
}

// AccessToken resolves a session id to its backend access token. An expired
// token is reported as ErrSessionExpired without being sent upstream.
func (s *SessionService) AccessToken(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrSessionExpired
	}

	access, err := s.redis.HGet(ctx, sessionKeyPrefix+sessionID, "accessToken").Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionExpired
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}

	if tokenExpired(access) {
		slog.Info("access token expired, dropping session")
		if err := s.Destroy(ctx, sessionID); err != nil {
			slog.Warn("failed to drop expired session", "error", err)
		}
		return "", ErrSessionExpired
	}

	return access, nil
}

// Destroy removes a session, e.g. on logout.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// tokenExpired inspects the access token's exp claim without verifying the
// signature. The backend is the verifier; here the claim only gates whether
// a call is worth attempting.
func tokenExpired(access string) bool {
	token, _, err := jwt.NewParser().ParseUnverified(access, jwt.MapClaims{})
	if err != nil {
		// Not a JWT at all; let the backend reject it.
		return false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
