// Package session owns the console's single source of credential truth.
// A login stores the backend-issued identity+credential pair as one record
// keyed by a generated session id, with a TTL matching the server expiry,
// and hands the browser an HS256 token carrying that id. The record is
// always written as a whole value: readers never observe a half-updated
// identity/credential pair.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storeadmin/internal/caching"
	"storeadmin/internal/common"
	"storeadmin/internal/models"
)

const keyPrefix = "storeadmin:session:"

var (
	ErrNoSession    = errors.New("no active session")
	ErrInvalidToken = errors.New("invalid session token")
)

// Store is injected into the gateway and the handlers; there is exactly one
// instance per process, wired at startup.
type Store interface {
	// Login persists the session and returns the signed console token.
	Login(ctx context.Context, identity models.Identity, credential string, expiresAt time.Time) (string, error)
	// Logout clears the session the context refers to. Clearing an
	// already-absent session is not an error.
	Logout(ctx context.Context) error
	// Current returns the session the context refers to, if it is still live.
	Current(ctx context.Context) (*models.Session, bool)
	// Credential returns the bearer credential for outbound backend calls.
	Credential(ctx context.Context) (string, bool)
	// Resolve validates a console token and loads its session. Used by the
	// auth middleware.
	Resolve(ctx context.Context, token string) (string, *models.Session, error)
}

type store struct {
	cache  caching.CacheService
	secret []byte
}

func NewStore(cache caching.CacheService, secret string) Store {
	return &store{cache: cache, secret: []byte(secret)}
}

func (s *store) Login(ctx context.Context, identity models.Identity, credential string, expiresAt time.Time) (string, error) {
	sess := models.Session{
		Identity:   identity,
		Credential: credential,
		ExpiresAt:  expiresAt,
	}

	data, err := json.Marshal(&sess)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return "", fmt.Errorf("session expiry %s is in the past", expiresAt)
	}

	now := time.Now()
	sessionID := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Issuer:    "storeadmin-console",
		Subject:   identity.Name,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        sessionID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	// Single SET: the whole session record is swapped atomically.
	if err := s.cache.Set(ctx, keyPrefix+sessionID, data, ttl); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

func (s *store) Logout(ctx context.Context) error {
	sessionID, ok := common.SessionIDFromContext(ctx)
	if !ok {
		return nil
	}
	return s.cache.Delete(ctx, keyPrefix+sessionID)
}

func (s *store) Current(ctx context.Context) (*models.Session, bool) {
	sessionID, ok := common.SessionIDFromContext(ctx)
	if !ok {
		return nil, false
	}
	return s.load(ctx, sessionID)
}

func (s *store) Credential(ctx context.Context) (string, bool) {
	sess, ok := s.Current(ctx)
	if !ok {
		return "", false
	}
	return sess.Credential, true
}

func (s *store) Resolve(ctx context.Context, tokenString string) (string, *models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", nil, ErrInvalidToken
	}
	sessionID, ok := claims["jti"].(string)
	if !ok || sessionID == "" {
		return "", nil, ErrInvalidToken
	}

	sess, ok := s.load(ctx, sessionID)
	if !ok {
		return "", nil, ErrNoSession
	}
	return sessionID, sess, nil
}

func (s *store) load(ctx context.Context, sessionID string) (*models.Session, bool) {
	data, err := s.cache.Get(ctx, keyPrefix+sessionID)
	if err != nil || data == nil {
		return nil, false
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, false
	}
	if !sess.Active(time.Now()) {
		return nil, false
	}
	return &sess, true
}
