// Package session holds the server-side counterpart of the client's
// persisted user/theme state: a Redis record per signed-in user, addressed
// by a JWT-signed session id carried in a cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "campuschat_session"

// TTL bounds both the Redis record and the cookie lifetime.
const TTL = 30 * 24 * time.Hour

var ErrNoSession = errors.New("no active session")

// State is everything persisted across requests for a signed-in user.
type State struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	DarkMode bool   `json:"dark_mode"`
}

type Store struct {
	redis  *redis.Client
	secret []byte
}

func NewStore(client *redis.Client, secret string) *Store {
	return &Store{redis: client, secret: []byte(secret)}
}

// Create stores a fresh session record and returns the signed token for the
// cookie.
func (s *Store) Create(ctx context.Context, state *State) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(id), data, TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return signSessionID(id, s.secret)
}

func (s *Store) Load(ctx context.Context, token string) (*State, error) {
	id, err := verifySessionToken(token, s.secret)
	if err != nil {
		return nil, ErrNoSession
	}

	data, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	state := &State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return state, nil
}

// Update rewrites the record under the same session id and refreshes its TTL.
func (s *Store) Update(ctx context.Context, token string, state *State) error {
	id, err := verifySessionToken(token, s.secret)
	if err != nil {
		return ErrNoSession
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	return s.redis.Set(ctx, sessionKey(id), data, TTL).Err()
}

func (s *Store) Clear(ctx context.Context, token string) error {
	id, err := verifySessionToken(token, s.secret)
	if err != nil {
		return ErrNoSession
	}
	return s.redis.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id string) string {
	return "session:" + id
}

func signSessionID(id string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sid": id,
		"exp": time.Now().Add(TTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verifySessionToken(tokenStr string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSession
	}
	id, ok := claims["sid"].(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}
