package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"agency-console/internal/logger"
	"agency-console/internal/models"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrEmptyToken = errors.New("session: empty token")

// Store holds the operator's bearer token and user. Reads are concurrent;
// every mutation writes through to the backend.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	token   string
	user    *models.AuthUser
	log     zerolog.Logger
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		log:     logger.WithComponent("session"),
	}
}

// Load restores a persisted session. A missing, malformed or "undefined"
// stored user leaves the store logged out without returning an error; only
// backend read failures are reported.
func (s *Store) Load(ctx context.Context) error {
	rawToken, _, err := s.backend.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	rawUser, _, err := s.backend.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("load session user: %w", err)
	}

	token := sanitize(rawToken)
	user, perr := parseUser(rawUser)
	if perr != nil {
		s.log.Warn().Err(perr).Msg("Discarding unreadable stored user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || user == nil {
		s.token, s.user = "", nil
		if rawToken != "" || rawUser != "" {
			if err := s.backend.Delete(ctx, KeyToken, KeyUser); err != nil {
				s.log.Warn().Err(err).Msg("Failed to clear stale session")
			}
		}
		return nil
	}

	s.token, s.user = token, user
	s.log.Debug().Str("user", user.Email).Str("role", string(user.Role)).Msg("Session restored")
	return nil
}

func sanitize(v string) string {
	v = strings.TrimSpace(v)
	if v == "undefined" || v == "null" {
		return ""
	}
	return v
}

func parseUser(raw string) (*models.AuthUser, error) {
	raw = sanitize(raw)
	if raw == "" {
		return nil, nil
	}
	var u models.AuthUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	if u.Email == "" && u.ID == "" {
		return nil, errors.New("stored user has no identity")
	}
	return &u, nil
}

// Login stores token and user together. If either write fails neither is kept.
func (s *Store) Login(ctx context.Context, token string, user models.AuthUser) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("persist session user: %w", err)
	}
	if err := s.backend.Set(ctx, KeyToken, token); err != nil {
		_ = s.backend.Delete(ctx, KeyUser)
		return fmt.Errorf("persist session token: %w", err)
	}

	u := user
	s.token, s.user = token, &u
	s.log.Info().Str("user", user.Email).Str("role", string(user.Role)).Msg("Logged in")
	return nil
}

// Logout clears the session. Memory is cleared even if the backend fails.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// LogoutIfToken clears the session only if it still holds token, and reports
// whether it did. Concurrent callers holding the same stale token race here;
// exactly one wins.
func (s *Store) LogoutIfToken(ctx context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || s.token != token {
		return false
	}
	if err := s.clearLocked(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to clear persisted session")
	}
	s.log.Warn().Str("token", logger.TokenPrefix(token)).Msg("Session expired, logged out")
	return true
}

func (s *Store) clearLocked(ctx context.Context) error {
	s.token, s.user = "", nil
	return s.backend.Delete(ctx, KeyToken, KeyUser)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns a copy of the logged-in user.
func (s *Store) Current() (models.AuthUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || s.token == "" {
		return models.AuthUser{}, false
	}
	return *s.user, true
}

// TokenExpiry reads the exp claim without verifying the signature. The
// console never trusts it; it is shown to the operator only.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
