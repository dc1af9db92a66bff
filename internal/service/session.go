package service

import (
	"context"
	"fmt"
	"time"

	"settingshub/internal/logger"
	"settingshub/internal/models"
	"settingshub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionService persists captured tokens and decodes their identity
// claims for display.
type SessionService struct {
	repo repository.Sessions
	ttl  time.Duration
}

func NewSessionService(repo repository.Sessions, ttl time.Duration) *SessionService {
	return &SessionService{repo: repo, ttl: ttl}
}

var _ Sessions = (*SessionService)(nil)

// Establish stores a freshly delivered token under a new opaque session
// id. Called once per login-redirect link; the URL parameter is gone
// after this.
func (s *SessionService) Establish(ctx context.Context, token string) (models.Session, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("establish session: %w", err)
	}
	return sess, nil
}

// Resolve returns the session for a cookie id, or ErrNoSession when the
// id is unknown or the session aged out.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (models.Session, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return models.Session{}, fmt.Errorf("resolve session: %w", err)
	}
	if sess == nil {
		return models.Session{}, ErrNoSession
	}
	if s.ttl > 0 && time.Since(sess.CreatedAt) > s.ttl {
		_ = s.repo.Delete(ctx, sessionID)
		return models.Session{}, ErrNoSession
	}
	return *sess, nil
}

// Identity decodes the display claims from a bearer token. The token is
// a three-part JWT whose payload carries "did" and "username". The
// signature is deliberately not verified: this app is a client of the
// remote API and never holds the signing key; authorization stays
// server-side. Any malformed input yields (zero, false).
func (s *SessionService) Identity(token string) (models.Identity, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.Identity{}, false
	}
	did, _ := claims["did"].(string)
	username, _ := claims["username"].(string)
	if did == "" || username == "" {
		return models.Identity{}, false
	}
	return models.Identity{DID: did, Username: username}, true
}

// Clear drops the stored token. The caller expires the cookie and sends
// the browser to the external login origin.
func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Run purges aged-out sessions until the context is cancelled. No-op
// when sessions never expire.
func (s *SessionService) Run(ctx context.Context, tick time.Duration) {
	if s.ttl <= 0 {
		return
	}
	log := logger.Get(logger.InfoLevel)
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.repo.DeleteExpired(ctx, time.Now().Add(-s.ttl))
			if err != nil {
				log.Errorw("session_purge_failed", "err", err)
				continue
			}
			if n > 0 {
				log.Infow("session_purge", "removed", n)
			}
		}
	}
}
