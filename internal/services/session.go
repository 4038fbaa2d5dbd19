package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

// DefaultSessionTTL is how long an admin stays logged in.
const DefaultSessionTTL = 7 * 24 * time.Hour

var errSessionInvalid = &AuthError{Message: "Not authenticated"}

// SessionManager manages admin sessions. Sessions live in the store so they
// survive restarts and can be revoked.
type SessionManager struct {
	store      storage.Store
	sessionTTL time.Duration
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(store storage.Store, ttl time.Duration, log logrus.FieldLogger) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		store:      store,
		sessionTTL: ttl,
		log:        log,
		now:        time.Now,
	}
}

// TTL is the lifetime given to new sessions.
func (sm *SessionManager) TTL() time.Duration {
	return sm.sessionTTL
}

// CreateSession creates a new session for an admin
func (sm *SessionManager) CreateSession(ctx context.Context, adminID uint) (*models.AdminSession, error) {
	session := &models.AdminSession{
		Token:     uuid.NewString(),
		AdminID:   adminID,
		ExpiresAt: sm.now().Add(sm.sessionTTL),
	}
	if err := sm.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	sm.log.WithField("admin_id", adminID).Debug("Session created")
	return session, nil
}

// GetSession resolves a token. Expired sessions are deleted and reported as
// an AuthError, as are unknown tokens.
func (sm *SessionManager) GetSession(ctx context.Context, token string) (*models.AdminSession, error) {
	if token == "" {
		return nil, errSessionInvalid
	}

	session, err := sm.store.GetSession(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errSessionInvalid
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(sm.now()) {
		if err := sm.store.DeleteSession(ctx, token); err != nil {
			sm.log.WithError(err).Warn("Failed to delete expired session")
		}
		return nil, errSessionInvalid
	}
	return session, nil
}

// EndSession deletes a session
func (sm *SessionManager) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return sm.store.DeleteSession(ctx, token)
}

// RevokeAll ends every session of the admin.
func (sm *SessionManager) RevokeAll(ctx context.Context, adminID uint) error {
	return sm.store.DeleteAdminSessions(ctx, adminID)
}

// RevokeOthers ends every session of the admin except keepToken.
func (sm *SessionManager) RevokeOthers(ctx context.Context, adminID uint, keepToken string) error {
	return sm.store.DeleteOtherSessions(ctx, adminID, keepToken)
}

// CleanupExpired removes expired sessions and reset tokens.
func (sm *SessionManager) CleanupExpired(ctx context.Context) (int64, error) {
	now := sm.now()
	sessions, err := sm.store.DeleteExpiredSessions(ctx, now)
	if err != nil {
		return 0, err
	}
	tokens, err := sm.store.DeleteExpiredResetTokens(ctx, now)
	if err != nil {
		return sessions, err
	}
	return sessions + tokens, nil
}
