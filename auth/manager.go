package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fresco"
	"fresco/storage"
)

// Manager keeps the signed-in session in a blob and hands out the current user and bearer token.
type Manager struct {
	provider Provider
	sessions storage.Blob
	now      func() time.Time
}

func NewManager(provider Provider, sessions storage.Blob) *Manager {
	return &Manager{provider: provider, sessions: sessions, now: time.Now}
}

// SignUp registers the user and signs them straight in.
func (m *Manager) SignUp(ctx context.Context, username, email, password string) (*fresco.User, error) {
	if err := m.provider.SignUp(ctx, username, email, password); err != nil {
		slog.Error("AUTH: Sign up failed", "username", username, "error", err)
		return nil, err
	}
	return m.SignIn(ctx, username, password)
}

func (m *Manager) SignIn(ctx context.Context, username, password string) (*fresco.User, error) {
	session, err := m.provider.SignIn(ctx, username, password)
	if err != nil {
		slog.Error("AUTH: Sign in failed", "username", username, "error", err)
		return nil, err
	}

	user, err := session.User()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := m.sessions.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	slog.Info("AUTH: Signed in", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.sessions.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	slog.Info("AUTH: Signed out")
	return nil
}

// CurrentUser returns the signed-in user, or nil when there is no usable session.
func (m *Manager) CurrentUser(ctx context.Context) (*fresco.User, error) {
	session, err := m.session(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := session.User()
	if err != nil {
		slog.Warn("AUTH: Discarding unreadable session", "error", err)
		return nil, nil
	}
	if Expired(user, m.now()) {
		slog.Info("AUTH: Session expired", "user_id", user.ID, "expired_at", user.ExpiresAt)
		return nil, nil
	}
	return user, nil
}

// Token returns the id token to send as the API bearer token.
func (m *Manager) Token(ctx context.Context) (string, error) {
	user, err := m.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fresco.ErrNotAuthenticated
	}
	session, err := m.session(ctx)
	if err != nil {
		return "", err
	}
	return session.IDToken, nil
}

func (m *Manager) session(ctx context.Context) (Session, error) {
	data, err := m.sessions.Load(ctx)
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	return s, nil
}
