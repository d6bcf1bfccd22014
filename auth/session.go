package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fresco"
)

// Session is the persisted sign-in state, stored as {"idToken": "..."}.
type Session struct {
	IDToken string `json:"idToken"`
}

// User decodes the identity claims of the session's id token.
// The signature is not checked here; the identity provider issued the token and the API verifies it.
func (s Session) User() (*fresco.User, error) {
	if s.IDToken == "" {
		return nil, errors.New("empty id token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.IDToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.New("id token has no subject")
	}

	user := &fresco.User{ID: sub}
	if v, ok := claims["cognito:username"].(string); ok {
		user.Username = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if user.Username == "" {
		user.Username = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		user.ExpiresAt = exp.Time
	}
	return user, nil
}

// Expired reports whether the user's token has an expiry that is not after now.
func Expired(u *fresco.User, now time.Time) bool {
	return !u.ExpiresAt.IsZero() && !u.ExpiresAt.After(now)
}
