// Package session stores and retrieves the bearer credential gating task
// access.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"taskdeck/internal/config"
	"taskdeck/internal/store"
)

// ErrInvalidCredentials is returned by Login when the backend rejects the
// email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrDuplicateUser is returned by Register when an account with the email
// already exists.
var ErrDuplicateUser = errors.New("user with this email already exists")

// Session is the authenticated identity context: an opaque bearer credential
// plus the user id it was minted for. Absence means unauthenticated.
type Session struct {
	Token  oauth2.Token `json:"token"`
	UserID string       `json:"userId"`
}

// Holder owns the durable session state. Login and Logout are the only two
// mutation points.
type Holder struct {
	cfg   *config.Config
	users store.UserStore
}

// NewHolder creates a holder persisting under cfg's config directory.
func NewHolder(cfg *config.Config, users store.UserStore) *Holder {
	return &Holder{cfg: cfg, users: users}
}

// Login exchanges email/password for a credential and persists it.
func (h *Holder) Login(ctx context.Context, email, password string) (*Session, error) {
	creds, err := h.users.Login(ctx, email, password)
	if err != nil {
		var re *store.RemoteError
		if errors.As(err, &re) && re.Unauthorized() {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	sess := &Session{
		Token:  oauth2.Token{AccessToken: creds.Token, Expiry: creds.ExpiresAt},
		UserID: creds.UserID,
	}
	if err := h.save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Register creates a new account. The duplicate check runs first; when it
// hits, no creation call is issued.
func (h *Holder) Register(ctx context.Context, email, password string) error {
	existing, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrDuplicateUser
	}
	_, err = h.users.CreateUser(ctx, email, password)
	return err
}

// Logout clears the stored session unconditionally. Preferences are not
// touched.
func (h *Holder) Logout() error {
	err := h.cfg.RemoveSession()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Current reads the stored session. A missing or malformed file reads as
// not logged in (nil, nil).
func (h *Holder) Current() (*Session, error) {
	return Current(h.cfg)
}

// Current reads the session stored under cfg's config directory.
func Current(cfg *config.Config) (*Session, error) {
	data, err := os.ReadFile(cfg.SessionPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, nil
	}
	if sess.Token.AccessToken == "" || sess.UserID == "" {
		return nil, nil
	}
	return &sess, nil
}

// save writes the session file with mode 0600 under a 0700 directory.
func (h *Holder) save(sess *Session) error {
	if err := h.cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.cfg.SessionPath(), data, 0600)
}
