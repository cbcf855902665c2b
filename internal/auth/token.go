// Package auth manages the bearer access token used for remote-store calls:
// a cached token, a single interactive authorization round-trip when no
// token is available, and identity extraction from the Google ID token.
package auth

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
)

// Token is the result of a successful authorization.
type Token struct {
	AccessToken string
	// IDToken is the optional OpenID Connect identity token (a JWT).
	IDToken string
}

// Flow performs the interactive authorization round-trip: browser consent,
// pasted token, or anything else that yields a usable token.
type Flow interface {
	Authorize(ctx context.Context) (*Token, error)
}

// Manager caches the current token and runs the Flow at most once per
// Token call chain when no token is cached. It is safe for concurrent use.
type Manager struct {
	mu    sync.Mutex
	token *Token
	flow  Flow
	log   logging.Logger
}

func NewManager(flow Flow, log logging.Logger) *Manager {
	return &Manager{flow: flow, log: log}
}

// SetToken seeds the cache, e.g. from a stored session.
func (m *Manager) SetToken(accessToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if accessToken == "" {
		m.token = nil
		return
	}
	m.token = &Token{AccessToken: accessToken}
}

// Token returns the cached access token, running the interactive flow when
// the cache is empty. No usable token yields common.ErrorNoToken.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil && m.token.AccessToken != "" {
		return m.token.AccessToken, nil
	}

	if m.flow == nil {
		return "", common.ErrorNoToken
	}

	m.log.Info(ctx, "no cached token, starting authorization")
	tok, err := m.flow.Authorize(ctx)
	if err != nil {
		return "", err
	}
	if tok == nil || tok.AccessToken == "" {
		return "", common.ErrorNoToken
	}

	m.token = tok
	return tok.AccessToken, nil
}

// Invalidate discards the cached token after the remote rejected it.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
}

// Owner derives the owner identifier from the cached ID token, falling back
// to the anonymous owner when no identity is known.
func (m *Manager) Owner() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil || m.token.IDToken == "" {
		return common.AnonymousOwner
	}
	id, err := SubjectFromIDToken(m.token.IDToken)
	if err != nil || id == "" {
		return common.AnonymousOwner
	}
	return id
}
