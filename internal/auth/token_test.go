package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
)

type fakeFlow struct {
	token *Token
	err   error
	calls int
}

func (f *fakeFlow) Authorize(ctx context.Context) (*Token, error) {
	f.calls++
	return f.token, f.err
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestManager_Token_CachesFlowResult(t *testing.T) {
	flow := &fakeFlow{token: &Token{AccessToken: "tok-1"}}
	m := NewManager(flow, discardLogger())

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, flow.calls, "flow must run once while the token is cached")
}

func TestManager_Token_FlowFailure(t *testing.T) {
	flow := &fakeFlow{err: errors.New("denied")}
	m := NewManager(flow, discardLogger())

	_, err := m.Token(context.Background())
	assert.Error(t, err)
}

func TestManager_Token_NoFlowNoToken(t *testing.T) {
	m := NewManager(nil, discardLogger())
	_, err := m.Token(context.Background())
	assert.ErrorIs(t, err, common.ErrorNoToken)
}

func TestManager_Invalidate_ForcesReauthorization(t *testing.T) {
	flow := &fakeFlow{token: &Token{AccessToken: "tok-1"}}
	m := NewManager(flow, discardLogger())

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	m.Invalidate()

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, flow.calls)
}

func TestManager_SetToken_SeedsCache(t *testing.T) {
	flow := &fakeFlow{token: &Token{AccessToken: "fresh"}}
	m := NewManager(flow, discardLogger())
	m.SetToken("stored")

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored", tok)
	assert.Zero(t, flow.calls)
}

func TestSubjectFromIDToken(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-42",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	sub, err := SubjectFromIDToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)

	_, err = SubjectFromIDToken("not-a-jwt")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestManager_Owner(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-42",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	flow := &fakeFlow{token: &Token{AccessToken: "tok", IDToken: signed}}
	m := NewManager(flow, discardLogger())

	assert.Equal(t, common.AnonymousOwner, m.Owner(), "no identity before authorization")

	_, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-42", m.Owner())
}

func TestStaticFlow(t *testing.T) {
	m := NewManager(StaticFlow{AccessToken: "local"}, discardLogger())

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local", tok)
	assert.Equal(t, common.AnonymousOwner, m.Owner())
}
