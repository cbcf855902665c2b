package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
)

// googleEndpoint is declared here instead of importing the oauth2/google
// subpackage, which would drag in cloud SDK dependencies.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// driveScope grants access to files this application created.
const driveScope = "https://www.googleapis.com/auth/drive.file"

// BrowserFlow implements Flow with an authorization-code consent round-trip:
// it starts a loopback listener, prints the consent URL for the user to
// open, and waits for the provider to redirect back with the code.
type BrowserFlow struct {
	clientID     string
	clientSecret string
	log          logging.Logger

	// Timeout bounds the wait for the redirect. Zero means 5 minutes.
	Timeout time.Duration

	// Port fixes the loopback listener port so the redirect URI can be
	// registered with the provider. Zero picks an ephemeral port.
	Port int
}

func NewBrowserFlow(clientID, clientSecret string, log logging.Logger) *BrowserFlow {
	return &BrowserFlow{clientID: clientID, clientSecret: clientSecret, log: log}
}

func (f *BrowserFlow) Authorize(ctx context.Context) (*Token, error) {
	if f.clientID == "" {
		return nil, fmt.Errorf("%w: no oauth client id configured", common.ErrorNoToken)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", f.Port))
	if err != nil {
		return nil, fmt.Errorf("starting loopback listener: %w", err)
	}
	defer ln.Close()

	cfg := &oauth2.Config{
		ClientID:     f.clientID,
		ClientSecret: f.clientSecret,
		Endpoint:     googleEndpoint,
		RedirectURL:  fmt.Sprintf("http://%s/callback", ln.Addr().String()),
		Scopes:       []string{"openid", "email", driveScope},
	}

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	timeout := f.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- errors.New("oauth state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- common.ErrorAuthCanceled
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this tab.")
		codeCh <- code
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
	f.log.Info(ctx, "open this URL in your browser to authorize", "url", url)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", common.ErrorAuthCanceled, ctx.Err())
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	result := &Token{AccessToken: tok.AccessToken}
	if id, ok := tok.Extra("id_token").(string); ok {
		result.IDToken = id
	}
	return result, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
