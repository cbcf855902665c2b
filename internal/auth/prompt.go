package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/notedrive/internal/common"
)

// PromptFlow implements Flow by asking the user to paste an access token
// into the terminal, for environments without a browser. The input is read
// without echo.
type PromptFlow struct{}

func (PromptFlow) Authorize(ctx context.Context) (*Token, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: stdin is not a terminal", common.ErrorNoToken)
	}

	fmt.Fprint(os.Stderr, "Paste access token: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return nil, common.ErrorNoToken
	}
	return &Token{AccessToken: token}, nil
}
