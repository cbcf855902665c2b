package auth

import "context"

// StaticFlow yields a fixed token without any interaction, for backends
// whose real authentication happens out of band (e.g. S3 credentials).
type StaticFlow struct {
	AccessToken string
}

func (f StaticFlow) Authorize(ctx context.Context) (*Token, error) {
	return &Token{AccessToken: f.AccessToken}, nil
}
