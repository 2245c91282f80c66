package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the external structured-parsing service that converts
// free resume text into the fixed resume schema.
type Client interface {
	ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// ParseResume returns ErrNotImplemented.
func (PlaceholderClient) ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	_ = ctx
	_ = resumeText
	return nil, ErrNotImplemented
}
