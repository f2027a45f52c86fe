package backend

import (
	"context"
	"errors"
)

// Generator turns a prompt into generated text with a single request/response call.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

var (
	// ErrMissingAPIKey is returned by New when no credential is configured.
	ErrMissingAPIKey = errors.New("backend api key is not configured")
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown backend provider")
	// ErrEmptyResponse is returned when the backend answers without any text.
	ErrEmptyResponse = errors.New("empty response from backend")
)
