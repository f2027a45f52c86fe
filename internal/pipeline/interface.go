package pipeline

import (
	"context"
	"errors"
)

var (
	ErrMissingURL            = errors.New("missing YouTube URL")
	ErrInvalidURL            = errors.New("could not parse a video ID from URL")
	ErrTranscriptUnavailable = errors.New("transcript not available")
)

// Result is a completed summary of one video.
type Result struct {
	URL      string
	VideoID  string
	Language string
	Summary  string
}

// Pipeline turns a pasted YouTube URL into a summary.
type Pipeline interface {
	Process(ctx context.Context, rawURL string) (Result, error)
}
