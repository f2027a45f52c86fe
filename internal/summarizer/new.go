package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/backend"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

const (
	DefaultMaxChunkChars = 3000
	DefaultFallbackWords = 200
)

// Options configures a Summarizer.
type Options struct {
	Model         string
	MaxChunkChars int
	FallbackWords int
	// CallTimeout bounds each backend call. Zero means no limit.
	CallTimeout time.Duration
	// MaxConcurrent bounds how many chunk calls run at once. 1 is strictly sequential.
	MaxConcurrent int
}

type implSummarizer struct {
	gen           backend.Generator
	logger        logger.Logger
	model         string
	maxChunkChars int
	fallbackWords int
	callTimeout   time.Duration
	maxConcurrent int
}

// New creates a Summarizer on top of gen. A nil gen means no backend is configured and
// summaries fall back to the opening words of the transcript.
func New(gen backend.Generator, opts Options, log logger.Logger) Summarizer {
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.MaxChunkChars <= 0 {
		opts.MaxChunkChars = DefaultMaxChunkChars
	}
	if opts.FallbackWords <= 0 {
		opts.FallbackWords = DefaultFallbackWords
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	return &implSummarizer{
		gen:           gen,
		logger:        log,
		model:         opts.Model,
		maxChunkChars: opts.MaxChunkChars,
		fallbackWords: opts.FallbackWords,
		callTimeout:   opts.CallTimeout,
		maxConcurrent: opts.MaxConcurrent,
	}
}
