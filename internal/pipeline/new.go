package pipeline

import (
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
	"github.com/nguyentantai21042004/tubesum/internal/transcript"
)

type implPipeline struct {
	fetcher    transcript.Fetcher
	summarizer summarizer.Summarizer
	languages  []string
	logger     logger.Logger
}

// New creates a new Pipeline instance
func New(fetcher transcript.Fetcher, sum summarizer.Summarizer, languages []string, log logger.Logger) Pipeline {
	return &implPipeline{
		fetcher:    fetcher,
		summarizer: sum,
		languages:  languages,
		logger:     log,
	}
}
