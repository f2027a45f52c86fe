package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/videoid"
)

// Process validates rawURL, fetches the transcript and summarizes it. The summarizer is
// never called when no transcript is available.
func (p *implPipeline) Process(ctx context.Context, rawURL string) (Result, error) {
	startTime := time.Now()

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Result{}, ErrMissingURL
	}

	id := videoid.Extract(rawURL)
	if id == "" {
		p.logger.Debug(ctx, "No video ID in %q", rawURL)
		return Result{}, ErrInvalidURL
	}

	p.logger.Info(ctx, "Summarizing video %s", id)

	tr, ok := p.fetcher.Fetch(ctx, id, p.languages)
	if !ok {
		return Result{}, ErrTranscriptUnavailable
	}

	summary := p.summarizer.Summarize(ctx, tr.Text)

	p.logger.Info(ctx, "Summary for %s ready in %s (%d transcript chars, %d summary chars)",
		id, time.Since(startTime).Round(time.Millisecond), len(tr.Text), len(summary))

	return Result{
		URL:      rawURL,
		VideoID:  id,
		Language: tr.Language,
		Summary:  summary,
	}, nil
}
