package transcript

import "context"

// Transcript is the caption text of one video in one language.
type Transcript struct {
	Text     string
	Language string
}

// Fetcher retrieves transcripts. Languages are tried in preference order. Failures
// (captions disabled, private video, network errors) are logged and reported as
// ok == false; they are never returned as errors.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string, languages []string) (Transcript, bool)
}
