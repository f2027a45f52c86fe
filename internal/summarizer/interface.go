package summarizer

import "context"

// Summarizer condenses a transcript into a single summary. It never fails: backend
// errors degrade the output instead of being returned.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) string
}
