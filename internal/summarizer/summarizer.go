package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Summarize runs the two-pass algorithm: summarize every chunk, then summarize the
// joined chunk summaries. Each failure degrades the result instead of aborting.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return msgNoTranscript
	}
	if s.gen == nil {
		s.logger.Debug(ctx, "No backend configured, returning the first %d words", s.fallbackWords)
		return truncateWords(transcript, s.fallbackWords)
	}

	startTime := time.Now()
	chunks := Chunk(transcript, s.maxChunkChars)
	s.logger.Info(ctx, "Summarizing transcript: %d chars in %d chunks", utf8.RuneCountInString(transcript), len(chunks))

	summaries := s.summarizeChunks(ctx, chunks)
	if len(summaries) == 0 {
		s.logger.Error(ctx, "All %d chunk summaries failed", len(chunks))
		return msgNoSummaries
	}
	if len(summaries) < len(chunks) {
		s.logger.Warn(ctx, "%d of %d chunks could not be summarized and were dropped", len(chunks)-len(summaries), len(chunks))
	}

	combined := strings.Join(summaries, summarySeparator)
	final, ok := s.summarizeChunk(ctx, combined)
	if !ok {
		s.logger.Warn(ctx, "Final combination failed, returning joined chunk summaries")
		return combined
	}

	s.logger.Info(ctx, "Summary complete in %s", time.Since(startTime))
	return final
}

// summarizeChunks summarizes chunks with at most maxConcurrent calls in flight and
// returns the successful results in chunk order.
func (s *implSummarizer) summarizeChunks(ctx context.Context, chunks []string) []string {
	results := make([]string, len(chunks))
	oks := make([]bool, len(chunks))

	if s.maxConcurrent <= 1 {
		for i, ch := range chunks {
			s.logger.Debug(ctx, "[%d/%d] Summarizing chunk (%d chars)", i+1, len(chunks), utf8.RuneCountInString(ch))
			results[i], oks[i] = s.summarizeChunk(ctx, ch)
		}
	} else {
		sem := newSemaphore(s.maxConcurrent)
		var wg sync.WaitGroup
		for i, ch := range chunks {
			if err := sem.acquire(ctx); err != nil {
				s.logger.Warn(ctx, "Stopped dispatching chunks: %v", err)
				break
			}
			wg.Add(1)
			go func(i int, ch string) {
				defer wg.Done()
				defer sem.release()
				s.logger.Debug(ctx, "[%d/%d] Summarizing chunk (%d chars)", i+1, len(chunks), utf8.RuneCountInString(ch))
				results[i], oks[i] = s.summarizeChunk(ctx, ch)
			}(i, ch)
		}
		wg.Wait()
	}

	summaries := make([]string, 0, len(chunks))
	for i, ok := range oks {
		if ok {
			summaries = append(summaries, results[i])
		}
	}
	return summaries
}

// summarizeChunk makes one backend call for text. It reports false on any backend
// error or blank answer; the error is logged, not returned.
func (s *implSummarizer) summarizeChunk(ctx context.Context, text string) (string, bool) {
	callCtx := ctx
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	out, err := s.gen.Generate(callCtx, fmt.Sprintf(chunkPrompt, text), s.model)
	if err != nil {
		s.logger.Error(ctx, "Summarization call failed (model %s): %v", s.model, err)
		return "", false
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.logger.Warn(ctx, "Summarization call returned no text (model %s)", s.model)
		return "", false
	}
	return out, true
}

// truncateWords returns the first n whitespace-separated words of text joined by
// single spaces, plus a marker when words were cut.
func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + truncationMarker
}
