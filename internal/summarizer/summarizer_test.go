package summarizer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

// fakeGenerator answers prompts through fn and records every call.
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	models  []string
	fn      func(ctx context.Context, prompt string, call int) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	call := len(f.prompts)
	f.mu.Unlock()
	return f.fn(ctx, prompt, call)
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// chunkBody strips the instruction template from a prompt.
func chunkBody(prompt string) string {
	prefix := strings.TrimSuffix(chunkPrompt, "%s")
	return strings.TrimPrefix(prompt, prefix)
}

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func newTestSummarizer(gen *fakeGenerator, opts Options) Summarizer {
	if gen == nil {
		return New(nil, opts, logger.NewNop())
	}
	return New(gen, opts, logger.NewNop())
}

func TestSummarizeWithoutBackend(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exactly 200 words", words(200), words(200)},
		{"fewer words", "a  short\n transcript", "a short transcript"},
		{"more than 200 words", words(201), words(200) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSummarizer(nil, Options{})
			assert.Equal(t, tt.want, s.Summarize(context.Background(), tt.input))
		})
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	gen := &fakeGenerator{fn: func(context.Context, string, int) (string, error) { return "x", nil }}
	s := newTestSummarizer(gen, Options{})

	assert.Equal(t, msgNoTranscript, s.Summarize(context.Background(), "  "))
	assert.Zero(t, gen.calls())
}

func TestSummarizeTwoPass(t *testing.T) {
	gen := &fakeGenerator{fn: func(_ context.Context, prompt string, call int) (string, error) {
		body := chunkBody(prompt)
		if strings.HasPrefix(body, "S(") {
			return "  FINAL  ", nil
		}
		return "S(" + body + ")\n", nil
	}}
	s := newTestSummarizer(gen, Options{Model: "test-model", MaxChunkChars: 20})

	got := s.Summarize(context.Background(), "First chunk here. Second chunk here. Third one.")
	assert.Equal(t, "FINAL", got)

	require.Equal(t, 4, gen.calls())
	assert.Equal(t, "S(First chunk here.)\n\nS(Second chunk here.)\n\nS(Third one.)", chunkBody(gen.prompts[3]))
	for _, m := range gen.models {
		assert.Equal(t, "test-model", m)
	}
	assert.Contains(t, gen.prompts[0], "do not lose any analytical data")
	assert.Contains(t, gen.prompts[0], "title heading")
}

func TestSummarizeAllChunksFail(t *testing.T) {
	gen := &fakeGenerator{fn: func(context.Context, string, int) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	s := newTestSummarizer(gen, Options{MaxChunkChars: 20})

	got := s.Summarize(context.Background(), "First chunk here. Second chunk here.")
	assert.Equal(t, "Could not generate chunk summaries.", got)
	assert.Equal(t, 2, gen.calls())
}

func TestSummarizeBlankResponsesCountAsFailures(t *testing.T) {
	gen := &fakeGenerator{fn: func(context.Context, string, int) (string, error) { return " \n ", nil }}
	s := newTestSummarizer(gen, Options{})

	assert.Equal(t, msgNoSummaries, s.Summarize(context.Background(), "Only one chunk."))
}

func TestSummarizeFinalCallFails(t *testing.T) {
	gen := &fakeGenerator{fn: func(_ context.Context, prompt string, call int) (string, error) {
		if call == 3 {
			return "", errors.New("backend down")
		}
		return fmt.Sprintf("summary %d", call), nil
	}}
	s := newTestSummarizer(gen, Options{MaxChunkChars: 20})

	got := s.Summarize(context.Background(), "First chunk here. Second chunk here.")
	assert.Equal(t, "summary 1\n\nsummary 2", got)
}

func TestSummarizeDropsFailedChunk(t *testing.T) {
	gen := &fakeGenerator{fn: func(_ context.Context, prompt string, call int) (string, error) {
		body := chunkBody(prompt)
		switch {
		case strings.HasPrefix(body, "Second"):
			return "", errors.New("boom")
		case strings.Contains(body, "\n\n") || strings.HasPrefix(body, "sum:"):
			return body, nil
		}
		return "sum:" + body, nil
	}}
	s := newTestSummarizer(gen, Options{MaxChunkChars: 20})

	got := s.Summarize(context.Background(), "First chunk here. Second chunk here. Third one.")
	assert.Equal(t, "sum:First chunk here.\n\nsum:Third one.", got)
}

func TestSummarizeParallelKeepsOrder(t *testing.T) {
	var inFlight, maxInFlight int
	var mu sync.Mutex
	gen := &fakeGenerator{fn: func(_ context.Context, prompt string, _ int) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()

		body := chunkBody(prompt)
		if strings.Contains(body, "\n\n") {
			return "", errors.New("force fallback to the joined summaries")
		}
		return "<" + body + ">", nil
	}}
	s := newTestSummarizer(gen, Options{MaxChunkChars: 10, MaxConcurrent: 3})

	var sentences, want []string
	for i := 0; i < 12; i++ {
		sentences = append(sentences, fmt.Sprintf("Part %02d.", i))
		want = append(want, fmt.Sprintf("<Part %02d.>", i))
	}

	got := s.Summarize(context.Background(), strings.Join(sentences, " "))
	assert.Equal(t, strings.Join(want, "\n\n"), got)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, maxInFlight, 3)
}

func TestSummarizeAppliesCallTimeout(t *testing.T) {
	gen := &fakeGenerator{fn: func(ctx context.Context, _ string, _ int) (string, error) {
		if _, ok := ctx.Deadline(); !ok {
			return "", errors.New("no deadline")
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "too slow", nil
		}
	}}
	s := newTestSummarizer(gen, Options{CallTimeout: 10 * time.Millisecond})

	assert.Equal(t, msgNoSummaries, s.Summarize(context.Background(), "Hangs forever."))
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "a b", truncateWords("a b", 2))
	assert.Equal(t, "a b...", truncateWords("a b c", 2))
	assert.Equal(t, "", truncateWords("", 2))
}
