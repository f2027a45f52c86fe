package summarizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chunk splits text into sentence-aligned chunks of at most maxChars runes.
// Sentences are joined with a single space. A sentence longer than maxChars is
// emitted as its own oversized chunk.
func Chunk(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}

	var (
		chunks []string
		cur    string
		curLen int
	)
	for _, s := range splitSentences(text) {
		sLen := utf8.RuneCountInString(s)
		if curLen+sLen+1 <= maxChars {
			if cur == "" {
				cur, curLen = s, sLen
			} else {
				cur, curLen = cur+" "+s, curLen+1+sLen
			}
			continue
		}
		if cur != "" {
			chunks = append(chunks, cur)
		}
		cur, curLen = s, sLen
	}
	if cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// splitSentences breaks text after '.', '!' or '?' followed by whitespace. The
// whitespace run is dropped; empty pieces are skipped.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		end := i
		for i < len(text) {
			ws, n := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(ws) {
				break
			}
			i += n
		}
		if i > end {
			if s := text[start:end]; s != "" {
				sentences = append(sentences, s)
			}
			start = i
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
