package transcript

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

const autoVTT = `WEBVTT
Kind: captions
Language: en

NOTE this block
is ignored

1
00:00:00.000 --> 00:00:02.000 align:start position:0%
hello<00:00:00.500><c> world</c>

00:00:02.000 --> 00:00:04.000 align:start position:0%
hello world

00:00:04.000 --> 00:00:06.000
second &amp; last
`

// fakeExecutor writes the given subtitle files into the working directory.
type fakeExecutor struct {
	files   map[string]string
	err     error
	gotName string
	gotArgs []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, ".", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(_ context.Context, dir string, name string, args ...string) (string, error) {
	f.gotName, f.gotArgs = name, args
	if f.err != nil {
		return "", f.err
	}
	for file, body := range f.files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(body), 0644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func TestYtDlpFetch(t *testing.T) {
	exec := &fakeExecutor{files: map[string]string{
		"dQw4w9WgXcQ.hi.vtt": "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nnamaste\n",
		"dQw4w9WgXcQ.en.vtt": autoVTT,
	}}
	f := NewYtDlp(exec, "", t.TempDir(), 0, logger.NewNop())

	tr, ok := f.Fetch(context.Background(), "dQw4w9WgXcQ", []string{"en", "hi"})
	require.True(t, ok)
	assert.Equal(t, "en", tr.Language)
	assert.Equal(t, "hello world second & last", tr.Text)

	assert.Equal(t, "yt-dlp", exec.gotName)
	assert.Contains(t, exec.gotArgs, "en,hi")
	assert.Contains(t, exec.gotArgs, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
}

func TestYtDlpFetchPreferenceOrder(t *testing.T) {
	exec := &fakeExecutor{files: map[string]string{
		"dQw4w9WgXcQ.hi.vtt": "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nnamaste\n",
	}}
	f := NewYtDlp(exec, "/opt/yt-dlp", t.TempDir(), 0, logger.NewNop())

	tr, ok := f.Fetch(context.Background(), "dQw4w9WgXcQ", []string{"en", "hi"})
	require.True(t, ok)
	assert.Equal(t, Transcript{Text: "namaste", Language: "hi"}, tr)
	assert.Equal(t, "/opt/yt-dlp", exec.gotName)
}

func TestYtDlpFetchFailures(t *testing.T) {
	tests := []struct {
		name  string
		exec  *fakeExecutor
		langs []string
	}{
		{"command fails", &fakeExecutor{err: errors.New("exit status 1")}, []string{"en"}},
		{"no files written", &fakeExecutor{}, []string{"en"}},
		{"no languages", &fakeExecutor{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewYtDlp(tt.exec, "", t.TempDir(), 0, logger.NewNop())
			_, ok := f.Fetch(context.Background(), "dQw4w9WgXcQ", tt.langs)
			assert.False(t, ok)
		})
	}
}

func TestParseVTT(t *testing.T) {
	got, err := parseVTT(bufio.NewScanner(strings.NewReader(autoVTT)))
	require.NoError(t, err)
	assert.Equal(t, "hello world second & last", got)
}

func TestParseVTTKeepsNumericCueText(t *testing.T) {
	const vtt = `WEBVTT

1
00:00:00.000 --> 00:00:01.000
The year was

2
00:00:01.000 --> 00:00:02.000
1969

intro-cue
00:00:02.000 --> 00:00:03.000
when it landed
3
`
	got, err := parseVTT(bufio.NewScanner(strings.NewReader(vtt)))
	require.NoError(t, err)
	assert.Equal(t, "The year was 1969 when it landed 3", got)
}
