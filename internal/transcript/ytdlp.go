package transcript

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/videoid"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

type ytdlpFetcher struct {
	executor executor.Executor
	binary   string
	workDir  string
	timeout  time.Duration
	logger   logger.Logger
}

// NewYtDlp creates a Fetcher that downloads subtitles with the yt-dlp binary.
// workDir is the parent of per-request temp dirs; empty means the system temp dir.
func NewYtDlp(exec executor.Executor, binary, workDir string, timeout time.Duration, log logger.Logger) Fetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &ytdlpFetcher{
		executor: exec,
		binary:   binary,
		workDir:  workDir,
		timeout:  timeout,
		logger:   log,
	}
}

// Fetch asks yt-dlp for manual and auto subtitles in all languages, then picks the
// first file that exists in preference order.
func (f *ytdlpFetcher) Fetch(ctx context.Context, videoID string, languages []string) (Transcript, bool) {
	if len(languages) == 0 {
		f.logger.Warn(ctx, "Transcript unavailable for %s: no languages requested", videoID)
		return Transcript{}, false
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp(f.workDir, "subs-*")
	if err != nil {
		f.logger.Error(ctx, "Failed to create subtitle dir: %v", err)
		return Transcript{}, false
	}
	defer os.RemoveAll(dir)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(languages, ","),
		"--sub-format", "vtt",
		"--no-playlist",
		"-o", "%(id)s.%(ext)s",
		videoid.WatchURL(videoID),
	}

	if _, err := f.executor.ExecuteInDir(ctx, dir, f.binary, args...); err != nil {
		f.logger.Warn(ctx, "Transcript unavailable for %s: yt-dlp: %v", videoID, err)
		return Transcript{}, false
	}

	for _, lang := range languages {
		path := filepath.Join(dir, videoID+"."+lang+".vtt")
		text, err := readVTT(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			f.logger.Warn(ctx, "Failed to read %s subtitles for %s: %v", lang, videoID, err)
			continue
		}
		if text == "" {
			continue
		}
		f.logger.Info(ctx, "Fetched %s transcript for %s via yt-dlp (%d chars)", lang, videoID, len(text))
		return Transcript{Text: text, Language: lang}, true
	}

	f.logger.Warn(ctx, "Transcript unavailable for %s: %v %v", videoID, errNoMatchingLang, languages)
	return Transcript{}, false
}

func readVTT(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return parseVTT(bufio.NewScanner(file))
}

// parseVTT extracts cue text from a WebVTT stream. Only lines after a cue timing line
// count as text; headers, cue identifiers and NOTE/STYLE/REGION blocks all sit before
// any timing line in their block. Auto-generated captions repeat each line across
// rolling cues, so consecutive duplicates are collapsed.
func parseVTT(sc *bufio.Scanner) (string, error) {
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var (
		parts []string
		last  string
		inCue bool
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			inCue = false
			continue
		case strings.Contains(line, "-->"):
			inCue = true
			continue
		case !inCue:
			continue
		}

		text := plainText(line)
		if text == "" || text == last {
			continue
		}
		parts = append(parts, text)
		last = text
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scan vtt: %w", err)
	}
	return strings.Join(parts, " "), nil
}
