package transcript

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/config"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

// New builds the Fetcher selected by cfg.Source.
func New(cfg config.TranscriptConfig, exec executor.Executor, log logger.Logger) Fetcher {
	if cfg.Source == config.SourceYtDlp {
		return NewYtDlp(exec, cfg.YtDlpPath, cfg.WorkingDir, cfg.Timeout, log)
	}
	return NewYouTube(log,
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		WithTimeout(cfg.Timeout),
	)
}

// Option customizes the YouTube fetcher.
type Option func(*youtubeFetcher)

// WithHTTPClient sets the HTTP client used for page and caption requests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *youtubeFetcher) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithBaseURL points the fetcher at another YouTube origin.
func WithBaseURL(u string) Option {
	return func(f *youtubeFetcher) {
		f.baseURL = u
	}
}

// WithTimeout bounds a whole Fetch call.
func WithTimeout(d time.Duration) Option {
	return func(f *youtubeFetcher) {
		f.timeout = d
	}
}
