package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// playerResponseMarker marks the start of the player response JSON in watch page HTML.
	playerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageBytes = 6 << 20
	maxCaptionBytes   = 2 << 20
)

var (
	errNoCaptions     = errors.New("no captions in player response")
	errNoMatchingLang = errors.New("no caption track in the requested languages")
)

type youtubeFetcher struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     logger.Logger
}

// NewYouTube creates a Fetcher that reads caption tracks from the watch page.
func NewYouTube(log logger.Logger, opts ...Option) Fetcher {
	f := &youtubeFetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		logger:     log,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.baseURL = strings.TrimRight(f.baseURL, "/")
	return f
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// timedText covers both the legacy <transcript><text> and the srv3 <timedtext><body><p> formats.
type timedText struct {
	Lines []captionLine `xml:"text"`
	Body  struct {
		Paras []captionLine `xml:"p"`
	} `xml:"body"`
}

type captionLine struct {
	Inner string `xml:",innerxml"`
}

// Fetch resolves the caption tracks of videoID and returns the first track available in
// languages, in order. The watch page is tried first; when it fails or only offers tracks
// that need a browser PoToken, the ANDROID player API is asked for its tracks instead.
func (f *youtubeFetcher) Fetch(ctx context.Context, videoID string, languages []string) (Transcript, bool) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	tr, err := f.fetchVia(ctx, f.watchPageTracks, videoID, languages)
	if err == nil {
		f.logger.Info(ctx, "Fetched %s transcript for %s (%d chars)", tr.Language, videoID, len(tr.Text))
		return tr, true
	}
	f.logger.Warn(ctx, "Watch page captions failed for %s, trying player API: %v", videoID, err)

	tr, err = f.fetchVia(ctx, f.playerTracks, videoID, languages)
	if err != nil {
		f.logger.Warn(ctx, "Transcript unavailable for %s: %v", videoID, err)
		return Transcript{}, false
	}

	f.logger.Info(ctx, "Fetched %s transcript for %s via player API (%d chars)", tr.Language, videoID, len(tr.Text))
	return tr, true
}

// fetchVia lists tracks with listTracks, picks one and downloads its text.
func (f *youtubeFetcher) fetchVia(ctx context.Context, listTracks func(context.Context, string) ([]captionTrack, error), videoID string, languages []string) (Transcript, error) {
	tracks, err := listTracks(ctx, videoID)
	if err != nil {
		return Transcript{}, err
	}

	track, ok := pickTrack(tracks, languages)
	if !ok {
		return Transcript{}, fmt.Errorf("%w %v", errNoMatchingLang, languages)
	}

	text, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return Transcript{}, err
	}
	if text == "" {
		return Transcript{}, fmt.Errorf("%s transcript is empty", track.LanguageCode)
	}
	return Transcript{Text: text, Language: track.LanguageCode}, nil
}

// watchPageTracks scrapes the watch page and decodes ytInitialPlayerResponse.
func (f *youtubeFetcher) watchPageTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := f.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	body, err := f.do(req, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	// The decoder stops after the first complete JSON value, ignoring the trailing script.
	var resp playerResponse
	if err := json.NewDecoder(bytes.NewReader(body[idx+len(playerResponseMarker):])).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return resp.tracks()
}

func (r playerResponse) tracks() ([]captionTrack, error) {
	if r.Captions == nil {
		if r.PlayabilityStatus != nil && r.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", errNoCaptions, r.PlayabilityStatus.Reason)
		}
		return nil, errNoCaptions
	}
	tracks := r.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errNoCaptions
	}
	return tracks, nil
}

// fetchTimedText downloads a caption track and joins its lines with single spaces.
func (f *youtubeFetcher) fetchTimedText(ctx context.Context, trackURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	body, err := f.do(req, maxCaptionBytes)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	lines := tt.Lines
	if len(lines) == 0 {
		lines = tt.Body.Paras
	}

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if text := plainText(line.Inner); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

func (f *youtubeFetcher) do(req *http.Request, limit int64) ([]byte, error) {
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// pickTrack returns the first track matching languages in preference order. Within a
// language a manual track wins over an auto-generated one. Tracks that need a browser
// PoToken are skipped.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		var auto *captionTrack
		for i := range tracks {
			t := tracks[i]
			if needsPoToken(t.BaseURL) || !strings.EqualFold(t.LanguageCode, lang) {
				continue
			}
			if t.Kind != "asr" {
				return t, true
			}
			if auto == nil {
				auto = &tracks[i]
			}
		}
		if auto != nil {
			return *auto, true
		}
	}
	return captionTrack{}, false
}

// needsPoToken reports whether a caption track URL can only be fetched by a browser.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}
