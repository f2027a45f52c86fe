package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Backend     BackendConfig     `yaml:"backend"`
	Transcript  TranscriptConfig  `yaml:"transcript"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"`
	// AllowedOrigins limits CORS on the JSON API. Empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// BackendConfig selects the generative backend. An empty APIKey means no backend.
type BackendConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type TranscriptConfig struct {
	Source     string        `yaml:"source"`
	Languages  []string      `yaml:"languages"`
	Timeout    time.Duration `yaml:"timeout"`
	YtDlpPath  string        `yaml:"ytdlp_path"`
	WorkingDir string        `yaml:"working_dir"`
}

type SummarizerConfig struct {
	MaxChunkChars int `yaml:"max_chunk_chars"`
	FallbackWords int `yaml:"fallback_words"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	ProviderGemini           = "gemini"
	ProviderOpenAI           = "openai"
	ProviderAnthropic        = "anthropic"
	ProviderOpenAICompatible = "openai-compatible"

	SourceYouTube = "youtube"
	SourceYtDlp   = "ytdlp"
)

func (c *Config) Validate() error {
	c.Backend.Provider = NormalizeProvider(c.Backend.Provider)
	if c.Backend.Provider == "" {
		c.Backend.Provider = ProviderGemini
	}
	switch c.Backend.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenAICompatible:
	default:
		return fmt.Errorf("backend.provider %q is not supported", c.Backend.Provider)
	}
	if c.Backend.Provider == ProviderOpenAICompatible && c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required for %s", ProviderOpenAICompatible)
	}

	c.Transcript.Source = strings.ToLower(strings.TrimSpace(c.Transcript.Source))
	if c.Transcript.Source == "" {
		c.Transcript.Source = SourceYouTube
	}
	if c.Transcript.Source != SourceYouTube && c.Transcript.Source != SourceYtDlp {
		return fmt.Errorf("transcript.source %q is not supported", c.Transcript.Source)
	}

	if c.Summarizer.MaxChunkChars < 0 {
		return fmt.Errorf("summarizer.max_chunk_chars must not be negative")
	}
	if c.Summarizer.FallbackWords < 0 {
		return fmt.Errorf("summarizer.fallback_words must not be negative")
	}

	for _, origin := range c.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("server.allowed_origins: %q must start with http:// or https://", origin)
		}
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	switch c.Server.Mode {
	case "":
		c.Server.Mode = "release"
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Backend.Model == "" {
		c.Backend.Model = defaultModel(c.Backend.Provider)
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 60 * time.Second
	}
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = []string{"en", "hi"}
	}
	if c.Transcript.Timeout == 0 {
		c.Transcript.Timeout = 15 * time.Second
	}
	if c.Transcript.YtDlpPath == "" {
		c.Transcript.YtDlpPath = "yt-dlp"
	}
	if c.Summarizer.MaxChunkChars == 0 {
		c.Summarizer.MaxChunkChars = 3000
	}
	if c.Summarizer.FallbackWords == 0 {
		c.Summarizer.FallbackWords = 200
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	return nil
}

// NormalizeProvider folds spelling variants such as "OpenAI_Compatible" or
// "openai compatible" into the canonical provider names.
func NormalizeProvider(raw string) string {
	p := strings.ToLower(strings.TrimSpace(raw))
	p = strings.ReplaceAll(p, "_", "-")
	p = strings.ReplaceAll(p, " ", "-")
	if p == "openaicompatible" {
		p = ProviderOpenAICompatible
	}
	return p
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI, ProviderOpenAICompatible:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-haiku-4-5-20251001"
	default:
		return "gemini-2.5-flash"
	}
}
