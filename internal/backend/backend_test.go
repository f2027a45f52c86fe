package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubesum/internal/config"
)

func TestNewRequiresAPIKey(t *testing.T) {
	for _, provider := range []string{config.ProviderGemini, config.ProviderOpenAI, config.ProviderAnthropic, config.ProviderOpenAICompatible} {
		t.Run(provider, func(t *testing.T) {
			g, err := New(context.Background(), config.BackendConfig{Provider: provider, APIKey: "   "})
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrMissingAPIKey)
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.BackendConfig{Provider: "llama", APIKey: "k"})
	assert.True(t, errors.Is(err, ErrUnknownProvider), "got %v", err)
}

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.BackendConfig
		wantType interface{}
	}{
		{"openai", config.BackendConfig{Provider: "openai", APIKey: "k"}, &openAIGenerator{}},
		{"anthropic", config.BackendConfig{Provider: "Anthropic", APIKey: "k"}, &anthropicGenerator{}},
		{"compatible", config.BackendConfig{Provider: "openai_compatible", APIKey: "k", BaseURL: "http://localhost:11434"}, &compatibleGenerator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(context.Background(), tt.cfg)
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, g)
		})
	}
}

func TestNewCompatibleRequiresBaseURL(t *testing.T) {
	_, err := New(context.Background(), config.BackendConfig{Provider: config.ProviderOpenAICompatible, APIKey: "k"})
	assert.Error(t, err)
}

func TestNormalizeCompatibleBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:8000/v1", "http://localhost:8000/v1"},
		{"https://generativelanguage.googleapis.com/v1beta/openai", "https://generativelanguage.googleapis.com/v1beta/openai"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCompatibleBaseURL(tt.in))
		})
	}
}

func TestCompatibleGenerate(t *testing.T) {
	var gotModel, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		if len(req.Messages) > 0 {
			gotPrompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"# Title\nsummary"}}]}`))
	}))
	defer srv.Close()

	g := newCompatible("k", srv.URL)
	out, err := g.Generate(context.Background(), "summarize this", "llama3")
	require.NoError(t, err)
	assert.Equal(t, "# Title\nsummary", out)
	assert.Equal(t, "llama3", gotModel)
	assert.Equal(t, "summarize this", gotPrompt)
}

func TestCompatibleGenerateEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g := newCompatible("k", srv.URL)
	_, err := g.Generate(context.Background(), "p", "m")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCompatibleGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"auth"}}`))
	}))
	defer srv.Close()

	g := newCompatible("k", srv.URL)
	_, err := g.Generate(context.Background(), "p", "m")
	assert.Error(t, err)
}
