package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/config"
)

// New builds the Generator selected by cfg.Provider. The credential is checked before
// any client is constructed.
func New(ctx context.Context, cfg config.BackendConfig) (Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	switch config.NormalizeProvider(cfg.Provider) {
	case config.ProviderGemini, "":
		return newGemini(ctx, apiKey)
	case config.ProviderOpenAI:
		return newOpenAI(apiKey, cfg.BaseURL), nil
	case config.ProviderAnthropic:
		return newAnthropic(apiKey, cfg.BaseURL), nil
	case config.ProviderOpenAICompatible:
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return nil, fmt.Errorf("%s: base url is required", config.ProviderOpenAICompatible)
		}
		return newCompatible(apiKey, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
