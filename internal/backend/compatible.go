package backend

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

// compatibleGenerator talks to any server exposing the OpenAI chat completions API
// (Ollama, vLLM, LM Studio, the Gemini OpenAI endpoint...).
type compatibleGenerator struct {
	client *goopenai.Client
}

func newCompatible(apiKey, baseURL string) Generator {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = normalizeCompatibleBaseURL(baseURL)
	return &compatibleGenerator{client: goopenai.NewClientWithConfig(cfg)}
}

func (g *compatibleGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// normalizeCompatibleBaseURL makes sure the base URL ends in /v1 unless it already
// carries an explicit version path.
func normalizeCompatibleBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return base
	}
	if strings.HasSuffix(base, "/v1") || strings.HasSuffix(base, "/openai") || strings.Contains(base, "/v1beta") {
		return base
	}
	return base + "/v1"
}
