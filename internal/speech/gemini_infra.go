package speech

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// GeminiClient builds the SDK client on first use, so a missing key shows up
// as a failed request rather than a failed start.
type GeminiClient struct {
	apiKey string

	once   sync.Once
	client *genai.Client
	err    error
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey}
}

func (c *GeminiClient) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	c.once.Do(func() {
		c.client, c.err = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if c.err != nil {
		return nil, fmt.Errorf("init gemini client: %w", c.err)
	}

	return c.client.Models.GenerateContent(ctx, model, contents, config)
}
