package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/quotedeck/quotedeck/internal/llm"
)

// Client generates text via the Gemini API. It rotates through the
// supplied API keys when one is rate limited or out of quota.
type Client struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
}

func NewClient(apiKeys []string, model string) (*Client, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one gemini api key is required")
	}
	return &Client{apiKeys: apiKeys, model: model}, nil
}

// Generate sends the prompt and returns the response text. Quota errors
// rotate to the next key; with all keys exhausted the error is transient
// so the stage retry policy may try again later.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		key := c.nextKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				lastErr = err
				c.rotateKey()
				continue
			}
			return "", fmt.Errorf("generate content: %w: %v", llm.ErrTransient, err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			if text.Len() > 0 {
				return text.String(), nil
			}
		}

		return "", fmt.Errorf("empty gemini response: %w", llm.ErrTransient)
	}

	return "", fmt.Errorf("all api keys exhausted: %w: %v", llm.ErrTransient, lastErr)
}

func (c *Client) nextKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKeys[c.currentKey]
}

func (c *Client) rotateKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
