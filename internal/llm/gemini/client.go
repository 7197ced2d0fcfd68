package gemini

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"ecofootprint-backend/internal/llm"
)

const defaultModel = "gemini-2.0-flash"

// Client implements llm.Client using the official Gemini SDK.
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient constructs a Gemini client. The API key is required; the model
// falls back to the default flash model when empty.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{cli: cli, model: model}, nil
}

// GenerateText sends the prompt and returns the first candidate's text.
// Blocked or empty responses surface as llm.ErrBlocked / llm.ErrEmpty so the
// gateway can distinguish them from transport failures.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}
	return candidateText(resp)
}

// candidateText extracts the first candidate's text. Long JSON payloads can
// arrive split across multiple parts, so all parts are concatenated in order.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: %s", llm.ErrBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", llm.ErrEmpty
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}

var _ llm.Client = (*Client)(nil)
