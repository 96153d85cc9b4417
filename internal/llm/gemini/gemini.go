package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"noteagent/internal/domain/faults"
	"noteagent/internal/llm"
	"noteagent/pkg/logging"
)

// Client is the Gemini-backed Provider.
type Client struct {
	client    *genai.Client
	modelName string
	logger    *logging.Logger
}

func New(ctx context.Context, apiKey string, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, faults.Configuration(errors.New("missing Google API key"))
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, faults.Generation(err)
	}
	return &Client{
		client:    c,
		modelName: modelName,
		logger:    logging.NewLogger("llm_gemini"),
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		c.logger.WithTrace(ctx).Error("Generation failed", "error", err)
		return "", faults.Generation(err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", faults.Generation(errors.New("empty completion"))
	}
	return text, nil
}

var _ llm.Provider = (*Client)(nil)
