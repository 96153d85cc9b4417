package googleembedding

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"

	"noteagent/internal/config"
	"noteagent/internal/domain/faults"
	"noteagent/pkg/logging"
)

var dimension = config.EmbeddingOutputDimensionality

// Client wraps the Google embedding model behind the Embedder interface.
type Client struct {
	genAi  *genai.Client
	model  string
	logger *logging.Logger
}

func New(ctx context.Context, apiKey string, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, faults.Configuration(errors.New("missing Google API key"))
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, faults.Embedding(err)
	}
	return &Client{
		genAi:  c,
		model:  modelName,
		logger: logging.NewLogger("google_embedding"),
	}, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := c.doCall(ctx, genai.Text(text))
	if err != nil {
		c.logger.WithTrace(ctx).Error("Embedding call failed", "error", err)
		return nil, faults.Embedding(err)
	}
	if len(result.Embeddings) == 0 {
		return nil, faults.Embedding(errors.New("empty embedding response"))
	}
	return result.Embeddings[0].Values, nil
}

func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.WithTrace(ctx)

	result, err := c.doCall(ctx, toContents(texts))
	if err != nil && isRateLimited(err) {
		log.Warn("Rate limit hit, retrying once", "error", err)
		select {
		case <-ctx.Done():
			return nil, faults.Embedding(ctx.Err())
		case <-time.After(5 * time.Second):
		}
		result, err = c.doCall(ctx, toContents(texts))
	}
	if err != nil {
		log.Error("Batch embedding call failed", "error", err)
		return nil, faults.Embedding(err)
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, e := range result.Embeddings {
		vectors = append(vectors, e.Values)
	}
	if len(vectors) != len(texts) {
		return nil, faults.Embedding(errors.New("embedding count does not match input count"))
	}
	return vectors, nil
}

func (c *Client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}
