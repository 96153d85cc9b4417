package embedding

import "context"

// Embedder maps text to fixed-length vectors. Both calls may block on
// external work and must honor the context deadline.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
