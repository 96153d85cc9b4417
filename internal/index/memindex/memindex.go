package memindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"noteagent/internal/domain/models"
	"noteagent/internal/embedding"
	"noteagent/internal/index"
)

// Index is a brute-force cosine-similarity store. It keeps the whole
// collection in memory behind a RWMutex, so concurrent queries are cheap and
// a rebuild swap is a single pointer assignment under the write lock.
type Index struct {
	mu       sync.RWMutex
	embedder embedding.Embedder
	entries  []models.Entry
}

func New(embedder embedding.Embedder) *Index {
	return &Index{embedder: embedder}
}

func (i *Index) Query(ctx context.Context, text string, k int) ([]models.QueryResult, error) {
	if k < 1 {
		return nil, index.ErrBadK
	}

	vector, err := i.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	i.mu.RLock()
	entries := i.entries
	i.mu.RUnlock()

	if len(entries) == 0 {
		return []models.QueryResult{}, nil
	}

	results := make([]models.QueryResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, models.QueryResult{
			Chunk: e.Chunk,
			Meta:  e.Meta,
			Score: cosine(vector, e.Vector),
		})
	}
	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func (i *Index) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	fresh := make([]models.Entry, len(entries))
	copy(fresh, entries)

	i.mu.Lock()
	i.entries = fresh
	i.mu.Unlock()
	return nil
}

func (i *Index) UpsertAll(ctx context.Context, entries []models.Entry) error {
	i.mu.Lock()
	i.entries = append(i.entries, entries...)
	i.mu.Unlock()
	return nil
}

func (i *Index) Clear(ctx context.Context) error {
	i.mu.Lock()
	i.entries = nil
	i.mu.Unlock()
	return nil
}

func (i *Index) Count(ctx context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries), nil
}

var _ index.Index = (*Index)(nil)

func cosine(a []float32, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
