package memindex

import (
	"context"
	"errors"
	"testing"

	"noteagent/internal/domain/models"
	"noteagent/internal/index"
)

// vectorEmbedder maps known texts to fixed vectors so similarity is
// predictable.
type vectorEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (e *vectorEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (e *vectorEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func entry(text string, vector []float32) models.Entry {
	return models.Entry{
		Vector: vector,
		Chunk:  models.Chunk{ParentID: text, Text: text},
		Meta:   models.Metadata{Title: text, OriginRef: "trilium:" + text},
	}
}

func TestQuery_OrdersByScore(t *testing.T) {
	idx := New(&vectorEmbedder{})
	entries := []models.Entry{
		entry("far", []float32{0, 1, 0}),
		entry("near", []float32{1, 0, 0}),
		entry("middle", []float32{1, 1, 0}),
	}
	if err := idx.ReplaceAll(context.Background(), entries); err != nil {
		t.Fatalf("replace: %v", err)
	}

	results, err := idx.Query(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []string{"near", "middle", "far"}
	for i, w := range want {
		if results[i].Chunk.Text != w {
			t.Errorf("position %d: got %q, want %q", i, results[i].Chunk.Text, w)
		}
	}
	if results[0].Score < results[1].Score || results[1].Score < results[2].Score {
		t.Error("scores must be non-increasing")
	}
}

func TestQuery_TiesKeepInsertionOrder(t *testing.T) {
	idx := New(&vectorEmbedder{})
	same := []float32{1, 0, 0}
	entries := []models.Entry{
		entry("first", same),
		entry("second", same),
		entry("third", same),
	}
	if err := idx.ReplaceAll(context.Background(), entries); err != nil {
		t.Fatalf("replace: %v", err)
	}

	results, err := idx.Query(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if results[i].Chunk.Text != w {
			t.Errorf("position %d: got %q, want %q", i, results[i].Chunk.Text, w)
		}
	}
}

func TestQuery_EmptyIndexReturnsEmptySlice(t *testing.T) {
	idx := New(&vectorEmbedder{})

	results, err := idx.Query(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("an empty index must not error: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", results)
	}
}

func TestQuery_BadK(t *testing.T) {
	idx := New(&vectorEmbedder{})
	if _, err := idx.Query(context.Background(), "q", 0); !errors.Is(err, index.ErrBadK) {
		t.Errorf("expected ErrBadK, got %v", err)
	}
}

func TestQuery_KLargerThanIndex(t *testing.T) {
	idx := New(&vectorEmbedder{})
	if err := idx.ReplaceAll(context.Background(), []models.Entry{entry("only", []float32{1, 0, 0})}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	results, err := idx.Query(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestQuery_EmbedderFailure(t *testing.T) {
	idx := New(&vectorEmbedder{err: errors.New("quota exceeded")})
	if _, err := idx.Query(context.Background(), "q", 3); err == nil {
		t.Error("embedder failure must surface")
	}
}

func TestReplaceAll_SwapsWholeCollection(t *testing.T) {
	idx := New(&vectorEmbedder{})
	ctx := context.Background()

	if err := idx.ReplaceAll(ctx, []models.Entry{entry("old", []float32{1, 0, 0})}); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := idx.ReplaceAll(ctx, []models.Entry{entry("new", []float32{1, 0, 0})}); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	results, err := idx.Query(ctx, "q", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 1 || results[0].Chunk.Text != "new" {
		t.Errorf("old entries survived the swap: %#v", results)
	}

	count, err := idx.Count(ctx)
	if err != nil || count != 1 {
		t.Errorf("expected count 1, got %d (%v)", count, err)
	}
}

func TestClear(t *testing.T) {
	idx := New(&vectorEmbedder{})
	ctx := context.Background()

	if err := idx.UpsertAll(ctx, []models.Entry{entry("a", []float32{1, 0, 0})}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := idx.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	count, err := idx.Count(ctx)
	if err != nil || count != 0 {
		t.Errorf("expected empty index after clear, got %d (%v)", count, err)
	}
	results, err := idx.Query(ctx, "q", 3)
	if err != nil || len(results) != 0 {
		t.Errorf("cleared index must answer queries with nothing, got %#v (%v)", results, err)
	}
}
