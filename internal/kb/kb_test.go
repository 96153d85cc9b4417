package kb

import (
	"context"
	"errors"
	"strings"
	"testing"

	"noteagent/internal/chunker"
	"noteagent/internal/config"
	"noteagent/internal/domain/models"
)

type fakeEmbedder struct {
	batchCalls int
	err        error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type recordingIndex struct {
	replaced [][]models.Entry
	err      error
}

func (r *recordingIndex) Query(ctx context.Context, text string, k int) ([]models.QueryResult, error) {
	return []models.QueryResult{}, nil
}

func (r *recordingIndex) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	if r.err != nil {
		return r.err
	}
	copied := make([]models.Entry, len(entries))
	copy(copied, entries)
	r.replaced = append(r.replaced, copied)
	return nil
}

func (r *recordingIndex) UpsertAll(ctx context.Context, entries []models.Entry) error { return nil }
func (r *recordingIndex) Clear(ctx context.Context) error                             { return nil }
func (r *recordingIndex) Count(ctx context.Context) (int, error)                      { return 0, nil }

func doc(id string, content string) models.Document {
	return models.Document{ID: id, Title: "Title " + id, Content: content, OriginRef: "trilium:" + id}
}

func TestRebuild_DuplicateIDsAreDropped(t *testing.T) {
	idx := &recordingIndex{}
	knowledgeBase := New(chunker.Default(), &fakeEmbedder{}, idx)

	docs := []models.Document{
		doc("a", "first version"),
		doc("b", "other note"),
		doc("a", "second version of the same id"),
	}

	report, err := knowledgeBase.Rebuild(context.Background(), docs)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if report.Documents != 2 {
		t.Errorf("expected 2 documents after dedupe, got %d", report.Documents)
	}
	if report.Duplicates != 1 {
		t.Errorf("expected 1 duplicate, got %d", report.Duplicates)
	}

	// first occurrence wins
	entries := idx.replaced[len(idx.replaced)-1]
	for _, e := range entries {
		if e.Chunk.ParentID == "a" && !strings.Contains(e.Chunk.Text, "first version") {
			t.Errorf("later duplicate replaced the first occurrence: %q", e.Chunk.Text)
		}
	}
}

func TestRebuild_Idempotent(t *testing.T) {
	idx := &recordingIndex{}
	knowledgeBase := New(chunker.Default(), &fakeEmbedder{}, idx)
	docs := []models.Document{doc("a", "alpha"), doc("b", "beta")}
	ctx := context.Background()

	first, err := knowledgeBase.Rebuild(ctx, docs)
	if err != nil {
		t.Fatalf("first rebuild: %v", err)
	}
	second, err := knowledgeBase.Rebuild(ctx, docs)
	if err != nil {
		t.Fatalf("second rebuild: %v", err)
	}

	if first != second {
		t.Errorf("rebuilding the same set must report the same counts: %+v vs %+v", first, second)
	}
	if len(idx.replaced) != 2 {
		t.Fatalf("expected 2 full replacements, got %d", len(idx.replaced))
	}
	if len(idx.replaced[0]) != len(idx.replaced[1]) {
		t.Error("entry counts differ between identical rebuilds")
	}
}

func TestRebuild_ChunkMetadataCarriesOrigin(t *testing.T) {
	idx := &recordingIndex{}
	knowledgeBase := New(chunker.Default(), &fakeEmbedder{}, idx)

	long := strings.Repeat("word ", config.ChunkSize) //forces multiple chunks
	if _, err := knowledgeBase.Rebuild(context.Background(), []models.Document{doc("big", long)}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	entries := idx.replaced[0]
	if len(entries) < 2 {
		t.Fatalf("expected the long document to produce multiple chunks, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Meta.OriginRef != "trilium:big" {
			t.Errorf("entry %d lost its origin: %q", i, e.Meta.OriginRef)
		}
		if e.Meta.SourceTag != "trilium" {
			t.Errorf("entry %d has wrong source tag: %q", i, e.Meta.SourceTag)
		}
		if e.Chunk.Position != i {
			t.Errorf("entry %d has position %d", i, e.Chunk.Position)
		}
		if e.Vector == nil {
			t.Errorf("entry %d was not embedded", i)
		}
	}
}

func TestRebuild_EmbedderFailureLeavesIndexUntouched(t *testing.T) {
	idx := &recordingIndex{}
	knowledgeBase := New(chunker.Default(), &fakeEmbedder{err: errors.New("quota")}, idx)

	_, err := knowledgeBase.Rebuild(context.Background(), []models.Document{doc("a", "alpha")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(idx.replaced) != 0 {
		t.Error("a failed rebuild must not touch the index")
	}
}

func TestRebuild_EmptySetClearsIndex(t *testing.T) {
	idx := &recordingIndex{}
	knowledgeBase := New(chunker.Default(), &fakeEmbedder{}, idx)

	report, err := knowledgeBase.Rebuild(context.Background(), nil)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if report.Chunks != 0 || report.Documents != 0 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(idx.replaced) != 1 || len(idx.replaced[0]) != 0 {
		t.Error("an empty source set must still replace the collection")
	}
}

func TestRebuild_NoIndexConfigured(t *testing.T) {
	knowledgeBase := New(chunker.Default(), &fakeEmbedder{}, nil)
	if _, err := knowledgeBase.Rebuild(context.Background(), nil); err == nil {
		t.Error("expected an error without an index")
	}
}
