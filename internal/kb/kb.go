package kb

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"noteagent/internal/chunker"
	"noteagent/internal/config"
	"noteagent/internal/domain/faults"
	"noteagent/internal/domain/models"
	"noteagent/internal/embedding"
	"noteagent/internal/index"
	"noteagent/internal/metrics"
	"noteagent/pkg/logging"
)

// KnowledgeBase turns documents into index entries. Rebuilds are serialized:
// at most one in flight, while queries keep running against the previous
// collection until the index swaps.
type KnowledgeBase struct {
	chunker  *chunker.Chunker
	embedder embedding.Embedder
	index    index.Index
	logger   *logging.Logger

	rebuildMu sync.Mutex
}

type Report struct {
	Documents  int
	Duplicates int
	Chunks     int
}

func New(ch *chunker.Chunker, embedder embedding.Embedder, idx index.Index) *KnowledgeBase {
	return &KnowledgeBase{
		chunker:  ch,
		embedder: embedder,
		index:    idx,
		logger:   logging.NewLogger("KnowledgeBase"),
	}
}

// Rebuild replaces the whole collection from the given documents. Ingesting
// the same set twice produces the same entry count and the same retrieval
// results. Duplicate document ids within one call are dropped at this
// boundary, first occurrence wins.
func (kb *KnowledgeBase) Rebuild(ctx context.Context, docs []models.Document) (Report, error) {
	kb.rebuildMu.Lock()
	defer kb.rebuildMu.Unlock()

	if kb.index == nil {
		return Report{}, faults.Index(errors.New("no index configured"))
	}
	if kb.embedder == nil {
		return Report{}, faults.Embedding(errors.New("no embedder configured"))
	}

	log := kb.logger.WithTrace(ctx)
	start := time.Now()

	docs, duplicates := dedupe(docs)
	entries := kb.chunkAll(docs)

	if err := kb.embedAll(ctx, entries); err != nil {
		return Report{}, err
	}
	if err := kb.index.ReplaceAll(ctx, entries); err != nil {
		return Report{}, err
	}

	metrics.SetIndexEntries(len(entries))
	log.Info("Rebuild finished",
		"documents", len(docs),
		"duplicates", duplicates,
		"entries", len(entries),
		"elapsed", time.Since(start))

	return Report{
		Documents:  len(docs),
		Duplicates: duplicates,
		Chunks:     len(entries),
	}, nil
}

func dedupe(docs []models.Document) ([]models.Document, int) {
	seen := make(map[string]bool, len(docs))
	out := docs[:0:0]
	for _, doc := range docs {
		if seen[doc.ID] {
			continue
		}
		seen[doc.ID] = true
		out = append(out, doc)
	}
	return out, len(docs) - len(out)
}

func (kb *KnowledgeBase) chunkAll(docs []models.Document) []models.Entry {
	var entries []models.Entry
	for _, doc := range docs {
		meta := models.Metadata{
			Title:     doc.Title,
			OriginRef: doc.OriginRef,
			SourceTag: sourceTag(doc.OriginRef),
		}
		for _, chunk := range kb.chunker.Split(doc) {
			entries = append(entries, models.Entry{Chunk: chunk, Meta: meta})
		}
	}
	return entries
}

func (kb *KnowledgeBase) embedAll(ctx context.Context, entries []models.Entry) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	for batchStart := 0; batchStart < len(entries); batchStart += config.EmbeddingBatchSize {
		end := batchStart + config.EmbeddingBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[batchStart:end]

		texts := make([]string, len(batch))
		for n, e := range batch {
			texts[n] = e.Chunk.Text
		}

		vectors, err := kb.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(batch) {
			return faults.Embedding(errors.New("vector count does not match batch size"))
		}
		for n := range batch {
			batch[n].Vector = vectors[n]
		}
	}
	return nil
}

func sourceTag(originRef string) string {
	if scheme, _, ok := strings.Cut(originRef, ":"); ok {
		return scheme
	}
	return ""
}
