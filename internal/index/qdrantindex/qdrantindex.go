package qdrantindex

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"noteagent/internal/config"
	"noteagent/internal/domain/faults"
	"noteagent/internal/domain/models"
	"noteagent/internal/embedding"
	"noteagent/internal/index"
	"noteagent/pkg/logging"
)

var dimension = uint64(config.EmbeddingOutputDimensionality)

// Index stores entries in Qdrant. The collection the service queries is an
// alias; a rebuild uploads into a brand-new collection and repoints the
// alias, so concurrent queries never observe the empty-read window of a
// clear-then-upsert rebuild.
type Index struct {
	client   *qdrant.Client
	embedder embedding.Embedder
	alias    string
	logger   *logging.Logger

	mu      sync.Mutex //guards current during swaps
	current string
}

func New(ctx context.Context, host string, port int, embedder embedding.Embedder) (*Index, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, faults.Index(err)
	}

	idx := &Index{
		client:   client,
		embedder: embedder,
		alias:    config.IndexCollectionName,
		logger:   logging.NewLogger("qdrant_index"),
	}
	if err := idx.ensureCollection(ctx); err != nil {
		return nil, err
	}
	go idx.closeOnDone(ctx)
	return idx, nil
}

// ensureCollection resolves the alias to its backing collection, creating an
// empty generation when the service starts against a fresh instance.
func (i *Index) ensureCollection(ctx context.Context) error {
	aliases, err := i.client.ListAliases(ctx)
	if err != nil {
		return faults.Index(err)
	}
	for _, a := range aliases {
		if a.GetAliasName() == i.alias {
			i.current = a.GetCollectionName()
			return nil
		}
	}

	name := i.generationName()
	if err := i.createCollection(ctx, name); err != nil {
		return err
	}
	if err := i.client.CreateAlias(ctx, i.alias, name); err != nil {
		return faults.Index(err)
	}
	i.current = name
	return nil
}

func (i *Index) Query(ctx context.Context, text string, k int) ([]models.QueryResult, error) {
	if k < 1 {
		return nil, index.ErrBadK
	}

	vector, err := i.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	hits, err := i.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: i.alias,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		i.logger.WithTrace(ctx).Error("Query failed", "error", err)
		return nil, faults.Index(err)
	}

	results := make([]models.QueryResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.QueryResult{
			Chunk: models.Chunk{
				ParentID: hit.Payload["parent_id"].GetStringValue(),
				Text:     hit.Payload["text"].GetStringValue(),
				Position: int(hit.Payload["position"].GetIntegerValue()),
			},
			Meta: models.Metadata{
				Title:     hit.Payload["title"].GetStringValue(),
				OriginRef: hit.Payload["origin_ref"].GetStringValue(),
				SourceTag: hit.Payload["source_tag"].GetStringValue(),
			},
			Score: hit.Score,
		})
	}
	return results, nil
}

// ReplaceAll builds a shadow collection, fills it, then swaps the alias and
// drops the previous generation.
func (i *Index) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	shadow := i.generationName()
	if err := i.createCollection(ctx, shadow); err != nil {
		return err
	}
	if err := i.upsertInto(ctx, shadow, entries); err != nil {
		// abandon the half-built generation, keep serving the old one
		if delErr := i.client.DeleteCollection(ctx, shadow); delErr != nil {
			i.logger.Error("Could not drop abandoned collection", "collection", shadow, "error", delErr)
		}
		return err
	}

	if err := i.client.DeleteAlias(ctx, i.alias); err != nil {
		i.logger.Warn("Alias delete before swap failed", "error", err)
	}
	if err := i.client.CreateAlias(ctx, i.alias, shadow); err != nil {
		return faults.Index(err)
	}

	old := i.current
	i.current = shadow
	if old != "" && old != shadow {
		if err := i.client.DeleteCollection(ctx, old); err != nil {
			i.logger.Warn("Could not drop previous collection", "collection", old, "error", err)
		}
	}
	i.logger.Info("Collection swapped", "collection", shadow, "entries", len(entries))
	return nil
}

func (i *Index) UpsertAll(ctx context.Context, entries []models.Entry) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.upsertInto(ctx, i.alias, entries)
}

func (i *Index) Clear(ctx context.Context) error {
	// An empty generation swapped in behaves like a cleared collection
	// without ever leaving the alias dangling.
	return i.ReplaceAll(ctx, nil)
}

func (i *Index) Count(ctx context.Context) (int, error) {
	count, err := i.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: i.alias,
	})
	if err != nil {
		return 0, faults.Index(err)
	}
	return int(count), nil
}

func (i *Index) upsertInto(ctx context.Context, collection string, entries []models.Entry) error {
	for start := 0; start < len(entries); start += config.EmbeddingBatchSize {
		end := start + config.EmbeddingBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[start:end]

		points := make([]*qdrant.PointStruct, len(batch))
		for n, e := range batch {
			points[n] = &qdrant.PointStruct{
				Id:      qdrant.NewID(uuid.New().String()),
				Vectors: qdrant.NewVectors(e.Vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"text":       e.Chunk.Text,
					"parent_id":  e.Chunk.ParentID,
					"position":   e.Chunk.Position,
					"title":      e.Meta.Title,
					"origin_ref": e.Meta.OriginRef,
					"source_tag": e.Meta.SourceTag,
				}),
			}
		}

		_, err := i.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: collection,
			Points:         points,
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return faults.Index(fmt.Errorf("upsert batch: %w", err))
		}
	}
	return nil
}

func (i *Index) createCollection(ctx context.Context, name string) error {
	err := i.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return faults.Index(err)
	}
	return nil
}

func (i *Index) generationName() string {
	return fmt.Sprintf("%s-%s", config.IndexCollectionName, uuid.New().String()[:8])
}

func (i *Index) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	i.logger.Info("Shutting down Qdrant client")
	if err := i.client.Close(); err != nil {
		i.logger.Error("Could not close Qdrant client", "error", err)
	}
}

var _ index.Index = (*Index)(nil)
