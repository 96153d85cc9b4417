package index

import (
	"context"
	"errors"

	"noteagent/internal/domain/models"
)

// ErrBadK is returned when a query asks for fewer than one result.
var ErrBadK = errors.New("k must be at least 1")

// Index stores (vector, chunk, metadata) entries and answers similarity
// queries over them. Implementations must support concurrent reads.
//
// Rebuilds go through ReplaceAll, which builds the new collection off to the
// side and swaps it in atomically: queries racing a rebuild see either the
// old entries or the new ones, never an empty window. UpsertAll and Clear
// remain available as primitives, but clear-then-upsert is not the rebuild
// path here.
type Index interface {
	// Query embeds text internally and returns the k best entries, best
	// first. An empty index yields an empty slice, not an error.
	Query(ctx context.Context, text string, k int) ([]models.QueryResult, error)

	// ReplaceAll atomically replaces the whole collection.
	ReplaceAll(ctx context.Context, entries []models.Entry) error

	// UpsertAll bulk-inserts entries into the active collection.
	UpsertAll(ctx context.Context, entries []models.Entry) error

	// Clear removes all entries, leaving a fresh queryable collection.
	Clear(ctx context.Context) error

	Count(ctx context.Context) (int, error)
}
