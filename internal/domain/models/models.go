package models

// Document is one unit of text pulled from an external source (a note or a
// local file). Immutable once loaded for a given rebuild cycle.
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	OriginRef string `json:"origin_ref"` //namespaced, e.g. "trilium:abc123" or "file:docs/a.pdf"
}

// Chunk is a bounded span of a document's text, the retrieval unit.
// Position disambiguates multiple chunks of one document.
type Chunk struct {
	ParentID string `json:"parent_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// Metadata is carried with every index entry so sources can be attributed
// without re-fetching the document.
type Metadata struct {
	Title     string `json:"title"`
	OriginRef string `json:"origin_ref"`
	SourceTag string `json:"source_tag"`
}

// Entry is what the vector index stores.
type Entry struct {
	Vector []float32
	Chunk  Chunk
	Meta   Metadata
}

// QueryResult is a retrieved chunk with its similarity score.
// Higher is better; ties are broken by insertion order.
type QueryResult struct {
	Chunk Chunk
	Meta  Metadata
	Score float32
}

// Source is a human-readable citation for one retrieved chunk.
// URL is empty when no deep link can be built for the origin.
type Source struct {
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	Snippet   string `json:"snippet"`
	OriginRef string `json:"origin_ref"`
}

type Answer struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}
