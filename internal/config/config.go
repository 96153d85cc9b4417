package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//pipeline constants - these are behavioral, not tuning knobs
	ChunkSize    = 1000 //runes per window
	ChunkOverlap = 200  //runes carried across window boundaries
	TopK         = 3    //retrieved chunks per question
	SnippetCap   = 200  //runes per source snippet
	ExcerptCap   = 800  //runes per fallback excerpt
	Ellipsis     = "..."

	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingBatchSize                  = 100
	IndexCollectionName                 = "note-knowledge"

	//fixed user-visible strings; tests assert on these verbatim
	NoInformationMessage = "No relevant information was found in the knowledge base."
	NoModelNotice        = "Relevant documents were found, but no language model is available. Showing the retrieved content:"
	ExcerptLabelFormat   = "Document %d:"
	ExcerptSeparator     = "\n\n---\n\n"
	TitlePlaceholder     = "Untitled"
	DiagnosticsHeader    = "Service degraded:"

	//origin reference namespaces
	NoteOriginScheme = "trilium"
	FileOriginScheme = "file"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//per-request budgets; the generator gets its own slice so a hung model
	//still leaves time to send the excerpt fallback
	RequestTimeout    = 45 * time.Second
	GenerationTimeout = 30 * time.Second
	EmbeddingTimeout  = 15 * time.Second
	IndexQueryTimeout = 10 * time.Second
	RebuildTimeout    = 10 * time.Minute

	//vectorDB
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//notes connector
	ConnectorRequestTimeout = 15 * time.Second
	TraverseDepth           = 3
	TraverseLimit           = 50

	//watcher
	WatchDebounce = 2 * time.Second

	//answer cache
	AnswerCacheTTL = 24 * time.Hour

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
)
