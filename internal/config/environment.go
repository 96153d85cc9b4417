package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"noteagent/internal/domain/faults"
)

// Environment holds everything read from the process environment. Pipeline
// invariants stay in the const block; only deployment-specific values live
// here.
type Environment struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8000"`
	AuthToken  string `envconfig:"AUTH_TOKEN"`

	TriliumBaseURL string   `envconfig:"TRILIUM_BASE_URL"`
	TriliumToken   string   `envconfig:"TRILIUM_TOKEN"`
	TriliumDataDir string   `envconfig:"TRILIUM_DATA_DIR" default:"./data/trilium"`
	NoteIDs        []string `envconfig:"NOTE_IDS" default:"root"`

	DocsDir string `envconfig:"DOCS_DIR"`

	QdrantHost string `envconfig:"QDRANT_HOST"`
	QdrantPort int    `envconfig:"QDRANT_PORT" default:"6334"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	GoogleAPIKey   string `envconfig:"GOOGLE_API_KEY"`
	GeminiModel    string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite-preview-09-2025"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" default:"gemini-embedding-001"`
}

// Load reads .env (if present) and the environment. A malformed environment
// is the one startup failure that cannot be degraded around.
func Load() (Environment, error) {
	_ = godotenv.Load()

	var env Environment
	if err := envconfig.Process("", &env); err != nil {
		return Environment{}, faults.Configuration(err)
	}
	env.TriliumBaseURL = strings.TrimRight(env.TriliumBaseURL, "/")
	return env, nil
}
