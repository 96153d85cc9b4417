// @title           Note Knowledge API
// @version         1.0
// @description     Question answering over a private note collection with retrieval-augmented generation.
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"noteagent/internal/cache"
	"noteagent/internal/chunker"
	"noteagent/internal/config"
	"noteagent/internal/diag"
	"noteagent/internal/embedding"
	"noteagent/internal/embedding/googleembedding"
	"noteagent/internal/handlers"
	"noteagent/internal/index"
	"noteagent/internal/index/memindex"
	"noteagent/internal/index/qdrantindex"
	"noteagent/internal/kb"
	"noteagent/internal/llm"
	"noteagent/internal/llm/gemini"
	"noteagent/internal/middleware"
	"noteagent/internal/qa"
	"noteagent/internal/server"
	"noteagent/internal/source"
	"noteagent/internal/source/localdocs"
	"noteagent/internal/source/trilium"
	"noteagent/internal/watcher"
	"noteagent/internal/worker"
	"noteagent/pkg/logging"
)

func main() {
	logging.Init()
	logger := logging.NewLogger("main")

	env, err := config.Load()
	if err != nil {
		logger.Error("Configuration is unusable, cannot start", "error", err)
		os.Exit(1)
	}

	var listenAddr string
	flag.StringVar(&listenAddr, "listen-addr", env.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	// every capability that fails to come up is recorded instead of aborting;
	// the service starts degraded and says so
	diags := diag.New()

	var embedder embedding.Embedder
	if googleEmbedder, err := googleembedding.New(serviceContext, env.GoogleAPIKey, env.EmbeddingModel); err != nil {
		logger.Error("Embedding service unavailable", "error", err)
		diags.Add("embedding", err.Error())
	} else {
		embedder = googleEmbedder
	}

	var vectorIndex index.Index
	if embedder != nil {
		if env.QdrantHost != "" {
			if qdrantIndex, err := qdrantindex.New(serviceContext, env.QdrantHost, env.QdrantPort, embedder); err != nil {
				logger.Error("Qdrant unavailable, falling back to in-memory index", "error", err)
				diags.Add("index", err.Error())
				vectorIndex = memindex.New(embedder)
			} else {
				vectorIndex = qdrantIndex
			}
		} else {
			logger.Info("No Qdrant host configured, using in-memory index")
			vectorIndex = memindex.New(embedder)
		}
	} else {
		diags.Add("index", "no embedder, index disabled")
	}

	var generator llm.Provider
	if geminiClient, err := gemini.New(serviceContext, env.GoogleAPIKey, env.GeminiModel); err != nil {
		logger.Error("Language model unavailable, answers degrade to excerpts", "error", err)
		diags.Add("generation", err.Error())
	} else {
		generator = geminiClient
	}

	var answers cache.AnswerCache
	if env.RedisAddr != "" {
		if redisCache, err := cache.NewRedisCache(serviceContext, env.RedisAddr); err != nil {
			logger.Error("Redis unavailable, using in-memory answer cache", "error", err)
			answers = cache.NewMemoryCache()
		} else {
			answers = redisCache
		}
	} else {
		answers = cache.NewMemoryCache()
	}

	var loaders []source.Loader
	if triliumClient, err := trilium.New(env.TriliumBaseURL, env.TriliumToken, env.NoteIDs); err != nil {
		logger.Error("Trilium connector not configured", "error", err)
		diags.Add("connector", err.Error())
	} else {
		if err := triliumClient.Ping(serviceContext); err != nil {
			logger.Error("Trilium server unreachable", "error", err)
			diags.Add("connector", err.Error())
		}
		loaders = append(loaders, triliumClient)
	}
	if env.DocsDir != "" {
		loaders = append(loaders, localdocs.New(env.DocsDir))
	}

	// nil until the pipeline comes up; the rebuild endpoint reports
	// unavailability instead of scheduling into the void
	var reindex chan struct{}

	if vectorIndex != nil && len(loaders) > 0 {
		// buffer of one: a trigger during a rebuild leaves exactly one more pending
		reindex = make(chan struct{}, 1)
		knowledgeBase := kb.New(chunker.Default(), embedder, vectorIndex)
		go worker.New(loaders, knowledgeBase, reindex).Run(serviceContext)
		reindex <- struct{}{}

		if fileWatcher, err := watcher.New(env.TriliumDataDir, reindex); err != nil {
			logger.Warn("File watcher disabled", "dir", env.TriliumDataDir, "error", err)
		} else {
			go fileWatcher.Run(serviceContext)
		}
	} else {
		logger.Warn("No index or no sources, skipping ingestion pipeline")
		diags.Add("ingestion", "no index or no sources, rebuilds disabled")
	}

	qaService := qa.NewService(vectorIndex, generator, answers, diags, env.TriliumBaseURL)

	handler := handlers.NewHandler(qaService, reindex)
	mw := middleware.New(env.AuthToken)
	srv := server.New(listenAddr, handler, mw)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	go srv.ShutDownHandler(server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	})
	go srv.Run()

	<-stopExecution
	logger.Info("Server stopped")
}
