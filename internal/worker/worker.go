package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"noteagent/internal/config"
	"noteagent/internal/domain/models"
	"noteagent/internal/kb"
	"noteagent/internal/metrics"
	"noteagent/internal/source"
	"noteagent/pkg/logging"
)

// Worker consumes the reindex channel and rebuilds the knowledge base. One
// worker serves all triggers (startup, file watcher, manual rebuild); the
// channel's buffer of one collapses bursts into a single pending rebuild.
type Worker struct {
	loaders []source.Loader
	kb      *kb.KnowledgeBase
	reindex <-chan struct{}
	logger  *logging.Logger
}

func New(loaders []source.Loader, knowledgeBase *kb.KnowledgeBase, reindex <-chan struct{}) *Worker {
	return &Worker{
		loaders: loaders,
		kb:      knowledgeBase,
		reindex: reindex,
		logger:  logging.NewLogger("RebuildWorker"),
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Rebuild worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Rebuild worker stopped")
			return
		case <-w.reindex:
			w.rebuild(ctx)
		}
	}
}

func (w *Worker) rebuild(ctx context.Context) {
	ctx = context.WithValue(ctx, config.TRACE_ID_KEY, uuid.NewString())
	ctx, cancel := context.WithTimeout(ctx, config.RebuildTimeout)
	defer cancel()

	log := w.logger.WithTrace(ctx)
	start := time.Now()

	var docs []models.Document
	loaded := 0
	for _, loader := range w.loaders {
		batch, err := loader.Load(ctx)
		if err != nil {
			// one unreachable source must not block the others
			log.Error("Source failed to load", "source", loader.Name(), "error", err)
			continue
		}
		docs = append(docs, batch...)
		loaded++
	}
	if loaded == 0 && len(w.loaders) > 0 {
		log.Error("All sources failed, keeping current index")
		metrics.CountRebuild("failure")
		return
	}

	report, err := w.kb.Rebuild(ctx, docs)
	if err != nil {
		log.Error("Rebuild failed, previous index stays live", "error", err)
		metrics.CountRebuild("failure")
		return
	}

	metrics.CountRebuild("success")
	log.Info("Rebuild complete",
		"documents", report.Documents,
		"duplicates", report.Duplicates,
		"chunks", report.Chunks,
		"elapsed", time.Since(start))
}
