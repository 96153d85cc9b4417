package localdocs

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"noteagent/internal/config"
	"noteagent/internal/domain/faults"
	"noteagent/internal/domain/models"
	"noteagent/internal/metrics"
	"noteagent/internal/source"
	"noteagent/pkg/logging"
)

// Source scans a directory for local documents (pdf, docx, txt, rtf) so they
// can join the knowledge base alongside the notes. Files that cannot be
// extracted are skipped and counted.
type Source struct {
	dir    string
	logger *logging.Logger
}

func New(dir string) *Source {
	return &Source{
		dir:    dir,
		logger: logging.NewLogger("LocalDocs"),
	}
}

func (s *Source) Name() string {
	return "localdocs"
}

func (s *Source) Load(ctx context.Context) ([]models.Document, error) {
	log := s.logger.WithTrace(ctx)

	var docs []models.Document
	skipped := 0

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !supported(path) {
			return nil
		}

		text, err := extractText(path)
		if err != nil {
			log.Warn("Skipping unreadable file", "path", path, "error", err)
			skipped++
			return nil
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}

		rel, relErr := filepath.Rel(s.dir, path)
		if relErr != nil {
			rel = path
		}
		docs = append(docs, models.Document{
			ID:        rel,
			Title:     strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Content:   text,
			OriginRef: config.FileOriginScheme + ":" + rel,
		})
		return nil
	})
	if err != nil {
		return nil, faults.Connector(err)
	}

	metrics.AddSkippedNodes(skipped)
	log.Info("Loaded local documents", "documents", len(docs), "skipped", skipped)
	return docs, nil
}

func supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".odt", ".txt", ".rtf":
		return true
	default:
		return false
	}
}

var _ source.Loader = (*Source)(nil)
