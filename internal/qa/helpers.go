package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"noteagent/internal/config"
	"noteagent/internal/domain/models"
	"noteagent/internal/metrics"
)

func (s *service) retrieveStep(ctx context.Context, question string) ([]models.QueryResult, error) {
	queryCtx, cancel := context.WithTimeout(ctx, config.IndexQueryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.index.Query(queryCtx, question, config.TopK)
}

func (s *service) generateStep(ctx context.Context, question string, results []models.QueryResult) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, config.GenerationTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	raw, err := s.generator.Generate(genCtx, BuildPrompt(question, results))
	if err != nil {
		return "", err
	}
	return PostProcess(raw), nil
}

func (s *service) cacheStep(ctx context.Context, question string, answer models.Answer) {
	// The request may finish before the write does.
	saveCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.answers.Put(saveCtx, question, answer); err != nil {
			s.logger.Error("Failed to cache answer", "error", err)
		}
	}()
}

// noInformation is the terminal rung: nothing to retrieve, nothing to cite.
func (s *service) noInformation() models.Answer {
	return models.Answer{
		Text:    s.diags.Block() + config.NoInformationMessage,
		Sources: []models.Source{},
	}
}

// excerptAnswer serves retrieved content directly when no generator can be
// used, one labeled excerpt per chunk.
func (s *service) excerptAnswer(results []models.QueryResult, sources []models.Source) models.Answer {
	parts := make([]string, 0, len(results))
	for i, r := range results {
		label := fmt.Sprintf(config.ExcerptLabelFormat, i+1)
		parts = append(parts, label+"\n"+Truncate(r.Chunk.Text, config.ExcerptCap))
	}

	text := s.diags.Block() + config.NoModelNotice + "\n\n" + strings.Join(parts, config.ExcerptSeparator)
	return models.Answer{Text: text, Sources: sources}
}
