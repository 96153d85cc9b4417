package qa

import (
	"context"
	"errors"
	"strings"
	"time"

	"noteagent/internal/cache"
	"noteagent/internal/diag"
	"noteagent/internal/domain/models"
	"noteagent/internal/index"
	"noteagent/internal/llm"
	"noteagent/internal/metrics"
	"noteagent/pkg/logging"
)

// ErrEmptyQuestion is the only hard failure Ask returns. Everything else
// degrades into a best-effort answer.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Service answers questions over the indexed note collection. A missing
// index or generator does not make construction fail; it moves answers down
// the degradation ladder instead.
type Service interface {
	Ask(ctx context.Context, question string) (models.Answer, error)
	Status(ctx context.Context) Status
}

type Status struct {
	Ready  bool     `json:"ready"`
	Errors []string `json:"errors"`
}

type service struct {
	index       index.Index  //nil when the vector store could not be brought up
	generator   llm.Provider //nil when no language model is available
	answers     cache.AnswerCache
	diags       *diag.Collector
	noteBaseURL string
	logger      *logging.Logger
}

// NewService wires the pipeline. index and generator may be nil; answers and
// diags must not be.
func NewService(idx index.Index, generator llm.Provider, answers cache.AnswerCache, diags *diag.Collector, noteBaseURL string) Service {
	return &service{
		index:       idx,
		generator:   generator,
		answers:     answers,
		diags:       diags,
		noteBaseURL: noteBaseURL,
		logger:      logging.NewLogger("QA Service"),
	}
}

// Ask walks the ladder: no index → fixed no-information answer; index but no
// usable generator → labeled excerpts; otherwise retrieve, prompt, generate,
// post-process. The ladder is evaluated fresh on every call; a generator
// failure only degrades this one request.
func (s *service) Ask(ctx context.Context, question string) (models.Answer, error) {
	log := s.logger.WithTrace(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return models.Answer{}, ErrEmptyQuestion
	}

	if answer, ok := s.answers.Get(ctx, question); ok {
		log.Debug("Answer cache hit")
		return answer, nil
	}

	start := time.Now()

	if s.index == nil {
		metrics.CaptureAskMetrics("no_index", time.Since(start))
		return s.noInformation(), nil
	}

	results, err := s.retrieveStep(ctx, question)
	if err != nil {
		log.Error("Retrieval failed, answering without the index", "error", err)
		metrics.CaptureAskMetrics("no_index", time.Since(start))
		return s.noInformation(), nil
	}
	if len(results) == 0 {
		metrics.CaptureAskMetrics("no_results", time.Since(start))
		return s.noInformation(), nil
	}

	sources := BuildSources(results, s.noteBaseURL)

	if s.generator == nil {
		metrics.CaptureAskMetrics("index_only", time.Since(start))
		return s.excerptAnswer(results, sources), nil
	}

	text, err := s.generateStep(ctx, question, results)
	if err != nil {
		log.Error("Generation failed, falling back to excerpts", "error", err)
		metrics.CaptureAskMetrics("index_only", time.Since(start))
		return s.excerptAnswer(results, sources), nil
	}

	answer := models.Answer{Text: text, Sources: sources}
	s.cacheStep(ctx, question, answer)

	metrics.CaptureAskMetrics("full", time.Since(start))
	return answer, nil
}

// Status reports whether the full pipeline is up, plus every fault collected
// while bringing capabilities online.
func (s *service) Status(ctx context.Context) Status {
	return Status{
		Ready:  s.index != nil && s.generator != nil,
		Errors: s.diags.Messages(),
	}
}
