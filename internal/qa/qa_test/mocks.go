package qa_test

import (
	"context"

	"noteagent/internal/domain/models"
)

// MockIndex implements index.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnQuery      func(ctx context.Context, text string, k int) ([]models.QueryResult, error)
	OnReplaceAll func(ctx context.Context, entries []models.Entry) error
}

func (m *MockIndex) Query(ctx context.Context, text string, k int) ([]models.QueryResult, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, text, k)
	}
	return []models.QueryResult{}, nil
}

func (m *MockIndex) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	if m.OnReplaceAll != nil {
		return m.OnReplaceAll(ctx, entries)
	}
	return nil
}

func (m *MockIndex) UpsertAll(ctx context.Context, entries []models.Entry) error { return nil }

func (m *MockIndex) Clear(ctx context.Context) error { return nil }

func (m *MockIndex) Count(ctx context.Context) (int, error) { return 0, nil }

// MockGenerator implements llm.Provider
type MockGenerator struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
	Prompts    []string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked model response", nil
}

// MockCache implements cache.AnswerCache
type MockCache struct {
	OnGet func(ctx context.Context, question string) (models.Answer, bool)
	OnPut func(ctx context.Context, question string, answer models.Answer) error
}

func (m *MockCache) Get(ctx context.Context, question string) (models.Answer, bool) {
	if m.OnGet != nil {
		return m.OnGet(ctx, question)
	}
	return models.Answer{}, false
}

func (m *MockCache) Put(ctx context.Context, question string, answer models.Answer) error {
	if m.OnPut != nil {
		return m.OnPut(ctx, question, answer)
	}
	return nil
}
