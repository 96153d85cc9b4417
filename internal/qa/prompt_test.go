package qa

import (
	"strings"
	"testing"

	"noteagent/internal/domain/models"
)

func TestBuildPrompt(t *testing.T) {
	results := []models.QueryResult{
		{Chunk: models.Chunk{Text: "first chunk"}},
		{Chunk: models.Chunk{Text: "second chunk"}},
	}

	prompt := BuildPrompt("where is it?", results)

	if !strings.Contains(prompt, "Question: where is it?") {
		t.Error("prompt is missing the verbatim question")
	}
	if !strings.Contains(prompt, "first chunk\n\nsecond chunk") {
		t.Error("chunks must be joined in retrieval order")
	}
	first := strings.Index(prompt, "first chunk")
	second := strings.Index(prompt, "second chunk")
	if first < 0 || second < 0 || first > second {
		t.Error("retrieval order was not preserved")
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Error("prompt must end with the answer cue")
	}
}

func TestBuildPrompt_NoResults(t *testing.T) {
	prompt := BuildPrompt("q", nil)
	if !strings.Contains(prompt, "Question: q") {
		t.Error("question missing from prompt")
	}
}
