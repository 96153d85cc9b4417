package qa

import (
	"fmt"
	"strings"

	"noteagent/internal/domain/models"
)

// promptTemplate is the single fixed instruction template. Two substitution
// points: the retrieved context and the verbatim question. Per-call
// customization of the instructions is deliberately not supported.
const promptTemplate = `You are answering a question about a private note collection. Use only the context below. If the context does not contain the answer, reply that you do not know instead of inventing one.

Context:
%s

Question: %s

Answer:`

// BuildPrompt concatenates chunk texts in retrieval order under the fixed
// template.
func BuildPrompt(question string, results []models.QueryResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Chunk.Text)
	}
	return fmt.Sprintf(promptTemplate, strings.Join(parts, "\n\n"), question)
}
