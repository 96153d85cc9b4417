package adapter

import (
	"noteagent/internal/api"
	"noteagent/internal/domain/models"
)

func ToAskResponse(question string, answer models.Answer) api.AskResponse {
	sources := make([]api.SourceDocument, 0, len(answer.Sources))
	for _, s := range answer.Sources {
		sources = append(sources, api.SourceDocument{
			Title:   s.Title,
			URL:     s.URL,
			Snippet: s.Snippet,
		})
	}
	return api.AskResponse{
		Question: question,
		Answer:   answer.Text,
		Sources:  sources,
	}
}

func ToErrorResponse(code int, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}
