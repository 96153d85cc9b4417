package api

// AskRequest carries one question about the note collection.
type AskRequest struct {
	Question string `json:"question" validate:"required" example:"Where did I write down the backup procedure?"`
}

type AskResponse struct {
	Question string           `json:"question"`
	Answer   string           `json:"answer"`
	Sources  []SourceDocument `json:"sources"`
}

// SourceDocument names one document an answer drew from.
type SourceDocument struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet"`
}

type StatusResponse struct {
	Ready  bool     `json:"ready"`
	Errors []string `json:"errors"`
}

type RebuildResponse struct {
	Status string `json:"status" example:"rebuild scheduled"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"question must not be empty"`
}
