package qa

import (
	"strings"

	"noteagent/internal/config"
	"noteagent/internal/domain/models"
)

// BuildSources maps retrieved chunks back to citable sources. A deep link is
// built only for note origins and only when a base URL is configured.
func BuildSources(results []models.QueryResult, noteBaseURL string) []models.Source {
	sources := make([]models.Source, 0, len(results))
	for _, r := range results {
		title := strings.TrimSpace(r.Meta.Title)
		if title == "" {
			title = config.TitlePlaceholder
		}

		url := ""
		if noteID, ok := strings.CutPrefix(r.Meta.OriginRef, config.NoteOriginScheme+":"); ok && noteID != "" && noteBaseURL != "" {
			url = strings.TrimRight(noteBaseURL, "/") + "/#root?noteId=" + noteID
		}

		sources = append(sources, models.Source{
			Title:     title,
			URL:       url,
			Snippet:   Truncate(r.Chunk.Text, config.SnippetCap),
			OriginRef: r.Meta.OriginRef,
		})
	}
	return sources
}

// Truncate caps text at max runes, marking the cut with the ellipsis marker.
// Text at or under the cap is returned unchanged.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + config.Ellipsis
}
