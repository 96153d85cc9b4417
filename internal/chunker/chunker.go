package chunker

import (
	"noteagent/internal/config"
	"noteagent/internal/domain/models"
)

// Chunker splits document text into fixed-size rune windows with a fixed
// overlap so context spanning a window boundary survives in both chunks.
type Chunker struct {
	size    int
	overlap int
}

func New(size int, overlap int) *Chunker {
	if size <= 0 {
		size = config.ChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = config.ChunkOverlap
		if overlap >= size {
			// the default overlap can exceed a small caller-chosen size;
			// keep the step strictly positive
			overlap = size / 5
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

func Default() *Chunker {
	return New(config.ChunkSize, config.ChunkOverlap)
}

// Split cuts the document content into ordered chunks. A document shorter
// than one window yields exactly one chunk equal to the whole document.
func (c *Chunker) Split(doc models.Document) []models.Chunk {
	runes := []rune(doc.Content)
	if len(runes) <= c.size {
		return []models.Chunk{{
			ParentID: doc.ID,
			Text:     doc.Content,
			Position: 0,
		}}
	}

	step := c.size - c.overlap
	var chunks []models.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, models.Chunk{
			ParentID: doc.ID,
			Text:     string(runes[start:end]),
			Position: len(chunks),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}
