package chunker

import (
	"strings"
	"testing"

	"noteagent/internal/domain/models"
)

func TestSplitShortDocumentSingleChunk(t *testing.T) {
	c := New(1000, 200)
	doc := models.Document{ID: "d1", Content: "a short note"}

	chunks := c.Split(doc)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != doc.Content {
		t.Errorf("chunk text = %q, want whole document", chunks[0].Text)
	}
	if chunks[0].ParentID != "d1" || chunks[0].Position != 0 {
		t.Errorf("chunk identity wrong: %+v", chunks[0])
	}
}

func TestSplitWindowsAndOverlap(t *testing.T) {
	c := New(30, 10)
	doc := models.Document{ID: "d2", Content: strings.Repeat("abcdefghij", 10)} //100 runes

	chunks := c.Split(doc)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Position != i {
			t.Errorf("chunk %d has position %d", i, ch.Position)
		}
		if len([]rune(ch.Text)) > 30 {
			t.Errorf("chunk %d longer than window: %d runes", i, len([]rune(ch.Text)))
		}
	}
	// Each window starts 20 runes after the previous one, so the last 10
	// runes of chunk N are the first 10 of chunk N+1.
	first := []rune(chunks[0].Text)
	second := []rune(chunks[1].Text)
	if string(first[len(first)-10:]) != string(second[:10]) {
		t.Errorf("overlap not preserved: %q vs %q", string(first[len(first)-10:]), string(second[:10]))
	}
}

func TestSplitMultibyteContent(t *testing.T) {
	c := New(4, 1)
	doc := models.Document{ID: "d3", Content: "你好世界你好世界"}

	chunks := c.Split(doc)

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Text)
	for i := 1; i < len(chunks); i++ {
		runes := []rune(chunks[i].Text)
		rebuilt.WriteString(string(runes[1:])) //skip the overlapped rune
	}
	if rebuilt.String() != doc.Content {
		t.Errorf("chunks do not reassemble the document: %q", rebuilt.String())
	}
}

func TestNewSanitizesOverlapAgainstSmallSizes(t *testing.T) {
	doc := models.Document{ID: "d5", Content: strings.Repeat("a", 150)}

	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"negative overlap with small size", 100, -1},
		{"overlap exceeding small size", 100, 150},
		{"overlap equal to size", 100, 100},
		{"tiny size", 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.size, tt.overlap)

			chunks := c.Split(doc)

			if len(chunks) == 0 {
				t.Fatal("expected at least one chunk")
			}
			if !strings.HasSuffix(doc.Content, chunks[len(chunks)-1].Text) {
				t.Error("last chunk does not end the document")
			}
			for i, ch := range chunks {
				if ch.Position != i {
					t.Errorf("chunk %d has position %d", i, ch.Position)
				}
				if ch.Text == "" {
					t.Errorf("chunk %d is empty", i)
				}
			}
		})
	}
}

func TestSplitCoversWholeDocument(t *testing.T) {
	c := New(50, 10)
	doc := models.Document{ID: "d4", Content: strings.Repeat("x", 123)}

	chunks := c.Split(doc)

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(doc.Content, last.Text) {
		t.Errorf("last chunk does not end the document")
	}
}
