package localdocs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoad_TextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "plain text body")
	writeFile(t, dir, "sub/more.txt", "nested body")
	writeFile(t, dir, "ignored.jpeg", "binary junk")
	writeFile(t, dir, "empty.txt", "   ")

	docs, err := New(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	byID := make(map[string]string)
	for _, d := range docs {
		byID[d.ID] = d.Content
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d (%v)", len(docs), byID)
	}
	if byID["notes.txt"] != "plain text body" {
		t.Errorf("unexpected content %q", byID["notes.txt"])
	}
	if _, ok := byID[filepath.Join("sub", "more.txt")]; !ok {
		t.Error("nested files must be picked up")
	}
}

func TestLoad_OriginAndTitle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "manual.txt", "content")

	docs, err := New(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].OriginRef != "file:manual.txt" {
		t.Errorf("unexpected origin ref %q", docs[0].OriginRef)
	}
	if docs[0].Title != "manual" {
		t.Errorf("title should drop the extension, got %q", docs[0].Title)
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	docs, err := New(t.TempDir()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.pdf", true},
		{"a.PDF", true},
		{"a.docx", true},
		{"a.odt", true},
		{"a.txt", true},
		{"a.rtf", true},
		{"a.jpeg", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := supported(tt.path); got != tt.want {
			t.Errorf("supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
