package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T, dir string, reindex chan struct{}) *Watcher {
	t.Helper()
	w, err := New(dir, reindex)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.debounce = 50 * time.Millisecond
	return w
}

func TestWatcher_BurstOfWritesTriggersOneRebuild(t *testing.T) {
	dir := t.TempDir()
	reindex := make(chan struct{}, 1)
	w := newTestWatcher(t, dir, reindex)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "note.txt")
		if err := os.WriteFile(path, []byte("change"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-reindex:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reindex signal after the burst")
	}

	// the burst was debounced into a single signal
	select {
	case <-reindex:
		t.Error("burst produced more than one reindex signal")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresHiddenAndTempFiles(t *testing.T) {
	dir := t.TempDir()
	reindex := make(chan struct{}, 1)
	w := newTestWatcher(t, dir, reindex)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "swap~"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-reindex:
		t.Error("hidden and temp files must not trigger a rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_PicksUpNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	reindex := make(chan struct{}, 1)
	w := newTestWatcher(t, dir, reindex)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	sub := filepath.Join(dir, "notes")
	if err := os.Mkdir(sub, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// drain the signal for the directory creation itself
	select {
	case <-reindex:
	case <-time.After(2 * time.Second):
		t.Fatal("directory creation was not observed")
	}

	if err := os.WriteFile(filepath.Join(sub, "inner.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-reindex:
	case <-time.After(2 * time.Second):
		t.Fatal("changes inside a new subdirectory were not observed")
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/data/note.txt", true},
		{"/data/.hidden", false},
		{"/data/editor-swap~", false},
		{"/data/sub/doc.pdf", true},
	}
	for _, tt := range tests {
		event := fsnotify.Event{Name: tt.path, Op: fsnotify.Write}
		if got := relevant(event); got != tt.want {
			t.Errorf("relevant(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
