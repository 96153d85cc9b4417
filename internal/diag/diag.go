package diag

import (
	"strings"
	"sync"

	"noteagent/internal/config"
)

// Entry is one non-fatal fault recorded while bringing a capability up.
type Entry struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Collector accumulates faults so degraded answers can explain themselves.
// Append-only for the lifetime of a service instance; safe for concurrent
// use. It never raises.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Add(stage string, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Stage: stage, Message: message})
}

func (c *Collector) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) == 0
}

// Entries returns a copy; callers must not observe later appends.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Messages renders each entry as "stage: message" for the status endpoint.
func (c *Collector) Messages() []string {
	entries := c.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Stage+": "+e.Message)
	}
	return out
}

// Block renders the human-readable prefix placed before degraded answers.
// Empty string when nothing was collected.
func (c *Collector) Block() string {
	entries := c.Entries()
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(config.DiagnosticsHeader)
	for _, e := range entries {
		b.WriteString("\n- ")
		b.WriteString(e.Stage)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	b.WriteString("\n\n")
	return b.String()
}
