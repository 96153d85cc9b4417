package trilium

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"noteagent/internal/config"
	"noteagent/internal/domain/faults"
	"noteagent/internal/domain/models"
	"noteagent/internal/metrics"
	"noteagent/pkg/logging"
)

// Client talks to a Trilium server over ETAPI. Individual note failures are
// skipped and counted; only a completely unreachable server is an error.
type Client struct {
	baseURL string
	token   string
	rootIDs []string
	http    *http.Client
	logger  *logging.Logger
}

type note struct {
	NoteID       string   `json:"noteId"`
	Title        string   `json:"title"`
	ChildNoteIDs []string `json:"childNoteIds"`
}

// NoteRef identifies one note reached by a traversal.
type NoteRef struct {
	ID    string
	Title string
}

func New(baseURL string, token string, rootIDs []string) (*Client, error) {
	if baseURL == "" {
		return nil, faults.Configuration(errors.New("missing Trilium base URL"))
	}
	if len(rootIDs) == 0 {
		rootIDs = []string{"root"}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		rootIDs: rootIDs,
		http: &http.Client{
			Timeout: config.ConnectorRequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		},
		logger: logging.NewLogger("Trilium"),
	}, nil
}

func (c *Client) Name() string {
	return "trilium"
}

// Ping verifies the server answers at all; used for startup diagnostics.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.getNote(ctx, "root")
	return err
}

// Traverse walks the note tree breadth-first from the given roots, at most
// depth levels deep, stopping after limit notes. Unreadable notes are
// skipped and counted, never fatal.
func (c *Client) Traverse(ctx context.Context, rootIDs []string, depth int, limit int) ([]NoteRef, int, error) {
	log := c.logger.WithTrace(ctx)

	var refs []NoteRef
	skipped := 0
	visited := make(map[string]bool)

	frontier := append([]string(nil), rootIDs...)
	for level := 0; level <= depth && len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			if visited[id] {
				continue
			}
			visited[id] = true

			if err := ctx.Err(); err != nil {
				return refs, skipped, faults.Connector(err)
			}

			n, err := c.getNote(ctx, id)
			if err != nil {
				log.Warn("Skipping unreadable note", "noteId", id, "error", err)
				skipped++
				continue
			}

			refs = append(refs, NoteRef{ID: n.NoteID, Title: n.Title})
			if len(refs) >= limit {
				return refs, skipped, nil
			}
			next = append(next, n.ChildNoteIDs...)
		}
		frontier = next
	}
	return refs, skipped, nil
}

// Content fetches the raw body of one note.
func (c *Client) Content(ctx context.Context, ref NoteRef) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/etapi/notes/%s/content", c.baseURL, ref.ID))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Load traverses the configured roots and turns every readable note with
// non-empty content into a document. HTML note bodies are reduced to plain
// text before they reach the chunker.
func (c *Client) Load(ctx context.Context) ([]models.Document, error) {
	log := c.logger.WithTrace(ctx)

	refs, skipped, err := c.Traverse(ctx, c.rootIDs, config.TraverseDepth, config.TraverseLimit)
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	for _, ref := range refs {
		raw, err := c.Content(ctx, ref)
		if err != nil {
			log.Warn("Skipping note without readable content", "noteId", ref.ID, "error", err)
			skipped++
			continue
		}
		text := strings.TrimSpace(htmlToText(raw))
		if text == "" {
			continue
		}
		docs = append(docs, models.Document{
			ID:        ref.ID,
			Title:     ref.Title,
			Content:   text,
			OriginRef: config.NoteOriginScheme + ":" + ref.ID,
		})
	}

	metrics.AddSkippedNodes(skipped)
	log.Info("Loaded notes", "documents", len(docs), "skipped", skipped)
	return docs, nil
}

func (c *Client) getNote(ctx context.Context, id string) (note, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/etapi/notes/%s", c.baseURL, id))
	if err != nil {
		return note{}, err
	}
	var n note
	if err := json.Unmarshal(body, &n); err != nil {
		return note{}, faults.Connector(err)
	}
	return n, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, faults.Connector(err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, faults.Connector(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, faults.Connector(fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Connector(err)
	}
	return body, nil
}
