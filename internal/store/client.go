// Package store is the typed client for the hosted document store. It speaks
// the store's REST surface for reads and writes and its per-collection event
// stream for change notifications.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/meganziesemer/taskapp-final/internal/repository"
)

// Client issues requests against the remote store. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL string
	key     string
	httpc   *http.Client
	streamc *http.Client
	logger  *slog.Logger
}

// New creates a store client for the given endpoint. key may be empty when the
// store runs without auth (tests, local development).
func New(baseURL, key string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: baseURL,
		key:     key,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		streamc: &http.Client{},
		logger:  logger,
	}
}

type listResponse struct {
	Items json.RawMessage `json:"items"`
}

// list fetches every record in a collection. An empty collection decodes into
// an empty slice, not an error.
func (c *Client) list(ctx context.Context, collection string, out any) error {
	body, err := c.do(ctx, http.MethodGet, c.recordsPath(collection), nil)
	if err != nil {
		return err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decoding %s list: %w", collection, err)
	}
	if len(resp.Items) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Items, out); err != nil {
		return fmt.Errorf("decoding %s records: %w", collection, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, collection, id string, out any) error {
	body, err := c.do(ctx, http.MethodGet, c.recordPath(collection, id), nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s record: %w", collection, err)
	}
	return nil
}

func (c *Client) insert(ctx context.Context, collection string, record any) error {
	_, err := c.do(ctx, http.MethodPost, c.recordsPath(collection), record)
	return err
}

// update replaces only the attributes named in patch.
func (c *Client) update(ctx context.Context, collection, id string, patch any) error {
	_, err := c.do(ctx, http.MethodPatch, c.recordPath(collection, id), patch)
	return err
}

func (c *Client) delete(ctx context.Context, collection, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.recordPath(collection, id), nil)
	return err
}

func (c *Client) recordsPath(collection string) string {
	return fmt.Sprintf("%s/api/collections/%s/records", c.baseURL, collection)
}

func (c *Client) recordPath(collection, id string) string {
	return fmt.Sprintf("%s/api/collections/%s/records/%s", c.baseURL, collection, id)
}

func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", repository.ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, repository.ErrNotFound
	case method == http.MethodGet:
		return nil, fmt.Errorf("%w: %s %s: status %d", repository.ErrUnavailable, method, url, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: %s %s: status %d", repository.ErrWriteRejected, method, url, resp.StatusCode)
	}
}
