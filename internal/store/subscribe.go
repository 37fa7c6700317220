package store

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meganziesemer/taskapp-final/internal/repository"
)

// reconnectDelay spaces out attempts to reopen a dropped event stream.
const reconnectDelay = 2 * time.Second

// Subscribe opens the collection's change stream and returns a channel that
// fires whenever any record in the collection changes, by any client. The
// signal carries no payload; receivers re-fetch. Sends are non-blocking and
// coalesce: a slow receiver sees one signal for a burst of changes, which is
// safe because every signal triggers a full reload anyway. The stream
// reconnects after errors until ctx is done, at which point the channel
// closes.
func (c *Client) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	// Fail fast on a bad endpoint; later drops are retried in the background.
	resp, err := c.openStream(ctx, collection)
	if err != nil {
		return nil, err
	}

	signals := make(chan struct{}, 1)

	go func() {
		defer close(signals)

		for {
			c.consumeStream(ctx, resp, signals)
			resp = nil

			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}

			next, err := c.openStream(ctx, collection)
			if err != nil {
				c.logger.Warn("event stream reconnect failed", "collection", collection, "error", err)
				continue
			}
			resp = next
		}
	}()

	return signals, nil
}

func (c *Client) openStream(ctx context.Context, collection string) (*http.Response, error) {
	url := fmt.Sprintf("%s/api/collections/%s/events", c.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	// The stream client has no timeout; the connection stays open until the
	// server or the watchdog closes it.
	resp, err := c.streamc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: event stream status %d", repository.ErrUnavailable, resp.StatusCode)
	}
	return resp, nil
}

// consumeStream reads events off one connection until it drops or ctx ends.
func (c *Client) consumeStream(ctx context.Context, resp *http.Response, signals chan<- struct{}) {
	if resp == nil {
		return
	}
	defer resp.Body.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			resp.Body.Close()
		case <-done:
		}
	}()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		// Heartbeat comments (": keepalive") keep the connection warm but
		// are not change events.
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		select {
		case signals <- struct{}{}:
		default:
		}
	}
}
