// Package testserver provides an in-memory implementation of the remote
// store's HTTP and event-stream contract for use in tests.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestServer is an in-memory record store speaking the same wire contract
// as the hosted backend: JSON records under /api/collections/{name}/records
// and a text/event-stream feed under /api/collections/{name}/events.
type TestServer struct {
	Server *httptest.Server
	Token  string

	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	order       map[string][]string
	streams     map[string][]chan string

	delay      atomic.Int64
	failReads  atomic.Bool
	failWrites atomic.Bool
}

// SetDelay makes every subsequent list request sleep before responding.
// Tests use it to stage overlapping reloads.
func (ts *TestServer) SetDelay(d time.Duration) {
	ts.delay.Store(int64(d))
}

// SetFailReads makes list and get requests return 500.
func (ts *TestServer) SetFailReads(fail bool) {
	ts.failReads.Store(fail)
}

// SetFailWrites makes insert, update and delete return 409.
func (ts *TestServer) SetFailWrites(fail bool) {
	ts.failWrites.Store(fail)
}

// New starts a server that tears itself down with the test.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	ts := &TestServer{
		Token:       token,
		collections: make(map[string]map[string]map[string]any),
		order:       make(map[string][]string),
		streams:     make(map[string][]chan string),
	}
	ts.Server = httptest.NewServer(ts.handler())

	t.Cleanup(ts.Server.Close)

	return ts
}

// URL returns the base URL clients should dial.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// Seed inserts a record directly, bypassing the HTTP surface and without
// emitting an event.
func (ts *TestServer) Seed(collection string, record map[string]any) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	id, _ := record["id"].(string)
	if id == "" {
		id = uuid.NewString()
		record["id"] = id
	}
	ts.put(collection, id, record)
	return id
}

// Records returns a copy of the stored records for a collection in
// insertion order.
func (ts *TestServer) Records(collection string) []map[string]any {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	out := make([]map[string]any, 0, len(ts.order[collection]))
	for _, id := range ts.order[collection] {
		out = append(out, ts.collections[collection][id])
	}
	return out
}

// StreamCount reports how many event streams are open for a collection.
// Tests wait on it before mutating records whose events they assert on.
func (ts *TestServer) StreamCount(collection string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.streams[collection])
}

// Emit pushes a bare change event to every open stream for a collection.
func (ts *TestServer) Emit(collection string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.broadcast(collection)
}

func (ts *TestServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/collections/", ts.serveCollection)
	return mux
}

func (ts *TestServer) serveCollection(w http.ResponseWriter, r *http.Request) {
	if ts.Token != "" && r.Header.Get("Authorization") != "Bearer "+ts.Token {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/collections/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}
	collection := parts[0]

	switch parts[1] {
	case "events":
		ts.serveEvents(w, r, collection)
	case "records":
		if len(parts) == 2 {
			ts.serveRecords(w, r, collection)
			return
		}
		ts.serveRecord(w, r, collection, parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (ts *TestServer) serveRecords(w http.ResponseWriter, r *http.Request, collection string) {
	switch r.Method {
	case http.MethodGet:
		if d := time.Duration(ts.delay.Load()); d > 0 {
			time.Sleep(d)
		}
		if ts.failReads.Load() {
			http.Error(w, "store unavailable", http.StatusInternalServerError)
			return
		}
		ts.mu.Lock()
		items := make([]map[string]any, 0, len(ts.order[collection]))
		for _, id := range ts.order[collection] {
			items = append(items, ts.collections[collection][id])
		}
		body, _ := json.Marshal(map[string]any{"items": items})
		ts.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)

	case http.MethodPost:
		if ts.failWrites.Load() {
			http.Error(w, "write rejected", http.StatusConflict)
			return
		}
		var record map[string]any
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		ts.mu.Lock()
		id, _ := record["id"].(string)
		if id == "" {
			id = uuid.NewString()
			record["id"] = id
		}
		ts.put(collection, id, record)
		body, _ := json.Marshal(record)
		ts.broadcast(collection)
		ts.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (ts *TestServer) serveRecord(w http.ResponseWriter, r *http.Request, collection, id string) {
	if r.Method == http.MethodGet {
		if ts.failReads.Load() {
			http.Error(w, "store unavailable", http.StatusInternalServerError)
			return
		}
		ts.mu.Lock()
		record, ok := ts.collections[collection][id]
		body, _ := json.Marshal(record)
		ts.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	if ts.failWrites.Load() {
		http.Error(w, "write rejected", http.StatusConflict)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		ts.mu.Lock()
		record, ok := ts.collections[collection][id]
		if !ok {
			ts.mu.Unlock()
			http.NotFound(w, r)
			return
		}
		for k, v := range patch {
			record[k] = v
		}
		body, _ := json.Marshal(record)
		ts.broadcast(collection)
		ts.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)

	case http.MethodDelete:
		ts.mu.Lock()
		if _, ok := ts.collections[collection][id]; !ok {
			ts.mu.Unlock()
			http.NotFound(w, r)
			return
		}
		delete(ts.collections[collection], id)
		kept := ts.order[collection][:0]
		for _, existing := range ts.order[collection] {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		ts.order[collection] = kept
		ts.broadcast(collection)
		ts.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (ts *TestServer) serveEvents(w http.ResponseWriter, r *http.Request, collection string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	events := make(chan string, 8)
	ts.mu.Lock()
	ts.streams[collection] = append(ts.streams[collection], events)
	ts.mu.Unlock()

	defer func() {
		ts.mu.Lock()
		kept := ts.streams[collection][:0]
		for _, ch := range ts.streams[collection] {
			if ch != events {
				kept = append(kept, ch)
			}
		}
		ts.streams[collection] = kept
		ts.mu.Unlock()
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case payload := <-events:
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// put stores a record under the caller's lock.
func (ts *TestServer) put(collection, id string, record map[string]any) {
	if ts.collections[collection] == nil {
		ts.collections[collection] = make(map[string]map[string]any)
	}
	if _, exists := ts.collections[collection][id]; !exists {
		ts.order[collection] = append(ts.order[collection], id)
	}
	ts.collections[collection][id] = record
}

// broadcast notifies streams under the caller's lock. Slow consumers are
// skipped; the client coalesces signals anyway.
func (ts *TestServer) broadcast(collection string) {
	for _, ch := range ts.streams[collection] {
		select {
		case ch <- `{"collection":"` + collection + `"}`:
		default:
		}
	}
}
