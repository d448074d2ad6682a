package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"fruitstand/internal/config"
	"fruitstand/internal/domain"
	"fruitstand/internal/http/handlers"
	"fruitstand/internal/http/server"
	"fruitstand/internal/repos"
)

const missingID = "00000000-0000-4000-8000-000000000000"

// newFruitApp wires the real server over an in-memory SQLite store.
func newFruitApp(t *testing.T, mode string) (*fiber.App, *repos.SQLiteStore) {
	t.Helper()
	store, err := repos.OpenSQLite(":memory:", repos.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close(context.Background()) })
	cfg := config.Config{ErrorMode: mode}
	return server.New(cfg, handlers.NewDeps(store, cfg)), store
}

func do(t *testing.T, app *fiber.App, method, target, form string) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != "" {
		body = strings.NewReader(form)
	}
	req := httptest.NewRequest(method, target, body)
	if form != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func mustCreate(t *testing.T, store repos.FruitStore, name, color string) domain.Fruit {
	t.Helper()
	f, err := store.Create(context.Background(), domain.FruitInput{Name: domain.Str(name), Color: domain.Str(color)})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

type logEntry struct {
	Level  string                 `json:"level"`
	Action string                 `json:"action"`
	Err    string                 `json:"err"`
	Fields map[string]interface{} `json:"fields"`
}

// capture logs by temporarily replacing the standard logger output
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
