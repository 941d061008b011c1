package notepub

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext stands in for testing.T.Context (Go 1.24+): a context that is
// canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	out := t.TempDir()
	require.NoError(t, EnsureOutputDirs(out))
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("<h1>index</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(out, ArticlesDir, "hello.html"), []byte("<p>hello</p>"), 0o644))
	return &App{
		Config: Config{OutputDir: out},
		Logger: NewLogger(io.Discard, "error"),
	}
}

func get(t *testing.T, a *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := a.NewServer()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServerServesIndex(t *testing.T) {
	rec := get(t, newTestApp(t), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>index</h1>")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestServerServesArticles(t *testing.T) {
	rec := get(t, newTestApp(t), "/articles/hello.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hello</p>", rec.Body.String())
}

func TestServerNotFoundPage(t *testing.T) {
	rec := get(t, newTestApp(t), "/articles/missing.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1>Not Found</h1>")
	assert.Contains(t, rec.Body.String(), "/articles/missing.html")
}

func TestStatusPageEscapesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, statusPage(http.StatusNotFound, "<script>").Render(testContext(t), rec))
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestServeStopsWhenWatcherFails(t *testing.T) {
	a := newTestApp(t)
	a.Config.NotesDir = filepath.Join(t.TempDir(), "missing")
	a.Config.Addr = "127.0.0.1:0"
	a.Publisher = NewPublisher(a.Config, newTestRenderer(t), WithDeployer(&fakeDeployer{}))

	done := make(chan error, 1)
	go func() { done <- a.Serve(testContext(t)) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve kept running without a watcher")
	}
}

func TestServeReturnsNilOnCancel(t *testing.T) {
	a := newTestApp(t)
	a.Config.NotesDir = t.TempDir()
	a.Config.Addr = "127.0.0.1:0"
	a.Publisher = NewPublisher(a.Config, newTestRenderer(t), WithDeployer(&fakeDeployer{}))

	ctx, cancel := context.WithCancel(testContext(t))
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
