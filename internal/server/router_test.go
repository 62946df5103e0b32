package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T, siteFiles map[string]string) http.Handler {
	t.Helper()
	siteDir := t.TempDir()
	for name, content := range siteFiles {
		require.NoError(t, os.WriteFile(filepath.Join(siteDir, name), []byte(content), 0o644))
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(siteDir, nil, logger)
}

func TestRouter_Health(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_ArtifactAPI(t *testing.T) {
	router := testRouter(t, map[string]string{
		"featuremap.json": `{"screens":[]}`,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/featuremap.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"screens":[]}`, rec.Body.String())

	// Not yet generated.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/coverage.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ScansWithoutStore(t *testing.T) {
	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_StaticSite(t *testing.T) {
	router := testRouter(t, map[string]string{
		"index.html":      "<html><body>docs</body></html>",
		"featuremap.html": "<html><body>feature map</body></html>",
	})

	// The file server redirects /index.html to the directory root.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docs")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/featuremap.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "feature map")
}
