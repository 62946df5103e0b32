// Package handler implements the HTTP handlers of the serve command.
package handler

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shirokuma-tools/shirokuma-docs/internal/storage"
)

// API serves the generated JSON artifacts and the scan history.
type API struct {
	siteDir string
	store   storage.Store
	logger  *slog.Logger
}

// NewAPI creates the handler set. store may be nil when the cache is
// disabled; the scans endpoint then reports 503.
func NewAPI(siteDir string, store storage.Store, logger *slog.Logger) *API {
	return &API{siteDir: siteDir, store: store, logger: logger}
}

// Artifact serves one generated artifact (e.g. featuremap.json) from the
// site directory.
func (a *API) Artifact(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(filepath.Join(a.siteDir, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.Error(w, "artifact not generated yet", http.StatusNotFound)
				return
			}
			a.logger.Error("failed to read artifact", "artifact", name, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}
}

// Scans returns the recent scan history, optionally filtered by kind.
func (a *API) Scans(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		http.Error(w, "cache disabled, no scan history", http.StatusServiceUnavailable)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "featuremap"
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := a.store.RecentScanRuns(r.Context(), kind, limit)
	if err != nil {
		a.logger.Error("failed to load scan history", "kind", kind, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		a.logger.Error("failed to encode scan history", "error", err)
	}
}
