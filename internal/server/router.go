package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shirokuma-tools/shirokuma-docs/internal/server/handler"
	"github.com/shirokuma-tools/shirokuma-docs/internal/storage"
)

// NewRouter creates and configures the HTTP router: the JSON API under
// /api/v1 and the static site at the root.
func NewRouter(siteDir string, store storage.Store, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	api := handler.NewAPI(siteDir, store, logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/featuremap.json", api.Artifact("featuremap.json"))
		r.Get("/testcatalog.json", api.Artifact("testcatalog.json"))
		r.Get("/coverage.json", api.Artifact("coverage.json"))
		r.Get("/mdreport.json", api.Artifact("mdreport.json"))
		r.Get("/scans", api.Scans)
	})

	r.Handle("/*", http.FileServer(http.Dir(siteDir)))

	return r
}
