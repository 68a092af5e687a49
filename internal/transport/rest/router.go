package rest

import (
	"net/http"

	"github.com/heartmarshall/wordpractice/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Practice  *PracticeHandler
	Catalogue *CatalogueHandler
	Sync      *SyncHandler
	WordOfDay *WordOfDayHandler
	// Lookup limits the routes that call the dictionary; nil disables it.
	Lookup middleware.Middleware
}

// NewRouter registers all API routes on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	limit := h.Lookup
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/practice/next", h.Practice.Next)
	mux.HandleFunc("POST /api/practice/attempt", h.Practice.Attempt)
	mux.HandleFunc("GET /api/practice/hint", h.Practice.Hint)
	mux.HandleFunc("POST /api/practice/reveal", h.Practice.Reveal)
	mux.HandleFunc("GET /api/practice/session", h.Practice.Session)
	mux.HandleFunc("POST /api/practice/restart", h.Practice.Restart)
	mux.HandleFunc("GET /api/stats", h.Practice.Stats)
	mux.HandleFunc("GET /api/settings/sound", h.Practice.Sound)
	mux.HandleFunc("PUT /api/settings/sound", h.Practice.SetSound)

	mux.HandleFunc("GET /api/words", h.Catalogue.List)
	mux.Handle("POST /api/words", limit(http.HandlerFunc(h.Catalogue.Add)))
	mux.HandleFunc("DELETE /api/words/{word}", h.Catalogue.Remove)
	mux.HandleFunc("PUT /api/words/{word}/definition", h.Catalogue.UpdateDefinition)
	mux.HandleFunc("GET /api/catalogue/export", h.Catalogue.Export)
	mux.HandleFunc("POST /api/catalogue/import", h.Catalogue.Import)

	mux.HandleFunc("POST /api/sync", h.Sync.Sync)
	mux.Handle("GET /api/word-of-the-day", limit(http.HandlerFunc(h.WordOfDay.Today)))

	return mux
}
