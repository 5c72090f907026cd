package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"product-studio/internal/http/handlers"
	"product-studio/internal/middleware"
	"product-studio/internal/ws"
)

func NewRouter(app *handlers.App, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(*app.Logger),
		middleware.CORS(app.Config.AllowedOrigins),
	)
	if app.Config.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))
	}

	r.Get("/healthz", app.Health)
	r.Get("/ws", hub.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", app.CatalogTables)
		r.Post("/upload", app.Upload)

		r.Post("/edits", app.AIEdit)
		r.Post("/basic-edits", app.BasicEdit)

		r.Route("/variations", func(r chi.Router) {
			r.Post("/", app.ColorVariations)
			r.Delete("/", app.ClearVariations)
		})
		r.Route("/ad-shots", func(r chi.Router) {
			r.Post("/", app.AdShots)
			r.Delete("/", app.ClearAdShots)
		})
		r.Route("/lifestyle", func(r chi.Router) {
			r.Post("/", app.Lifestyle)
			r.Delete("/", app.ClearLifestyle)
		})
		r.Post("/animation", app.Animate)
		r.Post("/mockups", app.Mockup3D)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", app.HistoryList)
			r.Delete("/", app.HistoryClear)
			r.Post("/select", app.HistorySelect)
			r.Post("/navigate", app.HistoryNavigate)
			r.Get("/{id}/download", app.Download)
		})
		r.Get("/export", app.Export)
		r.Get("/progress", app.ProgressSnapshot)
		r.Post("/cancel", app.CancelBatch)
	})

	return r
}
