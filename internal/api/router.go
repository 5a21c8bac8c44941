package api

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", app.HomeHandler)
	r.Get("/ping", PingHandler)
	r.Get("/health", app.HealthHandler)

	r.Get("/browse", app.BrowseHandler)
	r.Get("/watch/{id}", app.WatchHandler)

	r.Route("/player/{sid}", func(r chi.Router) {
		r.Get("/", app.PlayerHandler)
		r.Post("/toggle", app.TogglePlayHandler)
		r.Post("/mute", app.ToggleMuteHandler)
		r.Post("/volume", app.VolumeHandler)
		r.Post("/seek", app.SeekHandler)
		r.Post("/skip", app.SkipHandler)
		r.Post("/fullscreen", app.FullscreenHandler)
		r.Post("/close", app.ClosePlayerHandler)
	})

	r.Get("/subscribe", app.SubscribePageHandler)
	r.Post("/subscribe", app.SubscribeHandler)
	r.Get("/agent", app.AgentPageHandler)
	r.Post("/agent", app.AgentHandler)
	r.Get("/help", app.HelpHandler)
	r.Get("/admin/upload", app.UploadPageHandler)
	r.Post("/admin/upload", app.UploadHandler)

	r.Get("/images/*", app.ArtworkHandler)

	staticDir := app.StaticDir
	if staticDir == "" {
		staticDir = filepath.Join("web", "static")
	}
	fileServer := http.FileServer(http.Dir(staticDir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	return r
}
