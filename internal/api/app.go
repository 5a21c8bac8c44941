package api

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/agent"
	"github.com/kdimtricp/acholiflixx/internal/catalog"
	"github.com/kdimtricp/acholiflixx/internal/checkout"
	"github.com/kdimtricp/acholiflixx/internal/database"
	"github.com/kdimtricp/acholiflixx/internal/ingest"
	"github.com/kdimtricp/acholiflixx/internal/playback"
	"github.com/kdimtricp/acholiflixx/internal/storage"
)

type App struct {
	Catalog  *catalog.Provider
	Players  *playback.Manager
	Checkout *checkout.Service
	Agents   *agent.Service
	Uploads  *ingest.Service
	Artwork  storage.Storage
	// DB is nil when the catalog is served from memory.
	DB *database.DB

	TemplateDir   string
	StaticDir     string
	MaxUploadSize int64
	Logger        hclog.Logger
}

// Page carries what the layout needs on every page.
type Page struct {
	Title string
	Nav   string
}

var funcs = template.FuncMap{
	"ugx":      checkout.FormatUGX,
	"clock":    playback.FormatTime,
	"lower":    strings.ToLower,
	"join":     strings.Join,
	"percent":  func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"contains": contains,
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func (app *App) logger() hclog.Logger {
	if app.Logger == nil {
		return hclog.NewNullLogger()
	}
	return app.Logger
}

func (app *App) templatePath(name string) string {
	dir := app.TemplateDir
	if dir == "" {
		dir = filepath.Join("web", "templates")
	}
	return filepath.Join(dir, name)
}

func (app *App) parse(files ...string) (*template.Template, error) {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = app.templatePath(f)
	}
	return template.New(files[0]).Funcs(funcs).ParseFiles(paths...)
}

// render executes the named template from files into a buffer so a
// template failure never leaves a half-written page behind.
func (app *App) render(w http.ResponseWriter, status int, name string, data any, files ...string) {
	tmpl, err := app.parse(files...)
	if err != nil {
		app.logger().Error("loading template", "files", files, "error", err)
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		app.logger().Error("rendering template", "template", name, "error", err)
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderPage renders page inside the base layout.
func (app *App) renderPage(w http.ResponseWriter, status int, page string, data any, partials ...string) {
	files := append([]string{"base.html", page}, partials...)
	app.render(w, status, "base", data, files...)
}

func (app *App) renderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`<div class="alert alert-error">` + template.HTMLEscapeString(message) + `</div>`))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
