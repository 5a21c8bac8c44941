package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kdimtricp/acholiflixx/internal/catalog"
	"github.com/kdimtricp/acholiflixx/internal/help"
	"github.com/kdimtricp/acholiflixx/internal/models"
)

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{
		"status":  "ok",
		"players": app.Players.Len(),
		"catalog": "memory",
	}

	if app.DB != nil {
		body["catalog"] = app.DB.Type()
		if err := app.DB.Conn().PingContext(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["error"] = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type homeRow struct {
	ID    string
	Title string
	Items []models.ContentItem
}

func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	featured, err := app.Catalog.Featured(ctx)
	if err != nil {
		app.logger().Error("loading featured item", "error", err)
		http.Error(w, "Error loading catalog", http.StatusInternalServerError)
		return
	}

	rows := make([]homeRow, 0, len(catalog.Rows))
	for _, row := range catalog.Rows {
		items, err := app.Catalog.Row(ctx, row.ID)
		if err != nil {
			http.Error(w, "Error loading catalog", http.StatusInternalServerError)
			return
		}
		rows = append(rows, homeRow{ID: row.ID, Title: row.Title, Items: items})
	}

	data := struct {
		Page
		Featured models.ContentItem
		Rows     []homeRow
	}{
		Page:     Page{Title: "Acholiflixx", Nav: "home"},
		Featured: featured,
		Rows:     rows,
	}

	app.renderPage(w, http.StatusOK, "home.html", data, "_card.html")
}

type sortOption struct {
	Key   catalog.SortKey
	Label string
}

var sortOptions = []sortOption{
	{catalog.SortNewest, "Newest"},
	{catalog.SortPopular, "Most Popular"},
	{catalog.SortAlphabetical, "A-Z"},
}

func (app *App) BrowseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	category := strings.ToLower(q.Get("category"))
	sortKey := catalog.ParseSortKey(q.Get("sort"))
	view := q.Get("view")
	if view != "list" {
		view = "grid"
	}

	items, err := app.Catalog.Browse(ctx, category, sortKey)
	if err != nil {
		app.logger().Error("browsing catalog", "error", err)
		http.Error(w, "Error loading catalog", http.StatusInternalServerError)
		return
	}

	categories, err := app.Catalog.Categories(ctx)
	if err != nil {
		http.Error(w, "Error loading catalog", http.StatusInternalServerError)
		return
	}

	data := struct {
		Page
		Items      []models.ContentItem
		Categories []models.Category
		Category   string
		Sort       catalog.SortKey
		Sorts      []sortOption
		View       string
	}{
		Page:       Page{Title: "Browse - Acholiflixx", Nav: "browse"},
		Items:      items,
		Categories: categories,
		Category:   category,
		Sort:       sortKey,
		Sorts:      sortOptions,
		View:       view,
	}

	if isHTMX(r) {
		app.render(w, http.StatusOK, "results", data, "browse.html", "_card.html")
		return
	}
	app.renderPage(w, http.StatusOK, "browse.html", data, "_card.html")
}

type tutorialView struct {
	help.Tutorial
	Open bool
	Link string
}

func (app *App) HelpHandler(w http.ResponseWriter, r *http.Request) {
	open := r.URL.Query().Get("tutorial")
	if _, ok := help.Find(open); !ok {
		open = ""
	}

	tutorials := make([]tutorialView, len(help.Tutorials))
	for i, t := range help.Tutorials {
		link := "/help"
		if next := help.Toggle(open, t.ID); next != "" {
			link += "?tutorial=" + next
		}
		tutorials[i] = tutorialView{Tutorial: t, Open: t.ID == open, Link: link}
	}

	data := struct {
		Page
		Tutorials []tutorialView
		FAQs      []help.FAQ
	}{
		Page:      Page{Title: "Help Center - Acholiflixx", Nav: "help"},
		Tutorials: tutorials,
		FAQs:      help.FAQs,
	}

	app.renderPage(w, http.StatusOK, "help.html", data)
}

// ArtworkHandler serves poster and hero images from artwork storage.
func (app *App) ArtworkHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	file, err := app.Artwork.OpenFile(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	stat, ok := file.(interface{ Stat() (os.FileInfo, error) })
	if !ok {
		http.ServeContent(w, r, path.Base(name), time.Time{}, file)
		return
	}
	info, err := stat.Stat()
	if err != nil {
		http.Error(w, "Error accessing image", http.StatusInternalServerError)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}
