package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kdimtricp/acholiflixx/internal/catalog"
	"github.com/kdimtricp/acholiflixx/internal/models"
	"github.com/kdimtricp/acholiflixx/internal/playback"
)

// playerView is the data behind the player partial.
type playerView struct {
	SessionID string
	Title     string
	Poster    string
	State     playback.State
}

func viewOf(session *playback.Session) playerView {
	return playerView{
		SessionID: session.ID,
		Title:     session.Title,
		Poster:    session.Poster,
		State:     session.Player.Snapshot(),
	}
}

// WatchHandler mounts a fresh player session for the requested item.
func (app *App) WatchHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	details, err := app.Catalog.Lookup(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		app.logger().Error("looking up content", "id", id, "error", err)
		http.Error(w, "Error loading content", http.StatusInternalServerError)
		return
	}

	session := app.Players.Open(details.ContentItem)

	data := struct {
		Page
		Details models.ContentDetails
		Player  playerView
	}{
		Page:    Page{Title: details.Title + " - Acholiflixx", Nav: "browse"},
		Details: details,
		Player:  viewOf(session),
	}

	app.renderPage(w, http.StatusOK, "watch.html", data, "_player.html")
}

func (app *App) session(w http.ResponseWriter, r *http.Request) (*playback.Session, bool) {
	session, err := app.Players.Get(chi.URLParam(r, "sid"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return session, true
}

func (app *App) renderPlayer(w http.ResponseWriter, session *playback.Session) {
	app.render(w, http.StatusOK, "player", viewOf(session), "_player.html")
}

// PlayerHandler renders the current player state. The watch page polls it
// once a second while playing.
func (app *App) PlayerHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.session(w, r)
	if !ok {
		return
	}
	app.renderPlayer(w, session)
}

func (app *App) TogglePlayHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.session(w, r)
	if !ok {
		return
	}
	session.Player.TogglePlay()
	app.renderPlayer(w, session)
}

func (app *App) ToggleMuteHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.session(w, r)
	if !ok {
		return
	}
	session.Player.ToggleMute()
	app.renderPlayer(w, session)
}

func (app *App) VolumeHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.session(w, r)
	if !ok {
		return
	}
	volume, err := strconv.Atoi(r.FormValue("volume"))
	if err != nil {
		app.renderError(w, http.StatusBadRequest, "Volume must be a whole number")
		return
	}
	session.Player.SetVolume(volume)
	app.renderPlayer(w, session)
}

func (app *App) SeekHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.session(w, r)
	if !ok {
		return
	}
	progress, err := parseFinite(r.FormValue("progress"))
	if err != nil {
		app.renderError(w, http.StatusBadRequest, "Progress must be a number")
		return
	}
	session.Player.Seek(progress)
	app.renderPlayer(w, session)
}

// SkipHandler moves playback by delta seconds, ten seconds forward by default.
func (app *App) SkipHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.session(w, r)
	if !ok {
		return
	}
	delta := float64(playback.SkipSeconds)
	if v := r.FormValue("delta"); v != "" {
		d, err := parseFinite(v)
		if err != nil {
			app.renderError(w, http.StatusBadRequest, "Skip must be a number of seconds")
			return
		}
		delta = d
	}
	session.Player.Skip(delta)
	app.renderPlayer(w, session)
}

// FullscreenHandler toggles full-screen. The browser does the actual
// presentation switch when it sees the HX-Trigger event.
func (app *App) FullscreenHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := app.session(w, r)
	if !ok {
		return
	}
	state, err := session.Player.ToggleFullscreen()
	if err != nil {
		app.logger().Warn("fullscreen request refused", "session", session.ID, "error", err)
	} else if state.Fullscreen {
		w.Header().Set("HX-Trigger", "player-enter-fullscreen")
	} else {
		w.Header().Set("HX-Trigger", "player-exit-fullscreen")
	}
	app.renderPlayer(w, session)
}

// ClosePlayerHandler tears the session down when the watch page unloads.
func (app *App) ClosePlayerHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Players.Close(chi.URLParam(r, "sid")); err != nil {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var errNotFinite = errors.New("not a finite number")

// parseFinite parses a float and refuses NaN and infinities.
func parseFinite(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
