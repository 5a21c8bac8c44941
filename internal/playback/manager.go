package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/events"
	"github.com/kdimtricp/acholiflixx/internal/models"
)

var ErrSessionNotFound = errors.New("playback session not found")

// Session is one mounted watch view and the player it owns.
type Session struct {
	ID        string
	ContentID string
	Title     string
	Poster    string
	Player    *Player
	StartedAt time.Time

	lastSeen time.Time
}

type ManagerConfig struct {
	IdleTTL      time.Duration
	TickInterval time.Duration
	Duration     float64
	Surface      func() Surface
}

// Manager keeps the player sessions of open watch views. Sessions are
// closed explicitly on teardown or reaped once idle longer than IdleTTL.
type Manager struct {
	config    ManagerConfig
	publisher events.Publisher
	logger    hclog.Logger

	sessions   map[string]*Session
	sessionsMu sync.RWMutex
}

func NewManager(config ManagerConfig, publisher events.Publisher, logger hclog.Logger) *Manager {
	if config.IdleTTL == 0 {
		config.IdleTTL = 30 * time.Minute
	}
	if config.TickInterval == 0 {
		config.TickInterval = TickInterval
	}
	if config.Duration == 0 {
		config.Duration = DefaultDuration
	}
	if config.Surface == nil {
		config.Surface = func() Surface { return NoopSurface{} }
	}
	if publisher == nil {
		publisher = events.NewLogPublisher(nil)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Manager{
		config:    config,
		publisher: publisher,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Open mounts a fresh player for item.
func (m *Manager) Open(item models.ContentItem) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		ContentID: item.ID,
		Title:     item.Title,
		Poster:    item.Image,
		StartedAt: now,
		lastSeen:  now,
	}

	session.Player = NewPlayer(
		WithDuration(m.config.Duration),
		WithTickInterval(m.config.TickInterval),
		WithSurface(m.config.Surface()),
		WithLogger(m.logger.With("session", session.ID)),
		WithObserver(m.observer(session.ID, item.ID)),
	)

	m.sessionsMu.Lock()
	m.sessions[session.ID] = session
	m.sessionsMu.Unlock()

	m.logger.Debug("session opened", "session", session.ID, "content", item.ID)
	return session
}

func (m *Manager) observer(sessionID, contentID string) func(State) {
	var last events.PlayStatus
	var mu sync.Mutex

	return func(s State) {
		status := events.PlayStatus{
			SessionID: sessionID,
			ContentID: contentID,
			Timestamp: s.CurrentTime,
			Paused:    !s.Playing,
			Ended:     s.Ended,
		}

		mu.Lock()
		changed := status != last
		last = status
		mu.Unlock()
		if !changed {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := m.publisher.Publish(ctx, events.TopicPlayback, status); err != nil {
			m.logger.Warn("publishing playback status", "session", sessionID, "error", err)
		}
	}
}

// Get returns a live session and marks it as seen.
func (m *Manager) Get(id string) (*Session, error) {
	m.sessionsMu.Lock()
	defer m.sessionsMu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.lastSeen = time.Now()
	return session, nil
}

// Close tears down the session's view state.
func (m *Manager) Close(id string) error {
	m.sessionsMu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.sessionsMu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Player.Close()
	m.logger.Debug("session closed", "session", id)
	return nil
}

// Reap closes sessions not seen since now-IdleTTL and reports how many.
func (m *Manager) Reap(now time.Time) int {
	cutoff := now.Add(-m.config.IdleTTL)

	m.sessionsMu.Lock()
	var stale []*Session
	for id, session := range m.sessions {
		if session.lastSeen.Before(cutoff) {
			stale = append(stale, session)
			delete(m.sessions, id)
		}
	}
	m.sessionsMu.Unlock()

	for _, session := range stale {
		session.Player.Close()
	}
	if len(stale) > 0 {
		m.logger.Info("reaped idle sessions", "count", len(stale))
	}
	return len(stale)
}

// Run reaps idle sessions periodically until ctx is done, then closes
// every remaining session.
func (m *Manager) Run(ctx context.Context) {
	interval := m.config.IdleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Shutdown()
			return
		case now := <-ticker.C:
			m.Reap(now)
		}
	}
}

func (m *Manager) Shutdown() {
	m.sessionsMu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.sessionsMu.Unlock()

	for _, session := range sessions {
		session.Player.Close()
	}
}

func (m *Manager) Len() int {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()
	return len(m.sessions)
}
