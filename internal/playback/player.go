package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	TickInterval = time.Second
	SkipSeconds  = 10
)

var ErrClosed = errors.New("player closed")

// Surface is the presentation container fullscreen requests go to.
type Surface interface {
	RequestFullscreen() error
	ExitFullscreen() error
}

// NoopSurface accepts every request. The browser performs the actual
// switch when it sees the state change.
type NoopSurface struct{}

func (NoopSurface) RequestFullscreen() error { return nil }
func (NoopSurface) ExitFullscreen() error    { return nil }

type Option func(*Player)

func WithDuration(seconds float64) Option {
	return func(p *Player) {
		if seconds > 0 {
			p.state.Duration = seconds
		}
	}
}

func WithTickInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithSurface(s Surface) Option {
	return func(p *Player) {
		if s != nil {
			p.surface = s
		}
	}
}

func WithLogger(logger hclog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver registers a callback invoked with a fresh snapshot after
// every state change, outside the player lock.
func WithObserver(fn func(State)) Option {
	return func(p *Player) {
		p.observer = fn
	}
}

// Player is the simulated playback clock behind one watch view. While
// playing, a goroutine advances CurrentTime once per interval; it is
// cancelled whenever playback leaves the Playing state or the player closes.
type Player struct {
	mu       sync.Mutex
	state    State
	interval time.Duration
	surface  Surface
	observer func(State)
	logger   hclog.Logger

	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

func NewPlayer(opts ...Option) *Player {
	p := &Player{
		state: State{
			Volume:   100,
			Duration: DefaultDuration,
		},
		interval: TickInterval,
		surface:  NoopSurface{},
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Player) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// TogglePlay flips between Playing and Paused. Playing again after the end
// was reached starts over from zero.
func (p *Player) TogglePlay() State {
	return p.update(func(s *State) {
		if s.Playing {
			p.pauseLocked()
			return
		}
		p.playLocked()
	})
}

func (p *Player) Play() State {
	return p.update(func(s *State) {
		if !s.Playing {
			p.playLocked()
		}
	})
}

func (p *Player) Pause() State {
	return p.update(func(s *State) {
		if s.Playing {
			p.pauseLocked()
		}
	})
}

// SetVolume stores v clamped to [0,100]. Zero mutes; a positive value
// leaves the mute flag alone.
func (p *Player) SetVolume(v int) State {
	return p.update(func(s *State) {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		s.Volume = v
		if v == 0 {
			s.Muted = true
		}
	})
}

func (p *Player) ToggleMute() State {
	return p.update(func(s *State) {
		s.Muted = !s.Muted
	})
}

// Seek jumps to percentage pct of the duration, clamped to [0,100].
// NaN and infinities leave the position unchanged.
func (p *Player) Seek(pct float64) State {
	return p.update(func(s *State) {
		if !finite(pct) {
			return
		}
		pct = clamp(pct, 0, 100)
		s.Progress = pct
		s.CurrentTime = pct / 100 * s.Duration
		s.Ended = false
	})
}

// Skip moves the clock by delta seconds, clamped to [0, duration].
// NaN and infinities leave the position unchanged.
func (p *Player) Skip(delta float64) State {
	return p.update(func(s *State) {
		if !finite(delta) {
			return
		}
		s.CurrentTime = clamp(s.CurrentTime+delta, 0, s.Duration)
		s.Progress = progressOf(s.CurrentTime, s.Duration)
		if s.CurrentTime < s.Duration {
			s.Ended = false
		}
	})
}

// ToggleFullscreen asks the surface to enter or leave fullscreen. The flag
// only changes when the surface accepts.
func (p *Player) ToggleFullscreen() (State, error) {
	var err error
	st := p.update(func(s *State) {
		if s.Fullscreen {
			err = p.surface.ExitFullscreen()
		} else {
			err = p.surface.RequestFullscreen()
		}
		if err == nil {
			s.Fullscreen = !s.Fullscreen
		}
	})
	if err != nil {
		return st, fmt.Errorf("toggling fullscreen: %w", err)
	}
	return st, nil
}

// Tick advances the clock by one second. It is a no-op unless playing.
// Reaching the duration marks the player ended and pauses it.
func (p *Player) Tick() State {
	return p.update(func(s *State) {
		p.tickLocked(s)
	})
}

func (p *Player) tickLocked(s *State) {
	if !s.Playing {
		return
	}
	s.CurrentTime = clamp(s.CurrentTime+1, 0, s.Duration)
	s.Progress = progressOf(s.CurrentTime, s.Duration)
	if s.CurrentTime >= s.Duration {
		s.Ended = true
		p.pauseLocked()
		p.logger.Debug("playback ended", "duration", s.Duration)
	}
}

// Close cancels the clock and waits for it to stop. Later calls on the
// player leave the state untouched.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.state.Playing = false
	done := p.stopClockLocked()
	p.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (p *Player) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Player) update(fn func(*State)) State {
	p.mu.Lock()
	if p.closed {
		st := p.state
		p.mu.Unlock()
		return st
	}
	fn(&p.state)
	st := p.state
	observer := p.observer
	p.mu.Unlock()

	if observer != nil {
		observer(st)
	}
	return st
}

func (p *Player) playLocked() {
	if p.state.Ended {
		p.state.Ended = false
		p.state.CurrentTime = 0
		p.state.Progress = 0
	}
	p.state.Playing = true
	p.startClockLocked()
}

func (p *Player) pauseLocked() {
	p.state.Playing = false
	p.stopClockLocked()
}

func (p *Player) startClockLocked() {
	p.stopClockLocked()

	ctx, cancel := context.WithCancel(context.Background())
	p.gen++
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.gen, p.done)
}

// stopClockLocked cancels the running clock, if any, and returns the
// channel that closes once its goroutine has exited.
func (p *Player) stopClockLocked() chan struct{} {
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	done := p.done
	p.cancel = nil
	p.done = nil
	return done
}

func (p *Player) run(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.update(func(s *State) {
				// A stale clock from before a pause/play cycle must not advance time.
				if p.gen != gen {
					return
				}
				p.tickLocked(s)
			})
		}
	}
}

// clockRunning reports whether a clock goroutine is currently active.
func (p *Player) clockRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
