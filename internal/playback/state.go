package playback

import (
	"fmt"
	"math"
)

// DefaultDuration is the simulated running time in seconds (1h 45m).
const DefaultDuration = 6300

type Status int

const (
	StatusPaused Status = iota
	StatusPlaying
)

func (s Status) String() string {
	switch s {
	case StatusPaused:
		return "Paused"
	case StatusPlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// State is a snapshot of the control surface. Progress is always
// CurrentTime/Duration*100.
type State struct {
	Playing     bool
	Muted       bool
	Volume      int
	CurrentTime float64
	Duration    float64
	Progress    float64
	Fullscreen  bool
	Ended       bool
}

func (s State) Status() Status {
	if s.Playing {
		return StatusPlaying
	}
	return StatusPaused
}

// EffectiveVolume is what the volume slider shows: 0 while muted.
func (s State) EffectiveVolume() int {
	if s.Muted {
		return 0
	}
	return s.Volume
}

func (s State) CurrentLabel() string {
	return FormatTime(s.CurrentTime)
}

func (s State) DurationLabel() string {
	return FormatTime(s.Duration)
}

// FormatTime renders seconds as m:ss. Hours are folded into minutes.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func progressOf(current, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return current / duration * 100
}
