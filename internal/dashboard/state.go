package dashboard

import (
	"sync"

	"github.com/Likhithpsdas17/weather-forecast/internal/view"
	"github.com/Likhithpsdas17/weather-forecast/internal/weather"
)

// state is the process-wide dashboard state: the last snapshot, the active
// unit, the transient message, the theme, and the weather-card visibility.
// A fetch generation counter discards completions of requests that were
// overtaken by a newer one, so a stale response never overwrites newer state.
type state struct {
	mu sync.Mutex

	snapshot *weather.Snapshot
	unit     weather.Unit
	message  *view.Message
	theme    string
	visible  bool

	started uint64 // generation handed to the most recently started fetch
	applied uint64 // generation of the most recently applied completion
}

func newState() *state {
	return &state{
		unit:  weather.UnitCelsius,
		theme: view.ThemeDefault,
	}
}

// nextGen reserves a generation for a fetch that is about to start.
func (s *state) nextGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return s.started
}

// applySuccess installs the snapshot and theme and reveals the weather card.
// Returns false when a newer fetch already completed.
func (s *state) applySuccess(gen uint64, snap *weather.Snapshot, theme string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.applied {
		return false
	}
	s.applied = gen
	s.snapshot = snap
	s.theme = theme
	s.visible = true
	return true
}

// applyFailure hides the weather card, resets the theme, and surfaces the
// error message. Prior snapshot data is kept for a later unit toggle.
// Returns false when a newer fetch already completed.
func (s *state) applyFailure(gen uint64, msg *view.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.applied {
		return false
	}
	s.applied = gen
	s.visible = false
	s.theme = view.ThemeDefault
	s.message = msg
	return true
}

func (s *state) setMessage(msg *view.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// clearAlert drops the current message only when it carries an extreme
// temperature alert.
func (s *state) clearAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.message.BearsAlert() {
		s.message = nil
	}
}

// toggleUnit flips the display unit and returns the new unit along with the
// snapshot to re-render (nil when nothing has loaded yet).
func (s *state) toggleUnit() (weather.Unit, *weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unit = s.unit.Toggle()
	return s.unit, s.snapshot
}

func (s *state) currentSnapshot() *weather.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// view returns a consistent read of everything the renderer needs.
func (s *state) view() (*weather.Snapshot, weather.Unit, *view.Message, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.unit, s.message, s.theme, s.visible
}
