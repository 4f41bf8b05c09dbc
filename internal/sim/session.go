package sim

import (
	"math"

	"github.com/san-kum/conserve/internal/config"
	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/sirupsen/logrus"
)

// StateStore persists the parameter state between runs.
type StateStore interface {
	LoadState() (dynamo.State, []string, error)
	SaveState(s dynamo.State) error
}

// Session owns the parameter state for one running application. It is not
// safe for concurrent use; the host calls it from its frame callback only.
type Session struct {
	state   dynamo.State
	initial dynamo.State
	cfg     *config.Config
	store   StateStore
	log     logrus.FieldLogger
	presets []string
	preset  int
	points  *PointPool
}

// NewSession starts from initial. store may be nil, in which case Close
// does not persist anything.
func NewSession(initial dynamo.State, cfg *config.Config, store StateStore, log logrus.FieldLogger) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		state:   initial,
		initial: initial,
		cfg:     cfg,
		store:   store,
		log:     log,
		presets: config.ListPresets(),
		preset:  -1,
		points:  NewPointPool(cfg.Plot.Samples),
	}
}

// Restore returns the persisted state, or fallback when no field was
// recovered from the store.
func Restore(store StateStore, fallback dynamo.State, log logrus.FieldLogger) dynamo.State {
	if store == nil {
		return fallback
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	s, defaulted, err := store.LoadState()
	if err != nil {
		log.WithError(err).Warn("could not restore saved state")
		return fallback
	}
	if len(defaulted) == len(dynamo.Fields) {
		return fallback
	}
	if len(defaulted) > 0 {
		log.WithField("fields", defaulted).Info("saved state incomplete, using defaults")
	}
	return s
}

func (s *Session) State() dynamo.State { return s.state }

func (s *Session) Config() *config.Config { return s.cfg }

// Edit sets one field, clamped to the slider range.
func (s *Session) Edit(f dynamo.Field, v float64) error {
	next := s.state
	if err := next.Set(f, v); err != nil {
		return err
	}
	s.state = next.Clamp(s.cfg.Slider.Min, s.cfg.Slider.Max)
	return nil
}

// Nudge moves one field by a number of slider steps. The result is snapped
// to the step grid so repeated nudges land on exact values such as zero.
func (s *Session) Nudge(f dynamo.Field, steps float64) error {
	step := s.cfg.Slider.Step
	v := s.state.Get(f) + steps*step
	if step > 0 {
		v = math.Round(v/step) * step
	}
	return s.Edit(f, v)
}

func (s *Session) ApplyPreset(name string) error {
	st, err := config.GetPreset(name)
	if err != nil {
		return err
	}
	s.state = st.Clamp(s.cfg.Slider.Min, s.cfg.Slider.Max)
	for i, p := range s.presets {
		if p == name {
			s.preset = i
		}
	}
	s.log.WithField("preset", name).Debug("preset applied")
	return nil
}

// NextPreset cycles through the presets in name order and returns the one
// applied.
func (s *Session) NextPreset() string {
	if len(s.presets) == 0 {
		return ""
	}
	s.preset = (s.preset + 1) % len(s.presets)
	name := s.presets[s.preset]
	_ = s.ApplyPreset(name)
	return name
}

// Reset restores the state the session started with.
func (s *Session) Reset() {
	s.state = s.initial
	s.preset = -1
}

// Zero sets every field to 0, the application's startup value.
func (s *Session) Zero() {
	s.state = dynamo.State{}
}

// Frame evaluates the curves for the current state. Nothing is cached; the
// point buffers come from the session's pool.
func (s *Session) Frame(d dynamo.Domain) Frame {
	return evaluate(s.state, d, s.cfg.Plot.Samples, s.cfg.Style, s.points)
}

// Recycle hands a frame's buffers back once the host has replaced it.
func (s *Session) Recycle(f Frame) {
	s.points.Release(f)
}

// Close persists the current state when a store is attached.
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveState(s.state); err != nil {
		return err
	}
	s.log.WithField("state", s.state.String()).Debug("state saved")
	return nil
}
