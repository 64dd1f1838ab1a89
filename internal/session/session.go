// Package session runs the interactive roll loop: it reacts to input,
// animates a roll, computes the outcome and renders it every frame.
//
// A Session is single-threaded. Run must be called from one goroutine and
// the collaborators are only ever touched from that goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"dicesim/internal/dice"
	"dicesim/internal/history"
	"dicesim/internal/logging"
	"dicesim/internal/render"

	"go.uber.org/zap"
)

// State is the interaction state.
type State int

const (
	// Idle waits for input and shows the last outcome, if any.
	Idle State = iota
	// Animating lasts AnimationDuration while faces flicker.
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Event is a discrete input event.
type Event int

const (
	// EventQuit comes from closing the window or the quit key.
	EventQuit Event = iota + 1
	// EventRoll comes from the roll key.
	EventRoll
)

func (e Event) String() string {
	switch e {
	case EventQuit:
		return "quit"
	case EventRoll:
		return "roll"
	default:
		return "event(" + strconv.Itoa(int(e)) + ")"
	}
}

// InputSource yields pending events without blocking.
type InputSource interface {
	Poll() []Event
}

// Surface is a drawable canvas of fixed resolution.
type Surface interface {
	Clear(c color.Color)
	DrawImage(img image.Image, center image.Point)
	DrawLabel(l render.Label)
	Present() error
}

// AssetProvider resolves a face set and value to a pre-scaled image.
type AssetProvider interface {
	Face(set dice.FaceSet, value int) (image.Image, error)
}

// Clock paces frames and measures elapsed time.
type Clock interface {
	Now() time.Time
	Tick(fps int) time.Duration
}

// Deps are the collaborators a Session drives.
type Deps struct {
	Assets  AssetProvider
	Surface Surface
	Input   InputSource
	Clock   Clock
}

func (d Deps) validate() error {
	var missing []string
	if d.Assets == nil {
		missing = append(missing, "assets")
	}
	if d.Surface == nil {
		missing = append(missing, "surface")
	}
	if d.Input == nil {
		missing = append(missing, "input")
	}
	if d.Clock == nil {
		missing = append(missing, "clock")
	}
	if len(missing) > 0 {
		return fmt.Errorf("session: missing dependencies: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Session owns the configuration, state and latest outcome.
type Session struct {
	cfg  dice.Config
	deps Deps

	log     *zap.Logger
	results io.Writer

	// roller produces outcomes; flicker only feeds the animation.
	roller  *dice.Roller
	flicker *dice.Roller
	recent  *history.Recent

	state   State
	outcome dice.Outcome
	running bool
	frames  int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = logging.OrNop(l) }
}

// WithResultWriter sets where the "Rolled Results" lines go. Default stdout.
func WithResultWriter(w io.Writer) Option {
	return func(s *Session) {
		if w != nil {
			s.results = w
		}
	}
}

// WithOutcomeSource sets the randomness for outcomes.
func WithOutcomeSource(src dice.Source) Option {
	return func(s *Session) { s.roller = dice.NewRoller(src) }
}

// WithFlickerSource sets the randomness for the animation.
func WithFlickerSource(src dice.Source) Option {
	return func(s *Session) { s.flicker = dice.NewRoller(src) }
}

// WithHistorySize sets how many recent totals are kept. 0 disables it.
func WithHistorySize(n int) Option {
	return func(s *Session) { s.recent = history.NewRecent(n) }
}

// New creates an idle Session.
func New(cfg dice.Config, deps Deps, opts ...Option) (*Session, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if !cfg.FaceSet().Valid() {
		return nil, errors.New("session: config must be built with dice.NewConfig")
	}
	s := &Session{
		cfg:     cfg,
		deps:    deps,
		log:     zap.NewNop(),
		results: os.Stdout,
		state:   Idle,
		running: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.roller == nil {
		s.roller = dice.NewRoller(nil)
	}
	if s.flicker == nil {
		s.flicker = dice.NewRoller(nil)
	}
	if s.recent == nil {
		s.recent = history.NewRecent(10)
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Session) Config() dice.Config { return s.cfg }

// State returns the current interaction state.
func (s *Session) State() State { return s.state }

// Running reports whether the loop should continue.
func (s *Session) Running() bool { return s.running }

// Frames returns the number of main loop frames rendered so far.
func (s *Session) Frames() int { return s.frames }

// Outcome returns a copy of the latest outcome, or nil before the first roll.
func (s *Session) Outcome() dice.Outcome {
	if s.outcome == nil {
		return nil
	}
	out := make(dice.Outcome, len(s.outcome))
	copy(out, s.outcome)
	return out
}

// RecentTotals returns the totals of this session's rolls, oldest first.
func (s *Session) RecentTotals() []int { return s.recent.Totals() }

// Run drives the main loop until quit is requested or ctx is done. It
// returns the first collaborator error; quitting is not an error.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("session started",
		zap.String("face_set", string(s.cfg.FaceSet())),
		zap.Int("count", s.cfg.Count()),
		zap.Int("history", s.recent.Capacity()))

	for s.running {
		if ctx.Err() != nil {
			s.HandleQuit()
			break
		}
		if err := s.dispatch(s.deps.Input.Poll()); err != nil {
			return err
		}
		if err := s.Render(); err != nil {
			return err
		}
		s.deps.Clock.Tick(FPS)
	}

	s.log.Info("session stopped", zap.Int("frames", s.frames), zap.Int("rolls", s.recent.Len()))
	return nil
}

// dispatch handles events in order, stopping at quit.
func (s *Session) dispatch(events []Event) error {
	for _, ev := range events {
		switch ev {
		case EventQuit:
			s.HandleQuit()
		case EventRoll:
			if err := s.HandleRollRequest(); err != nil {
				return err
			}
		default:
			s.log.Debug("ignoring unknown event", zap.Stringer("event", ev))
		}
		if !s.running {
			return nil
		}
	}
	return nil
}

// HandleQuit stops the loop after the current frame.
func (s *Session) HandleQuit() {
	if s.running {
		s.log.Debug("quit requested", zap.Stringer("state", s.state))
	}
	s.running = false
}

// HandleRollRequest animates and then rolls. It is ignored unless Idle.
func (s *Session) HandleRollRequest() error {
	if s.state != Idle {
		s.log.Debug("roll request ignored", zap.Stringer("state", s.state))
		return nil
	}
	s.state = Animating
	defer func() { s.state = Idle }()

	completed, err := s.animate()
	if err != nil {
		return err
	}
	if !completed {
		return nil
	}
	s.computeOutcome()
	return nil
}

// animate flickers random faces for AnimationDuration. Input is polled
// every frame: quit ends the animation early (completed=false) and roll
// requests are dropped.
func (s *Session) animate() (completed bool, err error) {
	set := s.cfg.FaceSet()
	start := s.deps.Clock.Now()

	for s.deps.Clock.Now().Sub(start) < AnimationDuration {
		s.deps.Surface.Clear(Background)
		for i := 0; i < s.cfg.Count(); i++ {
			img, err := s.deps.Assets.Face(set, s.flicker.Face())
			if err != nil {
				return false, fmt.Errorf("animate: %w", err)
			}
			s.deps.Surface.DrawImage(img, Slots[i])
		}
		if err := s.deps.Surface.Present(); err != nil {
			return false, fmt.Errorf("animate: %w", err)
		}
		s.deps.Clock.Tick(AnimationFPS)

		if err := s.dispatch(s.deps.Input.Poll()); err != nil {
			return false, err
		}
		if !s.running {
			s.log.Debug("animation interrupted by quit")
			return false, nil
		}
	}
	return true, nil
}

// computeOutcome draws a fresh outcome and reports it.
func (s *Session) computeOutcome() {
	out := s.roller.Roll(s.cfg.Count())
	s.outcome = out
	s.recent.Record(out)

	if _, err := fmt.Fprintf(s.results, "Rolled Results (%s): %s\n", s.cfg.FaceSet(), out); err != nil {
		s.log.Warn("writing roll result failed", zap.Error(err))
	}
	s.log.Info("rolled",
		zap.String("face_set", string(s.cfg.FaceSet())),
		zap.Ints("results", out),
		zap.Int("total", out.Total()))
}

// Render draws the current outcome, the total and the help line.
func (s *Session) Render() error {
	surf := s.deps.Surface
	surf.Clear(Background)

	if len(s.outcome) > 0 {
		for i, v := range s.outcome {
			img, err := s.deps.Assets.Face(s.cfg.FaceSet(), v)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			surf.DrawImage(img, Slots[i])
		}
		surf.DrawLabel(render.Label{
			Text:  TotalText(s.outcome),
			Size:  render.TextLarge,
			At:    TotalAt,
			Color: TotalColor,
		})
		if totals := s.recent.Totals(); len(totals) > 1 {
			surf.DrawLabel(render.Label{
				Text:  RecentText(totals),
				Size:  render.TextSmall,
				At:    RecentAt,
				Color: RecentColor,
			})
		}
	}

	surf.DrawLabel(render.Label{
		Text:   HelpText,
		Size:   render.TextNormal,
		At:     HelpAt,
		Color:  HelpColor,
		Anchor: render.AnchorCenter,
	})

	if err := surf.Present(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	s.frames++
	return nil
}

// TotalText is the summary label for o.
func TotalText(o dice.Outcome) string {
	return fmt.Sprintf("Total: %d", o.Total())
}

// RecentText lists recent totals, oldest first.
func RecentText(totals []int) string {
	parts := make([]string, len(totals))
	for i, t := range totals {
		parts[i] = strconv.Itoa(t)
	}
	return "Recent: " + strings.Join(parts, ", ")
}
