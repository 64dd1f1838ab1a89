package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"dicesim/internal/dice"
	"dicesim/internal/logging"
	"dicesim/internal/pacing"
	"dicesim/internal/render"
	"dicesim/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"go.uber.org/zap"
)

// AppID identifies the application to fyne's preferences store.
const AppID = "com.github.dicesim"

// IconProvider supplies the window icon in addition to the faces.
type IconProvider interface {
	session.AssetProvider
	Icon() image.Image
}

// Options configure a window run.
type Options struct {
	Config  dice.Config
	Assets  IconProvider
	Logger  *zap.Logger
	Results io.Writer

	OutcomeSource dice.Source
	FlickerSource dice.Source
	HistorySize   int
}

// iconResource encodes img as a PNG resource fyne can use as an icon.
func iconResource(img image.Image) (fyne.Resource, error) {
	if img == nil {
		return nil, errors.New("no icon image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return fyne.NewStaticResource("DIE.png", buf.Bytes()), nil
}

// sessionOptions translates Options into session options.
func (o Options) sessionOptions(log *zap.Logger) []session.Option {
	opts := []session.Option{
		session.WithLogger(log),
		session.WithHistorySize(o.HistorySize),
	}
	if o.Results != nil {
		opts = append(opts, session.WithResultWriter(o.Results))
	}
	if o.OutcomeSource != nil {
		opts = append(opts, session.WithOutcomeSource(o.OutcomeSource))
	}
	if o.FlickerSource != nil {
		opts = append(opts, session.WithFlickerSource(o.FlickerSource))
	}
	return opts
}

// sessionStarter launches the session loop at most once and collects its
// result. If the app stops before start is called, wait reports nil.
type sessionStarter struct {
	once sync.Once
	errc chan error
}

func newSessionStarter() *sessionStarter {
	return &sessionStarter{errc: make(chan error, 1)}
}

// start runs run on a new goroutine and calls done when it returns.
func (s *sessionStarter) start(run func() error, done func()) {
	s.once.Do(func() {
		go func() {
			s.errc <- run()
			done()
		}()
	})
}

// wait blocks until the loop started by start has returned.
func (s *sessionStarter) wait() error {
	s.once.Do(func() { s.errc <- nil })
	return <-s.errc
}

// Run opens the window and blocks until the session ends. It must be called
// from the main goroutine. The session loop runs on its own goroutine, is
// started only once the fyne run loop is up, and reaches the window only
// through fyne.Do.
func Run(ctx context.Context, opts Options) error {
	if opts.Assets == nil {
		return errors.New("ui: no assets")
	}
	log := logging.OrNop(opts.Logger)

	icon, err := iconResource(opts.Assets.Icon())
	if err != nil {
		return err
	}

	a := app.NewWithID(AppID)
	a.SetIcon(icon)
	a.Settings().SetTheme(NewDiceTheme(a.Settings().Theme()))

	w := a.NewWindow(session.Title)
	w.SetIcon(icon)
	w.SetPadded(false)
	w.SetFixedSize(true)
	w.Resize(fyne.NewSize(session.WindowWidth, session.WindowHeight))

	view := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, session.WindowWidth, session.WindowHeight)))
	view.FillMode = canvas.ImageFillStretch
	view.SetMinSize(fyne.NewSize(session.WindowWidth, session.WindowHeight))
	w.SetContent(view)

	frame, err := render.NewFrame(session.WindowWidth, session.WindowHeight, func(img image.Image) error {
		fyne.Do(func() {
			view.Image = img
			view.Refresh()
		})
		return nil
	})
	if err != nil {
		return err
	}
	defer frame.Close()

	keys := NewKeyQueue()
	bindKeys(w, keys)

	sess, err := session.New(opts.Config, session.Deps{
		Assets:  opts.Assets,
		Surface: frame,
		Input:   keys,
		Clock:   pacing.NewFrameClock(),
	}, opts.sessionOptions(log)...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	starter := newSessionStarter()
	a.Lifecycle().SetOnStarted(func() {
		starter.start(func() error {
			err := sess.Run(ctx)
			if err != nil {
				log.Error("session failed", zap.Error(err))
			}
			return err
		}, func() { fyne.Do(a.Quit) })
	})

	w.ShowAndRun()
	cancel()
	return starter.wait()
}
