// Package notepub turns a directory of Markdown notes into a static site.
// Only notes whose front matter tags include "public" are published. The
// publisher renders one article page per public note plus a year-grouped
// index, tag listings, an RSS feed and a sitemap, then runs a deploy command.
// A watcher republishes whenever the notes directory changes.
package notepub

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/color"
	"github.com/labstack/gommon/log"
)

// App wires the renderer, publisher, history store and watcher together.
type App struct {
	Config    Config
	Logger    *log.Logger
	Renderer  *Renderer
	Publisher *Publisher
	History   *HistoryStore
	Echo      *echo.Echo

	publisherOpts []PublisherOption
	noHistory     bool
}

// Option configures additional App behavior.
type Option func(*App)

// WithLog sets the logger used by every component.
func WithLog(l *log.Logger) Option {
	return func(a *App) { a.Logger = l }
}

// WithPublisherOptions passes options through to the Publisher.
func WithPublisherOptions(opts ...PublisherOption) Option {
	return func(a *App) { a.publisherOpts = append(a.publisherOpts, opts...) }
}

// WithoutHistory disables the publish history database.
func WithoutHistory() Option {
	return func(a *App) { a.noHistory = true }
}

// New performs startup: it compiles the templates, creates the output tree
// and opens the history database. Any error here is fatal.
func New(cfg Config, opts ...Option) (*App, error) {
	cfg.setDefaults()
	a := &App{Config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = NewLogger(os.Stdout, "info")
	}

	r, err := LoadRenderer(cfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("notepub: %w", err)
	}
	a.Renderer = r

	if err := EnsureOutputDirs(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("notepub: %w", err)
	}

	pubOpts := []PublisherOption{WithLogger(a.Logger)}
	if !a.noHistory {
		h, err := NewHistoryStore(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("notepub: open history: %w", err)
		}
		a.History = h
		pubOpts = append(pubOpts, WithRecorder(h))
	}
	pubOpts = append(pubOpts, a.publisherOpts...)
	a.Publisher = NewPublisher(cfg, r, pubOpts...)
	return a, nil
}

// Publish runs a single cycle.
func (a *App) Publish(ctx context.Context) (Run, error) {
	return a.Publisher.Publish(ctx)
}

// Watch republishes on every change below the notes directory until ctx is
// done. Bursts of events are coalesced so at most one cycle runs at a time
// and at most one more is queued behind it. With publishFirst a cycle runs
// before any event arrives.
func (a *App) Watch(ctx context.Context, publishFirst bool) error {
	w, err := NewWatcher(a.Config.NotesDir, a.Publisher.walker, a.Logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := NewScheduler(PublishJob(a.Publisher))
	done := make(chan struct{})
	go func() {
		defer close(done)
		sched.Run(ctx)
	}()
	if publishFirst {
		sched.Trigger()
	}

	fmt.Fprintln(a.Logger.Output(), color.Green(fmt.Sprintf("Watching for changes in %s ...", a.Config.NotesDir)))
	err = w.Run(ctx, func(fsnotify.Event) { sched.Trigger() })
	cancel()
	<-done
	return err
}

// Close releases the history database.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}
