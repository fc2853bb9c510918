// Package app wires the player, the settings panel, the remote input
// routers and the notification surface together and runs them on a
// single event loop.
package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/tvpanel/internal/config"
	"github.com/dshills/tvpanel/internal/config/notify"
	"github.com/dshills/tvpanel/internal/cosmetics"
	"github.com/dshills/tvpanel/internal/focus"
	"github.com/dshills/tvpanel/internal/input/dispatch"
	"github.com/dshills/tvpanel/internal/input/remote"
	"github.com/dshills/tvpanel/internal/logging"
	"github.com/dshills/tvpanel/internal/loop"
	"github.com/dshills/tvpanel/internal/notification"
	"github.com/dshills/tvpanel/internal/panel"
	"github.com/dshills/tvpanel/internal/player"
	"github.com/dshills/tvpanel/internal/renderer"
	"github.com/dshills/tvpanel/internal/renderer/backend"
	"github.com/dshills/tvpanel/internal/script"
)

// Defaults for the simulated video.
const (
	DefaultTitle  = "Big Buck Bunny"
	DefaultLength = 9*time.Minute + 56*time.Second
	TickInterval  = time.Second
)

// Application is the central coordinator. Apart from Run, Shutdown and
// the input goroutine, every method runs on the loop goroutine.
type Application struct {
	opts   Options
	logger *logging.Logger

	config *config.Config
	loop   *loop.Loop

	player     *player.Player
	dispatcher *dispatch.Dispatcher
	focus      *focus.Engine
	remote     *remote.Adapter

	model *panel.Model
	view  *panel.View
	panel *panel.Controller

	notifications *notification.Center
	cosmetics     *cosmetics.Installer
	console       *script.Console

	backend  backend.Backend
	renderer *renderer.Renderer

	subs []*notify.Subscription

	renderPending bool
	tick          loop.Timer
	hint          loop.Timer

	quitOnce sync.Once
	quitErr  error

	running      atomic.Bool
	shutdownOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file. Empty runs on defaults and
	// environment only.
	ConfigPath string

	// ScriptPath is a Lua file run once the UI is up.
	ScriptPath string

	// Title and Length describe the simulated video.
	Title  string
	Length time.Duration

	// Backend is the terminal. Required by Run.
	Backend backend.Backend

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger

	// Clock drives loop timers. Nil uses the real clock.
	Clock loop.Clock

	// Watch enables live reload of the settings file.
	Watch bool

	// AutoSave persists panel edits to the settings file.
	AutoSave bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Length <= 0 {
		opts.Length = DefaultLength
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	app := &Application{
		opts:    opts,
		logger:  opts.Logger.WithComponent("app"),
		backend: opts.Backend,
	}

	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the configuration store.
func (app *Application) Config() *config.Config {
	return app.config
}

// Loop returns the event loop.
func (app *Application) Loop() *loop.Loop {
	return app.loop
}

// Player returns the host player.
func (app *Application) Player() *player.Player {
	return app.player
}

// Panel returns the visibility controller of the settings panel.
func (app *Application) Panel() *panel.Controller {
	return app.panel
}

// View returns the settings panel view.
func (app *Application) View() *panel.View {
	return app.view
}

// Notifications returns the notification center.
func (app *Application) Notifications() *notification.Center {
	return app.notifications
}

// Console returns the script console.
func (app *Application) Console() *script.Console {
	return app.console
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown stops the loop and releases every component. Safe to call
// more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		app.loop.Stop()
		for _, sub := range app.subs {
			sub.Unsubscribe()
		}
		app.subs = nil
		if app.tick != nil {
			app.tick.Stop()
		}
		if app.hint != nil {
			app.hint.Stop()
		}
		app.cosmetics.Close()
		app.console.Close()
		app.model.Close()
		app.config.Close()
		app.logger.Info("shutdown complete")
	})
}

// requestQuit ends Run with err.
func (app *Application) requestQuit(err error) {
	app.quitOnce.Do(func() {
		app.quitErr = err
		app.loop.Stop()
	})
}
