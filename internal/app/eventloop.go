package app

import (
	"context"
	"errors"

	"github.com/dshills/tvpanel/internal/input/key"
	"github.com/dshills/tvpanel/internal/loop"
	"github.com/dshills/tvpanel/internal/renderer"
	"github.com/dshills/tvpanel/internal/renderer/backend"
)

// Run initializes the terminal and processes input until the user quits
// or ctx is cancelled. A normal quit returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer app.backend.Shutdown()

	app.start()
	go app.pollInput()

	err := app.loop.Run(ctx)
	app.loop.Stop()
	if errors.Is(err, loop.ErrStopped) && app.quitErr != nil {
		err = app.quitErr
	}
	// Wake the input goroutine so it sees the stopped loop.
	app.backend.Interrupt(nil)
	return err
}

// start queues the startup work: first frame, startup hint, playback
// ticks and the startup script.
func (app *Application) start() {
	app.loop.Post(func() {
		app.requestRender()

		app.hint = app.notifications.ScheduleHint(app.hintDelay())
		app.scheduleTick()

		if app.opts.ScriptPath != "" {
			if err := app.RunScript(app.opts.ScriptPath); err != nil {
				app.logger.Error("%v", err)
			}
		}
	})
}

func (app *Application) scheduleTick() {
	app.tick = app.loop.AfterFunc(TickInterval, func() {
		app.player.Tick(TickInterval)
		app.scheduleTick()
	})
}

// pollInput forwards terminal events to the loop until it stops.
func (app *Application) pollInput() {
	for {
		ev := app.backend.PollEvent()
		select {
		case <-app.loop.Done():
			return
		default:
		}
		if ev.Type == backend.EventNone || ev.Type == backend.EventInterrupt {
			continue
		}
		if !app.loop.Post(func() { app.handleEvent(ev) }) {
			return
		}
	}
}

// handleEvent handles one terminal event on the loop.
func (app *Application) handleEvent(ev backend.Event) {
	if err := app.handleBackendEvent(ev); err != nil {
		app.requestQuit(err)
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.requestRender()
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	default:
		return nil
	}
}

// handleKeyEvent turns a terminal key into the keydown, keypress and
// keyup sequence a remote delivers and dispatches each one.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	if ev.Key == backend.KeyCtrlC {
		return ErrQuit
	}
	for _, ke := range app.remote.Translate(ev) {
		app.Dispatch(ke)
	}
	return nil
}

// Dispatch delivers one key event through the capture chain and the
// player's default handling.
func (app *Application) Dispatch(e key.Event) {
	app.dispatcher.Dispatch(e)
	app.requestRender()
}

// requestRender marks the frame stale. The loop repaints once its queue
// is empty.
func (app *Application) requestRender() {
	app.renderPending = true
}

// flush paints the pending frame.
func (app *Application) flush() {
	if !app.renderPending || app.renderer == nil {
		return
	}
	app.renderPending = false
	app.renderer.Render(renderer.Scene{
		Player: app.player.State(),
		Panel:  app.view,
		Toasts: app.notifications.Active(),
	})
}
