package app

import (
	"context"

	"github.com/dshills/tvpanel/internal/config"
	"github.com/dshills/tvpanel/internal/config/registry"
	"github.com/dshills/tvpanel/internal/cosmetics"
	"github.com/dshills/tvpanel/internal/focus"
	"github.com/dshills/tvpanel/internal/input/dispatch"
	"github.com/dshills/tvpanel/internal/input/remote"
	"github.com/dshills/tvpanel/internal/loop"
	"github.com/dshills/tvpanel/internal/notification"
	"github.com/dshills/tvpanel/internal/panel"
	"github.com/dshills/tvpanel/internal/player"
	"github.com/dshills/tvpanel/internal/renderer"
	"github.com/dshills/tvpanel/internal/router"
	"github.com/dshills/tvpanel/internal/script"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 10),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initLoop,
		b.initConfig,
		b.initPlayer,
		b.initDispatcher,
		b.initPanel,
		b.initRouters,
		b.initRemote,
		b.initNotifications,
		b.initCosmetics,
		b.initScript,
		b.initRenderer,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.subscribe()
	return nil
}

func (b *bootstrapper) initLoop() error {
	b.app.loop = loop.New(
		loop.WithClock(b.opts.Clock),
		loop.WithIdle(b.app.flush),
		loop.WithLogger(b.app.opts.Logger.WithComponent("loop")),
	)
	b.initOrder = append(b.initOrder, "loop")
	return nil
}

// initConfig loads settings. A broken settings file is not fatal: the
// application starts on defaults and environment values.
func (b *bootstrapper) initConfig() error {
	opts := []config.Option{
		config.WithExecutor(b.app.loop),
		config.WithWatcher(b.opts.Watch),
		config.WithAutoSave(b.opts.AutoSave),
		config.WithLogger(b.app.opts.Logger.WithComponent("config")),
	}
	if b.opts.ConfigPath != "" {
		opts = append(opts, config.WithPath(b.opts.ConfigPath))
	}

	b.app.config = config.New(opts...)
	if err := b.app.config.Load(context.Background()); err != nil {
		b.app.logger.Warn("using default settings: %v", err)
	}
	b.initOrder = append(b.initOrder, "config")
	return nil
}

func (b *bootstrapper) initPlayer() error {
	b.app.player = player.New(b.opts.Title, b.opts.Length,
		player.WithOnQuit(func() { b.app.requestQuit(ErrQuit) }),
		player.WithOnChange(b.app.requestRender),
		player.WithLogger(b.app.opts.Logger.WithComponent("player")),
	)
	b.initOrder = append(b.initOrder, "player")
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	b.app.dispatcher = dispatch.New(
		dispatch.WithDefaultHandler(b.app.player),
		dispatch.WithLogger(b.app.opts.Logger.WithComponent("dispatch")),
	)
	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

func (b *bootstrapper) initPanel() error {
	app := b.app
	logger := app.opts.Logger.WithComponent("panel")

	app.focus = focus.New(focus.WithLogger(app.opts.Logger.WithComponent("focus")))
	app.model = panel.NewModel(app.config, panelLayout(app.config))

	view, err := panel.NewView(app.model, app.dispatcher, app.focus, logger)
	if err != nil {
		return &InitError{Component: "panel", Err: err}
	}
	app.view = view

	app.panel = panel.NewController(view, panel.WithLogger(logger))
	app.panel.OnChange(func(bool) { app.requestRender() })
	for _, cb := range app.model.Checkboxes() {
		cb.OnChange(func(bool) { app.requestRender() })
	}
	b.initOrder = append(b.initOrder, "panel")
	return nil
}

func (b *bootstrapper) initRouters() error {
	logger := b.app.opts.Logger.WithComponent("router")
	global := router.NewGlobal(b.app.panel, logger)
	local := router.NewPanel(b.app.panel, b.app.focus, b.app.focus, logger)
	router.Install(b.app.dispatcher, b.app.view.Node(), global, local)
	b.initOrder = append(b.initOrder, "routers")
	return nil
}

func (b *bootstrapper) initRemote() error {
	b.app.remote = remote.New(b.app.keymap())
	b.initOrder = append(b.initOrder, "remote")
	return nil
}

func (b *bootstrapper) initNotifications() error {
	b.app.notifications = notification.New(b.app.loop,
		notification.WithDefaultDuration(b.app.notificationDuration()),
		notification.WithOnChange(b.app.requestRender),
		notification.WithLogger(b.app.opts.Logger.WithComponent("notification")),
	)
	b.initOrder = append(b.initOrder, "notifications")
	return nil
}

// initCosmetics installs UI fixups. Failures are logged by the installer
// and never abort startup.
func (b *bootstrapper) initCosmetics() error {
	b.app.cosmetics = cosmetics.NewInstaller(b.app.opts.Logger.WithComponent("cosmetics"))
	for _, f := range cosmetics.Defaults(b.app.config, b.app.player) {
		b.app.cosmetics.Install(f)
	}
	b.initOrder = append(b.initOrder, "cosmetics")
	return nil
}

func (b *bootstrapper) initScript() error {
	logger := b.app.opts.Logger.WithComponent("script")
	b.app.console = script.New(b.app,
		script.WithLogger(logger),
		script.WithPrint(func(s string) { logger.Info("%s", s) }),
	)
	b.initOrder = append(b.initOrder, "script")
	return nil
}

func (b *bootstrapper) initRenderer() error {
	if b.app.backend == nil {
		return nil
	}
	b.app.renderer = renderer.New(b.app.backend)
	b.app.applyAccent()
	b.initOrder = append(b.initOrder, "renderer")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "script":
			b.app.console.Close()
		case "cosmetics":
			b.app.cosmetics.Close()
		case "panel":
			b.app.model.Close()
		case "config":
			b.app.config.Close()
		case "loop":
			b.app.loop.Stop()
		}
	}
}

// panelLayout lists the flags of each panel section in registry order.
func panelLayout(cfg *config.Config) panel.Layout {
	reg := cfg.Registry()
	layout := panel.Layout{Footer: panel.DefaultFooter}
	layout.Title, _ = cfg.GetString(registry.KeyUITitle)
	for _, s := range reg.Group(registry.GroupGeneral) {
		layout.General = append(layout.General, s.Path)
	}
	for _, s := range reg.Group(registry.GroupSponsor) {
		layout.Sponsor = append(layout.Sponsor, s.Path)
	}
	return layout
}
