package app

import (
	"time"

	"github.com/dshills/tvpanel/internal/config"
	"github.com/dshills/tvpanel/internal/script"
)

// ShowPanel opens or closes the settings panel.
func (app *Application) ShowPanel(visible bool) {
	app.panel.SetVisible(visible)
}

// TogglePanel flips the settings panel.
func (app *Application) TogglePanel() {
	app.panel.Toggle()
}

// PanelVisible reports whether the settings panel is open.
func (app *Application) PanelVisible() bool {
	return app.panel.Visible()
}

// Notify shows a toast. A non-positive duration uses the configured
// notification duration.
func (app *Application) Notify(text string, duration time.Duration) string {
	if duration <= 0 {
		duration = app.notificationDuration()
	}
	return app.notifications.Notify(text, duration)
}

// ConfigGet returns the current value of a setting.
func (app *Application) ConfigGet(key string) (any, bool) {
	return app.config.Get(key)
}

// ConfigSet changes a setting on behalf of a script and persists it when
// auto-save is on.
func (app *Application) ConfigSet(key string, value any) error {
	if err := app.config.Set(key, value, config.SourceScript); err != nil {
		return err
	}
	if app.opts.AutoSave && app.config.Path() != "" {
		if err := app.config.Save(); err != nil {
			app.logger.Warn("saving settings: %v", err)
		}
	}
	return nil
}

// RunScript runs a Lua file on the console.
func (app *Application) RunScript(path string) error {
	if err := app.console.DoFile(path); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	return nil
}

var _ script.API = (*Application)(nil)
