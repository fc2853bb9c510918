package app

import (
	"time"

	"github.com/dshills/tvpanel/internal/config/notify"
	"github.com/dshills/tvpanel/internal/config/registry"
	"github.com/dshills/tvpanel/internal/input/remote"
	"github.com/dshills/tvpanel/internal/notification"
)

// subscribe follows the presentation and remote settings. Flag settings
// are followed by the panel bindings and the cosmetic fixups.
func (app *Application) subscribe() {
	app.subs = append(app.subs,
		app.config.SubscribeKey(registry.KeyUIAccent, func(notify.Change) {
			app.applyAccent()
			app.requestRender()
		}),
		app.config.SubscribeKey(registry.KeyUITitle, func(c notify.Change) {
			if s, ok := c.NewValue.(string); ok {
				app.model.Title = s
				app.requestRender()
			}
		}),
		app.config.SubscribeKey("remote.keys", func(notify.Change) {
			app.remote.SetKeymap(app.keymap())
		}),
	)
}

// keymap reads the color button bindings, falling back to the defaults
// when any binding is invalid.
func (app *Application) keymap() remote.Keymap {
	var keys [4]string
	for i, k := range []string{
		registry.KeyRemoteRed,
		registry.KeyRemoteGreen,
		registry.KeyRemoteYellow,
		registry.KeyRemoteBlue,
	} {
		keys[i], _ = app.config.GetString(k)
	}
	km, err := remote.ParseKeymap(keys[0], keys[1], keys[2], keys[3])
	if err != nil {
		app.logger.Warn("using default remote keys: %v", err)
		return remote.DefaultKeymap()
	}
	return km
}

func (app *Application) applyAccent() {
	if app.renderer == nil {
		return
	}
	accent, _ := app.config.GetString(registry.KeyUIAccent)
	if err := app.renderer.SetAccent(accent); err != nil {
		app.logger.Warn("ignoring accent %q: %v", accent, err)
	}
}

func (app *Application) notificationDuration() time.Duration {
	d, err := app.config.GetDuration(registry.KeyUINotificationDuration)
	if err != nil || d <= 0 {
		return notification.DefaultDuration
	}
	return d
}

func (app *Application) hintDelay() time.Duration {
	d, err := app.config.GetDuration(registry.KeyUIHintDelay)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
