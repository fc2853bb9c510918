// Package cosmetics installs non-essential adjustments to the player.
//
// Nothing installed here may stop the application from starting: every
// installer runs under panic recovery and failures are only logged.
package cosmetics

import (
	"fmt"

	"github.com/dshills/tvpanel/internal/config/notify"
	"github.com/dshills/tvpanel/internal/config/registry"
	"github.com/dshills/tvpanel/internal/logging"
	"github.com/dshills/tvpanel/internal/player"
)

// Store is the configuration surface cosmetics read.
type Store interface {
	Read(key string) bool
	AddChangeListener(key string, fn func(newValue bool)) *notify.Subscription
}

// Host is the part of the player cosmetics adjust.
type Host interface {
	SetLogoHidden(hidden bool)
	RemoveClass(name string)
	ObserveClasses(fn func()) (cancel func())
}

// Fixup installs one adjustment and returns a function that undoes it.
type Fixup struct {
	Name    string
	Install func() (func(), error)
}

// Installer runs fixups and remembers how to undo them.
type Installer struct {
	logger   *logging.Logger
	undo     []func()
	failures []error
}

// NewInstaller creates an installer.
func NewInstaller(logger *logging.Logger) *Installer {
	return &Installer{logger: logger}
}

// Install runs f. A panic or error is logged and recorded; it never
// propagates.
func (in *Installer) Install(f Fixup) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%s: panic: %v", f.Name, r)
			in.failures = append(in.failures, err)
			in.logger.Error("error setting up UI fixes: %v", err)
			ok = false
		}
	}()

	undo, err := f.Install()
	if err != nil {
		err = fmt.Errorf("%s: %w", f.Name, err)
		in.failures = append(in.failures, err)
		in.logger.Error("error setting up UI fixes: %v", err)
		return false
	}
	if undo != nil {
		in.undo = append(in.undo, undo)
	}
	in.logger.Debug("installed %s", f.Name)
	return true
}

// Failures returns the errors recorded by Install.
func (in *Installer) Failures() []error {
	return in.failures
}

// Close undoes installed fixups in reverse order.
func (in *Installer) Close() {
	for i := len(in.undo) - 1; i >= 0; i-- {
		in.undo[i]()
	}
	in.undo = nil
}

// HideLogo keeps the player logo in sync with the hideLogo flag.
func HideLogo(store Store, host Host) Fixup {
	return Fixup{
		Name: "hide-logo",
		Install: func() (func(), error) {
			host.SetLogoHidden(store.Read(registry.KeyHideLogo))
			sub := store.AddChangeListener(registry.KeyHideLogo, host.SetLogoHidden)
			return sub.Unsubscribe, nil
		},
	}
}

// StripQualityRoot removes the quality class whenever the player sets it.
func StripQualityRoot(host Host) Fixup {
	return Fixup{
		Name: "strip-quality-root",
		Install: func() (func(), error) {
			cancel := host.ObserveClasses(func() {
				host.RemoveClass(player.ClassQualityRoot)
			})
			host.RemoveClass(player.ClassQualityRoot)
			return cancel, nil
		},
	}
}

// Defaults returns the fixups installed at startup.
func Defaults(store Store, host Host) []Fixup {
	return []Fixup{
		StripQualityRoot(host),
		HideLogo(store, host),
	}
}
