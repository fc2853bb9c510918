// Package binding ties settings panel checkboxes to configuration flags.
//
// A bound checkbox mirrors one flag. User edits write through to the
// store; store notifications update the checkbox without writing back, so
// a write never loops back into another write.
package binding

import (
	"github.com/dshills/tvpanel/internal/config/notify"
)

// LabelPrefix separates the checkbox glyph from its description.
const LabelPrefix = "\u00a0"

// Store is the configuration surface a binding needs.
type Store interface {
	Read(key string) bool
	Write(key string, value bool)
	Description(key string) string
	AddChangeListener(key string, fn func(newValue bool)) *notify.Subscription
}

// Checkbox is a two-state control bound to a flag.
type Checkbox struct {
	key     string
	label   string
	checked bool
	store   Store

	observers []func(checked bool)
}

// Bind creates a checkbox for key, initialized from the store. The initial
// sync does not notify observers. The returned subscription detaches the
// checkbox from store notifications.
func Bind(store Store, key string) (*Checkbox, *notify.Subscription) {
	cb := &Checkbox{
		key:     key,
		label:   LabelPrefix + store.Description(key),
		checked: store.Read(key),
		store:   store,
	}
	sub := store.AddChangeListener(key, cb.apply)
	return cb, sub
}

// Key returns the bound flag key.
func (c *Checkbox) Key() string {
	return c.key
}

// Label returns the label captured at bind time.
func (c *Checkbox) Label() string {
	return c.label
}

// Checked reports the displayed state.
func (c *Checkbox) Checked() bool {
	return c.checked
}

// Click toggles the checkbox as a user edit.
func (c *Checkbox) Click() {
	c.SetChecked(!c.checked)
}

// SetChecked applies a user edit: the new state is shown and written to
// the store. Setting the current state does nothing.
func (c *Checkbox) SetChecked(v bool) {
	if v == c.checked {
		return
	}
	c.checked = v
	c.store.Write(c.key, v)
	c.notify()
}

// OnChange registers fn to be called whenever the displayed state changes,
// from either a user edit or a store notification.
func (c *Checkbox) OnChange(fn func(checked bool)) {
	c.observers = append(c.observers, fn)
}

// apply mirrors a store notification. It never writes to the store.
func (c *Checkbox) apply(v bool) {
	if v == c.checked {
		return
	}
	c.checked = v
	c.notify()
}

func (c *Checkbox) notify() {
	for _, fn := range c.observers {
		fn(c.checked)
	}
}
