package panel

import (
	"github.com/dshills/tvpanel/internal/binding"
	"github.com/dshills/tvpanel/internal/config/notify"
)

// DefaultFooter is the line shown under the controls.
const DefaultFooter = "Sponsor segments skipping - https://sponsor.ajay.app"

// Section is a group of checkboxes rendered together.
type Section struct {
	Name   string
	Indent int
	Rows   []*binding.Checkbox
}

// Model is the content of the settings panel.
type Model struct {
	Title    string
	Sections []Section
	Footer   string

	subs []*notify.Subscription
}

// Layout lists the flag keys of each section.
type Layout struct {
	Title   string
	General []string
	Sponsor []string
	Footer  string
}

// NewModel binds one checkbox per flag in layout. The sponsor section is
// indented under the general one.
func NewModel(store binding.Store, layout Layout) *Model {
	m := &Model{
		Title:  layout.Title,
		Footer: layout.Footer,
	}
	m.Sections = append(m.Sections,
		m.bindSection(store, "general", 0, layout.General),
		m.bindSection(store, "sponsor", 2, layout.Sponsor),
	)
	return m
}

func (m *Model) bindSection(store binding.Store, name string, indent int, keys []string) Section {
	s := Section{Name: name, Indent: indent}
	for _, key := range keys {
		cb, sub := binding.Bind(store, key)
		s.Rows = append(s.Rows, cb)
		m.subs = append(m.subs, sub)
	}
	return s
}

// Checkboxes returns every checkbox in display order.
func (m *Model) Checkboxes() []*binding.Checkbox {
	var out []*binding.Checkbox
	for _, s := range m.Sections {
		out = append(out, s.Rows...)
	}
	return out
}

// Checkbox returns the checkbox bound to key, or nil.
func (m *Model) Checkbox(key string) *binding.Checkbox {
	for _, cb := range m.Checkboxes() {
		if cb.Key() == key {
			return cb
		}
	}
	return nil
}

// Close detaches every checkbox from store notifications.
func (m *Model) Close() {
	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
	m.subs = nil
}
