package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrSettingAlreadyRegistered is returned when attempting to register a duplicate setting.
var ErrSettingAlreadyRegistered = errors.New("setting already registered")

// Registry maintains all known settings definitions.
type Registry struct {
	mu       sync.RWMutex
	settings map[string]*Setting
	order    []*Setting
}

// New creates a new settings registry.
func New() *Registry {
	return &Registry{
		settings: make(map[string]*Setting),
	}
}

// NewWithDefaults creates a registry with the built-in settings.
func NewWithDefaults() *Registry {
	r := New()
	r.RegisterDefaults()
	return r
}

// Register adds a setting definition to the registry.
// Returns an error if a setting with the same path already exists.
func (r *Registry) Register(setting Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[setting.Path]; exists {
		return fmt.Errorf("%w: %s", ErrSettingAlreadyRegistered, setting.Path)
	}

	s := &setting
	r.settings[setting.Path] = s
	r.order = append(r.order, s)
	return nil
}

// MustRegister registers a setting and panics on error.
func (r *Registry) MustRegister(setting Setting) {
	if err := r.Register(setting); err != nil {
		panic(err)
	}
}

// Get returns the setting definition for the given path, or nil.
func (r *Registry) Get(path string) *Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings[path]
}

// Has checks if a setting is registered.
func (r *Registry) Has(path string) bool {
	return r.Get(path) != nil
}

// All returns all registered settings in registration order.
func (r *Registry) All() []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Setting, len(r.order))
	copy(result, r.order)
	return result
}

// Group returns the settings of a group in registration order.
func (r *Registry) Group(g Group) []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Setting
	for _, s := range r.order {
		if s.Group == g {
			result = append(result, s)
		}
	}
	return result
}

// Flags returns the keys of every boolean setting in registration order.
func (r *Registry) Flags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []string
	for _, s := range r.order {
		if s.IsFlag() {
			keys = append(keys, s.Path)
		}
	}
	return keys
}

// Search finds settings whose path or description contains query.
func (r *Registry) Search(query string) []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(query)
	var result []*Setting
	for _, s := range r.order {
		if strings.Contains(strings.ToLower(s.Path), query) ||
			strings.Contains(strings.ToLower(s.Description), query) {
			result = append(result, s)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

// Defaults returns a flat map of all default values keyed by path.
func (r *Registry) Defaults() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]any, len(r.settings))
	for path, s := range r.settings {
		if s.Default != nil {
			result[path] = s.Default
		}
	}
	return result
}

// Validate checks if a value is valid for a setting.
// Unknown settings are accepted; callers decide whether to keep them.
func (r *Registry) Validate(path string, value any) error {
	s := r.Get(path)
	if s == nil {
		return nil
	}
	return s.Validate(value)
}
