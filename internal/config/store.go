package config

import (
	"github.com/dshills/tvpanel/internal/config/notify"
)

// Read returns the current value of a flag. Unknown or non-boolean keys
// read as false.
func (c *Config) Read(key string) bool {
	v, err := c.GetBool(key)
	if err != nil {
		c.logger.Warn("read %s: %v", key, err)
		return false
	}
	return v
}

// Write records a user edit of a flag. Failures are logged, not returned:
// callers treat writes as fire-and-forget.
func (c *Config) Write(key string, value bool) {
	if err := c.Set(key, value, SourceUser); err != nil {
		c.logger.Warn("write %s: %v", key, err)
		return
	}
	if c.autoSave && c.file != nil {
		if err := c.Save(); err != nil {
			c.logger.Error("saving settings: %v", err)
		}
	}
}

// Description returns the human-readable description of a setting.
func (c *Config) Description(key string) string {
	if s := c.registry.Get(key); s != nil {
		return s.Description
	}
	return key
}

// AddChangeListener calls fn with the new value whenever the flag changes.
func (c *Config) AddChangeListener(key string, fn func(newValue bool)) *notify.Subscription {
	return c.notifier.SubscribeKey(key, func(change notify.Change) {
		if change.Type != notify.ChangeSet || change.Key != key {
			return
		}
		if v, ok := change.NewValue.(bool); ok {
			fn(v)
		}
	})
}
