package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/dshills/tvpanel/internal/config/loader"
	"github.com/dshills/tvpanel/internal/config/notify"
	"github.com/dshills/tvpanel/internal/config/registry"
	"github.com/dshills/tvpanel/internal/config/watcher"
	"github.com/dshills/tvpanel/internal/logging"
)

// Change sources.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceUser    = "user"
	SourceScript  = "script"
)

// Config is the configuration store.
type Config struct {
	mu sync.RWMutex

	registry *registry.Registry
	values   map[string]any

	notifier *notify.Notifier
	file     *loader.FileLoader
	fs       loader.FileSystem
	watcher  *watcher.Watcher
	logger   *logging.Logger

	path          string
	envPrefix     string
	executor      notify.Executor
	enableWatcher bool
	autoSave      bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the settings file path. The format follows the extension.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem replaces the OS file system, mainly for tests.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithExecutor delivers change notifications through exec.
func WithExecutor(exec notify.Executor) Option {
	return func(c *Config) {
		c.executor = exec
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithAutoSave persists the settings file after every flag write.
func WithAutoSave(enable bool) Option {
	return func(c *Config) {
		c.autoSave = enable
	}
}

// WithEnvPrefix sets the environment variable prefix. Empty disables env.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithRegistry replaces the built-in settings registry.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Config) {
		c.registry = r
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// New creates a new Config instance with the given options.
// Values start at registry defaults until Load is called.
func New(opts ...Option) *Config {
	c := &Config{
		envPrefix: loader.DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = registry.NewWithDefaults()
	}
	if c.fs == nil {
		c.fs = loader.DefaultFS()
	}
	if c.path != "" {
		c.file = loader.NewFileLoaderWithFS(c.fs, c.path)
	}

	var notifyOpts []notify.Option
	if c.executor != nil {
		notifyOpts = append(notifyOpts, notify.WithExecutor(c.executor))
	}
	c.notifier = notify.New(notifyOpts...)
	c.values = c.registry.Defaults()

	return c
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tvpanel", "settings.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "settings.toml"
	}
	return filepath.Join(home, ".config", "tvpanel", "settings.toml")
}

// Load layers the settings file and environment over the defaults and
// starts the file watcher when enabled. Load does not notify: it runs
// before any control is bound.
func (c *Config) Load(_ context.Context) error {
	values := c.registry.Defaults()

	if c.file != nil {
		data, err := c.file.Load()
		if err != nil {
			return err
		}
		c.apply(values, loader.Flatten(data), SourceFile)
	}

	if c.envPrefix != "" {
		env, err := loader.NewEnvLoader(c.envPrefix, c.keys()).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		c.apply(values, env, SourceEnv)
	}

	c.mu.Lock()
	c.values = values
	c.mu.Unlock()

	if c.enableWatcher && c.file != nil {
		if err := c.startWatcher(); err != nil {
			c.logger.Warn("live reload disabled: %v", err)
		}
	}
	return nil
}

// apply validates src entries and copies the valid ones into dst.
func (c *Config) apply(dst, src map[string]any, source string) {
	for key, value := range src {
		setting := c.registry.Get(key)
		if setting == nil {
			c.logger.Warn("ignoring unknown setting %q from %s", key, source)
			continue
		}
		value = normalize(value)
		if err := setting.Validate(value); err != nil {
			c.logger.Warn("ignoring %s from %s: %v", key, source, err)
			continue
		}
		dst[key] = value
	}
}

func (c *Config) keys() []string {
	all := c.registry.All()
	keys := make([]string, len(all))
	for i, s := range all {
		keys[i] = s.Path
	}
	return keys
}

func (c *Config) startWatcher() error {
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		c.logger.Warn("settings watcher: %v", err)
	}))
	if err != nil {
		return err
	}
	if err := w.Watch(c.file.Path()); err != nil {
		_ = w.Close()
		return err
	}
	w.OnChange(c.handleFileChange)
	w.Start()

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
	return nil
}

// handleFileChange reloads the settings file after an external edit.
func (c *Config) handleFileChange(event watcher.Event) {
	if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
		c.logger.Info("settings file %s: %s, keeping current values", event.Path, event.Op)
		return
	}
	if err := c.Reload(); err != nil {
		c.logger.Warn("reloading %s: %v", event.Path, err)
	}
}

// Reload re-reads the settings file and notifies every key whose value
// changed. Keys missing from the file keep their current value.
func (c *Config) Reload() error {
	if c.file == nil {
		return ErrNoFile
	}
	data, err := c.file.Load()
	if err != nil {
		return err
	}

	incoming := make(map[string]any)
	c.apply(incoming, loader.Flatten(data), SourceFile)

	batch := c.notifier.NewBatch()
	c.mu.Lock()
	keys := sortedKeys(incoming)
	for _, key := range keys {
		old := c.values[key]
		if equal(old, incoming[key]) {
			continue
		}
		c.values[key] = incoming[key]
		batch.Set(key, old, incoming[key], SourceFile)
	}
	c.mu.Unlock()

	if batch.Len() > 0 {
		c.logger.Info("reloaded %d setting(s) from %s", batch.Len(), c.file.Path())
	}
	batch.Commit()
	return nil
}

// Close shuts down the configuration system.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
	c.notifier.Close()
}

// Registry returns the settings registry.
func (c *Config) Registry() *registry.Registry {
	return c.registry
}

// Path returns the settings file path, or "" when none is configured.
func (c *Config) Path() string {
	return c.path
}

// Get returns the raw value for key.
func (c *Config) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(key string) (bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Key: key, Expected: "bool", Actual: fmt.Sprintf("%T", v)}
	}
	return b, nil
}

// GetString returns a string setting.
func (c *Config) GetString(key string) (string, error) {
	v, ok := c.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Key: key, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

// GetDuration returns a duration setting.
func (c *Config) GetDuration(key string) (time.Duration, error) {
	s, err := c.GetString(key)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, &TypeError{Key: key, Expected: "duration", Actual: s}
	}
	return d, nil
}

// Set validates and stores value, then notifies observers if it changed.
func (c *Config) Set(key string, value any, source string) error {
	setting := c.registry.Get(key)
	if setting == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	value = normalize(value)
	if err := setting.Validate(value); err != nil {
		return &ValidationError{Key: key, Value: value, Err: err}
	}

	c.mu.Lock()
	old := c.values[key]
	if equal(old, value) {
		c.mu.Unlock()
		return nil
	}
	c.values[key] = value
	c.mu.Unlock()

	c.logger.Debug("%s = %v (%s)", key, value, source)
	c.notifier.NotifySet(key, old, value, source)
	return nil
}

// Save writes every setting to the settings file in its format.
func (c *Config) Save() error {
	if c.file == nil {
		return ErrNoFile
	}
	c.mu.RLock()
	snapshot := make(map[string]any, len(c.values))
	for k, v := range c.values {
		snapshot[k] = v
	}
	c.mu.RUnlock()

	return c.file.Save(loader.Unflatten(snapshot))
}

// Subscribe registers an observer for all configuration changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribeKey registers an observer for changes to one key.
func (c *Config) SubscribeKey(key string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribeKey(key, observer)
}

// normalize converts loader-specific representations into the types the
// registry validates against.
func normalize(v any) any {
	switch t := v.(type) {
	case time.Duration:
		return t.String()
	default:
		return v
	}
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
