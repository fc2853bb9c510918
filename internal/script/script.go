// Package script exposes the panel control surface to Lua.
//
// The console runs on the UI loop. Scripts get a restricted standard
// library (base, table, string, math) plus:
//
//	show_panel(visible)        force the panel open or closed
//	toggle_panel()             flip the panel
//	panel_visible() -> bool
//	notify(text [, ms]) -> id  post a notification
//	config_get(key) -> value   nil for unknown keys
//	config_set(key, value)     returns true, or nil and an error message
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tvpanel/internal/logging"
)

// DefaultTimeout bounds a single script execution.
const DefaultTimeout = 5 * time.Second

// Errors for console operations.
var (
	// ErrClosed is returned when running code on a closed console.
	ErrClosed = errors.New("script console is closed")
)

// API is the application surface scripts can drive.
type API interface {
	ShowPanel(visible bool)
	TogglePanel()
	PanelVisible() bool
	Notify(text string, duration time.Duration) string
	ConfigGet(key string) (any, bool)
	ConfigSet(key string, value any) error
}

// Console is a sandboxed Lua state bound to an API.
// gopher-lua states are not goroutine-safe: use a Console from one
// goroutine only.
type Console struct {
	L       *lua.LState
	api     API
	timeout time.Duration
	print   func(string)
	logger  *logging.Logger
	closed  bool
}

// Option configures a Console.
type Option func(*Console)

// WithTimeout bounds each execution.
func WithTimeout(d time.Duration) Option {
	return func(c *Console) {
		c.timeout = d
	}
}

// WithPrint redirects Lua print output.
func WithPrint(fn func(string)) Option {
	return func(c *Console) {
		c.print = fn
	}
}

// WithLogger sets the console logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// New creates a console bound to api.
func New(api API, opts ...Option) *Console {
	c := &Console{
		api:     api,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.print == nil {
		c.print = func(s string) { c.logger.Info("lua: %s", s) }
	}

	c.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(c.L)
	c.register()
	return c
}

// openSafeLibraries opens only the side-effect free standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (c *Console) register() {
	funcs := map[string]lua.LGFunction{
		"print":         c.luaPrint,
		"show_panel":    c.luaShowPanel,
		"toggle_panel":  c.luaTogglePanel,
		"panel_visible": c.luaPanelVisible,
		"notify":        c.luaNotify,
		"config_get":    c.luaConfigGet,
		"config_set":    c.luaConfigSet,
	}
	for name, fn := range funcs {
		c.L.SetGlobal(name, c.L.NewFunction(fn))
	}
}

// DoString runs a chunk of Lua.
func (c *Console) DoString(code string) error {
	return c.run(func() error { return c.L.DoString(code) })
}

// DoFile runs a Lua file.
func (c *Console) DoFile(path string) error {
	return c.run(func() error { return c.L.DoFile(path) })
}

func (c *Console) run(fn func() error) (err error) {
	if c.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	c.L.SetContext(ctx)
	defer c.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// Close releases the Lua state. Safe to call more than once.
func (c *Console) Close() {
	if c.closed {
		return
	}
	c.L.Close()
	c.closed = true
}

func (c *Console) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	c.print(strings.Join(parts, "\t"))
	return 0
}

func (c *Console) luaShowPanel(L *lua.LState) int {
	visible := true
	if L.GetTop() >= 1 {
		visible = L.ToBool(1)
	}
	c.api.ShowPanel(visible)
	return 0
}

func (c *Console) luaTogglePanel(L *lua.LState) int {
	c.api.TogglePanel()
	return 0
}

func (c *Console) luaPanelVisible(L *lua.LState) int {
	L.Push(lua.LBool(c.api.PanelVisible()))
	return 1
}

func (c *Console) luaNotify(L *lua.LState) int {
	text := L.CheckString(1)
	ms := L.OptInt64(2, 0)
	id := c.api.Notify(text, time.Duration(ms)*time.Millisecond)
	L.Push(lua.LString(id))
	return 1
}

func (c *Console) luaConfigGet(L *lua.LState) int {
	v, ok := c.api.ConfigGet(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(ToLua(v))
	return 1
}

func (c *Console) luaConfigSet(L *lua.LState) int {
	key := L.CheckString(1)
	value := FromLua(L.CheckAny(2))
	if err := c.api.ConfigSet(key, value); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// ToLua converts a config value to a Lua value.
func ToLua(v any) lua.LValue {
	switch t := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(t)
	case string:
		return lua.LString(t)
	case int:
		return lua.LNumber(t)
	case int64:
		return lua.LNumber(t)
	case float64:
		return lua.LNumber(t)
	case time.Duration:
		return lua.LString(t.String())
	default:
		return lua.LString(fmt.Sprint(t))
	}
}

// FromLua converts a scalar Lua value to a Go value. Integral numbers
// become int64.
func FromLua(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	default:
		return nil
	}
}
