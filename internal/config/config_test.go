package config

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tvpanel/internal/config/notify"
	"github.com/dshills/tvpanel/internal/config/registry"
)

type memFS struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

// queueExecutor collects posted work until flushed.
type queueExecutor struct {
	tasks []func()
}

func (q *queueExecutor) Post(fn func()) bool {
	q.tasks = append(q.tasks, fn)
	return true
}

func (q *queueExecutor) flush() {
	for len(q.tasks) > 0 {
		fn := q.tasks[0]
		q.tasks = q.tasks[1:]
		fn()
	}
}

func noEnv() Option {
	return WithEnvPrefix("")
}

func TestConfig_Defaults(t *testing.T) {
	c := New(noEnv())
	require.NoError(t, c.Load(context.Background()))

	assert.True(t, c.Read(registry.KeyEnableAdBlock))
	assert.False(t, c.Read(registry.KeyHideLogo))
	assert.True(t, c.Read(registry.KeySponsorBlockMusicOfftopic))

	d, err := c.GetDuration(registry.KeyUIHintDelay)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)
}

func TestConfig_ReadUnknownKey(t *testing.T) {
	c := New(noEnv())
	assert.False(t, c.Read("doesNotExist"))
	assert.False(t, c.Read(registry.KeyUIAccent))
}

func TestConfig_Description(t *testing.T) {
	c := New(noEnv())
	assert.Equal(t, "Hide logo", c.Description(registry.KeyHideLogo))
	assert.Equal(t, "mystery", c.Description("mystery"))
}

func TestConfig_LoadFileAndEnv(t *testing.T) {
	fsys := newMemFS()
	fsys.files["/cfg/settings.toml"] = []byte(`
hideLogo = true
enableAdBlock = false

[ui]
accent = "#ff0000"
hintDelay = "5s"
`)
	t.Setenv("TVPANEL_ENABLE_AD_BLOCK", "true")
	t.Setenv("TVPANEL_REMOVE_SHORTS", "yes")

	c := New(WithPath("/cfg/settings.toml"), WithFileSystem(fsys))
	require.NoError(t, c.Load(context.Background()))

	assert.True(t, c.Read(registry.KeyHideLogo))
	assert.True(t, c.Read(registry.KeyEnableAdBlock), "env overrides file")
	assert.True(t, c.Read(registry.KeyRemoveShorts))

	accent, err := c.GetString(registry.KeyUIAccent)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", accent)

	d, err := c.GetDuration(registry.KeyUIHintDelay)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestConfig_LoadSkipsInvalidValues(t *testing.T) {
	fsys := newMemFS()
	fsys.files["/settings.yaml"] = []byte("hideLogo: maybe\nui:\n  accent: blue\n")

	c := New(WithPath("/settings.yaml"), WithFileSystem(fsys), noEnv())
	require.NoError(t, c.Load(context.Background()))

	assert.False(t, c.Read(registry.KeyHideLogo))
	accent, _ := c.GetString(registry.KeyUIAccent)
	assert.Equal(t, "#3ea6ff", accent)
}

func TestConfig_LoadParseError(t *testing.T) {
	fsys := newMemFS()
	fsys.files["/settings.json"] = []byte(`{"hideLogo": `)

	c := New(WithPath("/settings.json"), WithFileSystem(fsys), noEnv())
	assert.Error(t, c.Load(context.Background()))
}

func TestConfig_SetValidation(t *testing.T) {
	c := New(noEnv())

	err := c.Set("nope", true, SourceUser)
	assert.ErrorIs(t, err, ErrUnknownSetting)

	err = c.Set(registry.KeyHideLogo, "yes", SourceUser)
	assert.ErrorIs(t, err, ErrValidationFailed)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, registry.KeyHideLogo, verr.Key)

	require.NoError(t, c.Set(registry.KeyUIHintDelay, 3*time.Second, SourceUser))
	s, _ := c.GetString(registry.KeyUIHintDelay)
	assert.Equal(t, "3s", s)
}

func TestConfig_GetTypeMismatch(t *testing.T) {
	c := New(noEnv())
	_, err := c.GetBool(registry.KeyUITitle)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestConfig_WriteNotifiesListener(t *testing.T) {
	c := New(noEnv())

	var got []bool
	sub := c.AddChangeListener(registry.KeyHideLogo, func(v bool) {
		got = append(got, v)
	})

	c.Write(registry.KeyHideLogo, true)
	c.Write(registry.KeyHideLogo, true)
	c.Write(registry.KeyHideLogo, false)

	assert.Equal(t, []bool{true, false}, got, "unchanged writes do not notify")

	sub.Unsubscribe()
	c.Write(registry.KeyHideLogo, true)
	assert.Len(t, got, 2)
}

func TestConfig_ListenerIgnoresOtherKeys(t *testing.T) {
	c := New(noEnv())

	calls := 0
	c.AddChangeListener(registry.KeyEnableSponsorBlock, func(bool) { calls++ })

	c.Write(registry.KeySponsorBlockIntro, false)
	assert.Equal(t, 0, calls)
}

func TestConfig_DeliveryThroughExecutor(t *testing.T) {
	exec := &queueExecutor{}
	c := New(noEnv(), WithExecutor(exec))

	var got []bool
	c.AddChangeListener(registry.KeyHideLogo, func(v bool) { got = append(got, v) })

	c.Write(registry.KeyHideLogo, true)
	assert.Empty(t, got, "delivery is deferred to the executor")
	assert.True(t, c.Read(registry.KeyHideLogo), "the write itself is immediate")

	exec.flush()
	assert.Equal(t, []bool{true}, got)
}

func TestConfig_AutoSave(t *testing.T) {
	fsys := newMemFS()
	c := New(WithPath("/cfg/settings.json"), WithFileSystem(fsys), WithAutoSave(true), noEnv())
	require.NoError(t, c.Load(context.Background()))

	c.Write(registry.KeyHideLogo, true)

	data, err := fsys.ReadFile("/cfg/settings.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hideLogo":true`)

	reloaded := New(WithPath("/cfg/settings.json"), WithFileSystem(fsys), noEnv())
	require.NoError(t, reloaded.Load(context.Background()))
	assert.True(t, reloaded.Read(registry.KeyHideLogo))
}

func TestConfig_SaveWithoutFile(t *testing.T) {
	c := New(noEnv())
	assert.True(t, errors.Is(c.Save(), ErrNoFile))
	assert.True(t, errors.Is(c.Reload(), ErrNoFile))
}

func TestConfig_ReloadNotifiesChangedKeys(t *testing.T) {
	fsys := newMemFS()
	fsys.files["/settings.toml"] = []byte("hideLogo = false\n")

	c := New(WithPath("/settings.toml"), WithFileSystem(fsys), noEnv())
	require.NoError(t, c.Load(context.Background()))

	var changes []notify.Change
	c.Subscribe(func(ch notify.Change) { changes = append(changes, ch) })

	fsys.files["/settings.toml"] = []byte("hideLogo = true\nenableAdBlock = true\n")
	require.NoError(t, c.Reload())

	require.Len(t, changes, 1, "enableAdBlock was already true")
	assert.Equal(t, registry.KeyHideLogo, changes[0].Key)
	assert.Equal(t, SourceFile, changes[0].Source)
	assert.Equal(t, true, changes[0].NewValue)
	assert.True(t, c.Read(registry.KeyHideLogo))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/tvpanel/settings.toml", DefaultPath())
}
