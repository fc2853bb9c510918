package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) WriteFile(path string, data []byte) error {
	m.files[path] = data
	return nil
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"settings.toml", FormatTOML},
		{"settings.yaml", FormatYAML},
		{"settings.YML", FormatYAML},
		{"settings.json", FormatJSON},
		{"settings", FormatTOML},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileLoader_TOML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/settings.toml", `
enableAdBlock = false
hideLogo = true

[ui]
accent = "#ff0000"
`)

	config, err := NewFileLoaderWithFS(memfs, "/settings.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	flat := Flatten(config)
	if flat["enableAdBlock"] != false || flat["hideLogo"] != true {
		t.Errorf("flags = %v", flat)
	}
	if flat["ui.accent"] != "#ff0000" {
		t.Errorf("ui.accent = %v", flat["ui.accent"])
	}
}

func TestFileLoader_YAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/settings.yaml", "removeShorts: true\nui:\n  hintDelay: 5s\n")

	config, err := NewFileLoaderWithFS(memfs, "/settings.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	flat := Flatten(config)
	if flat["removeShorts"] != true {
		t.Errorf("removeShorts = %v", flat["removeShorts"])
	}
	if flat["ui.hintDelay"] != "5s" {
		t.Errorf("ui.hintDelay = %v", flat["ui.hintDelay"])
	}
}

func TestFileLoader_JSON(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/settings.json", `{"upgradeThumbnails": true, "remote": {"keys": {"green": "x"}}}`)

	config, err := NewFileLoaderWithFS(memfs, "/settings.json").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	flat := Flatten(config)
	if flat["upgradeThumbnails"] != true {
		t.Errorf("upgradeThumbnails = %v", flat["upgradeThumbnails"])
	}
	if flat["remote.keys.green"] != "x" {
		t.Errorf("remote.keys.green = %v", flat["remote.keys.green"])
	}
}

func TestFileLoader_Missing(t *testing.T) {
	config, err := NewFileLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestFileLoader_ParseError(t *testing.T) {
	tests := []string{"/bad.toml", "/bad.yaml", "/bad.json"}
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "enableAdBlock = = true")
	memfs.AddFile("/bad.yaml", "a: [1, 2")
	memfs.AddFile("/bad.json", `{"a": `)

	for _, path := range tests {
		_, err := NewFileLoaderWithFS(memfs, path).Load()
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Load(%s) error = %v, want *ParseError", path, err)
			continue
		}
		if pe.Path != path {
			t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
		}
	}
}

func TestFileLoader_SaveRoundTrip(t *testing.T) {
	flat := map[string]any{
		"hideLogo":          true,
		"enableAdBlock":     false,
		"ui.accent":         "#00ff00",
		"remote.keys.green": "g",
	}

	for _, path := range []string{"/s.toml", "/s.yaml", "/s.json"} {
		memfs := NewMemFS()
		l := NewFileLoaderWithFS(memfs, path)
		if err := l.Save(Unflatten(flat)); err != nil {
			t.Fatalf("Save(%s) error = %v", path, err)
		}

		config, err := l.Load()
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		got := Flatten(config)
		for k, v := range flat {
			if got[k] != v {
				t.Errorf("%s: %s = %v, want %v", path, k, got[k], v)
			}
		}
	}
}

func TestEncodeJSON_Stable(t *testing.T) {
	config := Unflatten(map[string]any{"b": true, "a": false, "ui.accent": "#fff"})
	first, err := Encode(FormatJSON, config)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := Encode(FormatJSON, config)
	if string(first) != string(second) {
		t.Errorf("JSON encoding not stable: %s vs %s", first, second)
	}
	if !strings.HasPrefix(string(first), `{"a":false`) {
		t.Errorf("JSON keys not sorted: %s", first)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{"ui": map[string]any{"accent": "#fff", "title": "A"}, "hideLogo": false}
	src := map[string]any{"ui": map[string]any{"accent": "#000"}, "hideLogo": true}

	got := Flatten(DeepMerge(dst, src))
	if got["ui.accent"] != "#000" || got["ui.title"] != "A" || got["hideLogo"] != true {
		t.Errorf("DeepMerge = %v", got)
	}
}

func TestEnvName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"enableAdBlock", "TVPANEL_ENABLE_AD_BLOCK"},
		{"hideLogo", "TVPANEL_HIDE_LOGO"},
		{"ui.accent", "TVPANEL_UI_ACCENT"},
		{"ui.hintDelay", "TVPANEL_UI_HINT_DELAY"},
		{"remote.keys.green", "TVPANEL_REMOTE_KEYS_GREEN"},
	}

	for _, tt := range tests {
		if got := EnvName(DefaultEnvPrefix, tt.key); got != tt.want {
			t.Errorf("EnvName(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEnvLoader_Load(t *testing.T) {
	env := map[string]string{
		"TVPANEL_HIDE_LOGO":     "yes",
		"TVPANEL_UI_HINT_DELAY": "500ms",
		"TVPANEL_UI_ACCENT":     "#abcdef",
		"UNRELATED":             "1",
	}
	l := NewEnvLoader(DefaultEnvPrefix, []string{"hideLogo", "ui.hintDelay", "ui.accent", "enableAdBlock"})
	l.lookup = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(config) != 3 {
		t.Errorf("Load() returned %d keys, want 3: %v", len(config), config)
	}
	if config["hideLogo"] != true {
		t.Errorf("hideLogo = %v", config["hideLogo"])
	}
	if config["ui.hintDelay"] != 500*time.Millisecond {
		t.Errorf("ui.hintDelay = %v", config["ui.hintDelay"])
	}
	if config["ui.accent"] != "#abcdef" {
		t.Errorf("ui.accent = %v", config["ui.accent"])
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"off", false},
		{"42", int64(42)},
		{"3s", 3 * time.Second},
		{"g", "g"},
	}

	for _, tt := range tests {
		if got := ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
