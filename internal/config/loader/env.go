package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultEnvPrefix is the prefix of tvpanel environment variables.
const DefaultEnvPrefix = "TVPANEL_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "TVPANEL_")
	mapping map[string]string // Env var -> config key
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader that maps every key to its environment
// variable name: "hideLogo" -> TVPANEL_HIDE_LOGO, "ui.accent" ->
// TVPANEL_UI_ACCENT.
func NewEnvLoader(prefix string, keys []string) *EnvLoader {
	mapping := make(map[string]string, len(keys))
	for _, k := range keys {
		mapping[EnvName(prefix, k)] = k
	}
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// EnvName converts a config key to its environment variable name.
func EnvName(prefix, key string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for i, r := range key {
		switch {
		case r == '.':
			b.WriteByte('_')
		case unicode.IsUpper(r) && i > 0 && key[i-1] != '.':
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Load reads mapped environment variables and returns a flat map keyed by
// config key. Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, key := range l.mapping {
		if val, ok := l.lookup(env); ok {
			config[key] = ParseValue(val)
		}
	}
	return config, nil
}

// ParseValue attempts to parse an environment string into a typed value.
func ParseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	return s
}
