// Package loader provides configuration file loading and saving for tvpanel.
//
// Settings files may be written in TOML, YAML or JSON; the format is
// picked from the file extension. Decoded files are nested maps. Flatten
// and Unflatten convert between those and the dot-separated keys the
// store works with. Environment variables are layered on top by EnvLoader.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format is a settings file encoding.
type Format int

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatFromPath picks a format from the file extension. Unknown
// extensions fall back to TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes data to path, creating parent directories.
	WriteFile(path string, data []byte) error
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data atomically by renaming a temp file into place.
func (OSFS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// FileLoader loads and saves one settings file.
type FileLoader struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFileLoader creates a loader for path using the OS file system.
func NewFileLoader(path string) *FileLoader {
	return NewFileLoaderWithFS(DefaultFS(), path)
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem, path string) *FileLoader {
	return &FileLoader{
		fs:     fsys,
		path:   path,
		format: FormatFromPath(path),
	}
}

// Path returns the settings file path.
func (l *FileLoader) Path() string {
	return l.path
}

// Format returns the settings file format.
func (l *FileLoader) Format() Format {
	return l.format
}

// Load reads the settings file and returns its nested map.
// Returns nil, nil if the file doesn't exist (not an error).
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return Decode(l.format, l.path, data)
}

// Save encodes the nested map in the file's format and writes it.
func (l *FileLoader) Save(config map[string]any) error {
	data, err := Encode(l.format, config)
	if err != nil {
		return fmt.Errorf("encoding config file %s: %w", l.path, err)
	}
	if err := l.fs.WriteFile(l.path, data); err != nil {
		return fmt.Errorf("writing config file %s: %w", l.path, err)
	}
	return nil
}

// Decode parses data in the given format. source names the input in errors.
func Decode(format Format, source string, data []byte) (map[string]any, error) {
	var (
		config map[string]any
		err    error
	)
	switch format {
	case FormatYAML:
		config, err = decodeYAML(data)
	case FormatJSON:
		config, err = decodeJSON(data)
	default:
		config, err = decodeTOML(data)
	}
	if err != nil {
		return nil, &ParseError{Path: source, Format: format, Message: err.Error(), Err: err}
	}
	return config, nil
}

// Encode serializes a nested map in the given format.
func Encode(format Format, config map[string]any) ([]byte, error) {
	switch format {
	case FormatYAML:
		return encodeYAML(config)
	case FormatJSON:
		return encodeJSON(config)
	default:
		return encodeTOML(config)
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Format  Format
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s (%s) at line %d: %s", e.Path, e.Format, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s (%s): %s", e.Path, e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Flatten converts a nested map into dot-separated keys.
func Flatten(config map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", config)
	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flattenInto(out, key, child)
			continue
		}
		out[key] = v
	}
}

// Unflatten converts dot-separated keys back into a nested map.
func Unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range flat {
		setByPath(out, k, v)
	}
	return out
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}
	return dst
}
