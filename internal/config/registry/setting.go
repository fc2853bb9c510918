// Package registry provides the settings registry for tvpanel configuration.
//
// The registry maintains definitions of all known settings with their types,
// defaults, descriptions and validation rules. Registration order is kept:
// the settings panel lists feature flags in the order they were registered.
package registry

import (
	"fmt"
	"regexp"
	"time"
)

// Setting defines a configuration setting with its metadata.
type Setting struct {
	// Path is the dot-separated key (e.g., "enableAdBlock", "ui.accent").
	Path string

	// Type is the setting's data type.
	Type SettingType

	// Default is the default value.
	Default any

	// Description is the human-readable label shown next to the control.
	Description string

	// Group places the setting in a panel section.
	Group Group

	// Pattern for string validation (regex).
	Pattern string

	// compiledPattern is the compiled regex pattern (lazily initialized).
	compiledPattern *regexp.Regexp
}

// IsFlag returns true for boolean feature flags.
func (s *Setting) IsFlag() bool {
	return s.Type == TypeBool
}

// Validate checks if a value is valid for this setting.
func (s *Setting) Validate(value any) error {
	if err := s.validateType(value); err != nil {
		return err
	}
	if s.Type == TypeString && s.Pattern != "" {
		return s.validatePattern(value)
	}
	return nil
}

// validateType checks if the value matches the expected type.
func (s *Setting) validateType(value any) error {
	switch s.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case TypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case TypeDuration:
		switch v := value.(type) {
		case time.Duration:
		case string:
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid duration %q: %w", v, err)
			}
		default:
			return fmt.Errorf("expected duration, got %T", value)
		}
	}
	return nil
}

// validatePattern checks if a string value matches the required pattern.
func (s *Setting) validatePattern(value any) error {
	str, _ := value.(string)

	if s.compiledPattern == nil {
		var err error
		s.compiledPattern, err = regexp.Compile(s.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	}

	if !s.compiledPattern.MatchString(str) {
		return fmt.Errorf("value %q does not match pattern %s", str, s.Pattern)
	}
	return nil
}

// SettingType represents the data type of a setting.
type SettingType uint8

const (
	// TypeString represents a string value.
	TypeString SettingType = iota
	// TypeBool represents a boolean feature flag.
	TypeBool
	// TypeDuration represents a time duration.
	TypeDuration
)

// String returns the string representation of the type.
func (t SettingType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "boolean"
	case TypeDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// Group identifies where a setting is shown.
type Group string

const (
	// GroupGeneral holds the top-level feature flags.
	GroupGeneral Group = "general"
	// GroupSponsor holds the per-category segment skipping flags.
	GroupSponsor Group = "sponsor"
	// GroupUI holds presentation settings that are not shown in the panel.
	GroupUI Group = "ui"
	// GroupRemote holds remote button bindings.
	GroupRemote Group = "remote"
)
