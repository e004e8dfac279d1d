package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML settings file on top of Defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Settings file not found, using defaults", "path", path)
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	slog.Debug("Settings loaded", "path", path, "text_rules", len(s.TextRules), "keyword_blacklist", len(s.KeywordBlacklist))
	return s, nil
}

// Parse decodes YAML on top of Defaults and validates the result.
func Parse(data []byte) (*Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if s.Rules == nil {
		s.Rules = make(map[string]bool)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Marshal encodes the snapshot as YAML.
func Marshal(s *Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}

func (s *Settings) Validate() error {
	if s == nil {
		return fmt.Errorf("settings is nil")
	}

	nonNegativeFields := map[string]int64{
		"low view threshold": s.LowViewThreshold,
		"grace period hours": s.GracePeriodHours,
		"duration min":       s.DurationMin,
		"duration max":       s.DurationMax,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if s.DurationMin > 0 && s.DurationMax > 0 && s.DurationMin > s.DurationMax {
		return fmt.Errorf("duration min %d exceeds duration max %d", s.DurationMin, s.DurationMax)
	}

	seen := make(map[string]bool, len(s.TextRules))
	for i, rule := range s.TextRules {
		if rule.Key == "" {
			return fmt.Errorf("text rule at index %d must have a key", i)
		}
		if seen[rule.Key] {
			return fmt.Errorf("duplicate text rule key: %s", rule.Key)
		}
		seen[rule.Key] = true
	}

	return nil
}
