package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validate reports every negative threshold at once.
func (t ThresholdsConfig) Validate() error {
	var errs []string
	if t.FCReceiveAgeThreshold < 0 {
		errs = append(errs, "fc receive threshold is negative")
	}
	if t.FCActionableAgeThreshold < 0 {
		errs = append(errs, "fc actionable threshold is negative")
	}
	if t.MFIAgeThreshold < 0 {
		errs = append(errs, "mfi threshold is negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidThresholds, strings.Join(errs, "; "))
	}
	return nil
}

// ParseThresholdsYAML overlays a YAML document on the default thresholds.
// Keys missing from the document keep their default.
func ParseThresholdsYAML(data []byte) (ThresholdsConfig, error) {
	t := DefaultThresholds()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return ThresholdsConfig{}, fmt.Errorf("parse thresholds: %w", err)
	}
	if err := t.Validate(); err != nil {
		return ThresholdsConfig{}, err
	}
	return t, nil
}

// LoadThresholdsFile reads thresholds from a YAML file.
func LoadThresholdsFile(path string) (ThresholdsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ThresholdsConfig{}, fmt.Errorf("read thresholds file: %w", err)
	}
	return ParseThresholdsYAML(data)
}
