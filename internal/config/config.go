package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a job file and overlays it on DefaultConfig.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultConfig(), errors.Wrapf(err, "failed to load config from %s", path)
	}
	return Parse(data)
}

// Parse overlays YAML data on DefaultConfig and validates the result.
// Keys absent from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse YAML")
	}

	if validationErrors := cfg.Validate(); len(validationErrors) > 0 {
		return cfg, errors.Newf("config.validation.error: %s", formatValidationErrors(validationErrors))
	}
	return cfg, nil
}

// ParseStyle reads a single YAML style document.
func ParseStyle(data []byte) (StyleSpec, error) {
	var spec StyleSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, errors.Wrap(err, "failed to parse style YAML")
	}
	return spec, nil
}

// MarshalStyle renders a StyleSpec as YAML.
func MarshalStyle(spec StyleSpec) ([]byte, error) {
	out, err := yaml.Marshal(spec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render style YAML")
	}
	return out, nil
}

// formatValidationErrors formats validation errors for display
func formatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	result := fmt.Sprintf("%d validation errors:\n", len(errs))
	for _, err := range errs {
		result += "  - " + err.Error() + "\n"
	}
	return result
}
