package config

import (
	"fmt"
	"os"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks the config for invalid values and returns all errors
// found. Dangerous zero-values that would break the scan are clamped to
// safe defaults; other problems are reported but do not prevent startup.
func (c *Config) Validate() []error {
	var errs []error

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if c.LogFormat != "" && !validFormats[c.LogFormat] {
		errs = append(errs, fmt.Errorf("log_format %q is not one of text, json", c.LogFormat))
	}

	if c.Output != "" && !validFormats[c.Output] {
		errs = append(errs, fmt.Errorf("output %q is not one of text, json", c.Output))
	}

	if c.DictionaryPath != "" {
		if _, err := os.Stat(c.DictionaryPath); err != nil {
			errs = append(errs, fmt.Errorf("dictionary_path %q: %w", c.DictionaryPath, err))
		}
	}

	if c.ScanTimeoutSeconds <= 0 {
		c.ScanTimeoutSeconds = Default().ScanTimeoutSeconds
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = Default().LogMaxSizeMB
	}

	return errs
}
