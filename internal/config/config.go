// Package config loads scan and validation settings from a TOML
// configuration file via viper.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfig is embedded as the baseline configuration, read the same
// way a caller would read any other TOML file, so a deployment with no
// config file on disk still gets sane defaults.
const DefaultConfig = `
[scanner]
context_lines = 3
entropy_threshold = 4.5
provider_filter = []

[validator]
enabled = false
timeout_seconds = 10
max_concurrent = 5

[redaction]
prefix_chars = 8
suffix_chars = 4
min_length = 12
`

// ScannerOptions configures the pattern scanner.
type ScannerOptions struct {
	ContextLines     int      `mapstructure:"context_lines"`
	EntropyThreshold float64  `mapstructure:"entropy_threshold"`
	ProviderFilter   []string `mapstructure:"provider_filter"`
}

// ValidatorOptions configures the liveness validation client.
type ValidatorOptions struct {
	Enabled        bool `mapstructure:"enabled"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds"`
	MaxConcurrent  int  `mapstructure:"max_concurrent"`
}

// RedactionOptions configures secret redaction for reports.
type RedactionOptions struct {
	PrefixChars int `mapstructure:"prefix_chars"`
	SuffixChars int `mapstructure:"suffix_chars"`
	MinLength   int `mapstructure:"min_length"`
}

// Options is the fully unmarshaled, user-facing configuration.
type Options struct {
	Scanner   ScannerOptions   `mapstructure:"scanner"`
	Validator ValidatorOptions `mapstructure:"validator"`
	Redaction RedactionOptions `mapstructure:"redaction"`
}

// Load reads raw (a TOML document) and unmarshals it into Options. An
// empty raw falls back to DefaultConfig.
func Load(raw string) (Options, error) {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultConfig
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		return Options{}, err
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Default returns the Options parsed from DefaultConfig. It panics only
// if DefaultConfig itself is malformed, which would be a programming
// error caught immediately by any test that calls it.
func Default() Options {
	opts, err := Load(DefaultConfig)
	if err != nil {
		panic("config: DefaultConfig is invalid TOML: " + err.Error())
	}
	return opts
}
