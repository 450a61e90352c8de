// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package polycheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/polycheck/diag"
)

// Config controls the behavior of a TypeChecker.
type Config struct {
	// Report unused local bindings as warnings.
	WarnUnused bool `yaml:"warn_unused"`
	// Maximum number of errors to record; 0 records all errors. Warnings are never dropped.
	MaxErrors int `yaml:"max_errors"`
	// Write a trace of unification and generalization steps to TraceWriter.
	Trace bool `yaml:"trace"`
	// Color mode for rendered diagnostics: auto, always or never.
	Color diag.ColorMode `yaml:"color"`
	// Number of columns a tab advances to when rendering source excerpts.
	TabWidth int `yaml:"tab_width"`

	TraceWriter io.Writer `yaml:"-"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		WarnUnused:  true,
		Color:       diag.ColorAuto,
		TabWidth:    4,
		TraceWriter: os.Stderr,
	}
}

// ParseConfig decodes a YAML configuration. Fields which are absent keep their default
// values; unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads and decodes the YAML configuration file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports invalid settings.
func (cfg Config) Validate() error {
	switch cfg.Color {
	case diag.ColorAuto, diag.ColorAlways, diag.ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q", cfg.Color)
	}
	if cfg.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", cfg.MaxErrors)
	}
	if cfg.TabWidth < 1 {
		return fmt.Errorf("tab_width must be positive, got %d", cfg.TabWidth)
	}
	return nil
}

// Renderer creates a diagnostic renderer for the given sources using the configured
// color mode and tab width.
func (cfg Config) Renderer(sources map[string][]byte) *diag.Renderer {
	r := diag.NewRenderer(sources)
	r.Color, r.TabWidth = cfg.Color, cfg.TabWidth
	return r
}
