// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/pathrewrite/pkg/fsys"
	"github.com/walteh/pathrewrite/pkg/operation"
	"github.com/walteh/pathrewrite/pkg/status"
	"github.com/walteh/pathrewrite/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultDir is the asset subdirectory the packaging hook rewrites
const DefaultDir = "css"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Dirs        []string          `json:"dirs,omitempty" yaml:"dirs,omitempty"`               // Subdirectories of the app dir to rewrite
	Rules       []text.Rule       `json:"rules,omitempty" yaml:"rules,omitempty"`             // Substitutions, applied in order
	Include     []string          `json:"include,omitempty" yaml:"include,omitempty"`         // Globs an entry name must match
	Exclude     []string          `json:"exclude,omitempty" yaml:"exclude,omitempty"`         // Globs that skip an entry
	Silent      bool              `json:"silent,omitempty" yaml:"silent,omitempty"`           // Suppress progress output
	OnError     operation.OnError `json:"on_error,omitempty" yaml:"on_error,omitempty"`       // abort or continue
	Concurrency int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Files processed at once
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	// defaults cannot fail validation
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Dirs) == 0 {
		cfg.Dirs = []string{DefaultDir}
	}
	for i, dir := range cfg.Dirs {
		clean := filepath.Clean(dir)
		if dir == "" || !filepath.IsLocal(clean) {
			return errors.Errorf("dirs[%d]: %q must be a relative path inside the app dir", i, dir)
		}
		cfg.Dirs[i] = clean
	}

	if len(cfg.Rules) == 0 {
		cfg.Rules = text.DefaultRules()
	}
	if err := text.NewSimpleReplacer().Validate(cfg.Rules); err != nil {
		return errors.Errorf("rules: %w", err)
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid pattern %q", pattern)
		}
	}

	if cfg.OnError == "" {
		cfg.OnError = operation.OnErrorAbort
	}
	if !cfg.OnError.Valid() {
		return errors.Errorf("on_error must be %q or %q, got %q", operation.OnErrorAbort, operation.OnErrorContinue, cfg.OnError)
	}

	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative")
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 1
	}

	return nil
}

// 🔧 Options builds the rewrite options for one target directory
func (cfg *Config) Options(fs fsys.FS, dir string, reporter status.Reporter) operation.Options {
	return operation.Options{
		FS:          fs,
		Dir:         dir,
		Rules:       cfg.Rules,
		Reporter:    reporter,
		Silent:      cfg.Silent,
		OnError:     cfg.OnError,
		Concurrency: cfg.Concurrency,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
	}
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
