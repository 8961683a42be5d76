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
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = ".jvmbump.yaml"

const (
	defaultVersion = 17
	minVersion     = 8
)

var (
	defaultFilenames   = []string{"build.gradle", "gradle.properties"}
	defaultExcludeDirs = []string{"node_modules"}
)

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
	Root        string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`                 // Search root, empty means working directory
	Version     int      `json:"version,omitempty" yaml:"version,omitempty" hcl:"version,optional"`        // Target Java version
	Filenames   []string `json:"filenames,omitempty" yaml:"filenames,omitempty" hcl:"filenames,optional"`  // Exact file names to update
	ExcludeDirs []string `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty" hcl:"exclude_dirs,optional"`
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"` // Doublestar patterns relative to root
	LogFile     string   `json:"log_file,omitempty" yaml:"log_file,omitempty" hcl:"log_file,optional"`

	location string
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every unset field
func (cfg *Config) SetDefaults() {
	if cfg.Version == 0 {
		cfg.Version = defaultVersion
	}
	if len(cfg.Filenames) == 0 {
		cfg.Filenames = append([]string(nil), defaultFilenames...)
	}
	if cfg.ExcludeDirs == nil {
		cfg.ExcludeDirs = append([]string(nil), defaultExcludeDirs...)
	}
}

// Location returns the path the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fsys, path)
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

	cfg.location = path
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default()
func LoadOrDefault(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	cfg, err := Load(ctx, fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return cfg, err
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Version < minVersion {
		return errors.Errorf("version must be at least %d, got %d", minVersion, cfg.Version)
	}
	if len(cfg.Filenames) == 0 {
		return errors.Errorf("filenames is required")
	}
	for _, name := range cfg.Filenames {
		if !isBaseName(name) {
			return errors.Errorf("filename %q must be a plain file name", name)
		}
	}
	for _, dir := range cfg.ExcludeDirs {
		if !isBaseName(dir) {
			return errors.Errorf("exclude_dirs entry %q must be a plain directory name", dir)
		}
	}
	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore pattern %q is invalid", pattern)
		}
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	return fmt.Sprintf("%s [%s] -> Java %d (skip %s)",
		root, strings.Join(cfg.Filenames, ", "), cfg.Version, strings.Join(cfg.ExcludeDirs, ", "))
}

func isBaseName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
