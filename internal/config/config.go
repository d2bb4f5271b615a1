// Copyright 2015 Grip QA
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

// Package config provides configuration management for github-pulls with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. The credential/config file
//  4. Built-in defaults
//
// The config file is YAML and holds at minimum the username/token pair used
// to authenticate against the GitHub API. An absent file is not an error:
// the run proceeds with anonymous access. A present but malformed file
// aborts the run with ErrBadConfig — credentials are never partially applied.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	pullserrors "github.com/gripqa/github-pulls/internal/errors"
)

// Load loads configuration from the given file path and applies environment
// overrides. If path is empty, the default location (./github-pulls.cfg) is
// tried; its absence is tolerated. An explicitly given path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %v: %w", path, err, pullserrors.ErrBadConfig)
		}
	case os.IsNotExist(err) && !explicit:
		// Absent default config means anonymous access, not an error.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %v: %w", path, err, pullserrors.ErrBadConfig)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if username := os.Getenv("GITHUB_USERNAME"); username != "" {
		cfg.GitHub.Username = username
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if pageSize := os.Getenv("GITHUB_PULLS_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures the
// page size is within GitHub's limits, the endpoint is not empty, and the
// classifier has at least one pattern to match against. This should be
// called after flag overrides are applied, to catch invalid settings before
// any network call is made.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d: %w", c.Defaults.PageSize, pullserrors.ErrBadConfig)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100: %w", c.Defaults.PageSize, pullserrors.ErrBadConfig)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty: %w", pullserrors.ErrBadConfig)
	}
	if len(c.Classifier.Keywords) == 0 && len(c.Classifier.Labels) == 0 {
		return fmt.Errorf("classifier needs at least one keyword or label: %w", pullserrors.ErrBadConfig)
	}
	if c.GitHub.Username != "" && c.GitHub.Token == "" {
		return fmt.Errorf("username given without a token: %w", pullserrors.ErrBadConfig)
	}
	return nil
}
