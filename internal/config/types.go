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

// Package config types define the configuration structures used throughout
// github-pulls. These types represent settings that can be loaded from the
// YAML credential file, environment variables, or command-line flags.
package config

// DefaultConfigFile is the config file searched in the working directory
// when no --config flag is given.
const DefaultConfigFile = "./github-pulls.cfg"

// Config represents the complete configuration for github-pulls. It
// consolidates the credential file, environment overrides, and built-in
// defaults into a single read-only value handed to each component.
type Config struct {
	GitHub     GitHubConfig     `yaml:"github"`
	Defaults   DefaultsConfig   `yaml:"defaults"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// GitHubConfig contains GitHub-specific settings: the API endpoint and the
// optional credential pair. An empty credential pair means anonymous access.
// A custom endpoint allows use against GitHub Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	Username    string `yaml:"username"`
	Token       string `yaml:"token"`
}

// Anonymous reports whether no credentials were configured. Anonymous access
// is valid; the API simply applies its unauthenticated rate limits.
func (g GitHubConfig) Anonymous() bool {
	return g.Token == "" && g.Username == ""
}

// DefaultsConfig contains default settings that apply to the analysis run
// unless overridden by command-line flags.
type DefaultsConfig struct {
	PageSize  int    `yaml:"page_size"`
	OutputDir string `yaml:"output_dir"`
}

// ClassifierConfig tunes the defect-detection heuristic. Keywords are
// case-insensitive substrings checked against a pull request's title and
// body; labels are matched against the labels attached to the pull request.
// Matching quality is a tuning parameter, so both lists are configuration,
// not code.
type ClassifierConfig struct {
	Keywords []string `yaml:"keywords"`
	Labels   []string `yaml:"labels"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. The label set mirrors the conventional defect labels used on
// public GitHub projects.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
		},
		Defaults: DefaultsConfig{
			PageSize:  50,
			OutputDir: ".",
		},
		Classifier: ClassifierConfig{
			Keywords: []string{"fix", "bug", "defect"},
			Labels:   []string{"bug", "defect", "kind/bug"},
		},
	}
}
