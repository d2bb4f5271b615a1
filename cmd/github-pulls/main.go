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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	pullserrors "github.com/gripqa/github-pulls/internal/errors"
	"github.com/gripqa/github-pulls/pkg/version"
)

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "github-pulls <repo_owner> <repo_name>",
		Short: "Identify defect-fix pull requests and export their commit SHAs",
		Long: `github-pulls examines a project's GitHub repository and attempts to
identify the closed pull requests associated with fixing defects. The SHA-1
of every commit belonging to a matched pull request is written to three
report files in the current directory:

  <repo_name>_pulls.csv
  <repo_name>_pulls.json
  <repo_name>_pulls.txt

Credentials are optional. When ./github-pulls.cfg (or the file given via
--config) holds a username/token pair, requests are authenticated; otherwise
they are anonymous and subject to the API's unauthenticated rate limits.`,
		Version:       version.Version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()

			return runAnalyze(ctx, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to the credential/config file (default ./github-pulls.cfg)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Items requested per API page, 1-100 (overrides config)")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory the report files are written to (overrides config)")
	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "Suppress progress output")

	return cmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, pullserrors.ErrBadConfig) {
		return 2 // Configuration errors
	}

	if errors.Is(err, pullserrors.ErrInvalidToken) ||
		errors.Is(err, pullserrors.ErrRepoNotFound) ||
		errors.Is(err, pullserrors.ErrRateLimit) {
		return 3 // Authentication/authorization errors
	}

	if errors.Is(err, pullserrors.ErrNetworkFailure) {
		return 4 // Network errors
	}

	if errors.Is(err, pullserrors.ErrWriteFailed) {
		return 5 // Output file errors
	}

	return 1 // General error
}
