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

// Package main implements the github-pulls command-line interface.
// The tool examines a repository's closed pull requests, applies a
// keyword/label heuristic to find the ones that fix defects, and exports
// the SHA-1 of every commit belonging to a matched pull request.
//
// The CLI supports:
//   - Anonymous or authenticated access (username/token from ./github-pulls.cfg)
//   - CSV, JSON, and plain-text report files named after the repository
//   - Configurable page size, keyword list, and defect label set
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	github-pulls <repo_owner> <repo_name> [flags]
//
// Example:
//
//	github-pulls golang go --page-size 100
//
// Exit codes:
//   - 0: Success
//   - 1: General or argument error
//   - 2: Configuration error
//   - 3: Authentication, rate-limit, or repository-not-found error
//   - 4: Network error
//   - 5: Output file error
package main
