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

// Package github provides types and interfaces for interacting with the GitHub API.
package github

// PullRequest represents a GitHub pull request with the metadata the
// defect-classification pipeline needs. Records are created in API order
// and are immutable except for the Commits list, which the commit resolver
// attaches lazily for pull requests classified as defect fixes.
type PullRequest struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	State  string   `json:"state"`
	Labels []string `json:"labels,omitempty"`

	// Commits holds the SHA-1 identifiers of the commits that make up this
	// pull request, in the API's chronological order. Empty until resolved.
	Commits []string `json:"commits,omitempty"`
}

// PageOptions selects one page of a paginated listing.
type PageOptions struct {
	// Page is the 1-based page number to request.
	Page int

	// PageSize controls how many items to fetch per page.
	// Defaults to 50 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int
}

// Default values for fetch operations
const defaultPageSize = 50

func (o PageOptions) normalize() PageOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	return o
}
