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

package github

import (
	"context"
	"fmt"

	pullserrors "github.com/gripqa/github-pulls/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
// It serves its configured pull requests and commit lists page by page, the
// same way the real API does, so pagination boundary conditions can be
// exercised without a server.
type MockClient struct {
	// PullRequests to serve, in API order
	PullRequests []PullRequest

	// Commits to serve per pull request number
	Commits map[int][]string

	// Errors to return
	ListErr    error
	CommitsErr error

	// Behavior flags
	ShouldFailAuth      bool
	ShouldFailRateLimit bool
	ShouldFailNetwork   bool

	// Track calls for verification
	ListCalls   int
	CommitCalls int
	LastOwner   string
	LastRepo    string
	LastOpts    PageOptions
}

// FetchClosedPullRequests implements the Client interface.
func (m *MockClient) FetchClosedPullRequests(ctx context.Context, owner, repo string, opts PageOptions) ([]PullRequest, error) {
	m.ListCalls++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.failure(m.ListErr); err != nil {
		return nil, err
	}

	return pageOf(m.PullRequests, opts), nil
}

// FetchPullRequestCommits implements the Client interface.
func (m *MockClient) FetchPullRequestCommits(ctx context.Context, owner, repo string, number int, opts PageOptions) ([]string, error) {
	m.CommitCalls++

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.failure(m.CommitsErr); err != nil {
		return nil, err
	}

	return pageOf(m.Commits[number], opts), nil
}

func (m *MockClient) failure(configured error) error {
	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", pullserrors.ErrInvalidToken)
	}
	if m.ShouldFailRateLimit {
		return fmt.Errorf("API rate limit exceeded: %w", pullserrors.ErrRateLimit)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", pullserrors.ErrNetworkFailure)
	}
	return configured
}

// pageOf slices one page out of items using 1-based page numbers.
func pageOf[T any](items []T, opts PageOptions) []T {
	opts = opts.normalize()
	start := (opts.Page - 1) * opts.PageSize
	if start >= len(items) {
		return nil
	}
	end := start + opts.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
