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

import "context"

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// FetchClosedPullRequests retrieves one page of closed pull requests
	// from the specified repository, in the API's default order (not
	// re-sorted). The caller drives pagination through opts.Page.
	FetchClosedPullRequests(ctx context.Context, owner, repo string, opts PageOptions) ([]PullRequest, error)

	// FetchPullRequestCommits retrieves one page of commit SHAs belonging
	// to the given pull request, in chronological order.
	FetchPullRequestCommits(ctx context.Context, owner, repo string, number int, opts PageOptions) ([]string, error)
}
