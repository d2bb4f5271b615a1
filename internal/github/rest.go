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
	"log/slog"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/gripqa/github-pulls/internal/config"
	"github.com/gripqa/github-pulls/pkg/version"
)

// Compile-time interface satisfaction check.
var _ Client = (*RESTClient)(nil)

// RESTClient implements the GitHub Client interface over the REST API using
// the go-github library. Requests are authenticated with the configured
// credential pair when one is present; otherwise they are anonymous and the
// API applies its unauthenticated rate limits.
type RESTClient struct {
	gh *gh.Client
}

// NewRESTClient creates a GitHub REST client from the given configuration.
// A username/token pair becomes HTTP Basic auth, a bare token becomes a
// bearer token, and an empty credential pair yields an anonymous client.
// A custom API endpoint (GitHub Enterprise, or an httptest server in tests)
// is supported via cfg.APIEndpoint.
func NewRESTClient(cfg config.GitHubConfig) (*RESTClient, error) {
	var client *gh.Client
	switch {
	case cfg.Username != "":
		transport := &gh.BasicAuthTransport{
			Username: cfg.Username,
			Password: cfg.Token,
		}
		client = gh.NewClient(transport.Client())
	case cfg.Token != "":
		client = gh.NewClient(nil).WithAuthToken(cfg.Token)
	default:
		client = gh.NewClient(nil)
	}
	client.UserAgent = "github-pulls/" + version.Version

	if cfg.APIEndpoint != "" {
		endpoint := cfg.APIEndpoint
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		base, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid API endpoint %q: %w", cfg.APIEndpoint, err)
		}
		client.BaseURL = base
	}

	return &RESTClient{gh: client}, nil
}

// FetchClosedPullRequests retrieves one page of closed pull requests.
// Sort order is left to the API default so the pipeline preserves the
// service's ordering.
func (c *RESTClient) FetchClosedPullRequests(ctx context.Context, owner, repo string, opts PageOptions) ([]PullRequest, error) {
	opts = opts.normalize()
	endpoint := fmt.Sprintf("repos/%s/%s/pulls", owner, repo)

	listOpts := &gh.PullRequestListOptions{
		State: "closed",
		ListOptions: gh.ListOptions{
			Page:    opts.Page,
			PerPage: opts.PageSize,
		},
	}

	prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, listOpts)
	if err != nil {
		return nil, mapError(err, endpoint)
	}
	logRateLimit(resp, endpoint, opts.Page, len(prs))

	records := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		records = append(records, mapPullRequest(pr))
	}
	return records, nil
}

// FetchPullRequestCommits retrieves one page of commit SHAs for a pull request.
func (c *RESTClient) FetchPullRequestCommits(ctx context.Context, owner, repo string, number int, opts PageOptions) ([]string, error) {
	opts = opts.normalize()
	endpoint := fmt.Sprintf("repos/%s/%s/pulls/%d/commits", owner, repo, number)

	listOpts := &gh.ListOptions{
		Page:    opts.Page,
		PerPage: opts.PageSize,
	}

	commits, resp, err := c.gh.PullRequests.ListCommits(ctx, owner, repo, number, listOpts)
	if err != nil {
		return nil, mapError(err, endpoint)
	}
	logRateLimit(resp, endpoint, opts.Page, len(commits))

	shas := make([]string, 0, len(commits))
	for _, commit := range commits {
		shas = append(shas, commit.GetSHA())
	}
	return shas, nil
}

// mapPullRequest converts a go-github PullRequest to the domain record.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest) PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		State:  pr.GetState(),
		Labels: labels,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
