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
	"fmt"
	"os"

	"github.com/gripqa/github-pulls/internal/classify"
	"github.com/gripqa/github-pulls/internal/config"
	"github.com/gripqa/github-pulls/internal/github"
	"github.com/gripqa/github-pulls/internal/report"
)

// analyzeOptions carries the flag values into the pipeline. Quiet replaces
// any ambient verbosity global: components receive it explicitly.
type analyzeOptions struct {
	ConfigPath string
	PageSize   int
	OutputDir  string
	Quiet      bool
}

// runAnalyze executes the whole pipeline: load config, fetch closed pull
// requests, classify them, resolve commits for the defect fixes, and write
// the three report files. Strictly sequential; the first error aborts the
// run and no report files are written.
func runAnalyze(ctx context.Context, owner, repo string, opts analyzeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.PageSize > 0 {
		cfg.Defaults.PageSize = opts.PageSize
	}
	if opts.OutputDir != "" {
		cfg.Defaults.OutputDir = opts.OutputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := github.NewRESTClient(cfg.GitHub)
	if err != nil {
		return err
	}

	if !opts.Quiet && cfg.GitHub.Anonymous() {
		fmt.Fprintln(os.Stderr, "No credentials configured; using anonymous access")
	}

	classifier := classify.New(cfg.Classifier.Keywords, cfg.Classifier.Labels)

	reports, err := analyzePulls(ctx, client, classifier, owner, repo, cfg.Defaults.PageSize, opts.Quiet)
	if err != nil {
		return err
	}

	writer := report.NewWriter(cfg.Defaults.OutputDir, owner, repo)
	if err := writer.WriteAll(reports); err != nil {
		return err
	}

	if !opts.Quiet {
		commits := 0
		for _, r := range reports {
			commits += len(r.Commits)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d commits from %d defect-fix pull requests to %s, %s, %s\n",
			commits, len(reports), writer.CSVPath(), writer.JSONPath(), writer.TextPath())
	}

	return nil
}

// analyzePulls fetches all closed pull requests, classifies each one, and
// resolves the commit list for every defect fix.
func analyzePulls(ctx context.Context, client github.Client, classifier *classify.Classifier, owner, repo string, pageSize int, quiet bool) ([]report.PullRequestReport, error) {
	pulls, err := fetchAllClosed(ctx, client, owner, repo, pageSize, quiet)
	if err != nil {
		return nil, err
	}

	var reports []report.PullRequestReport
	for i, pr := range pulls {
		res := classifier.Classify(pr)
		if !res.Defect {
			continue
		}

		if !quiet {
			fmt.Fprintf(os.Stderr, "\rResolving commits... PR %d/%d", i+1, len(pulls))
		}

		commits, err := fetchAllCommits(ctx, client, owner, repo, pr.Number, pageSize)
		if err != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "\r\033[K")
			}
			return nil, err
		}
		pr.Commits = commits

		reports = append(reports, report.PullRequestReport{
			Number:  pr.Number,
			Title:   pr.Title,
			Matched: res.Matched,
			Commits: pr.Commits,
		})
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "\r\033[K")
	}

	return reports, nil
}

// fetchAllClosed pages through the repository's closed pull requests until
// exhaustion. A short page ends the listing; a page of exactly pageSize
// items requires one more request, which must come back empty, so a full
// final page still terminates.
func fetchAllClosed(ctx context.Context, client github.Client, owner, repo string, pageSize int, quiet bool) ([]github.PullRequest, error) {
	var all []github.PullRequest
	for page := 1; ; page++ {
		prs, err := client.FetchClosedPullRequests(ctx, owner, repo, github.PageOptions{
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "\r\033[K")
			}
			return nil, err
		}
		if len(prs) == 0 {
			break
		}
		all = append(all, prs...)

		if !quiet {
			fmt.Fprintf(os.Stderr, "\rFetching closed pull requests from %s/%s... %d fetched", owner, repo, len(all))
		}
		if len(prs) < pageSize {
			break
		}
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "\r\033[K")
		fmt.Fprintf(os.Stderr, "Fetched %d closed pull requests from %s/%s\n", len(all), owner, repo)
	}
	return all, nil
}

// fetchAllCommits pages through one pull request's commits, preserving the
// API's chronological order. Termination mirrors fetchAllClosed.
func fetchAllCommits(ctx context.Context, client github.Client, owner, repo string, number, pageSize int) ([]string, error) {
	var all []string
	for page := 1; ; page++ {
		shas, err := client.FetchPullRequestCommits(ctx, owner, repo, number, github.PageOptions{
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, err
		}
		if len(shas) == 0 {
			break
		}
		all = append(all, shas...)
		if len(shas) < pageSize {
			break
		}
	}
	return all, nil
}
