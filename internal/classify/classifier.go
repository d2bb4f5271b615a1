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

// Package classify implements the defect-detection heuristic: a fixed,
// named rule list applied to a pull request's title, body, and labels.
// Classification is a pure function — deterministic, side-effect-free, and
// independent of the fetch/resolve pipeline around it.
package classify

import (
	"regexp"
	"strings"

	"github.com/gripqa/github-pulls/internal/github"
)

// issueReferencePatterns match explicit links to tracked issues, such as
// "issue #42", "closes #42", "fixes #42", "resolved #42". They are the
// fixed part of the rule list: the keyword and label sets are tunable via
// the classifier section of the config file, but these patterns encode the
// GitHub issue-closing grammar and are deliberately not configurable.
// They are checked after the plain keyword substrings.
var issueReferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bissue\s*#\d+`),
	regexp.MustCompile(`(?i)\bclose[sd]?\s*#\d+`),
	regexp.MustCompile(`(?i)\bfix(?:e[sd])?\s*#\d+`),
	regexp.MustCompile(`(?i)\bresolve[sd]?\s*#\d+`),
}

// Result is the classification attached to a pull request. Matched records
// the keyword, pattern, or label that triggered the match so every exported
// commit can be traced back to the rule that selected its pull request.
type Result struct {
	Defect  bool
	Matched string
}

// Classifier holds the compiled rule list. Matching is OR over all rules
// with first-match short-circuit; there is no scoring.
type Classifier struct {
	keywords []string
	labels   map[string]struct{}
}

// New builds a Classifier from the configured keyword and label lists.
// Keywords are matched case-insensitively as substrings of the title and
// body; labels are matched exactly (GitHub labels are already canonical).
func New(keywords, labels []string) *Classifier {
	c := &Classifier{
		keywords: make([]string, 0, len(keywords)),
		labels:   make(map[string]struct{}, len(labels)),
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			c.keywords = append(c.keywords, kw)
		}
	}
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			c.labels[l] = struct{}{}
		}
	}
	return c
}

// Classify applies the rule list to one pull request. Rule order: keywords
// against title then body, issue-reference patterns, then labels.
func (c *Classifier) Classify(pr github.PullRequest) Result {
	title := strings.ToLower(pr.Title)
	body := strings.ToLower(pr.Body)

	for _, kw := range c.keywords {
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			return Result{Defect: true, Matched: kw}
		}
	}

	for _, pattern := range issueReferencePatterns {
		if m := pattern.FindString(pr.Title); m != "" {
			return Result{Defect: true, Matched: m}
		}
		if m := pattern.FindString(pr.Body); m != "" {
			return Result{Defect: true, Matched: m}
		}
	}

	for _, label := range pr.Labels {
		if _, ok := c.labels[label]; ok {
			return Result{Defect: true, Matched: "label:" + label}
		}
	}

	return Result{}
}
