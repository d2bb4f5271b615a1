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

// Package report serializes the commits collected for defect-fix pull
// requests into the three output files: CSV, JSON, and plain text.
//
// Each file is written atomically (rendered in memory, written to a
// temporary file, then renamed into place), so a failed run never leaves a
// half-written report. The three files together are not transactional: a
// failure between renames surfaces as ErrWriteFailed and the run exits
// nonzero.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"

	pullserrors "github.com/gripqa/github-pulls/internal/errors"
)

// PullRequestReport is one defect-fix pull request with its resolved
// commits, as it appears in the JSON output.
type PullRequestReport struct {
	Number  int      `json:"pull_request_id"`
	Title   string   `json:"title"`
	Matched string   `json:"matched,omitempty"`
	Commits []string `json:"commits"`
}

// Writer renders and writes the three report files for one repository.
type Writer struct {
	outputDir string
	owner     string
	repo      string
}

// NewWriter creates a report writer for the given repository. Files are
// named <repo>_pulls.{csv,json,txt} and placed in outputDir, overwriting
// any previous run's output.
func NewWriter(outputDir, owner, repo string) *Writer {
	return &Writer{outputDir: outputDir, owner: owner, repo: repo}
}

// CSVPath returns the path of the CSV report file.
func (w *Writer) CSVPath() string { return w.path("csv") }

// JSONPath returns the path of the JSON report file.
func (w *Writer) JSONPath() string { return w.path("json") }

// TextPath returns the path of the plain-text report file.
func (w *Writer) TextPath() string { return w.path("txt") }

func (w *Writer) path(ext string) string {
	return filepath.Join(w.outputDir, w.repo+"_pulls."+ext)
}

// WriteAll renders all three reports and writes each one atomically.
// Every commit SHA appears at most once per file: a SHA already exported
// for an earlier pull request is dropped from later ones, keeping the
// CSV, JSON, and text outputs mutually consistent.
func (w *Writer) WriteAll(reports []PullRequestReport) error {
	reports = dedupe(reports)

	csvData, err := w.renderCSV(reports)
	if err != nil {
		return fmt.Errorf("rendering CSV report: %v: %w", err, pullserrors.ErrWriteFailed)
	}
	jsonData, err := renderJSON(reports)
	if err != nil {
		return fmt.Errorf("rendering JSON report: %v: %w", err, pullserrors.ErrWriteFailed)
	}
	textData := renderText(reports)

	files := []struct {
		path string
		data []byte
	}{
		{w.CSVPath(), csvData},
		{w.JSONPath(), jsonData},
		{w.TextPath(), textData},
	}
	for _, f := range files {
		if err := atomic.WriteFile(f.path, bytes.NewReader(f.data)); err != nil {
			return fmt.Errorf("writing %s: %v: %w", f.path, err, pullserrors.ErrWriteFailed)
		}
	}
	return nil
}

// dedupe removes commit SHAs that already appeared earlier in the report
// set, preserving order. The first classified pull request keeps the commit.
func dedupe(reports []PullRequestReport) []PullRequestReport {
	seen := make(map[string]struct{})
	out := make([]PullRequestReport, 0, len(reports))
	for _, r := range reports {
		commits := make([]string, 0, len(r.Commits))
		for _, sha := range r.Commits {
			if _, dup := seen[sha]; dup {
				continue
			}
			seen[sha] = struct{}{}
			commits = append(commits, sha)
		}
		r.Commits = commits
		out = append(out, r)
	}
	return out
}

// renderCSV produces one row per commit. The owner/repo columns identify
// the source repository when several reports are aggregated downstream.
func (w *Writer) renderCSV(reports []PullRequestReport) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"pull_request_id", "commit_sha", "owner", "repo"}); err != nil {
		return nil, err
	}
	for _, r := range reports {
		for _, sha := range r.Commits {
			if err := cw.Write([]string{strconv.Itoa(r.Number), sha, w.owner, w.repo}); err != nil {
				return nil, err
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderJSON(reports []PullRequestReport) ([]byte, error) {
	// Empty result is an empty array, not null.
	if reports == nil {
		reports = []PullRequestReport{}
	}
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func renderText(reports []PullRequestReport) []byte {
	var buf bytes.Buffer
	for i, r := range reports {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "PR #%d: %s\n", r.Number, r.Title)
		if r.Matched != "" {
			fmt.Fprintf(&buf, "  matched: %s\n", r.Matched)
		}
		for _, sha := range r.Commits {
			fmt.Fprintf(&buf, "    %s\n", sha)
		}
	}
	return buf.Bytes()
}
