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

package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pullserrors "github.com/gripqa/github-pulls/internal/errors"
)

var (
	shaA = strings.Repeat("a1", 20)
	shaB = strings.Repeat("b2", 20)
	shaC = strings.Repeat("c3", 20)
)

func sampleReports() []PullRequestReport {
	return []PullRequestReport{
		{Number: 7, Title: "Fix crash on empty input", Matched: "fix", Commits: []string{shaA, shaB}},
		{Number: 9, Title: "Guard against stale cache", Matched: "label:bug", Commits: []string{shaC}},
	}
}

func TestWriteAllProducesThreeFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "gripqa", "widget")

	require.NoError(t, w.WriteAll(sampleReports()))

	assert.Equal(t, filepath.Join(dir, "widget_pulls.csv"), w.CSVPath())
	assert.Equal(t, filepath.Join(dir, "widget_pulls.json"), w.JSONPath())
	assert.Equal(t, filepath.Join(dir, "widget_pulls.txt"), w.TextPath())
	for _, path := range []string{w.CSVPath(), w.JSONPath(), w.TextPath()} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestCSVContents(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "gripqa", "widget")
	require.NoError(t, w.WriteAll(sampleReports()))

	rows := readCSV(t, w.CSVPath())
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"pull_request_id", "commit_sha", "owner", "repo"}, rows[0])
	assert.Equal(t, []string{"7", shaA, "gripqa", "widget"}, rows[1])
	assert.Equal(t, []string{"7", shaB, "gripqa", "widget"}, rows[2])
	assert.Equal(t, []string{"9", shaC, "gripqa", "widget"}, rows[3])
}

func TestTextContents(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "gripqa", "widget")
	require.NoError(t, w.WriteAll(sampleReports()))

	data, err := os.ReadFile(w.TextPath())
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "PR #7: Fix crash on empty input\n")
	assert.Contains(t, text, "  matched: fix\n")
	assert.Contains(t, text, "    "+shaA+"\n")
	assert.Contains(t, text, "PR #9: Guard against stale cache\n")
	assert.Contains(t, text, "    "+shaC+"\n")
}

func TestJSONRoundTripMatchesCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "gripqa", "widget")
	require.NoError(t, w.WriteAll(sampleReports()))

	data, err := os.ReadFile(w.JSONPath())
	require.NoError(t, err)

	var parsed []PullRequestReport
	require.NoError(t, json.Unmarshal(data, &parsed))

	jsonPairs := make(map[[2]string]bool)
	for _, r := range parsed {
		for _, sha := range r.Commits {
			jsonPairs[[2]string{strconv.Itoa(r.Number), sha}] = true
		}
	}

	csvPairs := make(map[[2]string]bool)
	for _, row := range readCSV(t, w.CSVPath())[1:] {
		csvPairs[[2]string{row[0], row[1]}] = true
	}

	assert.Equal(t, jsonPairs, csvPairs)
}

func TestNoCommitAppearsTwice(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "gripqa", "widget")

	// The same commit lands in two classified pull requests; the first one
	// keeps it.
	reports := []PullRequestReport{
		{Number: 7, Title: "Fix crash", Matched: "fix", Commits: []string{shaA, shaB}},
		{Number: 9, Title: "Fix crash again", Matched: "fix", Commits: []string{shaB, shaC}},
	}
	require.NoError(t, w.WriteAll(reports))

	rows := readCSV(t, w.CSVPath())
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		assert.False(t, seen[row[1]], "duplicate commit %s in CSV", row[1])
		seen[row[1]] = true
	}

	data, err := os.ReadFile(w.JSONPath())
	require.NoError(t, err)
	var parsed []PullRequestReport
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{shaA, shaB}, parsed[0].Commits)
	assert.Equal(t, []string{shaC}, parsed[1].Commits)
}

func TestWithinReportDuplicateDropped(t *testing.T) {
	got := dedupe([]PullRequestReport{
		{Number: 7, Commits: []string{shaA, shaA, shaB}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, []string{shaA, shaB}, got[0].Commits)
}

func TestEmptyResultWritesEmptyReports(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "gripqa", "widget")
	require.NoError(t, w.WriteAll(nil))

	data, err := os.ReadFile(w.JSONPath())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	rows := readCSV(t, w.CSVPath())
	require.Len(t, rows, 1) // header only
}

func TestOverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "gripqa", "widget")

	require.NoError(t, w.WriteAll(sampleReports()))
	require.NoError(t, w.WriteAll([]PullRequestReport{
		{Number: 3, Title: "Fix typo", Matched: "fix", Commits: []string{shaC}},
	}))

	rows := readCSV(t, w.CSVPath())
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1][0])
}

func TestWriteFailureIsWriteError(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing", "dir"), "gripqa", "widget")

	err := w.WriteAll(sampleReports())
	require.Error(t, err)
	assert.ErrorIs(t, err, pullserrors.ErrWriteFailed)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
