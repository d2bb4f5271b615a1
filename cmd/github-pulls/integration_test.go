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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pullserrors "github.com/gripqa/github-pulls/internal/errors"
	"github.com/gripqa/github-pulls/internal/report"
)

// newAPIServer fakes the two REST endpoints the tool uses.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/gripqa/widget/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "closed", r.URL.Query().Get("state"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprintf(w, `[
			{"number": 1, "title": "Fix null pointer crash", "body": "", "state": "closed", "labels": []},
			{"number": 2, "title": "Add new dashboard widget", "body": "", "state": "closed", "labels": []}
		]`)
	})
	mux.HandleFunc("/repos/gripqa/widget/pulls/1/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprintf(w, `[{"sha": %q}]`, shaFix)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestEndToEndAnalyze(t *testing.T) {
	server := newAPIServer(t)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GITHUB_API_ENDPOINT", server.URL)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"gripqa", "widget", "--quiet"})
	require.NoError(t, cmd.Execute())

	// CSV: only PR 1's commit, once.
	f, err := os.Open("widget_pulls.csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", shaFix, "gripqa", "widget"}, rows[1])

	// JSON: same single pull request with the same commit.
	data, err := os.ReadFile("widget_pulls.json")
	require.NoError(t, err)
	var parsed []report.PullRequestReport
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, 1, parsed[0].Number)
	assert.Equal(t, []string{shaFix}, parsed[0].Commits)

	// Text: mentions PR 1 and its commit but not PR 2's.
	text, err := os.ReadFile("widget_pulls.txt")
	require.NoError(t, err)
	assert.Contains(t, string(text), "PR #1: Fix null pointer crash")
	assert.Contains(t, string(text), shaFix)
	assert.NotContains(t, string(text), shaOther)
}

func TestEndToEndRateLimitAbortsWithoutOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ratelimit-Limit", "60")
		w.Header().Set("X-Ratelimit-Remaining", "0")
		w.Header().Set("X-Ratelimit-Reset", "4102444800")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded for 127.0.0.1."}`)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GITHUB_API_ENDPOINT", server.URL)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"gripqa", "widget", "--quiet"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, pullserrors.ErrRateLimit)
	assert.Equal(t, 3, mapErrorToExitCode(err))

	// No report files were written.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "widget_pulls."), "unexpected output file %s", e.Name())
	}
}

func TestEndToEndBadConfigAborts(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("github-pulls.cfg", []byte("github: [broken"), 0o600))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"gripqa", "widget", "--quiet"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, pullserrors.ErrBadConfig)
	assert.Equal(t, 2, mapErrorToExitCode(err))
}

func TestEndToEndInvalidPageSizeFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newRootCommand()
	cmd.SetArgs([]string{"gripqa", "widget", "--quiet", "--page-size", "500"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, pullserrors.ErrBadConfig)
}
