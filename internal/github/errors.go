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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v82/github"

	pullserrors "github.com/gripqa/github-pulls/internal/errors"
)

// mapError translates go-github and transport errors into the application's
// sentinel errors, attaching the endpoint and status code so failures can be
// diagnosed from stderr alone. Errors are terminal; nothing here is retried.
func mapError(err error, endpoint string) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: rate limit exhausted, resets at %s: %w",
			endpoint, rateErr.Rate.Reset.Time.Format("15:04:05 MST"), pullserrors.ErrRateLimit)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: secondary rate limit hit: %w", endpoint, pullserrors.ErrRateLimit)
	}

	var apiErr *gh.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		status := apiErr.Response.StatusCode
		switch {
		case status == http.StatusUnauthorized:
			return fmt.Errorf("%s: HTTP 401: %s: %w", endpoint, apiErr.Message, pullserrors.ErrInvalidToken)
		case status == http.StatusForbidden:
			// A 403 without rate limit headers can still be rate limiting;
			// the API says so in the message body.
			if strings.Contains(strings.ToLower(apiErr.Message), "rate limit") {
				return fmt.Errorf("%s: HTTP 403: %s: %w", endpoint, apiErr.Message, pullserrors.ErrRateLimit)
			}
			return fmt.Errorf("%s: HTTP 403: %s: %w", endpoint, apiErr.Message, pullserrors.ErrInvalidToken)
		case status == http.StatusNotFound:
			return fmt.Errorf("%s: HTTP 404: %w", endpoint, pullserrors.ErrRepoNotFound)
		default:
			return fmt.Errorf("%s: HTTP %d: %s", endpoint, status, apiErr.Message)
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %v: %w", endpoint, urlErr.Err, pullserrors.ErrNetworkFailure)
	}

	return fmt.Errorf("%s: %w", endpoint, err)
}
