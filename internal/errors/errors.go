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

// Package errors holds the sentinel errors every component wraps its
// failures with. Each sentinel corresponds to one exit code, so a shell
// caller can tell a bad config file from an exhausted rate limit without
// parsing stderr. The mapping lives in the cmd package.
package errors

import "errors"

// One sentinel per failure class in the error taxonomy.
var (
	// ErrBadConfig: the credential/config file exists but could not be
	// parsed, or holds invalid values. An absent file is not an error.
	// Exit code 2.
	ErrBadConfig = errors.New("invalid configuration file")

	// ErrInvalidToken: the API rejected the credentials (401, or a 403
	// that is not rate limiting).
	// Exit code 3.
	ErrInvalidToken = errors.New("invalid github credentials")

	// ErrRepoNotFound: the repository does not exist, or the credentials
	// cannot see it.
	// Exit code 3.
	ErrRepoNotFound = errors.New("repository not found or not accessible")

	// ErrRateLimit: the API reported an exhausted rate limit. The run
	// aborts; there is no waiting or retrying.
	// Exit code 3.
	ErrRateLimit = errors.New("github api rate limit exhausted")

	// ErrNetworkFailure: the request never produced an HTTP response
	// (DNS, dial, TLS, timeout).
	// Exit code 4.
	ErrNetworkFailure = errors.New("network request failed")

	// ErrWriteFailed: a report file could not be rendered or written.
	// Exit code 5.
	ErrWriteFailed = errors.New("failed to write report file")
)
