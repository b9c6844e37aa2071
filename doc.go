// Copyright 2020 Jim Smart
// Copyright 1999 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package robotstxt implements the Robots Exclusion Protocol, the expired
// "draft-koster-rep" internet draft, together with the operator extensions
// that every crawler in the wild actually relies on: '*' and trailing '$'
// wildcards, longest-match precedence between Allow and Disallow, typo
// tolerance on directive keys, and percent-encoding canonicalization of
// patterns.
//
// The package never performs network I/O and never caches a robots.txt
// body across calls — fetching and caching are the caller's job. Given the
// body of a robots.txt file, a list of user-agent product tokens, and a
// target URL, it answers exactly one question: is the crawler allowed to
// fetch that URL.
package robotstxt
