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
//
// Adapted from robots.cc's ParsedRobotsKey, as ported by jimsmart/grobotstxt.

package robotstxt

import "strings"

// DirectiveKind is the closed set of directive keys this package
// understands. Unknown carries the original key text for callers that want
// to dispatch on it (see Handler.OnUnknown).
type DirectiveKind int

const (
	// Unknown is the zero value, so additions to this enumeration never
	// change the meaning of an already-serialized value.
	Unknown DirectiveKind = iota
	UserAgent
	Sitemap
	Allow
	Disallow
	CrawlDelay
)

func (k DirectiveKind) String() string {
	switch k {
	case UserAgent:
		return "user-agent"
	case Sitemap:
		return "sitemap"
	case Allow:
		return "allow"
	case Disallow:
		return "disallow"
	case CrawlDelay:
		return "crawl-delay"
	default:
		return "unknown"
	}
}

// needsEscaping reports whether a directive's value must be percent-encoding
// canonicalized (§4.1) before use. Only UserAgent and Sitemap values are
// passed through verbatim.
func (k DirectiveKind) needsEscaping() bool {
	switch k {
	case UserAgent, Sitemap:
		return false
	default:
		return true
	}
}

// classifyKey classifies a raw directive key (§4.2), case-insensitively and
// tolerant of the handful of typos actually seen in the wild when
// typoTolerant is set. Unknown keys are returned with kind Unknown and their
// original text.
func classifyKey(key string, typoTolerant bool) (DirectiveKind, string) {
	switch {
	case hasPrefixFold(key, "user-agent"),
		typoTolerant && (hasPrefixFold(key, "useragent") || hasPrefixFold(key, "user agent")):
		return UserAgent, ""
	case hasPrefixFold(key, "allow"):
		return Allow, ""
	case hasPrefixFold(key, "disallow"),
		typoTolerant && (hasPrefixFold(key, "dissallow") ||
			hasPrefixFold(key, "dissalow") ||
			hasPrefixFold(key, "disalow") ||
			hasPrefixFold(key, "diasllow") ||
			hasPrefixFold(key, "disallaw")):
		return Disallow, ""
	case hasPrefixFold(key, "sitemap"), hasPrefixFold(key, "site-map"):
		return Sitemap, ""
	case hasPrefixFold(key, "crawl-delay"),
		typoTolerant && (hasPrefixFold(key, "crawldelay") || hasPrefixFold(key, "crawl delay")):
		return CrawlDelay, ""
	default:
		return Unknown, key
	}
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}
