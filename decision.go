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
// Adapted from robots.h/robots.cc's RobotsMatcher, Match and MatchHierarchy,
// as ported by jimsmart/grobotstxt.

package robotstxt

import (
	"strings"
	"unicode"
)

// matchRecord is the (priority, line) pair described in spec.md §3. A
// priority of NoMatch (-1) is never stored; the zero value represents
// "unset" (priority 0, line 0), which is also what an empty-pattern match
// records, so "unset" and "matched the empty pattern" are told apart only
// by whether any non-empty pattern has since raised the priority above it
// — exactly the teacher's convention.
type matchRecord struct {
	priority int
	line     int
}

func (r *matchRecord) set(priority, line int) {
	r.priority = priority
	r.line = line
}

// higherPriority returns whichever of a, b has the higher priority; on a
// tie it returns the one recorded on the earlier line.
func higherPriority(a, b matchRecord) matchRecord {
	if b.priority > a.priority || b.priority == a.priority && b.line < a.line {
		return b
	}
	return a
}

// Option configures a Matcher at construction time, replacing the
// teacher's process-global AllowFrequentTypos flag (see design notes,
// "Global mutable flag").
type Option func(*Matcher)

// WithTypoTolerance toggles recognition of the handful of common key typos
// listed in spec.md §4.2 (e.g. "disalow"). Enabled by default.
func WithTypoTolerance(enabled bool) Option {
	return func(m *Matcher) { m.typoTolerant = enabled }
}

// WithMatchStrategy overrides the pattern-matching strategy used to
// arbitrate Allow/Disallow patterns. The default is LongestMatch{}.
func WithMatchStrategy(strategy MatchStrategy) Option {
	return func(m *Matcher) { m.strategy = strategy }
}

// Matcher decides whether a crawler is allowed to fetch a URL, given the
// body of a robots.txt file and the crawler's user-agent product tokens.
//
// A Matcher may be constructed once and reused across many Allowed calls —
// each call resets all per-decision state first — but it is not safe for
// concurrent use by multiple goroutines; give each goroutine its own
// Matcher.
type Matcher struct {
	typoTolerant bool
	strategy     MatchStrategy

	allowGlobal      matchRecord
	disallowGlobal   matchRecord
	allowSpecific    matchRecord
	disallowSpecific matchRecord

	seenGlobalAgent       bool
	seenSpecificAgent     bool
	everSeenSpecificAgent bool
	seenSeparator         bool

	path   string
	agents []string
}

var _ Handler = (*Matcher)(nil)

// New builds a Matcher with the default longest-match strategy and typo
// tolerance enabled, then applies opts.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		typoTolerant: true,
		strategy:     LongestMatch{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allowed reports whether any of agents is permitted to fetch uri,
// according to robotsBody. An empty agents list means only '*' (global)
// groups apply.
func (m *Matcher) Allowed(robotsBody string, agents []string, uri string) bool {
	m.path = pathParamsQuery(uri)
	m.agents = agents
	Tokenize(robotsBody, m.typoTolerant, m)
	return !m.disallow()
}

// AllowedOne is a convenience wrapper around Allowed for a single agent.
func (m *Matcher) AllowedOne(robotsBody, agent, uri string) bool {
	return m.Allowed(robotsBody, []string{agent}, uri)
}

// MatchingLine returns the line number of the highest-priority Allow or
// Disallow directive recorded by the most recent Allowed/AllowedOne call,
// taken from the specific group if one was seen and from the global group
// otherwise. When the Allow and Disallow records tie on priority, the
// earlier of the two lines is reported. It returns 0 when no non-empty
// pattern matched.
func (m *Matcher) MatchingLine() int {
	if m.everSeenSpecificAgent {
		return higherPriority(m.disallowSpecific, m.allowSpecific).line
	}
	return higherPriority(m.disallowGlobal, m.allowGlobal).line
}

// EverSeenSpecificAgent reports whether the most recent Allowed/AllowedOne
// call encountered a User-Agent group matching one of the caller's agents.
func (m *Matcher) EverSeenSpecificAgent() bool {
	return m.everSeenSpecificAgent
}

func (m *Matcher) seenAnyAgent() bool {
	return m.seenGlobalAgent || m.seenSpecificAgent
}

// disallow implements spec.md §4.5 "Final verdict".
func (m *Matcher) disallow() bool {
	if m.allowSpecific.priority > 0 || m.disallowSpecific.priority > 0 {
		return m.disallowSpecific.priority > m.allowSpecific.priority
	}
	if m.everSeenSpecificAgent {
		return false
	}
	if m.disallowGlobal.priority > 0 || m.allowGlobal.priority > 0 {
		return m.disallowGlobal.priority > m.allowGlobal.priority
	}
	return false
}

// OnStart resets all per-decision state. It is called by Tokenize before
// the first directive of a Tokenize/Allowed call.
func (m *Matcher) OnStart() {
	m.allowGlobal = matchRecord{}
	m.disallowGlobal = matchRecord{}
	m.allowSpecific = matchRecord{}
	m.disallowSpecific = matchRecord{}

	m.seenGlobalAgent = false
	m.seenSpecificAgent = false
	m.everSeenSpecificAgent = false
	m.seenSeparator = false
}

func (m *Matcher) OnEnd() {}

// extractProductToken returns the leading run of [A-Za-z_-] characters from
// a User-Agent value (spec.md §4.5, "product token").
func extractProductToken(value string) string {
	i := 0
	for ; i < len(value); i++ {
		c := value[i]
		if !(isASCIIAlpha(c) || c == '-' || c == '_') {
			break
		}
	}
	return value[:i]
}

func isASCIIAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isASCIISpace(c byte) bool {
	return c < 0x80 && unicode.IsSpace(rune(c))
}

func (m *Matcher) OnUserAgent(_ int, value string) {
	if m.seenSeparator {
		// A new group is beginning.
		m.seenSpecificAgent = false
		m.seenGlobalAgent = false
		m.seenSeparator = false
	}

	// Google-specific optimization: a '*' followed by space and more
	// characters in a User-Agent value is still a global rule.
	if len(value) >= 1 && value[0] == '*' && (len(value) == 1 || isASCIISpace(value[1])) {
		m.seenGlobalAgent = true
		return
	}

	token := extractProductToken(value)
	for _, agent := range m.agents {
		if strings.EqualFold(token, agent) {
			m.everSeenSpecificAgent = true
			m.seenSpecificAgent = true
			break
		}
	}
}

func (m *Matcher) OnAllow(line int, value string) {
	if !m.seenAnyAgent() {
		return
	}
	m.seenSeparator = true

	priority := m.strategy.MatchAllow(m.path, value)
	if priority >= 0 {
		m.recordAllow(priority, line)
		return
	}

	// Google-specific optimization: "…/index.htm(l)" is an alias for the
	// directory root. Retried at most once — never re-entered — per the
	// "recursive index.htm normalization" design note.
	if synthesized, ok := indexHomeAlias(value); ok {
		if priority := m.strategy.MatchAllow(m.path, synthesized); priority >= 0 {
			m.recordAllow(priority, line)
		}
	}
}

// indexHomeAlias synthesizes the directory-root alias (the pattern up to
// and including its last '/', followed by '$') for a pattern whose last '/'
// is followed by "index.htm" (so ".../index.htm", ".../index.html", and
// anything else after that prefix), per spec.md §4.5.
func indexHomeAlias(pattern string) (string, bool) {
	slash := strings.LastIndexByte(pattern, '/')
	if slash == -1 || !strings.HasPrefix(pattern[slash:], "/index.htm") {
		return "", false
	}
	return pattern[:slash+1] + "$", true
}

func (m *Matcher) recordAllow(priority, line int) {
	if m.seenSpecificAgent {
		if m.allowSpecific.priority < priority {
			m.allowSpecific.set(priority, line)
		}
		return
	}
	if m.allowGlobal.priority < priority {
		m.allowGlobal.set(priority, line)
	}
}

func (m *Matcher) OnDisallow(line int, value string) {
	if !m.seenAnyAgent() {
		return
	}
	m.seenSeparator = true

	priority := m.strategy.MatchDisallow(m.path, value)
	if priority < 0 {
		return
	}
	if m.seenSpecificAgent {
		if m.disallowSpecific.priority < priority {
			m.disallowSpecific.set(priority, line)
		}
		return
	}
	if m.disallowGlobal.priority < priority {
		m.disallowGlobal.set(priority, line)
	}
}

func (m *Matcher) OnSitemap(_ int, _ string) {
	m.seenSeparator = true
}

func (m *Matcher) OnCrawlDelay(_ int, _ string) {
	// Recognized but never interpreted — see Non-goals in spec.md §1. Use
	// the CrawlDelays extractor to recover the raw literal per agent.
	m.seenSeparator = true
}

func (m *Matcher) OnUnknown(_ int, _, _ string) {
	m.seenSeparator = true
}

// Allowed is a package-level convenience wrapping a fresh Matcher, for
// callers who need a single decision and don't want to manage a Matcher's
// lifetime themselves.
func Allowed(robotsBody string, agents []string, uri string) bool {
	return New().Allowed(robotsBody, agents, uri)
}

// AllowedOne is the single-agent counterpart of Allowed.
func AllowedOne(robotsBody, agent, uri string) bool {
	return New().AllowedOne(robotsBody, agent, uri)
}
