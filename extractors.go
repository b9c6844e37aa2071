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
// Sitemaps is adapted from sitemaps.go, as ported by jimsmart/grobotstxt.
// CrawlDelays and Agents are new handler-interface consumers built on the
// same Handler/Tokenize plumbing, demonstrating the "handler interface"
// extensibility point described in spec.md §6.

package robotstxt

// sitemapExtractor collects every Sitemap directive in a robots.txt body,
// in the order they appear, ignoring everything else.
type sitemapExtractor struct {
	sitemaps []string
}

var _ Handler = (*sitemapExtractor)(nil)

func (e *sitemapExtractor) OnStart() { e.sitemaps = nil }
func (e *sitemapExtractor) OnEnd() {}
func (e *sitemapExtractor) OnUserAgent(int, string) {}
func (e *sitemapExtractor) OnAllow(int, string) {}
func (e *sitemapExtractor) OnDisallow(int, string) {}
func (e *sitemapExtractor) OnCrawlDelay(int, string) {}
func (e *sitemapExtractor) OnUnknown(int, string, string) {}
func (e *sitemapExtractor) OnSitemap(_ int, value string) {
	e.sitemaps = append(e.sitemaps, value)
}

// Sitemaps returns every Sitemap URL declared in body, in the order they
// appear. Sitemap values are never group-scoped or percent-encoded (§3),
// so every Sitemap line in the file is returned regardless of which (if
// any) User-Agent group precedes it.
func Sitemaps(body string) []string {
	e := &sitemapExtractor{}
	Tokenize(body, true, e)
	return e.sitemaps
}

// crawlDelayExtractor collects the last Crawl-Delay literal seen in each
// User-Agent group, keyed by that group's product token (or "*" for a
// global group). It tracks group boundaries the same way the decision
// engine does (§4.5): consecutive User-Agent lines with no intervening
// directive belong to one group; any other directive ends it, so the next
// User-Agent line starts a fresh one.
type crawlDelayExtractor struct {
	delays        map[string]string
	current       []string
	seenSeparator bool
}

var _ Handler = (*crawlDelayExtractor)(nil)

func (e *crawlDelayExtractor) OnStart() {
	e.delays = make(map[string]string)
	e.current = nil
	e.seenSeparator = false
}
func (e *crawlDelayExtractor) OnEnd() {}
func (e *crawlDelayExtractor) OnAllow(int, string) {
	e.seenSeparator = true
}
func (e *crawlDelayExtractor) OnDisallow(int, string) {
	e.seenSeparator = true
}
func (e *crawlDelayExtractor) OnSitemap(int, string) {
	e.seenSeparator = true
}
func (e *crawlDelayExtractor) OnUnknown(int, string, string) {
	e.seenSeparator = true
}

func (e *crawlDelayExtractor) OnUserAgent(_ int, value string) {
	if e.seenSeparator {
		e.current = nil
		e.seenSeparator = false
	}
	token := "*"
	if !(len(value) >= 1 && value[0] == '*' && (len(value) == 1 || isASCIISpace(value[1]))) {
		token = extractProductToken(value)
	}
	e.current = append(e.current, token)
}

func (e *crawlDelayExtractor) OnCrawlDelay(_ int, value string) {
	e.seenSeparator = true
	for _, agent := range e.current {
		e.delays[agent] = value
	}
}

// CrawlDelays returns the raw (unparsed) Crawl-Delay literal declared for
// each User-Agent in body, keyed by product token ("*" for the global
// group). Per spec.md §1 Non-goals, the library never interprets this
// value as a duration; callers that want to honor it parse it themselves.
func CrawlDelays(body string) map[string]string {
	e := &crawlDelayExtractor{}
	Tokenize(body, true, e)
	return e.delays
}

// agentExtractor collects the distinct User-Agent values declared in a
// robots.txt body, in first-seen order.
type agentExtractor struct {
	agents []string
	seen   map[string]bool
}

var _ Handler = (*agentExtractor)(nil)

func (e *agentExtractor) OnStart() {
	e.agents = nil
	e.seen = make(map[string]bool)
}
func (e *agentExtractor) OnEnd() {}
func (e *agentExtractor) OnAllow(int, string) {}
func (e *agentExtractor) OnDisallow(int, string) {}
func (e *agentExtractor) OnSitemap(int, string) {}
func (e *agentExtractor) OnCrawlDelay(int, string) {}
func (e *agentExtractor) OnUnknown(int, string, string) {}

func (e *agentExtractor) OnUserAgent(_ int, value string) {
	if !e.seen[value] {
		e.seen[value] = true
		e.agents = append(e.agents, value)
	}
}

// Agents returns the distinct User-Agent values declared in body, in the
// order they first appear. Useful for inspecting an unfamiliar robots.txt
// before deciding which agent name to crawl as.
func Agents(body string) []string {
	e := &agentExtractor{}
	Tokenize(body, true, e)
	return e.agents
}
