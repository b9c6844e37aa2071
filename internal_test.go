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
// White-box specs for the unexported canonicalization, key-classification
// and line-scanning helpers, adapted from robots_private_test.go.

package robotstxt

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("internals", func() {

	testPath := func(uri, expected string) {
		Expect(pathParamsQuery(uri)).To(Equal(expected))
	}

	testEscape := func(src, expected string) {
		Expect(escapePattern(src)).To(Equal(expected))
	}

	It("extracts path, params and query", func() {
		testPath("", "/")
		testPath("http://www.example.com", "/")
		testPath("http://www.example.com/", "/")
		testPath("http://www.example.com/a", "/a")
		testPath("http://www.example.com/a/", "/a/")
		testPath("http://www.example.com/a/b?c=http://d.e/", "/a/b?c=http://d.e/")
		testPath("http://www.example.com/a/b?c=d&e=f#fragment", "/a/b?c=d&e=f")
		testPath("example.com", "/")
		testPath("example.com/", "/")
		testPath("example.com/a", "/a")
		testPath("example.com/a/", "/a/")
		testPath("example.com/a/b?c=d&e=f#fragment", "/a/b?c=d&e=f")
		testPath("a", "/")
		testPath("a/", "/")
		testPath("/a", "/a")
		testPath("a/b", "/b")
		testPath("example.com?a", "/?a")
		testPath("example.com/a;b#c", "/a;b")
		testPath("//a/b/c", "/b/c")
	})

	It("returns / when a fragment precedes any path marker", func() {
		testPath("http://example.com/#/a", "/")
		testPath("#a", "/")
	})

	It("percent-encodes and canonicalizes patterns", func() {
		testEscape("http://www.example.com", "http://www.example.com")
		testEscape("/a/b/c", "/a/b/c")
		testEscape("á", "%C3%A1")
		testEscape("%aa", "%AA")
		testEscape("%2f", "%2F")
		testEscape("%2F", "%2F")
	})

	It("canonicalization is idempotent", func() {
		for _, p := range []string{"/a/b/c", "á", "%aa", "/Sanjos%C3%A9Sellers", "plain"} {
			once := escapePattern(p)
			twice := escapePattern(once)
			Expect(twice).To(Equal(once))
		}
	})

	Describe("classifyKey", func() {
		It("recognizes canonical keys case-insensitively", func() {
			kind, _ := classifyKey("User-Agent", true)
			Expect(kind).To(Equal(UserAgent))
			kind, _ = classifyKey("ALLOW", true)
			Expect(kind).To(Equal(Allow))
			kind, _ = classifyKey("Disallow", true)
			Expect(kind).To(Equal(Disallow))
			kind, _ = classifyKey("Sitemap", true)
			Expect(kind).To(Equal(Sitemap))
			kind, _ = classifyKey("site-map", true)
			Expect(kind).To(Equal(Sitemap))
			kind, _ = classifyKey("Crawl-Delay", true)
			Expect(kind).To(Equal(CrawlDelay))
		})

		It("tolerates common typos only when enabled", func() {
			kind, _ := classifyKey("useragent", true)
			Expect(kind).To(Equal(UserAgent))
			kind, _ = classifyKey("dissalow", true)
			Expect(kind).To(Equal(Disallow))
			kind, _ = classifyKey("crawldelay", true)
			Expect(kind).To(Equal(CrawlDelay))

			kind, _ = classifyKey("dissalow", false)
			Expect(kind).To(Equal(Unknown))
		})

		It("keeps the raw text of an unknown key", func() {
			kind, text := classifyKey("host", true)
			Expect(kind).To(Equal(Unknown))
			Expect(text).To(Equal("host"))
		})
	})

	Describe("lineScanner", func() {
		collect := func(body string) []string {
			s := newLineScanner(body)
			var lines []string
			for {
				line, ok := s.next()
				if !ok {
					return lines
				}
				lines = append(lines, line)
			}
		}

		It("splits on LF, CR and CRLF without double-counting CRLF", func() {
			Expect(collect("a\nb")).To(Equal([]string{"a", "b"}))
			Expect(collect("a\rb")).To(Equal([]string{"a", "b"}))
			Expect(collect("a\r\nb")).To(Equal([]string{"a", "b"}))
		})

		It("emits a final line at exhaustion, as if terminated", func() {
			Expect(collect("a")).To(Equal([]string{"a"}))
			Expect(collect("a\n")).To(Equal([]string{"a", ""}))
			Expect(collect("")).To(Equal([]string{""}))
		})

		It("skips a leading UTF-8 BOM only at the very start", func() {
			Expect(collect("\xEF\xBB\xBFa\nb")).To(Equal([]string{"a", "b"}))
		})

		It("truncates a line that exceeds the bound", func() {
			long := make([]byte, maxLineLen+10)
			for i := range long {
				long[i] = 'x'
			}
			lines := collect(string(long))
			Expect(lines).To(HaveLen(1))
			Expect(lines[0]).To(HaveLen(maxLineLen - 1))
		})
	})

	Describe("splitKeyValue", func() {
		It("splits on a colon", func() {
			key, value, ok := splitKeyValue("Disallow: /a")
			Expect(ok).To(BeTrue())
			Expect(key).To(Equal("Disallow"))
			Expect(value).To(Equal("/a"))
		})

		It("accepts whitespace only for exactly two tokens", func() {
			key, value, ok := splitKeyValue("Disallow /a")
			Expect(ok).To(BeTrue())
			Expect(key).To(Equal("Disallow"))
			Expect(value).To(Equal("/a"))

			_, _, ok = splitKeyValue("Disallow /a /b")
			Expect(ok).To(BeFalse())
		})

		It("strips trailing comments before splitting", func() {
			key, value, ok := splitKeyValue("Disallow: /a # comment")
			Expect(ok).To(BeTrue())
			Expect(key).To(Equal("Disallow"))
			Expect(value).To(Equal("/a"))
		})

		It("discards lines without a usable separator or key", func() {
			_, _, ok := splitKeyValue("just a comment # only")
			Expect(ok).To(BeFalse())
			_, _, ok = splitKeyValue(": novaluekey")
			Expect(ok).To(BeFalse())
		})
	})
})
