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
// Adapted from robots.cc (GetPathParamsQuery, MaybeEscapePattern) in
// https://github.com/google/robotstxt, as ported by jimsmart/grobotstxt.

package robotstxt

import (
	"strings"
)

// pathParamsQuery extracts path, params and query from a URL, dropping
// scheme, authority and fragment. The result always starts with "/".
// It returns "/" if the URL has no path, or isn't parseable as one.
func pathParamsQuery(uri string) string {
	// Initial two slashes (protocol-relative URL) are ignored.
	searchStart := 0
	if len(uri) >= 2 && uri[0] == '/' && uri[1] == '/' {
		searchStart = 2
	}

	earlyPath := indexAnyFrom(uri, "/?;", searchStart)
	protocolEnd := indexFrom(uri, "://", searchStart)
	if earlyPath != -1 && earlyPath < protocolEnd {
		// Path, param or query starts before "://" — it isn't a scheme.
		protocolEnd = -1
	}
	if protocolEnd == -1 {
		protocolEnd = searchStart
	} else {
		protocolEnd += 3
	}

	pathStart := indexAnyFrom(uri, "/?;", protocolEnd)
	if pathStart == -1 {
		return "/"
	}

	hashPos := indexByteFrom(uri, '#', searchStart)
	if hashPos != -1 && hashPos < pathStart {
		return "/"
	}
	pathEnd := hashPos
	if hashPos == -1 {
		pathEnd = len(uri)
	}
	if uri[pathStart] != '/' {
		return "/" + uri[pathStart:pathEnd]
	}
	return uri[pathStart:pathEnd]
}

func indexAnyFrom(s, chars string, from int) int {
	i := strings.IndexAny(s[from:], chars)
	if i == -1 {
		return -1
	}
	return i + from
}

func indexFrom(s, sub string, from int) int {
	i := strings.Index(s[from:], sub)
	if i == -1 {
		return -1
	}
	return i + from
}

func indexByteFrom(s string, b byte, from int) int {
	i := strings.IndexByte(s[from:], b)
	if i == -1 {
		return -1
	}
	return i + from
}

const upperHexDigits = "0123456789ABCDEF"

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' ||
		'a' <= c && c <= 'f' ||
		'A' <= c && c <= 'F'
}

func isLowerHexLetter(c byte) bool {
	return 'a' <= c && c <= 'f'
}

func toUpperASCII(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// escapePattern canonicalizes a directive value used as an allow/disallow
// pattern: bytes with the high bit set are percent-encoded with uppercase
// hex, and existing %HH sequences have their hex digits upper-cased. Bytes
// that need no change are left alone. The returned string shares src's
// backing array when no change was needed; otherwise it is a fresh string.
func escapePattern(src string) string {
	needsCapitalize := false
	numToEscape := 0

	for i := 0; i < len(src); i++ {
		if src[i] == '%' && isHexDigit(byteAt(src, i+1)) && isHexDigit(byteAt(src, i+2)) {
			if isLowerHexLetter(byteAt(src, i+1)) || isLowerHexLetter(byteAt(src, i+2)) {
				needsCapitalize = true
			}
		} else if src[i] >= 0x80 {
			numToEscape++
		}
	}
	if numToEscape == 0 && !needsCapitalize {
		return src
	}

	var dst strings.Builder
	dst.Grow(len(src) + numToEscape*2)
	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '%' && isHexDigit(byteAt(src, i+1)) && isHexDigit(byteAt(src, i+2)):
			dst.WriteByte('%')
			dst.WriteByte(toUpperASCII(src[i+1]))
			dst.WriteByte(toUpperASCII(src[i+2]))
			i += 2
		case src[i] >= 0x80:
			dst.WriteByte('%')
			dst.WriteByte(upperHexDigits[(src[i]>>4)&0xf])
			dst.WriteByte(upperHexDigits[src[i]&0xf])
		default:
			dst.WriteByte(src[i])
		}
	}
	return dst.String()
}
