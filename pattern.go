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
// Adapted from robots.cc's RobotsMatchStrategy, as ported by
// jimsmart/grobotstxt. Re-architected per the "virtual match strategy"
// design note: MatchStrategy is a plain interface instead of a C++-style
// abstract base class, so alternate strategies never need to touch Matcher.

package robotstxt

// NoMatch is the priority returned by a MatchStrategy for a pattern that
// does not match. Any priority below zero means "no match"; MatchRecords
// never store it.
const NoMatch = -1

// MatchStrategy decides whether an Allow/Disallow pattern matches a
// normalized request path, and at what priority. The longest-match policy
// (LongestMatch) is the only strategy this package ships, but callers may
// implement their own (e.g. a first-match strategy matching the original,
// now-expired REP draft) and pass it via WithMatchStrategy.
type MatchStrategy interface {
	// Matches reports whether pattern, anchored at the start of path,
	// matches a prefix of path (all of path when pattern ends in '$').
	Matches(path, pattern string) bool
	// MatchAllow returns the match priority of pattern against path for an
	// Allow directive, or NoMatch.
	MatchAllow(path, pattern string) int
	// MatchDisallow returns the match priority of pattern against path for
	// a Disallow directive, or NoMatch.
	MatchDisallow(path, pattern string) int
}

// LongestMatch is the default, Google-compatible matching strategy: the
// priority of a match is the length of the pattern that produced it, so
// that whichever of a conflicting Allow/Disallow pair has the longer
// pattern wins.
type LongestMatch struct{}

var _ MatchStrategy = LongestMatch{}

// Matches decides whether pattern (possibly containing '*' wildcards and a
// trailing '$' anchor) matches path, anchored at the beginning of path.
//
// The algorithm tracks the sorted set of positions in path that the
// consumed prefix of pattern could have reached so far. Expanding a '*'
// needs only the minimum of that set (every position from the minimum
// onward becomes reachable); a literal byte keeps only the positions where
// path holds that byte. Each pattern character costs O(len(path)) at worst,
// so a match is O(len(path) * len(pattern)) with no backtracking, even on
// adversarial patterns such as "*a*a*a*a*...".
func (LongestMatch) Matches(path, pattern string) bool {
	pathLen := len(path)
	// pos holds the sorted set of reachable indexes into path, with numPos
	// elements in use.
	pos := make([]int, pathLen+1)
	pos[0] = 0
	numPos := 1

	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '$' && i+1 == len(pattern) {
			return pos[numPos-1] == pathLen
		}
		if pattern[i] == '*' {
			// Every position from the smallest reachable index onward is
			// now reachable.
			numPos = pathLen - pos[0] + 1
			for j := 1; j < numPos; j++ {
				pos[j] = pos[j-1] + 1
			}
			continue
		}
		// A literal byte (this also covers '$' when it isn't the last
		// character of pattern).
		newNumPos := 0
		for j := 0; j < numPos; j++ {
			if pos[j] < pathLen && path[pos[j]] == pattern[i] {
				pos[newNumPos] = pos[j] + 1
				newNumPos++
			}
		}
		numPos = newNumPos
		if numPos == 0 {
			return false
		}
	}
	return true
}

func (s LongestMatch) MatchAllow(path, pattern string) int {
	if s.Matches(path, pattern) {
		return len(pattern)
	}
	return NoMatch
}

func (s LongestMatch) MatchDisallow(path, pattern string) int {
	if s.Matches(path, pattern) {
		return len(pattern)
	}
	return NoMatch
}
