// Copyright 2025 walteh LLC
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

package rewrite

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single substitution pass over file content
type Rule interface {
	// Name identifies the pass in logs and result counts
	Name() string

	// Apply returns the rewritten content and the number of values it changed.
	// Matches whose replacement equals the matched text are not counted.
	Apply(content string) (string, int)
}

// 📝 RegexRule replaces every match of Pattern with Template.
// Template uses regexp.Expand syntax (${1}, ${name}).
type RegexRule struct {
	RuleName string
	Pattern  *regexp.Regexp
	Template string
}

// NewRegexRule compiles pattern into a RegexRule
func NewRegexRule(name, pattern, template string) (*RegexRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling rule %q: %w", name, err)
	}
	return &RegexRule{RuleName: name, Pattern: re, Template: template}, nil
}

func mustRegexRule(name, pattern, template string) *RegexRule {
	r, err := NewRegexRule(name, pattern, template)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *RegexRule) Name() string {
	return r.RuleName
}

func (r *RegexRule) Apply(content string) (string, int) {
	matches := r.Pattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content))

	last, changed := 0, 0
	for _, m := range matches {
		repl := r.Pattern.ExpandString(nil, r.Template, content, m)
		if string(repl) != content[m[0]:m[1]] {
			changed++
		}
		b.WriteString(content[last:m[0]])
		b.Write(repl)
		last = m[1]
	}
	b.WriteString(content[last:])

	return b.String(), changed
}

// 🎯 ValueRule replaces the value that follows each Marker match with Value.
// The value runs to the end of the line and stops before a trailing //
// comment, a ';' or a bracket that closes an enclosing block. Quoted strings
// and bracketed arguments inside the value belong to it.
type ValueRule struct {
	RuleName string
	Marker   *regexp.Regexp
	Value    string
}

func (r *ValueRule) Name() string {
	return r.RuleName
}

func (r *ValueRule) Apply(content string) (string, int) {
	matches := r.Marker.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content))

	last, changed := 0, 0
	for _, m := range matches {
		start := m[1]
		if start < last {
			continue
		}
		end := valueEnd(content, start)
		if end == start {
			continue
		}
		if content[start:end] != r.Value {
			changed++
		}
		b.WriteString(content[last:start])
		b.WriteString(r.Value)
		last = end
	}

	if changed == 0 {
		return content, 0
	}
	b.WriteString(content[last:])
	return b.String(), changed
}

// valueEnd returns the index just past the last non-blank byte of the value
// starting at start
func valueEnd(s string, start int) int {
	depth, end := 0, start

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\n':
			return end
		case c == '\'' || c == '"':
			if j := strings.IndexByte(s[i+1:], c); j >= 0 && !strings.Contains(s[i+1:i+1+j], "\n") {
				i += j + 1
				end = i + 1
				continue
			}
		case c == '/' && depth == 0 && strings.HasPrefix(s[i:], "//"):
			return end
		case c == ';' && depth == 0:
			return end
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth == 0 {
				return end
			}
			depth--
		}
		if c != ' ' && c != '\t' && c != '\r' {
			end = i + 1
		}
	}
	return end
}

var compileOptionsOpen = regexp.MustCompile(`\bcompileOptions\s*\{`)

// 🧱 BlockRule applies Inner only inside the brace-balanced body of each
// block opened by Open. The body ends at the brace that closes Open's brace,
// so text between two blocks is never touched. An unterminated block is left
// as is.
type BlockRule struct {
	RuleName string
	Open     *regexp.Regexp
	Inner    Rule
}

func (r *BlockRule) Name() string {
	return r.RuleName
}

func (r *BlockRule) Apply(content string) (string, int) {
	var b strings.Builder
	pos, changed := 0, 0

	for pos < len(content) {
		loc := r.Open.FindStringIndex(content[pos:])
		if loc == nil {
			break
		}
		bodyStart := pos + loc[1]
		bodyEnd := closingBrace(content, bodyStart)
		if bodyEnd < 0 {
			break
		}

		body, n := r.Inner.Apply(content[bodyStart:bodyEnd])
		b.WriteString(content[pos:bodyStart])
		b.WriteString(body)
		changed += n
		pos = bodyEnd
	}

	if changed == 0 {
		return content, 0
	}
	b.WriteString(content[pos:])
	return b.String(), changed
}

// closingBrace returns the index of the '}' that balances an already opened
// brace, scanning from start, or -1 when there is none.
func closingBrace(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
