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

// Package rewrite normalizes Java version declarations in Gradle build files
// with a fixed sequence of text substitutions. It does not parse Gradle.
package rewrite

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ErrNotText is returned for content that is not valid UTF-8
var ErrNotText = errors.Base("content is not valid UTF-8 text")

// 📦 Result contains the outcome of a rewrite
type Result struct {
	// WasModified indicates the content changed
	WasModified bool

	// ReplacementCount is the number of values changed across all rules
	ReplacementCount int

	// Counts holds the changed values per rule name
	Counts map[string]int

	OriginalContent []byte
	ModifiedContent []byte
}

// 🔧 Rewriter applies rules in order
type Rewriter struct {
	rules []Rule
}

// New creates a Rewriter for the given rules
func New(rules ...Rule) *Rewriter {
	return &Rewriter{rules: rules}
}

// NewForVersion creates a Rewriter with DefaultRules(version)
func NewForVersion(version int) *Rewriter {
	return New(DefaultRules(version)...)
}

// Rules returns the rules in application order
func (r *Rewriter) Rules() []Rule {
	return r.rules
}

// 🏃 Rewrite decodes content as UTF-8 and runs every rule over it in order.
// Each rule sees the output of the previous one.
func (r *Rewriter) Rewrite(ctx context.Context, content []byte) (*Result, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, content); err != nil {
		return nil, errors.Errorf("decoding content: %w", ErrNotText)
	}

	logger := zerolog.Ctx(ctx)

	result := &Result{
		OriginalContent: content,
		Counts:          make(map[string]int, len(r.rules)),
	}

	current := string(content)
	for _, rule := range r.rules {
		next, n := rule.Apply(current)
		if n > 0 {
			logger.Debug().Str("rule", rule.Name()).Int("replacements", n).Msg("rule matched")
		}
		result.Counts[rule.Name()] += n
		result.ReplacementCount += n
		current = next
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = current != string(content)
	return result, nil
}
