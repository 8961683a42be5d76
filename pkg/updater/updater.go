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

// Package updater walks a directory tree and normalizes the Java version in
// every Gradle build file it finds.
package updater

import (
	"context"

	"github.com/spf13/afero"
	"github.com/walteh/jvmbump/pkg/config"
	"github.com/walteh/jvmbump/pkg/rewrite"
	"github.com/walteh/jvmbump/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📢 Reporter receives the user facing progress of a run
type Reporter interface {
	Start(ctx context.Context, root string, version int)
	Processing(ctx context.Context, path string)
	Updated(ctx context.Context, path string, replacements int)
	Unchanged(ctx context.Context, path string)
	Failed(ctx context.Context, path string, err error)
	Complete(ctx context.Context, s status.Summary)
}

// 🔧 Options contains configuration for the updater
type Options struct {
	// Fs is the filesystem to walk and rewrite
	Fs afero.Fs
	// Config selects file names, exclusions and the target version
	Config *config.Config
	// Reporter receives progress, required
	Reporter Reporter
}

// 📄 FileResult is the outcome of updating one file
type FileResult struct {
	Path         string
	Status       status.FileStatus
	Replacements int
	Err          error
}

// 🎮 Updater is the directory version updater
type Updater struct {
	fs       afero.Fs
	cfg      *config.Config
	reporter Reporter
	rewriter *rewrite.Rewriter

	filenames   map[string]struct{}
	excludeDirs map[string]struct{}
}

// 🏭 New creates an updater with the given options
func New(opts Options) (*Updater, error) {
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &Updater{
		fs:          opts.Fs,
		cfg:         opts.Config,
		reporter:    opts.Reporter,
		rewriter:    rewrite.NewForVersion(opts.Config.Version),
		filenames:   toSet(opts.Config.Filenames),
		excludeDirs: toSet(opts.Config.ExcludeDirs),
	}, nil
}

// 🏃 Run prints the start banner, traverses root and prints the summary.
// Per file failures are part of the summary, not the returned error.
func (u *Updater) Run(ctx context.Context, root string) (*status.Summary, error) {
	u.reporter.Start(ctx, root, u.cfg.Version)

	summary, err := u.Traverse(ctx, root)
	if err != nil {
		return summary, err
	}

	u.reporter.Complete(ctx, *summary)
	return summary, nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
