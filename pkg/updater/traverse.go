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

package updater

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/jvmbump/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🚶 Traverse visits every directory under root, skipping excluded
// directories, and updates every regular file whose name is a target file
// name. Walk order is the filesystem's and must not be relied on.
//
// Only a root that cannot be walked, or a cancelled context, is returned as
// an error; everything else ends up in the summary.
func (u *Updater) Traverse(ctx context.Context, root string) (*status.Summary, error) {
	logger := zerolog.Ctx(ctx)
	summary := &status.Summary{}

	info, err := u.fs.Stat(root)
	if err != nil {
		return summary, errors.Errorf("reading root %s: %w", root, err)
	}
	if !info.IsDir() {
		return summary, errors.Errorf("root %s is not a directory", root)
	}

	err = afero.Walk(u.fs, root, func(path string, info fs.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		if info.IsDir() {
			if path != root && u.skipDir(ctx, root, path, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !u.isTarget(info) || u.ignored(ctx, root, path) {
			return nil
		}

		u.reporter.Processing(ctx, path)
		summary.Record(u.UpdateFile(ctx, path).Status)
		return nil
	})
	if err != nil {
		return summary, errors.Errorf("walking %s: %w", root, err)
	}

	return summary, nil
}

// 🔍 skipDir reports whether a directory must not be descended into
func (u *Updater) skipDir(ctx context.Context, root, path, name string) bool {
	if _, ok := u.excludeDirs[name]; ok {
		zerolog.Ctx(ctx).Debug().Str("dir", path).Msg("skipping excluded directory")
		return true
	}
	return u.ignored(ctx, root, path)
}

func (u *Updater) isTarget(info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	_, ok := u.filenames[info.Name()]
	return ok
}

// 🔍 ignored checks the root relative path against the ignore patterns
func (u *Updater) ignored(ctx context.Context, root, path string) bool {
	if len(u.cfg.Ignore) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range u.cfg.Ignore {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Str("pattern", pattern).Msg("ignored by pattern")
			return true
		}
	}
	return false
}
