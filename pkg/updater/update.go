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

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/jvmbump/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📄 UpdateFile rewrites the Java version declarations in one file.
// The file is written back, in place and with its permission bits, only when
// the content changed. A failure is reported and returned in the result; it
// never stops the caller.
func (u *Updater) UpdateFile(ctx context.Context, path string) *FileResult {
	res, err := u.updateFile(ctx, path)
	if err != nil {
		res.Status = status.StatusFailed
		res.Err = err
		u.reporter.Failed(ctx, path, err)
		return res
	}

	switch res.Status {
	case status.StatusUpdated:
		u.reporter.Updated(ctx, path, res.Replacements)
	default:
		u.reporter.Unchanged(ctx, path)
	}
	return res
}

func (u *Updater) updateFile(ctx context.Context, path string) (*FileResult, error) {
	res := &FileResult{Path: path}

	info, err := u.fs.Stat(path)
	if err != nil {
		return res, errors.Errorf("reading file: %w", err)
	}

	content, err := afero.ReadFile(u.fs, path)
	if err != nil {
		return res, errors.Errorf("reading file: %w", err)
	}

	out, err := u.rewriter.Rewrite(ctx, content)
	if err != nil {
		return res, err
	}

	if !out.WasModified {
		res.Status = status.StatusUnchanged
		return res, nil
	}

	if err := afero.WriteFile(u.fs, path, out.ModifiedContent, info.Mode().Perm()); err != nil {
		return res, errors.Errorf("writing file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Interface("counts", out.Counts).
		Msg("rewrote file")

	res.Status = status.StatusUpdated
	res.Replacements = out.ReplacementCount
	return res, nil
}
