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

package status

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter prints per-file progress for a run and mirrors every line
// into the context logger.
type Reporter struct {
	mu sync.Mutex
	w  io.Writer

	processing *pterm.PrefixPrinter
	updated    *pterm.PrefixPrinter
	unchanged  *pterm.PrefixPrinter
	failed     *pterm.PrefixPrinter
}

// 🏭 NewReporter creates a reporter writing to w, os.Stdout when nil
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{
		w:          w,
		processing: pterm.Info.WithPrefix(pterm.Prefix{Text: "FILE", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}).WithWriter(w),
		updated:    pterm.Success.WithPrefix(pterm.Prefix{Text: "UPDATED", Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)}).WithWriter(w),
		unchanged:  pterm.Info.WithPrefix(pterm.Prefix{Text: "OK", Style: pterm.NewStyle(pterm.BgGray, pterm.FgBlack)}).WithWriter(w),
		failed:     pterm.Error.WithPrefix(pterm.Prefix{Text: "ERROR", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}).WithWriter(w),
	}
}

// 📝 Start prints the banner shown once before traversal
func (r *Reporter) Start(ctx context.Context, root string, version int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := fmt.Sprintf("Starting Java version update to %d...", version)
	name := color.New(color.Bold, color.FgCyan).Sprint("jvmbump")
	fmt.Fprintf(r.w, "%s %s\n", name, color.New(color.Faint).Sprint("• "+msg))

	zerolog.Ctx(ctx).Info().Str("root", root).Int("version", version).Msg("starting update")
}

// 📝 Processing announces a candidate file
func (r *Reporter) Processing(ctx context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.w)
	r.processing.Println("Processing file: " + path)
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("processing file")
}

// 📝 Updated reports a file that was rewritten
func (r *Reporter) Updated(ctx context.Context, path string, replacements int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updated.Println("Updated: " + path)
	zerolog.Ctx(ctx).Info().Str("path", path).Int("replacements", replacements).Msg("file updated")
}

// 📝 Unchanged reports a file that needed no change
func (r *Reporter) Unchanged(ctx context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unchanged.Println("No change needed in: " + path)
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no change needed")
}

// 📝 Failed reports a file that could not be processed
func (r *Reporter) Failed(ctx context.Context, path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failed.Println(fmt.Sprintf("Error processing file %s: %v", path, err))
	zerolog.Ctx(ctx).Error().Err(err).Str("path", path).Msg("error processing file")
}

// 📝 Complete prints the banner shown once after traversal
func (r *Reporter) Complete(ctx context.Context, s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.w, "\n✅ %s %s\n",
		color.New(color.FgGreen).Sprint("Update completed!"),
		color.New(color.Faint).Sprintf("(%d files: %d updated, %d unchanged, %d failed)",
			s.Processed, s.Updated, s.Unchanged, s.Failed))

	zerolog.Ctx(ctx).Info().
		Int("processed", s.Processed).
		Int("updated", s.Updated).
		Int("unchanged", s.Unchanged).
		Int("failed", s.Failed).
		Msg("update complete")
}
