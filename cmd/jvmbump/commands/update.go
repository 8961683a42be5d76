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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/jvmbump/cmd/jvmbump/opts"
	"github.com/walteh/jvmbump/pkg/updater"
	"gitlab.com/tozd/go/errors"
)

// NewUpdateCmd creates the update command
func NewUpdateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Normalize the Java version in Gradle build files",
		Long: `Update walks the search root and rewrites every build.gradle and
gradle.properties it finds so they target the configured Java version (17).
It will:
1. Skip node_modules and any other excluded directory
2. Rewrite sourceCompatibility, targetCompatibility, jvmTarget and
   compileOptions values
3. Write back only the files whose content changed

A file that cannot be read or written is reported and skipped; the run
still completes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "update").Logger().WithContext(cmd.Context())

			u, err := updater.New(updater.Options{
				Fs:       opts.Fs,
				Config:   opts.Config,
				Reporter: opts.Reporter,
			})
			if err != nil {
				return errors.Errorf("creating updater: %w", err)
			}

			if _, err := u.Run(ctx, opts.Root); err != nil {
				return errors.Errorf("updating files: %w", err)
			}

			return nil
		},
	}

	return cmd
}
