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
	"bytes"
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/jvmbump/pkg/config"
	"github.com/walteh/jvmbump/pkg/rewrite"
	"github.com/walteh/jvmbump/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📝 recordingReporter keeps every event for assertions
type recordingReporter struct {
	started    bool
	processing []string
	updated    []string
	unchanged  []string
	failed     map[string]error
	summary    *status.Summary
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{failed: map[string]error{}}
}

func (r *recordingReporter) Start(ctx context.Context, root string, version int) { r.started = true }
func (r *recordingReporter) Processing(ctx context.Context, path string) {
	r.processing = append(r.processing, path)
}
func (r *recordingReporter) Updated(ctx context.Context, path string, replacements int) {
	r.updated = append(r.updated, path)
}
func (r *recordingReporter) Unchanged(ctx context.Context, path string) {
	r.unchanged = append(r.unchanged, path)
}
func (r *recordingReporter) Failed(ctx context.Context, path string, err error) {
	r.failed[path] = err
}
func (r *recordingReporter) Complete(ctx context.Context, s status.Summary) { r.summary = &s }

func sorted(items []string) []string {
	out := append([]string(nil), items...)
	sort.Strings(out)
	return out
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

const (
	oldBuildGradle = `android {
    compileOptions {
        sourceCompatibility JavaVersion.VERSION_1_8
        targetCompatibility JavaVersion.VERSION_1_8
    }
    kotlinOptions {
        jvmTarget = '1.8'
    }
}
java {
    sourceCompatibility = JavaVersion.VERSION_11
    targetCompatibility = JavaVersion.VERSION_11
}
`
	newBuildGradle = `android {
    compileOptions {
        sourceCompatibility JavaVersion.VERSION_17
        targetCompatibility JavaVersion.VERSION_17
    }
    kotlinOptions {
        jvmTarget = '17'
    }
}
java {
    sourceCompatibility = JavaVersion.VERSION_17
    targetCompatibility = JavaVersion.VERSION_17
}
`
	gradleProperties = "org.gradle.jvmargs=-Xmx1536m\nandroid.useAndroidX=true\n"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		opts          Options
		expectedError string
	}{
		{
			name:          "missing_fs",
			opts:          Options{Config: config.Default(), Reporter: newRecordingReporter()},
			expectedError: "filesystem is required",
		},
		{
			name:          "missing_config",
			opts:          Options{Fs: afero.NewMemMapFs(), Reporter: newRecordingReporter()},
			expectedError: "config is required",
		},
		{
			name:          "missing_reporter",
			opts:          Options{Fs: afero.NewMemMapFs(), Config: config.Default()},
			expectedError: "reporter is required",
		},
		{
			name:          "invalid_config",
			opts:          Options{Fs: afero.NewMemMapFs(), Config: &config.Config{Version: 17}, Reporter: newRecordingReporter()},
			expectedError: "filenames is required",
		},
		{
			name: "valid",
			opts: Options{Fs: afero.NewMemMapFs(), Config: config.Default(), Reporter: newRecordingReporter()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := New(tt.opts)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, u)
		})
	}
}

func TestUpdater_Run(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	root := "/project"

	files := map[string]string{
		"/project/android/app/build.gradle":                     oldBuildGradle,
		"/project/android/build.gradle":                         newBuildGradle,
		"/project/android/gradle.properties":                    gradleProperties,
		"/project/android/settings.gradle":                      oldBuildGradle,
		"/project/node_modules/@capacitor/android/build.gradle": oldBuildGradle,
		"/project/src/node_modules/x/gradle.properties":         gradleProperties,
		"/project/README.md":                                    "sourceCompatibility = JavaVersion.VERSION_11",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	rep := newRecordingReporter()
	u, err := New(Options{Fs: fs, Config: config.Default(), Reporter: rep})
	require.NoError(t, err)

	summary, err := u.Run(ctx, root)
	require.NoError(t, err)

	assert.True(t, rep.started)
	require.NotNil(t, rep.summary)
	assert.Equal(t, *summary, *rep.summary)
	assert.Equal(t, status.Summary{Processed: 3, Updated: 1, Unchanged: 2}, *summary)

	assert.Equal(t, []string{
		"/project/android/app/build.gradle",
		"/project/android/build.gradle",
		"/project/android/gradle.properties",
	}, sorted(rep.processing))
	assert.Equal(t, []string{"/project/android/app/build.gradle"}, rep.updated)
	assert.Empty(t, rep.failed)

	got, err := afero.ReadFile(fs, "/project/android/app/build.gradle")
	require.NoError(t, err)
	assert.Equal(t, newBuildGradle, string(got))

	for _, untouched := range []string{
		"/project/node_modules/@capacitor/android/build.gradle",
		"/project/android/settings.gradle",
		"/project/README.md",
	} {
		got, err := afero.ReadFile(fs, untouched)
		require.NoError(t, err)
		assert.Equal(t, files[untouched], string(got), "%s should not change", untouched)
	}
}

func TestUpdater_TraverseContinuesAfterFailure(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/p/a/build.gradle", []byte{0xff, 0xfe, 0xfd}, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/b/build.gradle", []byte(oldBuildGradle), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/c/gradle.properties", []byte(gradleProperties), 0o644))

	rep := newRecordingReporter()
	u, err := New(Options{Fs: fs, Config: config.Default(), Reporter: rep})
	require.NoError(t, err)

	summary, err := u.Traverse(ctx, "/p")
	require.NoError(t, err)
	assert.Equal(t, status.Summary{Processed: 3, Updated: 1, Unchanged: 1, Failed: 1}, *summary)

	require.Contains(t, rep.failed, "/p/a/build.gradle")
	assert.True(t, errors.Is(rep.failed["/p/a/build.gradle"], rewrite.ErrNotText))
	assert.Equal(t, []string{"/p/b/build.gradle"}, rep.updated)
	assert.Equal(t, []string{"/p/c/gradle.properties"}, rep.unchanged)
}

func TestUpdater_TraverseIgnorePatterns(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/p/app/build.gradle", []byte(oldBuildGradle), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/examples/demo/build.gradle", []byte(oldBuildGradle), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/.gradle/cache/build.gradle", []byte(oldBuildGradle), 0o644))

	cfg := config.Default()
	cfg.Ignore = []string{"examples/**"}
	cfg.ExcludeDirs = append(cfg.ExcludeDirs, ".gradle")

	rep := newRecordingReporter()
	u, err := New(Options{Fs: fs, Config: cfg, Reporter: rep})
	require.NoError(t, err)

	summary, err := u.Traverse(ctx, "/p")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, []string{"/p/app/build.gradle"}, rep.processing)
}

func TestUpdater_TraverseRootErrors(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/file", []byte("x"), 0o644))

	u, err := New(Options{Fs: fs, Config: config.Default(), Reporter: newRecordingReporter()})
	require.NoError(t, err)

	_, err = u.Traverse(ctx, "/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading root /missing")

	_, err = u.Traverse(ctx, "/file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestUpdater_TraverseCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/build.gradle", []byte(oldBuildGradle), 0o644))

	rep := newRecordingReporter()
	u, err := New(Options{Fs: fs, Config: config.Default(), Reporter: rep})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err = u.Traverse(ctx, "/p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, rep.processing)
}

func TestUpdater_UpdateFile(t *testing.T) {
	tests := []struct {
		name         string
		content      []byte
		readOnly     bool
		missing      bool
		wantStatus   status.FileStatus
		wantContent  string
		errContains  string
		wantReported string
	}{
		{
			name:         "updates_file",
			content:      []byte("sourceCompatibility = JavaVersion.VERSION_11\n"),
			wantStatus:   status.StatusUpdated,
			wantContent:  "sourceCompatibility = JavaVersion.VERSION_17\n",
			wantReported: "updated",
		},
		{
			name:         "already_current",
			content:      []byte(newBuildGradle),
			wantStatus:   status.StatusUnchanged,
			wantContent:  newBuildGradle,
			wantReported: "unchanged",
		},
		{
			name:         "already_current_on_read_only_fs",
			content:      []byte(newBuildGradle),
			readOnly:     true,
			wantStatus:   status.StatusUnchanged,
			wantContent:  newBuildGradle,
			wantReported: "unchanged",
		},
		{
			name:         "write_failure",
			content:      []byte("targetCompatibility = JavaVersion.VERSION_8\n"),
			readOnly:     true,
			wantStatus:   status.StatusFailed,
			wantContent:  "targetCompatibility = JavaVersion.VERSION_8\n",
			errContains:  "writing file",
			wantReported: "failed",
		},
		{
			name:         "missing_file",
			missing:      true,
			wantStatus:   status.StatusFailed,
			errContains:  "reading file",
			wantReported: "failed",
		},
		{
			name:         "binary_file",
			content:      []byte{0x00, 0xc3, 0x28},
			wantStatus:   status.StatusFailed,
			wantContent:  string([]byte{0x00, 0xc3, 0x28}),
			errContains:  "not valid UTF-8",
			wantReported: "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			path := "/p/build.gradle"

			var fs afero.Fs = afero.NewMemMapFs()
			if !tt.missing {
				require.NoError(t, afero.WriteFile(fs, path, tt.content, 0o640))
			}
			if tt.readOnly {
				fs = afero.NewReadOnlyFs(fs)
			}

			rep := newRecordingReporter()
			u, err := New(Options{Fs: fs, Config: config.Default(), Reporter: rep})
			require.NoError(t, err)

			res := u.UpdateFile(ctx, path)
			require.NotNil(t, res)
			assert.Equal(t, path, res.Path)
			assert.Equal(t, tt.wantStatus, res.Status)

			switch tt.wantReported {
			case "updated":
				assert.Equal(t, []string{path}, rep.updated)
			case "unchanged":
				assert.Equal(t, []string{path}, rep.unchanged)
			case "failed":
				assert.Contains(t, rep.failed, path)
			}

			if tt.errContains != "" {
				require.Error(t, res.Err)
				assert.Contains(t, res.Err.Error(), tt.errContains)
			} else {
				require.NoError(t, res.Err)
			}

			if tt.missing {
				return
			}
			got, err := afero.ReadFile(fs, path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(got))

			info, err := fs.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, "-rw-r-----", info.Mode().Perm().String(), "permissions should be kept")
		})
	}
}

func TestUpdater_RunWithConsoleReporter(t *testing.T) {
	color.NoColor = true
	pterm.DisableStyling()
	defer func() {
		color.NoColor = false
		pterm.EnableStyling()
	}()

	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	root := filepath.FromSlash("/work")
	require.NoError(t, afero.WriteFile(fs, "/work/android/app/build.gradle", []byte(oldBuildGradle), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/android/gradle.properties", []byte(gradleProperties), 0o644))

	var buf bytes.Buffer
	u, err := New(Options{Fs: fs, Config: config.Default(), Reporter: status.NewReporter(&buf)})
	require.NoError(t, err)

	_, err = u.Run(ctx, root)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Starting Java version update to 17...")
	assert.Contains(t, out, "Processing file: /work/android/app/build.gradle")
	assert.Contains(t, out, "Updated: /work/android/app/build.gradle")
	assert.Contains(t, out, "No change needed in: /work/android/gradle.properties")
	assert.Contains(t, out, "Update completed! (2 files: 1 updated, 1 unchanged, 0 failed)")
}
