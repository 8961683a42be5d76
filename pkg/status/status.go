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

// 📊 FileStatus is the outcome of processing one candidate file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUpdated              // Content changed and was written back
	StatusUnchanged            // Content already normalized
	StatusFailed               // Read, decode or write failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🧮 Summary counts the outcomes of a run
type Summary struct {
	Processed int
	Updated   int
	Unchanged int
	Failed    int
}

// Record adds one outcome
func (s *Summary) Record(st FileStatus) {
	s.Processed++
	switch st {
	case StatusUpdated:
		s.Updated++
	case StatusUnchanged:
		s.Unchanged++
	case StatusFailed:
		s.Failed++
	}
}
