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
	"fmt"
	"regexp"
)

// DefaultVersion is the Java version files are normalized to
const DefaultVersion = 17

// Rule names, in the order DefaultRules applies them
const (
	RuleSourceCompatibility = "source_compatibility"
	RuleTargetCompatibility = "target_compatibility"
	RuleJvmTarget           = "jvm_target"
	RuleCompileOptions      = "compile_options"
)

// 🎯 DefaultRules returns the four passes that normalize a Gradle file to
// the given Java version:
//
//	sourceCompatibility = JavaVersion.VERSION_11  ->  ..._17
//	targetCompatibility = JavaVersion.VERSION_1_8 ->  ..._17
//	jvmTarget = '11'                              ->  jvmTarget = '17'
//	compileOptions { sourceCompatibility X ... }  ->  both values JavaVersion.VERSION_17
func DefaultRules(version int) []Rule {
	v := fmt.Sprint(version)
	javaVersion := "JavaVersion.VERSION_" + v

	return []Rule{
		mustRegexRule(RuleSourceCompatibility,
			`(sourceCompatibility\s*=\s*JavaVersion\.VERSION_)\d+(?:_\d+)*`,
			"${1}"+v),
		mustRegexRule(RuleTargetCompatibility,
			`(targetCompatibility\s*=\s*JavaVersion\.VERSION_)\d+(?:_\d+)*`,
			"${1}"+v),
		mustRegexRule(RuleJvmTarget,
			`(jvmTarget\s*=\s*['"])\d+(?:\.\d+)?(['"])`,
			"${1}"+v+"${2}"),
		&BlockRule{
			RuleName: RuleCompileOptions,
			Open:     compileOptionsOpen,
			Inner: &ValueRule{
				RuleName: RuleCompileOptions,
				Marker:   compatMarker,
				Value:    javaVersion,
			},
		},
	}
}

// a compatibility marker that starts a statement (line start or after ';'),
// followed by '=' or blanks; comment lines never match
var compatMarker = regexp.MustCompile(`(?m)(?:^|;)[ \t]*(?:source|target)Compatibility\b(?:[ \t]*=[ \t]*|[ \t]+)`)
