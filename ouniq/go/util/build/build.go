/*
 * Copyright 2026 The Ouniq Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package build provides information about how a given binary was built and in
// what context.  The values are stamped at link time, e.g.
//
//	go build -ldflags "-X ouniq.io/ouniq/go/util/build._RELEASE_VERSION=v1.2.0"
package build // import "ouniq.io/ouniq/go/util/build"

import (
	"fmt"
	"runtime/debug"
)

var (
	_BUILD_SCM_REVISION string
	_BUILD_SCM_STATUS   string
	_RELEASE_VERSION    string
)

// Program is the name reported in usage and version output.
const Program = "ouniq"

// Authors is the authorship line reported by --version.
const Authors = "The Ouniq Authors"

// VersionLine returns the following formatted string
// fmt.Sprintf("Version: %s [%s %s]", ReleaseVersion(), Status(), Revision()).
func VersionLine() string {
	return fmt.Sprintf("Version: %s [%s %s]", ReleaseVersion(), Status(), Revision())
}

// ReleaseVersion returns the release version for the current build.  Without
// a stamped version it falls back to the main module version recorded by the
// go toolchain, then to Revision().
func ReleaseVersion() string {
	if _RELEASE_VERSION != "" {
		return _RELEASE_VERSION
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Revision()
}

// Revision returns the source control revision for the current build.
func Revision() string {
	if _BUILD_SCM_REVISION != "" {
		return _BUILD_SCM_REVISION
	}
	if s := buildSetting("vcs.revision"); s != "" {
		return s
	}
	return "HEAD"
}

// Status returns the source control status for the current build.
func Status() string {
	if _BUILD_SCM_STATUS != "" {
		return _BUILD_SCM_STATUS
	}
	switch buildSetting("vcs.modified") {
	case "true":
		return "Modified"
	case "false":
		return "Clean"
	}
	return "Unknown"
}

func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
