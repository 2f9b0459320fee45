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

// Package profile provides a simple method for writing CPU profile data to a
// file named by a --cpu_profile flag.
package profile // import "ouniq.io/ouniq/go/util/profile"

import (
	"context"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"ouniq.io/ouniq/go/platform/vfs"
	"ouniq.io/ouniq/go/util/log"

	"github.com/pkg/errors"
)

// Start begins CPU profiling into the file at path and returns a function that
// stops profiling and closes the file.  If path is empty nothing happens and
// the returned function is a no-op.  Only one profile may be active at a time.
func Start(ctx context.Context, path string) (stop func() error, err error) {
	if path == "" {
		return func() error { return nil }, nil
	}

	f, err := vfs.Create(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating profile file %q", path)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "starting CPU profile")
	}

	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "closing profile file %q", path)
		}
		log.Infof("Profile data written: go tool pprof %s %s", shorten(os.Args[0]), shorten(path))
		return nil
	}, nil
}

// shorten returns path relative to the working directory if it lies below it.
func shorten(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
