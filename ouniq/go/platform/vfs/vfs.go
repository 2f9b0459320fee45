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

// Package vfs defines a generic file system interface used by ouniq to acquire
// its input and auxiliary output files.  The path "-" names standard input.
package vfs // import "ouniq.io/ouniq/go/platform/vfs"

import (
	"context"
	"io"
	"os"
)

// StdinPath is the path that Open maps to standard input.
const StdinPath = "-"

// IsStdin reports whether path refers to standard input.
func IsStdin(path string) bool { return path == StdinPath }

// Interface is a virtual file system interface for reading and writing files.
// It wraps the os package functions so that tests and other callers can
// substitute the process's standard streams.
type Interface interface {
	Reader
	Writer
}

// Reader is a virtual file system interface for reading files.
type Reader interface {
	// Stat returns file status information for path, as os.Stat.
	Stat(ctx context.Context, path string) (os.FileInfo, error)

	// Open opens an existing file for reading, as os.Open.  Closing the
	// result of Open(ctx, "-") does not close standard input.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Writer is a virtual file system interface for writing files.
type Writer interface {
	// Create creates a new file for writing, as os.Create.
	Create(ctx context.Context, path string) (io.WriteCloser, error)
}

// Default is the global default VFS.  It reads standard input from os.Stdin.
var Default Interface = LocalFS{}

// Stat returns file status information for path, using the Default VFS.
func Stat(ctx context.Context, path string) (os.FileInfo, error) { return Default.Stat(ctx, path) }

// Open opens an existing file for reading, using the Default VFS.
func Open(ctx context.Context, path string) (io.ReadCloser, error) { return Default.Open(ctx, path) }

// Create creates a new file for writing, using the Default VFS.
func Create(ctx context.Context, path string) (io.WriteCloser, error) {
	return Default.Create(ctx, path)
}

// LocalFS implements the VFS interface using the standard Go library.
type LocalFS struct {
	// Stdin is returned by Open for StdinPath.  If nil, os.Stdin is used.
	Stdin io.Reader
}

func (fs LocalFS) stdin() io.Reader {
	if fs.Stdin != nil {
		return fs.Stdin
	}
	return os.Stdin
}

// Stat implements part of the VFS interface.
func (fs LocalFS) Stat(_ context.Context, path string) (os.FileInfo, error) {
	if IsStdin(path) {
		return os.Stdin.Stat()
	}
	return os.Stat(path)
}

// Open implements part of the VFS interface.
func (fs LocalFS) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if IsStdin(path) {
		return io.NopCloser(fs.stdin()), nil
	}
	return os.Open(path)
}

// Create implements part of the VFS interface.
func (LocalFS) Create(_ context.Context, path string) (io.WriteCloser, error) {
	return os.Create(path)
}
