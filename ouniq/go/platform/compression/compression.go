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

// Package compression provides transparent decompression of input streams.
//
// The supported formats are:
//
//	none    -- the stream is passed through unchanged
//	gzip    -- RFC 1952 gzip, including concatenated members  (.gz)
//	snappy  -- the snappy framing format                      (.sz, .snappy)
//	zstd    -- Zstandard frames                               (.zst, .zstd)
//	brotli  -- a raw brotli stream                            (.br)
//
// The pseudo-format auto selects one of the above from a file's extension.
package compression // import "ouniq.io/ouniq/go/platform/compression"

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"ouniq.io/ouniq/go/platform/vfs"

	"github.com/DataDog/zstd"
	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Format identifies a compression format.  The zero value is None.  Format
// implements flag.Value so it can be bound directly to a command-line flag.
type Format int

// Supported formats.
const (
	None Format = iota
	Auto
	Gzip
	Snappy
	Zstd
	Brotli
)

var names = map[Format]string{
	None:   "none",
	Auto:   "auto",
	Gzip:   "gzip",
	Snappy: "snappy",
	Zstd:   "zstd",
	Brotli: "brotli",
}

var extensions = map[string]Format{
	".gz":     Gzip,
	".sz":     Snappy,
	".snappy": Snappy,
	".zst":    Zstd,
	".zstd":   Zstd,
	".br":     Brotli,
}

// String implements the fmt.Stringer interface.
func (f Format) String() string {
	if s, ok := names[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Set implements part of the flag.Value interface.
func (f *Format) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Get implements part of the flag.Getter interface.
func (f *Format) Get() any { return *f }

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	ls := strings.ToLower(s)
	for f, name := range names {
		if name == ls {
			return f, nil
		}
	}
	return None, fmt.Errorf("unknown compression format %q (accepted formats: {%s})", s, strings.Join(Names(), ","))
}

// Names returns the accepted format names in sorted order.
func Names() []string {
	var res []string
	for _, name := range names {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// ForPath resolves Auto to a concrete format for the file at path.  Standard
// input and paths without a known extension resolve to None.  Any other
// format is returned unchanged.
func ForPath(f Format, path string) Format {
	if f != Auto {
		return f
	}
	if vfs.IsStdin(path) {
		return None
	}
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// NewReader returns a reader that decompresses r according to f.  Closing the
// result releases decoder resources but does not close r.  Auto must be
// resolved with ForPath first.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip reader")
		}
		return gz, nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case Zstd:
		return zstd.NewReader(r), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case Auto:
		return nil, errors.New("compression: auto format must be resolved with ForPath")
	default:
		return nil, errors.Errorf("compression: unsupported format %v", f)
	}
}
