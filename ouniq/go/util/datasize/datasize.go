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

// Package datasize implements a type representing data sizes in bytes.
package datasize // import "ouniq.io/ouniq/go/util/datasize"

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Size represents the size of data in bytes.
type Size uint64

// Common binary data sizes
const (
	Byte     Size = 1
	Kibibyte      = 1024 * Byte
	Mebibyte      = 1024 * Kibibyte
	Gibibyte      = 1024 * Mebibyte
	Tebibyte      = 1024 * Gibibyte
)

// Common decimal data sizes
const (
	Kilobyte Size = 1000 * Byte
	Megabyte      = 1000 * Kilobyte
	Gigabyte      = 1000 * Megabyte
	Terabyte      = 1000 * Gigabyte
)

type unit struct {
	size   Size
	suffix string
	binary bool
}

// Ordered from highest to lowest; for each magnitude the decimal unit is
// listed first so that exact decimal multiples print with decimal suffixes.
var units = []unit{
	{Terabyte, "TB", false}, {Tebibyte, "TiB", true},
	{Gigabyte, "GB", false}, {Gibibyte, "GiB", true},
	{Megabyte, "MB", false}, {Mebibyte, "MiB", true},
	{Kilobyte, "kB", false}, {Kibibyte, "KiB", true},
}

var sizeRE = regexp.MustCompile(`^([0-9]*)(\.[0-9]*)?([a-z]+)$`)

// Parse parses a Size from a string.  A Size is an unsigned decimal number with
// an optional fraction and a unit suffix.  Examples: "0", "10B", "1kB", "4GB",
// "64KiB".  Valid units are "B", (decimal: "kB", "MB", "GB", "TB"), (binary:
// "KiB", "MiB", "GiB", "TiB").  Units are matched case-insensitively.
func Parse(s string) (Size, error) {
	if s == "" {
		return 0, errors.New("datasize: invalid Size: empty")
	}
	if num, err := strconv.ParseFloat(s, 64); err == nil {
		if num < 0 {
			return 0, fmt.Errorf("datasize: negative Size %q", s)
		}
		return Size(num), nil
	}

	ss := sizeRE.FindStringSubmatch(strings.ToLower(s))
	if ss == nil {
		return 0, fmt.Errorf("datasize: invalid Size format %q", s)
	}
	num, err := strconv.ParseFloat(ss[1]+ss[2], 64)
	if err != nil {
		return 0, fmt.Errorf("datasize: invalid Size format %q", s)
	}
	if ss[3] == "b" {
		return Size(num), nil
	}
	for _, u := range units {
		if strings.ToLower(u.suffix) == ss[3] {
			return Size(num * float64(u.size)), nil
		}
	}
	return 0, fmt.Errorf("datasize: unknown unit suffix %q", ss[3])
}

// String implements the fmt.Stringer interface.
func (s Size) String() string {
	if s == 0 {
		return "0B"
	}
	for _, u := range units {
		if (u.binary && s >= u.size) || (!u.binary && s%u.size == 0) {
			return format(float64(s)/float64(u.size), u.suffix)
		}
	}
	return fmt.Sprintf("%dB", uint64(s))
}

func format(sz float64, suffix string) string {
	if math.Floor(sz) == sz {
		return fmt.Sprintf("%d%s", int64(sz), suffix)
	}
	return fmt.Sprintf("%.2f%s", sz, suffix)
}

// Bytes returns s in the equivalent number of bytes.
func (s Size) Bytes() uint64 { return uint64(s) }

type sizeFlag struct{ *Size }

// FlagVar defines a Size flag with specified name, default value, and usage
// string in fs.  The returned pointer is updated when fs is parsed.
func FlagVar(fs *flag.FlagSet, s *Size, name string, value Size, usage string) *Size {
	*s = value
	fs.Var(sizeFlag{s}, name, usage)
	return s
}

// Get implements part of the flag.Getter interface.
func (f sizeFlag) Get() any { return *f.Size }

// Set implements part of the flag.Value interface.
func (f sizeFlag) Set(v string) error {
	sz, err := Parse(v)
	if err != nil {
		return err
	}
	*f.Size = sz
	return nil
}

// String implements part of the flag.Value interface.
func (f sizeFlag) String() string {
	if f.Size == nil {
		return "0B"
	}
	return f.Size.String()
}
