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

package datasize

import (
	"flag"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		str string
		sz  Size
	}{
		{"0", 0},
		{"1024", 1024 * Byte},
		{"0tb", 0},
		{"1b", Byte},
		{"1kb", Kilobyte},
		{"1mb", Megabyte},
		{"1Gb", Gigabyte},
		{"1tb", Terabyte},
		{"1KiB", Kibibyte},
		{"64KiB", 64 * Kibibyte},
		{"1mib", Mebibyte},
		{"1gib", Gibibyte},
		{"1tib", Tebibyte},
		{"43.5MB", Size(43.5 * float64(Megabyte))},
	}

	for _, test := range tests {
		found, err := Parse(test.str)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", test.str, err)
		} else if found != test.sz {
			t.Errorf("Parse(%q): expected: %s; found: %s", test.str, test.sz, found)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, str := range []string{"", "kb", "-1", "12xb", "1 kb", "1kb2"} {
		if sz, err := Parse(str); err == nil {
			t.Errorf("Parse(%q): expected error; found %s", str, sz)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		str string
		sz  Size
	}{
		{"0B", 0},
		{"1B", Byte},
		{"256B", 256 * Byte},
		{"256.50KiB", Size(256.5 * float64(Kibibyte))},

		{"1KiB", Kibibyte},
		{"1MiB", Mebibyte},
		{"1GiB", Gibibyte},
		{"1TiB", Tebibyte},

		{"1kB", Kilobyte},
		{"1MB", Megabyte},
		{"1GB", Gigabyte},
		{"1TB", Terabyte},
		{"2TB", 2 * Terabyte},
		{"1.36TiB", Size(1.5 * float64(Terabyte))},
	}

	for _, test := range tests {
		if found := test.sz.String(); found != test.str {
			t.Errorf("%d.String(): expected: %s; found: %s", test.sz, test.str, found)
		}
	}
}

func TestFlagVar(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var sz Size
	FlagVar(fs, &sz, "buf", 64*Kibibyte, "buffer size")
	if sz != 64*Kibibyte {
		t.Fatalf("Default: expected %s; found %s", 64*Kibibyte, sz)
	}
	if err := fs.Parse([]string{"--buf=2MiB"}); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if sz != 2*Mebibyte {
		t.Errorf("After parse: expected %s; found %s", 2*Mebibyte, sz)
	}
	if got := fs.Lookup("buf").Value.(flag.Getter).Get(); got != 2*Mebibyte {
		t.Errorf("Get(): expected %s; found %v", 2*Mebibyte, got)
	}
}
