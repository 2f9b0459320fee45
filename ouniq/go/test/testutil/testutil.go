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

// Package testutil contains common utilities to test ouniq libraries.
package testutil // import "ouniq.io/ouniq/go/test/testutil"

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DeepEqual determines if expected is deeply equal to got, returning a
// detailed error if not.
func DeepEqual[T any](expected, got T, opts ...cmp.Option) error {
	if diff := cmp.Diff(expected, got, opts...); diff != "" {
		return fmt.Errorf("(-expected; +found)\n%s", diff)
	}
	return nil
}

// LineDiff compares two newline-separated texts line by line.  It returns ""
// if they are equal and otherwise a rendering of the differing lines, each
// prefixed by "-" (only in want) or "+" (only in got).
func LineDiff(want, got string) string {
	if want == got {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				fmt.Fprintf(&sb, "%s%q\n", prefix, line)
			}
		}
	}
	return sb.String()
}

// Errorf is equivalent to t.Errorf(msg, err, args...) if err != nil.
func Errorf(t testing.TB, msg string, err error, args ...any) {
	if err != nil {
		t.Helper()
		t.Errorf(msg, append([]any{err}, args...)...)
	}
}

// Fatalf is equivalent to t.Fatalf(msg, err, args...) if err != nil.
func Fatalf(t testing.TB, msg string, err error, args ...any) {
	if err != nil {
		t.Helper()
		t.Fatalf(msg, append([]any{err}, args...)...)
	}
}

// FatalOnErrT calls t.Fatalf(msg, err) if err != nil.
func FatalOnErrT(t testing.TB, msg string, err error) {
	if err != nil {
		t.Helper()
		t.Fatalf(msg, err)
	}
}

// RandStr returns a random string of the given length drawn from r.
func RandStr(r *rand.Rand, size int) string {
	const chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = chars[r.Intn(len(chars))]
	}
	return string(buf)
}

// RandLines returns n lines drawn from a vocabulary of vocab random strings.
// The vocabulary always includes the empty line, so with n much larger than
// vocab the result is dense with duplicates.
func RandLines(r *rand.Rand, n, vocab int) []string {
	words := make([]string, vocab)
	for i := 1; i < vocab; i++ {
		words[i] = RandStr(r, 1+r.Intn(8))
	}
	lines := make([]string, n)
	for i := range lines {
		lines[i] = words[r.Intn(vocab)]
	}
	return lines
}
