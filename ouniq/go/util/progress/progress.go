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

// Package progress reports running deduplication statistics to a diagnostic
// stream.  A record is written after every Nth input line and has the form
//
//	lines: <total>, uniques: <distinct>, <pct>% unique
//
// where <pct> is distinct/total as a percentage with five fractional digits.
package progress // import "ouniq.io/ouniq/go/util/progress"

import (
	"fmt"
	"io"
)

// A Reporter writes progress records to a diagnostic stream.  A nil *Reporter
// is valid and reports nothing.
type Reporter struct {
	w        io.Writer
	interval uint64
	dropped  int
}

// New returns a Reporter that writes a record to w after every interval lines.
// It returns nil if interval is not positive.
func New(w io.Writer, interval int) *Reporter {
	if interval <= 0 {
		return nil
	}
	return &Reporter{w: w, interval: uint64(interval)}
}

// Observe is called after each input line has been handled, with the running
// totals including that line.  When lines is a multiple of the interval a
// record is written.  Write failures are counted and otherwise ignored; they
// never interrupt the caller.
func (r *Reporter) Observe(lines, uniques uint64) {
	if r == nil || lines == 0 || lines%r.interval != 0 {
		return
	}
	if _, err := io.WriteString(r.w, Format(lines, uniques)+"\n"); err != nil {
		r.dropped++
	}
}

// Dropped returns the number of records that could not be written.
func (r *Reporter) Dropped() int {
	if r == nil {
		return 0
	}
	return r.dropped
}

// Format renders a single progress record, without a trailing newline.
func Format(lines, uniques uint64) string {
	var pct float64
	if lines > 0 {
		pct = float64(uniques) / float64(lines) * 100
	}
	return fmt.Sprintf("lines: %d, uniques: %d, %.5f%% unique", lines, uniques, pct)
}
