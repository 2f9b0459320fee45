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

// Package dedup implements an order-preserving duplicate filter for streams of
// lines.  Each line offered to a Filter is forwarded to its sink if and only if
// an identical line has not been forwarded before, so the output holds every
// distinct input line exactly once, in order of first occurrence.
// See also: ouniq.io/ouniq/go/platform/lines.
package dedup // import "ouniq.io/ouniq/go/platform/lines/dedup"

import (
	"io"

	"ouniq.io/ouniq/go/platform/lines"
	"ouniq.io/ouniq/go/util/datasize"
	"ouniq.io/ouniq/go/util/dedup"

	"github.com/pkg/errors"
)

// Stats is a snapshot of a Filter's counters.
type Stats struct {
	Lines      uint64        // lines read, including duplicates
	Unique     uint64        // distinct lines forwarded to the sink
	Duplicates uint64        // lines suppressed
	Bytes      datasize.Size // total size of the retained distinct lines
}

// Options control the behavior of a Filter.  A nil *Options is ready for use.
type Options struct {
	// Observe, if set, is called after every line offered to the Filter with
	// the counters as they stand after that line was handled.
	Observe func(Stats)
}

// A Filter removes duplicate lines from a stream.  It is not safe for
// concurrent use.
type Filter struct {
	sink    lines.Sink
	seen    *dedup.Deduper
	lines   uint64
	observe func(Stats)
}

// NewFilter returns a Filter that forwards first occurrences to sink.
func NewFilter(sink lines.Sink, opts *Options) *Filter {
	f := &Filter{sink: sink, seen: dedup.New()}
	if opts != nil {
		f.observe = opts.Observe
	}
	return f
}

// Offer handles one input line.  If line has not been offered before it is
// written to the sink; otherwise it is dropped.  Either way the line counter
// advances.  A sink error is returned wrapped with the line number and leaves
// the Filter unusable.
func (f *Filter) Offer(line []byte) error {
	f.lines++
	// A failed Put ends the run, so committing first is not observable.
	if f.seen.IsUnique(line) {
		if err := f.sink.Put(line); err != nil {
			return errors.Wrapf(err, "writing line %d", f.lines)
		}
	}
	if f.observe != nil {
		f.observe(f.Stats())
	}
	return nil
}

// Run offers every line of src to f until src is exhausted.  A read error is
// returned unchanged; the line that failed still counts as read.
func (f *Filter) Run(src lines.Source) error {
	for {
		line, err := src.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			f.lines++
			return err
		}
		if err := f.Offer(line); err != nil {
			return err
		}
	}
}

// Stats returns the current counters.
func (f *Filter) Stats() Stats {
	return Stats{
		Lines:      f.lines,
		Unique:     f.seen.Unique(),
		Duplicates: f.seen.Duplicates(),
		Bytes:      f.seen.Bytes(),
	}
}
