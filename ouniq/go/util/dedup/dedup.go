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

// Package dedup implements a utility to determine if a record has not been seen
// before (whether it's unique).
//
// Membership is exact: the Deduper keeps an owned copy of every unique record
// and compares records byte-for-byte.  It never forgets a record, so its memory
// grows with the total size of the unique records it has accepted.
package dedup // import "ouniq.io/ouniq/go/util/dedup"

import (
	"bitbucket.org/creachadair/stringset"

	"ouniq.io/ouniq/go/util/datasize"
)

// Deduper determines if a data record has been seen before by checking its set
// of previously accepted records.
type Deduper struct {
	seen stringset.Set

	duplicates, unique uint64
	bytes              datasize.Size
}

// New returns a new, empty Deduper.
func New() *Deduper {
	return &Deduper{seen: stringset.New()}
}

// Unique returns the number of unique records seen so far.  This is always
// equal to the number of records retained by d.
func (d *Deduper) Unique() uint64 {
	if d == nil {
		return 0
	}
	return d.unique
}

// Duplicates returns the number of duplicate records seen so far.
func (d *Deduper) Duplicates() uint64 {
	if d == nil {
		return 0
	}
	return d.duplicates
}

// Bytes returns the total size of the records retained by d.
func (d *Deduper) Bytes() datasize.Size {
	if d == nil {
		return 0
	}
	return d.bytes
}

// Contains reports whether data has already been accepted by d.  It does not
// update any counters.
func (d *Deduper) Contains(data []byte) bool {
	if d == nil {
		return false
	}
	_, ok := d.seen[string(data)]
	return ok
}

// IsUnique determines if the given data record has not been seen before.  A
// unique record is copied into d and will be reported as a duplicate on every
// later call.  The caller may reuse data after IsUnique returns.
func (d *Deduper) IsUnique(data []byte) bool {
	if d == nil {
		return true
	}
	if d.Contains(data) {
		d.duplicates++
		return false
	}
	d.seen.Add(string(data))
	d.unique++
	d.bytes += datasize.Size(len(data))
	return true
}
