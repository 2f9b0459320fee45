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

package dedup

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"ouniq.io/ouniq/go/platform/lines"
	"ouniq.io/ouniq/go/test/testutil"

	"golang.org/x/sync/errgroup"
)

// collect is a lines.Sink that records every line it is given.
type collect struct{ got []string }

func (c *collect) Put(line []byte) error {
	c.got = append(c.got, string(line))
	return nil
}

func runLines(t *testing.T, input []string) ([]string, Stats) {
	t.Helper()
	var sink collect
	f := NewFilter(&sink, nil)
	for _, line := range input {
		if err := f.Offer([]byte(line)); err != nil {
			t.Fatalf("Offer(%q): unexpected error: %v", line, err)
		}
	}
	return sink.got, f.Stats()
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
		stats Stats
	}{
		{"empty", nil, nil, Stats{}},
		{"basic", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"},
			Stats{Lines: 5, Unique: 3, Duplicates: 2, Bytes: 3}},
		{"empty lines", []string{"", "", "x", ""}, []string{"", "x"},
			Stats{Lines: 4, Unique: 2, Duplicates: 2, Bytes: 1}},
		{"single", []string{"hello"}, []string{"hello"},
			Stats{Lines: 1, Unique: 1, Bytes: 5}},
		{"all same", []string{"a", "a", "a", "a", "a", "a"}, []string{"a"},
			Stats{Lines: 6, Unique: 1, Duplicates: 5, Bytes: 1}},
		{"case sensitive", []string{"A", "a", " a", "a "}, []string{"A", "a", " a", "a "},
			Stats{Lines: 4, Unique: 4, Bytes: 6}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, stats := runLines(t, test.input)
			if err := testutil.DeepEqual(test.want, got); err != nil {
				t.Errorf("Output: %v", err)
			}
			if err := testutil.DeepEqual(test.stats, stats); err != nil {
				t.Errorf("Stats: %v", err)
			}
		})
	}
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		input := testutil.RandLines(r, r.Intn(500), 1+r.Intn(40))
		out, stats := runLines(t, input)

		firstSeen := make(map[string]int)
		for i, line := range input {
			if _, ok := firstSeen[line]; !ok {
				firstSeen[line] = i
			}
		}

		// Uniqueness and subset.
		emitted := make(map[string]bool)
		for _, line := range out {
			if emitted[line] {
				t.Fatalf("Trial %d: %q emitted twice", trial, line)
			}
			emitted[line] = true
			if _, ok := firstSeen[line]; !ok {
				t.Fatalf("Trial %d: %q emitted but not in input", trial, line)
			}
		}
		// Completeness.
		if len(out) != len(firstSeen) {
			t.Fatalf("Trial %d: emitted %d lines; input has %d distinct", trial, len(out), len(firstSeen))
		}
		// First-seen order.
		for i := 1; i < len(out); i++ {
			if firstSeen[out[i-1]] >= firstSeen[out[i]] {
				t.Fatalf("Trial %d: %q emitted before %q out of first-seen order", trial, out[i-1], out[i])
			}
		}
		// Counter law.
		if stats.Lines != uint64(len(input)) || stats.Unique != uint64(len(firstSeen)) {
			t.Fatalf("Trial %d: stats %+v; want lines=%d unique=%d", trial, stats, len(input), len(firstSeen))
		}
		if stats.Lines != stats.Unique+stats.Duplicates {
			t.Fatalf("Trial %d: lines %d != unique %d + duplicates %d", trial, stats.Lines, stats.Unique, stats.Duplicates)
		}
		// Idempotence.
		again, _ := runLines(t, out)
		if err := testutil.DeepEqual(out, again); err != nil {
			t.Fatalf("Trial %d: second pass changed output: %v", trial, err)
		}
	}
}

func TestRunStream(t *testing.T) {
	const input = "a\r\nb\na\nc\r\nb\n\n\nlast"

	var buf bytes.Buffer
	wr := lines.NewWriter(&buf)
	f := NewFilter(wr, nil)
	if err := f.Run(lines.NewReader(strings.NewReader(input), nil)); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	testutil.FatalOnErrT(t, "Flush: %v", wr.Flush())

	want := strings.Join([]string{"a", "b", "c", "", "last"}, lines.Terminator) + lines.Terminator
	if diff := testutil.LineDiff(want, buf.String()); diff != "" {
		t.Errorf("Output differs:\n%s", diff)
	}
	if s := f.Stats(); s.Lines != 8 || s.Unique != 5 {
		t.Errorf("Stats: got %+v; want lines=8 unique=5", s)
	}
}

func TestRunPipe(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	input := testutil.RandLines(r, 5000, 100)

	pr, pw := io.Pipe()
	var sink collect
	f := NewFilter(&sink, nil)

	var g errgroup.Group
	g.Go(func() error {
		for _, line := range input {
			if _, err := io.WriteString(pw, line+"\n"); err != nil {
				return err
			}
		}
		return pw.Close()
	})
	g.Go(func() error { return f.Run(lines.NewReader(pr, &lines.ReaderOptions{BufferSize: 64})) })
	if err := g.Wait(); err != nil {
		t.Fatalf("Streaming run failed: %v", err)
	}

	want, _ := runLines(t, input)
	if err := testutil.DeepEqual(want, sink.got); err != nil {
		t.Errorf("Streamed output differs from direct output: %v", err)
	}
}

func TestObserve(t *testing.T) {
	var seen []Stats
	var sink collect
	f := NewFilter(&sink, &Options{Observe: func(s Stats) { seen = append(seen, s) }})
	for _, line := range []string{"a", "a", "b"} {
		testutil.FatalOnErrT(t, "Offer: %v", f.Offer([]byte(line)))
	}
	want := []Stats{
		{Lines: 1, Unique: 1, Bytes: 1},
		{Lines: 2, Unique: 1, Duplicates: 1, Bytes: 1},
		{Lines: 3, Unique: 2, Duplicates: 1, Bytes: 2},
	}
	if err := testutil.DeepEqual(want, seen); err != nil {
		t.Errorf("Observed stats: %v", err)
	}
}

func TestReadErrorCountsLine(t *testing.T) {
	bad := errors.New("read failed")
	src := lines.NewReader(io.MultiReader(strings.NewReader("a\nb\na\n"), iotest.ErrReader(bad)), nil)

	var sink collect
	f := NewFilter(&sink, nil)
	if err := f.Run(src); !errors.Is(err, bad) {
		t.Fatalf("Run: got error %v, want %v", err, bad)
	}
	if err := testutil.DeepEqual([]string{"a", "b"}, sink.got); err != nil {
		t.Errorf("Partial output: %v", err)
	}
	if s := f.Stats(); s.Lines != 4 || s.Unique != 2 {
		t.Errorf("Stats: got %+v; want lines=4 unique=2", s)
	}
}

type failSink struct{ after int }

func (s *failSink) Put([]byte) error {
	if s.after == 0 {
		return errors.New("broken pipe")
	}
	s.after--
	return nil
}

func TestWriteError(t *testing.T) {
	f := NewFilter(&failSink{after: 1}, nil)
	testutil.FatalOnErrT(t, "Offer(a): %v", f.Offer([]byte("a")))
	testutil.FatalOnErrT(t, "Offer(a): %v", f.Offer([]byte("a")))
	err := f.Offer([]byte("b"))
	if err == nil {
		t.Fatal("Offer(b): expected write error")
	}
	if got, want := err.Error(), "writing line 3: broken pipe"; got != want {
		t.Errorf("Offer(b): got error %q, want %q", got, want)
	}
}
