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

// Package lines implements a reader and writer for streams of text lines.
//
// On input a line is terminated by LF or by a CR LF pair; the terminator is not
// part of the line.  A final line without a terminator is still a line.  Lines
// are uninterpreted byte strings: no encoding is assumed unless the reader is
// asked to enforce UTF-8.
//
// On output every line is followed by Terminator, the platform's native line
// ending, fixed when the binary is built.
package lines // import "ouniq.io/ouniq/go/platform/lines"

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultBufferSize is the read buffer size used when ReaderOptions does not
// specify one.
const DefaultBufferSize = 64 * 1024

// ErrInvalidUTF8 is returned (wrapped) by Reader.Next when a line is not valid
// UTF-8 and ReaderOptions.RequireUTF8 is set.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ReaderOptions control the behavior of a Reader.  A nil *ReaderOptions is
// ready for use and provides default values.
type ReaderOptions struct {
	// BufferSize is the size of the underlying read buffer.  Lines longer
	// than the buffer are still read whole.  If zero, DefaultBufferSize.
	BufferSize int

	// RequireUTF8 makes Next fail with ErrInvalidUTF8 on any line that is
	// not valid UTF-8.
	RequireUTF8 bool
}

func (o *ReaderOptions) bufferSize() int {
	if o == nil || o.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}

// Reader consumes lines from a byte source.
//
// Usage:
//
//	rd := lines.NewReader(r, nil)
//	for {
//	  line, err := rd.Next()
//	  if err == io.EOF {
//	    break
//	  } else if err != nil {
//	    return err
//	  }
//	  doStuffWith(line)
//	}
type Reader struct {
	buf  *bufio.Reader
	data []byte
	line int
	utf8 bool
}

// NewReader constructs a new Reader for the lines in r.
func NewReader(r io.Reader, opts *ReaderOptions) *Reader {
	return &Reader{
		buf:  bufio.NewReaderSize(r, opts.bufferSize()),
		utf8: opts != nil && opts.RequireUTF8,
	}
}

// Next returns the next line from the input with its terminator removed, or
// io.EOF if there are no more lines available.  Any other error is wrapped with
// the number of the line being read.
//
// The slice returned is valid only until a subsequent call to Next.
func (r *Reader) Next() ([]byte, error) {
	n := r.line + 1
	r.data = r.data[:0]
	for {
		chunk, err := r.buf.ReadSlice('\n')
		r.data = append(r.data, chunk...)
		switch err {
		case bufio.ErrBufferFull:
			continue
		case nil:
			r.data = r.data[:len(r.data)-1]
			if k := len(r.data); k > 0 && r.data[k-1] == '\r' {
				r.data = r.data[:k-1]
			}
		case io.EOF:
			if len(r.data) == 0 {
				return nil, io.EOF
			}
		default:
			return nil, errors.Wrapf(err, "reading line %d", n)
		}

		if r.utf8 && !utf8.Valid(r.data) {
			return nil, errors.Wrapf(ErrInvalidUTF8, "reading line %d", n)
		}
		r.line = n
		return r.data, nil
	}
}

// Line returns the number of lines successfully returned by Next so far.
func (r *Reader) Line() int { return r.line }

// A Writer outputs lines to an io.Writer, each followed by Terminator.  Output
// is buffered; callers must call Flush when done.
//
// Basic usage:
//
//	wr := lines.NewWriter(w)
//	for _, line := range lines {
//	  if err := wr.Put(line); err != nil {
//	    return err
//	  }
//	}
//	return wr.Flush()
type Writer struct {
	w *bufio.Writer
}

// NewWriter constructs a new Writer that writes lines to w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: bufio.NewWriter(w)} }

// Put writes line followed by Terminator.
func (w *Writer) Put(line []byte) error {
	if _, err := w.w.Write(line); err != nil {
		return err
	}
	_, err := w.w.WriteString(Terminator)
	return err
}

// Flush writes any buffered lines to the underlying io.Writer.
func (w *Writer) Flush() error { return w.w.Flush() }
