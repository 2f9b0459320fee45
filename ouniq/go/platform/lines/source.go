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

package lines

// A Source represents a sequence of lines.
type Source interface {
	// Next returns the next line in the sequence, or io.EOF when no further
	// lines are available. The slice returned by Next is only required to be
	// valid until a subsequent call to Next.
	Next() ([]byte, error)
}

// A Sink represents a receiver of lines.
type Sink interface {
	// Put delivers a line to the sink.
	Put([]byte) error
}
