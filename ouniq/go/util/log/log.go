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

// Package log provides semantic log functions for ouniq binaries.
//
// Messages go to the standard library logger, which writes to stderr by
// default.  The progress records and the final "fatal error:" line are not
// log messages and are never routed through this package.
package log // import "ouniq.io/ouniq/go/util/log"

import (
	"io"
	"log"
)

// SetOutput redirects all log messages to w.
func SetOutput(w io.Writer) { log.SetOutput(w) }

// Infof logs to the informational log.
func Infof(msg string, args ...any) { log.Printf(msg, args...) }

// Warningf logs to the warning log.
func Warningf(msg string, args ...any) { log.Printf("WARNING: "+msg, args...) }

// Errorf logs to the error log.
func Errorf(msg string, args ...any) { log.Printf("ERROR: "+msg, args...) }
