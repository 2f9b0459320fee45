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

// Package flagutil is a collection of helper functions for ouniq binaries using
// the flag package.
package flagutil // import "ouniq.io/ouniq/go/util/flagutil"

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"ouniq.io/ouniq/go/util/build"
)

// SimpleUsage returns a basic Usage function for fs that prints the given
// description and list of arguments in the following format:
//
//	Usage: binary <arg0> <arg1> ... <argN>
//	<description>
//
//	<build.VersionLine()>
//
//	Flags:
//	<fs.PrintDefaults()>
func SimpleUsage(fs *flag.FlagSet, description string, args ...string) func() {
	return func() {
		prefix := fmt.Sprintf("Usage: %s ", fs.Name())
		alignArgs(len(prefix), args)
		fmt.Fprintf(fs.Output(), `%s%s
%s

%s

Flags:
`, prefix, strings.Join(args, " "), description, build.VersionLine())
		fs.PrintDefaults()
	}
}

func alignArgs(col int, args []string) {
	s := strings.Repeat(" ", col)
	for i, arg := range args {
		args[i] = strings.Replace(arg, "\n", "\n"+s, -1)
	}
}

// UsageErrorf prints str formatted with the given vals to the output of fs,
// calls fs.Usage, and returns the message as an error.
func UsageErrorf(fs *flag.FlagSet, str string, vals ...any) error {
	msg := fmt.Sprintf(str, vals...)
	fmt.Fprintln(fs.Output(), "ERROR: "+msg)
	fs.Usage()
	return fmt.Errorf("usage: %s", msg)
}

// OptionalInt implements a flag.Value for an integer flag whose value may be
// omitted.  The flag package itself always requires a value, so arguments must
// first be passed through JoinOptionalArgs, which supplies Default for a bare
// -name and accepts -name N and -nameN.  Values below Min are rejected.
type OptionalInt struct {
	Default int
	Min     int

	Value   int  // the parsed value, valid only if Present
	Present bool // whether the flag appeared on the command line
}

// Set implements part of the flag.Value interface.
func (o *OptionalInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	if v < o.Min {
		return fmt.Errorf("must be at least %d: %q", o.Min, s)
	}
	o.Value, o.Present = v, true
	return nil
}

// String implements part of the flag.Value interface.
func (o *OptionalInt) String() string {
	if o == nil || !o.Present {
		return ""
	}
	return strconv.Itoa(o.Value)
}

// Get implements flag.Getter.  It returns the value, or nil if the flag was
// not given.
func (o *OptionalInt) Get() any {
	if o == nil || !o.Present {
		return nil
	}
	return o.Value
}

// JoinOptionalArgs rewrites args so that every OptionalInt flag of fs carries
// its value in the "-name=value" form the flag package requires:
//
//	-name          becomes  -name=<Default>
//	-name value    becomes  -name=value
//	-nameN         becomes  -name=N   (single-letter names only)
//
// The following argument is taken as the flag's value unless it begins with
// "-" and is not an integer.  Scanning follows the flag package's rules: it
// skips the values of other non-boolean flags and stops at "--" or the first
// non-flag argument.
func JoinOptionalArgs(fs *flag.FlagSet, args []string) []string {
	res := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || len(arg) < 2 || arg[0] != '-' {
			return append(append(res, arg), args[i+1:]...)
		}
		dashes := "-"
		if strings.HasPrefix(arg, "--") {
			dashes = "--"
		}
		name := strings.TrimPrefix(arg, dashes)
		if strings.Contains(name, "=") {
			res = append(res, arg)
			continue
		}

		f := fs.Lookup(name)
		if f == nil && dashes == "-" && len(name) > 1 {
			if g := fs.Lookup(name[:1]); g != nil {
				if _, ok := g.Value.(*OptionalInt); ok {
					res = append(res, "-"+name[:1]+"="+name[1:])
					continue
				}
			}
		}
		if f == nil {
			res = append(res, arg)
			continue
		}

		if o, ok := f.Value.(*OptionalInt); ok {
			if i+1 < len(args) && isOptionalValue(args[i+1]) {
				res = append(res, arg+"="+args[i+1])
				i++
			} else {
				res = append(res, arg+"="+strconv.Itoa(o.Default))
			}
			continue
		}
		res = append(res, arg)
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			continue
		}
		// A non-boolean flag consumes the next argument as its value.
		if i+1 < len(args) {
			res = append(res, args[i+1])
			i++
		}
	}
	return res
}

func isOptionalValue(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return true
	}
	_, err := strconv.Atoi(arg)
	return err == nil
}
