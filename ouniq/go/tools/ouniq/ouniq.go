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

// Binary ouniq reads lines from a file or stdin and writes each distinct line
// to stdout once, in the order of its first occurrence.  Every distinct line is
// retained in memory for the duration of the run.
//
// Usage:
//
//	ouniq [-v [INTERVAL]] [-f FILE]
//
// With -v, a progress record is written to stderr after every INTERVAL input
// lines (10000 if INTERVAL is omitted):
//
//	lines: 20000, uniques: 1234, 6.17000% unique
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"ouniq.io/ouniq/go/platform/compression"
	"ouniq.io/ouniq/go/platform/lines"
	"ouniq.io/ouniq/go/platform/lines/dedup"
	"ouniq.io/ouniq/go/platform/vfs"
	"ouniq.io/ouniq/go/util/build"
	"ouniq.io/ouniq/go/util/datasize"
	"ouniq.io/ouniq/go/util/flagutil"
	"ouniq.io/ouniq/go/util/log"
	"ouniq.io/ouniq/go/util/profile"
	"ouniq.io/ouniq/go/util/progress"

	"github.com/pkg/errors"
)

// defaultInterval is the progress interval used when -v is given bare.
const defaultInterval = 10000

// config is the complete, immutable configuration of a run.
type config struct {
	verboseInterval int // 0 disables progress records
	inputPath       string

	decompress compression.Format
	utf8       bool
	readBuffer datasize.Size
	summary    bool
	cpuProfile string
	version    bool
}

// parseFlags registers the ouniq flags on fs and parses args against them.  It
// returns flag.ErrHelp if help was requested.
func parseFlags(fs *flag.FlagSet, args []string) (*config, error) {
	var (
		cfg     config
		verbose = &flagutil.OptionalInt{Default: defaultInterval, Min: 1}
	)
	fs.Var(verbose, "v", fmt.Sprintf("Write a progress record to stderr every `INTERVAL` lines (%d if given bare)", defaultInterval))
	fs.StringVar(&cfg.inputPath, "f", vfs.StdinPath, "Read lines from `FILE` (- for stdin)")
	fs.Var(&cfg.decompress, "decompress", "Decompress the input as one of {auto,brotli,gzip,none,snappy,zstd}; auto selects by file extension")
	fs.BoolVar(&cfg.utf8, "utf8", false, "Fail on lines that are not valid UTF-8")
	datasize.FlagVar(fs, &cfg.readBuffer, "read_buffer", lines.DefaultBufferSize, "Size of the input read buffer")
	fs.BoolVar(&cfg.summary, "summary", false, "Log line counts when the input has been consumed")
	fs.StringVar(&cfg.cpuProfile, "cpu_profile", "", "Write a CPU profile to `FILE`")
	fs.BoolVar(&cfg.version, "version", false, "Print version information and exit")
	fs.Usage = flagutil.SimpleUsage(fs, "Remove duplicate lines from a stream, keeping first occurrences in order",
		"[-v [INTERVAL]] [-f FILE]")

	if err := fs.Parse(flagutil.JoinOptionalArgs(fs, args)); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, flagutil.UsageErrorf(fs, "unknown arguments: %v", fs.Args())
	}
	if cfg.readBuffer == 0 {
		return nil, flagutil.UsageErrorf(fs, "--read_buffer must be positive")
	} else if cfg.readBuffer > datasize.Gibibyte {
		return nil, flagutil.UsageErrorf(fs, "--read_buffer must be at most %s", datasize.Gibibyte)
	}
	if verbose.Present {
		cfg.verboseInterval = verbose.Value
	}
	return &cfg, nil
}

// run copies the distinct lines of the configured input to stdout, writing
// progress records to stderr.  Output is flushed on every path, so lines
// emitted before a failure are not lost.
func run(ctx context.Context, cfg *config, stdin io.Reader, stdout, stderr io.Writer) (dedup.Stats, error) {
	fsys := vfs.LocalFS{Stdin: stdin}
	path := cfg.inputPath
	if !vfs.IsStdin(path) {
		fi, err := fsys.Stat(ctx, path)
		if err != nil {
			return dedup.Stats{}, errors.Wrapf(err, "opening input %q", path)
		} else if fi.IsDir() {
			return dedup.Stats{}, errors.Errorf("opening input %q: is a directory", path)
		}
	}

	in, err := fsys.Open(ctx, path)
	if err != nil {
		return dedup.Stats{}, errors.Wrapf(err, "opening input %q", path)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Warningf("closing input %q: %v", path, err)
		}
	}()

	dec, err := compression.NewReader(in, compression.ForPath(cfg.decompress, path))
	if err != nil {
		return dedup.Stats{}, errors.Wrapf(err, "reading input %q", path)
	}
	defer dec.Close()

	rd := lines.NewReader(dec, &lines.ReaderOptions{
		BufferSize:  int(cfg.readBuffer),
		RequireUTF8: cfg.utf8,
	})
	wr := lines.NewWriter(stdout)

	var opts dedup.Options
	reporter := progress.New(stderr, cfg.verboseInterval)
	if reporter != nil {
		opts.Observe = func(s dedup.Stats) { reporter.Observe(s.Lines, s.Unique) }
	}
	filter := dedup.NewFilter(wr, &opts)

	runErr := filter.Run(rd)
	flushErr := wr.Flush()
	if n := reporter.Dropped(); n > 0 {
		log.Warningf("%d progress records could not be written", n)
	}

	stats := filter.Stats()
	if runErr != nil {
		return stats, runErr
	} else if flushErr != nil {
		return stats, errors.Wrap(flushErr, "flushing output")
	}
	return stats, nil
}

// logSummary logs the end-of-run counters.
func logSummary(s dedup.Stats) {
	log.Infof("read %d lines, emitted %d unique, skipped %d duplicates, retained %s",
		s.Lines, s.Unique, s.Duplicates, s.Bytes)
}

// reportFatal writes the terminal diagnostic for err to w.
func reportFatal(w io.Writer, err error) {
	fmt.Fprintf(w, "fatal error: %v\n", err)
}

func main() {
	ctx := context.Background()
	fs := flag.NewFlagSet(build.Program, flag.ContinueOnError)
	// Usage text is shown for -h only; argument errors end in a fatal error line.
	var usage bytes.Buffer
	fs.SetOutput(&usage)
	cfg, err := parseFlags(fs, os.Args[1:])
	if err == flag.ErrHelp {
		io.Copy(os.Stderr, &usage)
		os.Exit(0)
	} else if err != nil {
		reportFatal(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.version {
		fmt.Printf("%s %s\nCopyright %s\n", build.Program, build.VersionLine(), build.Authors)
		return
	}

	stop, err := profile.Start(ctx, cfg.cpuProfile)
	if err != nil {
		reportFatal(os.Stderr, err)
		os.Exit(1)
	}
	stats, err := run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	if perr := stop(); perr != nil {
		log.Errorf("%v", perr)
	}
	if err != nil {
		reportFatal(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.summary {
		logSummary(stats)
	}
}
