// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Benchmark tool to compare performance between multiple compression
// implementations. Individual implementations are referred to as codecs.
//
// Example usage:
//	$ go build -o benchmark main.go
//	$ ./benchmark \
//		-formats fl,br           \
//		-tests   encRate,decRate \
//		-codecs  std,kp,uk,ds    \
//		-files   digits.txt      \
//		-levels  1,6,9           \
//		-sizes   1e4,1e5
//
//	BENCHMARK: fl:decRate
//		benchmark             std MB/s  delta       kp MB/s  delta
//		digits.txt:1:1e4         49.61  1.00x         74.15  1.49x
//		...
package main

import (
	"flag"
	"fmt"
	"go/build"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/brotli/internal/tool/bench"
	"github.com/dsnet/golib/unitconv"
)

// By default, the benchmark tool will look for test data in this package.
const testPkg = "github.com/dsnet/brotli/testdata"

const (
	defaultLevels = "1,6,9"
	defaultSizes  = "1e4,1e5"
)

// The decompression benchmarks work by decompressing some pre-compressed
// data. For formats with a Go encoder, encRefs defines the priority order
// for which encoder to choose as the reference compressor. Formats without
// an encoder use pre-compressed golden files instead.
var encRefs = []string{"std", "kp", "uk"}

var formats = map[string]int{
	"fl": bench.FormatFlate,
	"gz": bench.FormatGzip,
	"xz": bench.FormatXZ,
	"br": bench.FormatBrotli,
}

var tests = map[string]int{
	"encRate": bench.TestEncodeRate,
	"decRate": bench.TestDecodeRate,
	"ratio":   bench.TestCompressRatio,
}

func main() {
	fmtsFlag := flag.String("formats", "fl,br", "comma-separated list of formats to benchmark")
	testsFlag := flag.String("tests", "decRate", "comma-separated list of tests to run")
	codecsFlag := flag.String("codecs", "", "comma-separated list of codecs to use (default: all registered)")
	filesFlag := flag.String("files", "digits.txt,random.bin,repeats.bin", "comma-separated list of input files")
	levelsFlag := flag.String("levels", defaultLevels, "comma-separated list of compression levels")
	sizesFlag := flag.String("sizes", defaultSizes, "comma-separated list of input sizes")
	pathsFlag := flag.String("paths", "", "colon-separated list of search paths for test files")
	flag.Parse()

	if *pathsFlag != "" {
		bench.Paths = strings.Split(*pathsFlag, ":")
	}
	if pkg, err := build.Import(testPkg, "", build.FindOnly); err == nil {
		bench.Paths = append(bench.Paths, pkg.Dir)
	}
	bench.Paths = append(bench.Paths, filepath.Join("..", "..", "..", "testdata"))

	files := strings.Split(*filesFlag, ",")
	levels := parseInts(*levelsFlag)
	sizes := parseInts(*sizesFlag)

	start := time.Now()
	for _, fs := range strings.Split(*fmtsFlag, ",") {
		ft, ok := formats[fs]
		if !ok {
			fmt.Printf("unknown format: %s\n", fs)
			continue
		}
		for _, ts := range strings.Split(*testsFlag, ",") {
			tt, ok := tests[ts]
			if !ok {
				fmt.Printf("unknown test: %s\n", ts)
				continue
			}
			runSuite(fs, ft, tt, ts, codecNames(*codecsFlag, ft, tt), files, levels, sizes)
		}
	}
	fmt.Printf("\nRUNTIME: %v\n", time.Since(start))
}

// codecNames returns the codecs to benchmark, in a stable order with the
// reference codec first.
func codecNames(flagVal string, ft, tt int) []string {
	var names []string
	if flagVal != "" {
		names = strings.Split(flagVal, ",")
	} else {
		seen := map[string]bool{}
		if tt == bench.TestDecodeRate {
			for name := range bench.Decoders[ft] {
				seen[name] = true
			}
		} else {
			for name := range bench.Encoders[ft] {
				seen[name] = true
			}
		}
		for name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, ref := range encRefs {
			if i := sort.SearchStrings(names, ref); i < len(names) && names[i] == ref {
				copy(names[1:i+1], names[:i])
				names[0] = ref
				break
			}
		}
	}
	return names
}

func runSuite(fs string, ft, tt int, ts string, codecs, files []string, levels, sizes []int) {
	fmt.Printf("\nBENCHMARK: %s:%s\n", fs, ts)

	var results [][]bench.Result
	var names []string
	tick := func() { fmt.Print(".") }

	switch tt {
	case bench.TestEncodeRate:
		results, names = bench.BenchmarkEncoderSuite(ft, codecs, files, levels, sizes, tick)
	case bench.TestDecodeRate:
		if ref := refEncoder(ft); ref != nil {
			results, names = bench.BenchmarkDecoderSuite(ft, codecs, files, levels, sizes, ref, tick)
		} else {
			results, names = bench.BenchmarkGoldenDecoderSuite(ft, codecs, files, ".br", tick)
		}
	case bench.TestCompressRatio:
		results, names = bench.BenchmarkRatioSuite(ft, codecs, files, levels, sizes, tick)
	}
	fmt.Println()

	unit := " MB/s"
	if tt == bench.TestCompressRatio {
		unit = ""
	}
	hdr := fmt.Sprintf("\t%-22s", "benchmark")
	for _, c := range codecs {
		hdr += fmt.Sprintf("%10s%s  %-7s", c, unit, "delta")
	}
	fmt.Println(hdr)
	for i, row := range results {
		line := fmt.Sprintf("\t%-22s", names[i])
		for _, r := range row {
			if math.IsNaN(r.R) || r.R == 0 {
				line += fmt.Sprintf("%10s%s  %-7s", "-", unit, "-")
				continue
			}
			line += fmt.Sprintf("%10.2f%s  %-7s", r.R, unit, fmt.Sprintf("%0.2fx", r.D))
		}
		fmt.Println(line)
	}
}

// refEncoder returns the reference encoder for a format, or nil if the
// format has no Go encoder.
func refEncoder(ft int) bench.Encoder {
	for _, name := range encRefs {
		if enc, ok := bench.Encoders[ft][name]; ok {
			return enc
		}
	}
	for _, enc := range bench.Encoders[ft] {
		return enc
	}
	return nil
}

func parseInts(s string) (vals []int) {
	for _, ss := range strings.Split(s, ",") {
		v, err := unitconv.ParsePrefix(ss, unitconv.AutoParse)
		if err != nil {
			panic(err)
		}
		vals = append(vals, int(v))
	}
	return vals
}
