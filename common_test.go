// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestRangeLUTs(t *testing.T) {
	vectors := []struct {
		rcs  rangeCodes
		sym  uint
		base uint32
		bits uint8
	}{
		{insLenRanges, 0, 0, 0},
		{insLenRanges, 6, 6, 1},
		{insLenRanges, 7, 8, 1},
		{insLenRanges, 16, 130, 6},
		{insLenRanges, 23, 22594, 24},
		{cpyLenRanges, 0, 2, 0},
		{cpyLenRanges, 7, 9, 0},
		{cpyLenRanges, 8, 10, 1},
		{cpyLenRanges, 9, 12, 1},
		{cpyLenRanges, 23, 2118, 24},
		{blkLenRanges, 0, 1, 2},
		{blkLenRanges, 4, 17, 3},
		{blkLenRanges, 25, 16625, 24},
	}

	for i, v := range vectors {
		rc := v.rcs[v.sym]
		if rc.base != v.base || rc.bits != v.bits {
			t.Errorf("test %d, range code %d: got {base: %d, bits: %d}, want {base: %d, bits: %d}",
				i, v.sym, rc.base, rc.bits, v.base, v.bits)
		}
	}

	if len(insLenRanges) != 24 || len(cpyLenRanges) != 24 || len(blkLenRanges) != numBlkLenSyms {
		t.Errorf("range LUT lengths: got (%d, %d, %d), want (24, 24, %d)",
			len(insLenRanges), len(cpyLenRanges), len(blkLenRanges), numBlkLenSyms)
	}
}

func TestNeededBits(t *testing.T) {
	vectors := []struct {
		n  uint16
		nb uint
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {26, 5}, {64, 6}, {256, 8}, {704, 10},
	}
	for i, v := range vectors {
		if nb := neededBits(v.n); nb != v.nb {
			t.Errorf("test %d, neededBits(%d): got %d, want %d", i, v.n, nb, v.nb)
		}
	}
}

// This package relies on dynamic generation of LUTs to reduce the static
// binary size. This benchmark attempts to measure the startup cost of init.
// This benchmark is not thread-safe; so do not run it in parallel with other
// tests or benchmarks!
func BenchmarkInit(b *testing.B) {
	for i := 0; i < b.N; i++ {
		initLUTs()
	}
}
