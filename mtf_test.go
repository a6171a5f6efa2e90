// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"bytes"
	"testing"
)

// mtfEncode is the forward move-to-front transformation, implemented here
// only to check that Decode inverts it.
func mtfEncode(vals []uint8) {
	var dict [256]uint8
	for i := range dict {
		dict[i] = uint8(i)
	}
	for i, v := range vals {
		var idx int
		for j, b := range dict {
			if b == v {
				idx = j
				break
			}
		}
		copy(dict[1:idx+1], dict[:idx])
		dict[0] = v
		vals[i] = uint8(idx)
	}
}

func TestMoveToFront(t *testing.T) {
	vectors := []struct {
		input  []uint8
		output []uint8
	}{
		{[]uint8{}, []uint8{}},
		{[]uint8{0, 0, 0}, []uint8{0, 0, 0}},
		{[]uint8{1, 0, 0}, []uint8{1, 1, 1}},
		{[]uint8{1, 1, 2, 2}, []uint8{1, 0, 2, 1}},
		{[]uint8{2, 1, 0}, []uint8{2, 0, 0}},
		{[]uint8{3, 0, 1, 1}, []uint8{3, 3, 0, 3}},
	}

	var mtf moveToFront
	for i, v := range vectors {
		got := append([]uint8(nil), v.input...)
		mtf.Decode(got)
		if !bytes.Equal(got, v.output) {
			t.Errorf("test %d, Decode(%v): got %v, want %v", i, v.input, got, v.output)
		}
	}

	// Decode must invert the forward transformation.
	data := []uint8{0, 5, 2, 2, 0, 255, 128, 128, 1, 0, 0, 7, 42, 42, 6}
	want := append([]uint8(nil), data...)
	mtfEncode(data)
	mtf.Decode(data)
	if !bytes.Equal(data, want) {
		t.Errorf("Decode(Encode(x)) != x:\ngot  %v\nwant %v", data, want)
	}
}
