// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"bytes"
	"io"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	vectors := []struct {
		desc   string
		wbits  uint
		run    func(rb *ringBuffer)
		output []byte
		writes []int // Expected sizes of the flushes before the final one
	}{{
		desc:  "literals only",
		wbits: 4,
		run: func(rb *ringBuffer) {
			for _, c := range []byte("abc") {
				rb.WriteByte(c)
			}
		},
		output: []byte("abc"),
	}, {
		desc:  "copy without overlap",
		wbits: 4,
		run: func(rb *ringBuffer) {
			for _, c := range []byte("abcd") {
				rb.WriteByte(c)
			}
			rb.WriteCopy(4, 4)
		},
		output: []byte("abcdabcd"),
	}, {
		desc:  "byte repeat via distance one",
		wbits: 4,
		run: func(rb *ringBuffer) {
			rb.WriteByte('x')
			rb.WriteCopy(1, 7)
		},
		output: []byte("xxxxxxxx"),
	}, {
		desc:  "period-three pattern",
		wbits: 4,
		run: func(rb *ringBuffer) {
			for _, c := range []byte("abc") {
				rb.WriteByte(c)
			}
			rb.WriteCopy(3, 8)
		},
		output: []byte("abcabcabcab"),
	}, {
		desc:  "copy across the window boundary",
		wbits: 4,
		run: func(rb *ringBuffer) {
			for _, c := range []byte("abcdefghijklmn") {
				rb.WriteByte(c)
			}
			rb.WriteCopy(14, 14)
		},
		output: []byte("abcdefghijklmnabcdefghijklmn"),
		writes: []int{16},
	}, {
		desc:  "overlapping copy across the window boundary",
		wbits: 4,
		run: func(rb *ringBuffer) {
			for _, c := range []byte("abcdefghijklmno") {
				rb.WriteByte(c)
			}
			rb.WriteCopy(2, 8)
		},
		output: []byte("abcdefghijklmnonononono"),
		writes: []int{16},
	}, {
		desc:  "literal flush at exact window size",
		wbits: 4,
		run: func(rb *ringBuffer) {
			for i := 0; i < 16; i++ {
				rb.WriteByte(byte('a' + i))
			}
		},
		output: []byte("abcdefghijklmnop"),
		writes: []int{16},
	}}

	for i, v := range vectors {
		cw := new(countingWriter)
		buf := new(bytes.Buffer)

		var rb ringBuffer
		rb.Init(v.wbits, io.MultiWriter(cw, buf))
		v.run(&rb)
		rb.Flush()

		if !bytes.Equal(buf.Bytes(), v.output) {
			t.Errorf("test %d, %s\noutput mismatch:\ngot  %q\nwant %q", i, v.desc, buf.Bytes(), v.output)
		}
		if rb.written != int64(len(v.output)) {
			t.Errorf("test %d, %s\nwritten count mismatch: got %d, want %d", i, v.desc, rb.written, len(v.output))
		}

		wantWrites := v.writes
		if n := len(v.output) % (1 << v.wbits); n > 0 {
			wantWrites = append(append([]int{}, v.writes...), n)
		}
		if len(cw.sizes) != len(wantWrites) {
			t.Errorf("test %d, %s\nflush count mismatch: got %v, want %v", i, v.desc, cw.sizes, wantWrites)
			continue
		}
		for j := range wantWrites {
			if cw.sizes[j] != wantWrites[j] {
				t.Errorf("test %d, %s\nflush sizes mismatch: got %v, want %v", i, v.desc, cw.sizes, wantWrites)
				break
			}
		}
	}
}
