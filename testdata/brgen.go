// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Generates the .br goldens from the raw corpora. Only a trivial subset of
// the format is emitted: one meta-block whose single command inserts every
// byte as a literal through a uniform 8-bit literal code. This is valid for
// any input up to the largest insert length.
package main

import "io/ioutil"

type bitWriter struct {
	buf   []byte
	nbits uint
}

func (bw *bitWriter) Write(v uint32, n uint) {
	for i := uint(0); i < n; i++ {
		if bw.nbits%8 == 0 {
			bw.buf = append(bw.buf, 0)
		}
		if v>>i&1 == 1 {
			bw.buf[len(bw.buf)-1] |= 1 << (bw.nbits % 8)
		}
		bw.nbits++
	}
}

var insBases []struct {
	base int
	bits uint
}

func init() {
	base := 0
	for _, nb := range []uint{
		0, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 7, 8, 9, 10, 12, 14, 24,
	} {
		insBases = append(insBases, struct {
			base int
			bits uint
		}{base, nb})
		base += 1 << nb
	}
}

func encode(data []byte) []byte {
	bw := new(bitWriter)
	bw.Write(0, 3) // No size hint
	bw.Write(0, 1) // WBITS: 16

	n := len(data)
	bw.Write(0, 1) // Not input end
	var nib uint
	for (n-1)>>(4*nib) > 0 {
		nib++
	}
	bw.Write(uint32(nib), 3)
	for i := uint(0); i < nib; i++ {
		bw.Write(uint32((n-1)>>(4*i))&0xf, 4)
	}

	bw.Write(0, 3) // One block type per category
	bw.Write(0, 2) // NPOSTFIX
	bw.Write(0, 4) // NDIRECT
	bw.Write(0, 2) // Context mode
	bw.Write(0, 8) // Literal context map: 1 tree
	bw.Write(0, 8) // Distance context map: 1 tree

	// Literal tree: complex definition assigning length 8 to all symbols.
	// The length code is a single symbol, so the 256 lengths cost no bits.
	bw.Write(0, 1) // Complex
	bw.Write(8, 4) // 12 length codes
	bw.Write(0, 1) // Start at slot 0
	for i := 0; i < 11; i++ {
		bw.Write(0, 2)
	}
	bw.Write(3, 2) // Length code 8 gets length 1
	bw.Write(1, 1)
	bw.Write(0, 1)
	bw.Write(0, 1) // No symbol cap

	// Command tree: one symbol inserting all n bytes.
	c := 0
	for i, rc := range insBases {
		if rc.base <= n {
			c = i
		}
	}
	var sym uint32
	switch {
	case c <= 7:
		sym = uint32(c) << 3
	case c <= 15:
		sym = 4<<6 | uint32(c-8)<<3
	default:
		sym = 7<<6 | uint32(c-16)<<3
	}
	bw.Write(1, 1)
	bw.Write(0, 2)
	bw.Write(sym, 10)

	// Distance tree: single symbol, never consulted.
	bw.Write(1, 1)
	bw.Write(0, 2)
	bw.Write(0, 6)

	// Body: insert extra bits, then the literals as raw prefix codes.
	bw.Write(uint32(n-insBases[c].base), insBases[c].bits)
	for _, b := range data {
		rev := b
		rev = (rev&0xaa)>>1 | (rev&0x55)<<1
		rev = (rev&0xcc)>>2 | (rev&0x33)<<2
		rev = (rev&0xf0)>>4 | (rev&0x0f)<<4
		bw.Write(uint32(rev), 8)
	}

	bw.Write(1, 1) // Input end; empty terminating meta-block
	return bw.buf
}

func main() {
	for _, name := range []string{
		"digits.txt", "huffman.txt", "random.bin", "repeats.bin", "zeros.bin",
	} {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			panic(err)
		}
		if err := ioutil.WriteFile(name+".br", encode(data), 0664); err != nil {
			panic(err)
		}
	}
}
