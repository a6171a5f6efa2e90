// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package brotli implements decompression of the pre-RFC Brotli format.
//
// This is the revision of the format that shipped with the original 2013
// release of the reference implementation. It predates RFC 7932 and differs
// from it on the wire: the stream starts with a decoded-size hint rather than
// a WBITS prefix code, prefix code definitions use a one-bit simple/complex
// selector, and there is no static dictionary. Streams produced for the RFC
// format cannot be decoded by this package, and vice versa.
package brotli

const (
	// This is the maximum bit-width of a prefix code.
	// Thus, it is okay to use uint16 to store codes.
	maxPrefixBits = 15

	// The size of the alphabet for various prefix codes.
	numLitSyms        = 256                  // Literal symbols
	numInsSyms        = 704                  // Insert-and-copy length symbols
	numBlkLenSyms     = 26                   // Block length symbols
	maxNumBlkTypeSyms = 256 + 2              // Block type symbols
	maxNumDistSyms    = 16 + 120 + (48 << 3) // Distance symbols

	// Number of distance codes that index the distance recency ring
	// instead of encoding a distance directly.
	numShortDistCodes = 16

	// Number of bits of context used when selecting trees.
	litContextBits  = 6
	distContextBits = 2

	maxLitContextIDs  = 1 << litContextBits
	maxDistContextIDs = 1 << distContextBits

	// Valid window sizes are 2^16 through 2^24.
	minWindowBits = 16
	maxWindowBits = 24
)

func init() { initLUTs() }

func initLUTs() {
	initCommonLUTs()
	initPrefixLUTs()
	initContextLUTs()
}

var reverseLUT [256]uint8

func initCommonLUTs() {
	for i := range reverseLUT {
		b := uint8(i)
		b = (b&0xaa)>>1 | (b&0x55)<<1
		b = (b&0xcc)>>2 | (b&0x33)<<2
		b = (b&0xf0)>>4 | (b&0x0f)<<4
		reverseLUT[i] = b
	}
}

// reverseUint16 reverses all bits of v.
func reverseUint16(v uint16) uint16 {
	return uint16(reverseLUT[v>>8]) | uint16(reverseLUT[v&0xff])<<8
}

// reverseBits reverses the lower n bits of v.
func reverseBits(v uint16, n uint) uint16 {
	return reverseUint16(v << (16 - n))
}

// neededBits returns the number of bits needed to represent n distinct values.
func neededBits(n uint16) (nb uint) {
	for n -= 1; n > 0; n >>= 1 {
		nb++
	}
	return nb
}

// extendUint8s returns a slice with length n, reusing s if possible.
func extendUint8s(s []uint8, n int) []uint8 {
	if cap(s) >= n {
		return s[:n]
	}
	return append(s[:cap(s)], make([]uint8, n-cap(s))...)
}

// extendUint16s returns a slice with length n, reusing s if possible.
func extendUint16s(s []uint16, n int) []uint16 {
	if cap(s) >= n {
		return s[:n]
	}
	return append(s[:cap(s)], make([]uint16, n-cap(s))...)
}

// extendSliceUints16s returns a slice with length n, reusing s if possible.
func extendSliceUints16s(s [][]uint16, n int) [][]uint16 {
	if cap(s) >= n {
		return s[:n]
	}
	return append(s[:cap(s)], make([][]uint16, n-cap(s))...)
}

// extendDecoders returns a slice with length n, reusing s if possible.
func extendDecoders(s []prefixDecoder, n int) []prefixDecoder {
	if cap(s) >= n {
		return s[:n]
	}
	return append(s[:cap(s)], make([]prefixDecoder, n-cap(s))...)
}
