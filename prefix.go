// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// The number of symbols in the code length alphabet, which covers the literal
// lengths 0..15 and the repeat codes 16..18.
const numCLCSyms = 19

var (
	// Order in which lengths of the code length alphabet appear on the wire
	// in a complex prefix code definition.
	clcOrder = [numCLCSyms]uint8{
		1, 2, 3, 4, 0, 17, 18, 5, 6, 16, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	}

	// Extra bits and repeat bases for the code length repeat codes.
	// Code 16 repeats the previous length, codes 17 and 18 repeat zeros.
	clcRepBits  = [3]uint8{2, 3, 7}
	clcRepBases = [3]int{3, 3, 11}
)

// The insert-and-copy command alphabet is partitioned into ranges of 64
// symbols. These LUTs map a normalized range to the base insert and copy
// codes contributed by that range; the low six bits of the command symbol
// select the fine offsets.
var (
	insRangeLUT = [9]uint{0, 0, 8, 8, 0, 16, 8, 16, 16}
	cpyRangeLUT = [9]uint{0, 8, 0, 8, 16, 0, 16, 8, 16}
)

// Short distance codes are resolved against the distance recency ring.
// The first LUT offsets the ring cursor, the second adjusts the value found.
var (
	distShortIdxLUT = [numShortDistCodes]uint8{
		3, 2, 1, 0, 3, 3, 3, 3, 3, 3, 2, 2, 2, 2, 2, 2,
	}
	distShortValLUT = [numShortDistCodes]int{
		0, 0, 0, 0, -1, 1, -2, 2, -3, 3, -1, 1, -2, 2, -3, 3,
	}
)

type rangeCode struct {
	base uint32 // Starting base offset of the range
	bits uint8  // Bit-width of a subsequent integer to add to base offset
}
type rangeCodes []rangeCode

var (
	// LUT to convert an insert code to an actual insert length.
	insLenRanges rangeCodes

	// LUT to convert a copy code to an actual copy length.
	cpyLenRanges rangeCodes

	// LUT to convert a block length symbol to an actual length.
	blkLenRanges rangeCodes
)

func initPrefixLUTs() {
	// Sanity check some constants.
	for _, numMax := range []uint{
		numLitSyms, maxNumDistSyms, numInsSyms, numBlkLenSyms, maxNumBlkTypeSyms,
	} {
		if numMax >= 1<<prefixSymbolBits {
			panic("maximum alphabet size is too large to represent")
		}
	}
	if maxPrefixBits >= 1<<prefixCountBits {
		panic("maximum prefix bit-length is too large to represent")
	}

	var makeRanges = func(base uint, bits []uint) (rc rangeCodes) {
		for _, nb := range bits {
			rc = append(rc, rangeCode{base: uint32(base), bits: uint8(nb)})
			base += 1 << nb
		}
		return rc
	}

	insLenRanges = makeRanges(0, []uint{
		0, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 7, 8, 9, 10, 12, 14, 24,
	})
	cpyLenRanges = makeRanges(2, []uint{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 7, 8, 9, 10, 24,
	})
	blkLenRanges = makeRanges(1, []uint{
		2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 6, 6, 7, 8, 9, 10, 11, 12, 13, 24,
	})
}
