// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "bufio"
import "io"

type byteReader interface {
	io.Reader
	io.ByteReader
}

type bitReader struct {
	rd      byteReader
	bufBits uint32 // Buffer to hold some bits
	numBits uint   // Number of valid bits in bufBits
	offset  int64  // Number of bytes read from the underlying reader

	// These fields are only used as scratch space when reading the
	// definition of a prefix code or a context map.
	prefix prefixDecoder // Local prefix decoder
	lens   []uint8       // Code length vector being assembled
	codes  []prefixCode  // Non-zero codes drawn from lens
}

func (br *bitReader) Init(r io.Reader) {
	if rr, ok := r.(byteReader); ok {
		br.rd = rr
	} else {
		br.rd = bufio.NewReader(r)
	}
	br.bufBits, br.numBits, br.offset = 0, 0, 0
}

// ReadBits reads nb bits in LSB order from the underlying reader.
// The bit-width nb must not exceed 24. If an IO error occurs, then it panics.
func (br *bitReader) ReadBits(nb uint) uint {
	for br.numBits < nb {
		c, err := br.rd.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			panic(err)
		}
		br.offset++
		br.bufBits |= uint32(c) << br.numBits
		br.numBits += 8
	}
	val := uint(br.bufBits & uint32(1<<nb-1))
	br.bufBits >>= nb
	br.numBits -= nb
	return val
}

// ReadSymbol reads the next prefix symbol using the provided prefixDecoder.
// If an IO error occurs, then it panics.
func (br *bitReader) ReadSymbol(pd *prefixDecoder) uint {
	if len(pd.chunks) == 0 {
		panic(ErrCorrupt) // Decode with empty tree
	}

	nb := uint(pd.minBits)
	for {
		for br.numBits < nb {
			// This section is an inlined version of the inner loop of ReadBits
			// for performance reasons.
			c, err := br.rd.ReadByte()
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				panic(err)
			}
			br.offset++
			br.bufBits |= uint32(c) << br.numBits
			br.numBits += 8
		}
		chunk := pd.chunks[uint16(br.bufBits)&pd.chunkMask]
		nb = uint(chunk & prefixCountMask)
		if nb > uint(pd.chunkBits) {
			linkIdx := chunk >> prefixCountBits
			chunk = pd.links[linkIdx][uint16(br.bufBits>>pd.chunkBits)&pd.linkMask]
			nb = uint(chunk & prefixCountMask)
		}
		if nb <= br.numBits {
			br.bufBits >>= nb
			br.numBits -= nb
			return uint(chunk >> prefixCountBits)
		}
	}
}

// ReadOffset reads a rangeCode and returns the value it represents, which is
// the base offset of the range plus some number of extra bits.
func (br *bitReader) ReadOffset(sym uint, rcs rangeCodes) int {
	rc := rcs[sym]
	return int(rc.base) + int(br.ReadBits(uint(rc.bits)))
}

// ReadPrefixCode reads the prefix code definition from the stream and
// initializes the provided prefixDecoder for an alphabet of numSyms symbols.
func (br *bitReader) ReadPrefixCode(pd *prefixDecoder, numSyms int) {
	if br.ReadBits(1) == 1 {
		br.readSimplePrefixCode(pd, numSyms)
	} else {
		br.readComplexPrefixCode(pd, numSyms)
	}
}

// readSimplePrefixCode reads a prefix code over at most four symbols, which
// are listed on the wire directly as fixed-width integers.
func (br *bitReader) readSimplePrefixCode(pd *prefixDecoder, numSyms int) {
	lens := extendUint8s(br.lens, numSyms)
	br.lens = lens
	for i := range lens {
		lens[i] = 0
	}

	var syms [4]uint16
	nsym := int(br.ReadBits(2)) + 1
	clen := neededBits(uint16(numSyms))
	for i := 0; i < nsym; i++ {
		sym := br.ReadBits(clen)
		if int(sym) >= numSyms {
			panic(ErrCorrupt) // Symbol goes beyond range of alphabet
		}
		syms[i] = uint16(sym)
		lens[sym] = 2
	}
	lens[syms[0]] = 1

	switch nsym {
	case 2:
		lens[syms[1]] = 1
	case 4:
		if br.ReadBits(1) == 1 {
			lens[syms[2]] = 3
			lens[syms[3]] = 3
		} else {
			lens[syms[0]] = 2
		}
	}
	br.initPrefixCode(pd, lens)
}

// readComplexPrefixCode reads a prefix code whose code lengths are themselves
// prefix coded using the code length alphabet.
func (br *bitReader) readComplexPrefixCode(pd *prefixDecoder, numSyms int) {
	var clens [numCLCSyms]uint8
	numCodes := int(br.ReadBits(4)) + 4
	if numCodes > numCLCSyms {
		panic(ErrCorrupt)
	}
	for i := int(br.ReadBits(1)) * 2; i < numCodes; i++ {
		sym := clcOrder[i]
		v := br.ReadBits(2)
		switch v {
		case 1:
			v = 3
		case 2:
			v = 4
		case 3:
			if br.ReadBits(1) == 0 {
				v = 2
			} else if br.ReadBits(1) == 0 {
				v = 1
			} else {
				v = 5
			}
		}
		clens[sym] = uint8(v)
	}
	br.initPrefixCode(&br.prefix, clens[:])

	// Decode the code length vector for the real alphabet, which may be
	// capped below numSyms; lengths beyond the cap are implicitly zero.
	lens := extendUint8s(br.lens, numSyms)
	br.lens = lens
	for i := range lens {
		lens[i] = 0
	}
	maxSym := numSyms
	if br.ReadBits(1) == 1 {
		nb := 2 + 2*br.ReadBits(3)
		maxSym = 2 + int(br.ReadBits(nb))
		if maxSym > numSyms {
			panic(ErrCorrupt) // Cap goes beyond range of alphabet
		}
	}

	prev := uint8(8) // Default code length
	sym := 0
	for sym < numSyms {
		if maxSym == 0 {
			break
		}
		maxSym--

		clen := br.ReadSymbol(&br.prefix)
		if clen < 16 {
			lens[sym] = uint8(clen)
			sym++
			if clen > 0 {
				prev = uint8(clen)
			}
			continue
		}

		slot := clen - 16
		rep := clcRepBases[slot] + int(br.ReadBits(uint(clcRepBits[slot])))
		var l uint8
		if clen == 16 {
			l = prev
		}
		if sym+rep > numSyms {
			panic(ErrCorrupt) // Repeat overflows the alphabet
		}
		for ; rep > 0; rep-- {
			lens[sym] = l
			sym++
		}
	}
	br.initPrefixCode(pd, lens)
}

// initPrefixCode initializes pd from a dense code length vector.
func (br *bitReader) initPrefixCode(pd *prefixDecoder, lens []uint8) {
	codes := br.codes[:0]
	for sym, n := range lens {
		if n > 0 {
			codes = append(codes, prefixCode{sym: uint16(sym), len: n})
		}
	}
	br.codes = codes

	if len(codes) == 0 {
		panic(ErrCorrupt) // Empty prefix code
	}
	if len(codes) == 1 && codes[0].len > 1 {
		panic(ErrCorrupt) // Lone symbol must use a length of zero or one
	}
	pd.Init(codes)
}

// ReadContextMap reads the context map into cm and returns the number of
// prefix trees the map selects from. Zero runs may be run-length encoded, and
// the whole map may be transformed by an inverse move-to-front pass.
func (br *bitReader) ReadContextMap(cm []uint8, mtf *moveToFront) int {
	numTrees := int(br.ReadBits(8)) + 1
	if numTrees == 1 {
		for i := range cm {
			cm[i] = 0
		}
		return numTrees
	}

	var maxRLE uint
	if br.ReadBits(1) == 1 {
		maxRLE = br.ReadBits(4) + 1
	}
	br.ReadPrefixCode(&br.prefix, numTrees+int(maxRLE))

	for i := 0; i < len(cm); {
		sym := br.ReadSymbol(&br.prefix)
		switch {
		case sym == 0:
			cm[i] = 0
			i++
		case sym <= maxRLE:
			reps := 1<<sym + int(br.ReadBits(sym))
			if i+reps > len(cm) {
				panic(ErrCorrupt) // Run of zeros overflows the map
			}
			for ; reps > 0; reps-- {
				cm[i] = 0
				i++
			}
		default:
			cm[i] = uint8(sym - maxRLE)
			i++
		}
	}

	if br.ReadBits(1) == 1 {
		mtf.Decode(cm)
	}
	return numTrees
}
