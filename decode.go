// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"bytes"
	"io"
)

// prefixBlocks holds the block-switching state for one of the three symbol
// categories (literals, insert-and-copy commands, distances), along with the
// group of prefix decoders that category selects from.
type prefixBlocks struct {
	ntypes int    // Total number of block types
	btype  int    // The current block type
	blen   int64  // Remaining length of the current block
	typeRB [2]int // Recency ring of previous block types
	rbIdx  uint   // Number of insertions into typeRB

	decType  prefixDecoder   // Prefix decoder for the block type
	decLen   prefixDecoder   // Prefix decoder for the block length
	prefixes []prefixDecoder // Prefix decoders of the category's tree group
}

type decoder struct {
	rd   bitReader  // Input source
	ring ringBuffer // Sliding window over the output

	sizeHint int64 // Decoded size hint; -1 if absent
	sizeBits uint  // Bit-width of the size hint
	wbits    uint  // Window size in bits

	distRB    [4]int // Recency ring of past distances
	distRBIdx uint   // Number of insertions into distRB
	p1, p2    uint8  // The last two bytes emitted

	litBlks, insBlks, distBlks prefixBlocks
	cmodes                     []uint8 // Literal context mode per literal block type
	litMap                     []uint8 // Literal context map
	distMap                    []uint8 // Distance context map
	mtf                        moveToFront

	npostfix    uint // Postfix bits used in distance decoding
	ndirect     int  // Number of direct distance codes, including short codes
	numDistSyms int  // Size of the distance alphabet
}

// DecodedSize reads the decoded-size hint from the start of an encoded stream.
// It returns false if the stream does not declare its decoded size or if buf
// is too short to hold the hint.
func DecodedSize(buf []byte) (size int64, ok bool) {
	var err error
	func() {
		defer errRecover(&err)
		var rd bitReader
		rd.Init(bytes.NewReader(buf))
		nb := rd.ReadBits(3)
		if nb == 0 {
			return
		}
		for i := uint(0); i < nb; i++ {
			size |= int64(rd.ReadBits(8)) << (8 * i)
		}
		ok = true
	}()
	if err != nil {
		return 0, false
	}
	return size, ok
}

// Decompress reads the encoded stream from src and writes the decoded bytes
// to dst, returning the number of bytes written. Decoded data may reach dst
// before an error is detected; when err is non-nil the output must be
// considered invalid regardless of n.
func Decompress(dst io.Writer, src io.Reader) (n int64, err error) {
	d := new(decoder)
	func() {
		defer errRecover(&err)
		d.decompress(dst, src)
	}()
	return d.ring.written, err
}

// DecompressBuffer decodes src into dst, which must be large enough to hold
// the decoded stream, and returns the number of bytes produced. The count is
// reported even when an error is returned.
func DecompressBuffer(dst, src []byte) (n int, err error) {
	cnt, err := Decompress(&memWriter{buf: dst}, bytes.NewReader(src))
	return int(cnt), err
}

func (d *decoder) decompress(dst io.Writer, src io.Reader) {
	d.rd.Init(src)
	if d.readStreamHeader() {
		return // Trivial empty stream
	}
	d.ring.Init(d.wbits, dst)
	d.distRB = [4]int{4, 11, 15, 16}

	for {
		inputEnd := d.rd.ReadBits(1) == 1
		if blkLen := d.readMetaBlockLength(inputEnd); blkLen > 0 {
			d.decodeMetaBlock(blkLen)
		}
		if inputEnd {
			break
		}
	}
	d.ring.Flush()
}

// readStreamHeader reads the decoded-size hint and the window size.
// It reports whether the stream is the trivial empty stream.
func (d *decoder) readStreamHeader() (empty bool) {
	d.sizeHint = -1
	if nb := d.rd.ReadBits(3); nb > 0 {
		var hint int64
		for i := uint(0); i < nb; i++ {
			hint |= int64(d.rd.ReadBits(8)) << (8 * i)
		}
		if hint == 0 {
			return true
		}
		d.sizeHint = hint

		// Bit-width of the hint; exact powers of two use one bit less.
		bits := uint(0)
		for v := hint; v > 0; v >>= 1 {
			bits++
		}
		if hint&(hint-1) == 0 {
			bits--
		}
		d.sizeBits = bits
	}

	d.wbits = minWindowBits
	if (d.sizeHint < 0 || d.sizeBits > 16) && d.rd.ReadBits(1) == 1 {
		d.wbits = 17 + d.rd.ReadBits(3)
	}
	return false
}

// readMetaBlockLength reads the number of bytes the next meta-block decodes
// to. A length of zero is only valid on the final meta-block and terminates
// the stream.
func (d *decoder) readMetaBlockLength(inputEnd bool) int64 {
	if d.sizeHint < 0 {
		if inputEnd {
			return 0 // Terminating meta-block carries no data
		}
		var blkLen int64
		nibbles := d.rd.ReadBits(3)
		for i := uint(0); i < nibbles; i++ {
			blkLen |= int64(d.rd.ReadBits(4)) << (4 * i)
		}
		return blkLen + 1
	}

	if inputEnd {
		if d.ring.pos > d.sizeHint {
			panic(ErrCorrupt) // Hint is smaller than the bytes produced
		}
		return d.sizeHint - d.ring.pos
	}

	// The length is encoded in as many whole 8-bit chunks as it takes to
	// cover the bit-width of the size hint.
	var blkLen int64
	var shift uint
	for nb := int(d.sizeBits); nb > 0; nb -= 8 {
		blkLen |= int64(d.rd.ReadBits(8)) << shift
		shift += 8
	}
	return blkLen + 1
}

// decodeMetaBlock reads a meta-block header and runs the main decode loop
// until blkLen bytes have been produced.
func (d *decoder) decodeMetaBlock(blkLen int64) {
	blkEnd := d.ring.pos + blkLen

	// Read the block-switching setup of each category in wire order:
	// literals, insert-and-copy commands, distances.
	for _, pb := range []*prefixBlocks{&d.litBlks, &d.insBlks, &d.distBlks} {
		pb.btype = 0
		pb.typeRB = [2]int{0, 1}
		pb.rbIdx = 0
		if d.rd.ReadBits(1) == 1 {
			pb.ntypes = int(d.rd.ReadBits(8)) + 1
			d.rd.ReadPrefixCode(&pb.decType, pb.ntypes+2)
			d.rd.ReadPrefixCode(&pb.decLen, numBlkLenSyms)
			pb.blen = int64(d.rd.ReadOffset(d.rd.ReadSymbol(&pb.decLen), blkLenRanges))
			pb.rbIdx = 1
		} else {
			pb.ntypes = 1
			pb.blen = blkLen
		}
	}

	// Read the distance decoding parameters.
	d.npostfix = d.rd.ReadBits(2)
	d.ndirect = numShortDistCodes + int(d.rd.ReadBits(4))<<d.npostfix
	d.numDistSyms = d.ndirect + 48<<d.npostfix

	// Read the literal context modes.
	d.cmodes = extendUint8s(d.cmodes, d.litBlks.ntypes)
	for i := range d.cmodes {
		d.cmodes[i] = uint8(d.rd.ReadBits(2))
	}

	// Read the context maps.
	d.litMap = extendUint8s(d.litMap, d.litBlks.ntypes<<litContextBits)
	numLitTrees := d.rd.ReadContextMap(d.litMap, &d.mtf)
	d.distMap = extendUint8s(d.distMap, d.distBlks.ntypes<<distContextBits)
	numDistTrees := d.rd.ReadContextMap(d.distMap, &d.mtf)

	// Decode the three prefix tree groups.
	d.litBlks.prefixes = extendDecoders(d.litBlks.prefixes, numLitTrees)
	for i := range d.litBlks.prefixes {
		d.rd.ReadPrefixCode(&d.litBlks.prefixes[i], numLitSyms)
	}
	d.insBlks.prefixes = extendDecoders(d.insBlks.prefixes, d.insBlks.ntypes)
	for i := range d.insBlks.prefixes {
		d.rd.ReadPrefixCode(&d.insBlks.prefixes[i], numInsSyms)
	}
	d.distBlks.prefixes = extendDecoders(d.distBlks.prefixes, numDistTrees)
	for i := range d.distBlks.prefixes {
		d.rd.ReadPrefixCode(&d.distBlks.prefixes[i], d.numDistSyms)
	}

	// Context state of the current literal and distance block types.
	litMapType := d.litMap[:maxLitContextIDs]
	distMapType := d.distMap[:maxDistContextIDs]
	cmode := int(d.cmodes[0]) << 8
	p1LUT := contextP1LUT[cmode : cmode+256]
	p2LUT := contextP2LUT[cmode : cmode+256]

	for d.ring.pos < blkEnd {
		if d.insBlks.blen == 0 {
			d.readBlockSwitch(&d.insBlks)
		}
		d.insBlks.blen--
		insLen, cpyLen, newDist := d.readCommand(&d.insBlks.prefixes[d.insBlks.btype])

		// Insert phase: emit insLen context-modeled literals.
		for i := 0; i < insLen; i++ {
			if d.litBlks.blen == 0 {
				d.readBlockSwitch(&d.litBlks)
				base := d.litBlks.btype << litContextBits
				litMapType = d.litMap[base : base+maxLitContextIDs]
				cmode = int(d.cmodes[d.litBlks.btype]) << 8
				p1LUT = contextP1LUT[cmode : cmode+256]
				p2LUT = contextP2LUT[cmode : cmode+256]
			}
			d.litBlks.blen--
			ctx := p1LUT[d.p1] | p2LUT[d.p2]
			c := byte(d.rd.ReadSymbol(&d.litBlks.prefixes[litMapType[ctx]]))
			d.ring.WriteByte(c)
			d.p2, d.p1 = d.p1, c
		}
		if d.ring.pos == blkEnd {
			break // Copy length of the last command is ignored
		}

		// Distance phase: implicit commands reuse the most recent distance
		// through short code zero without consuming a distance symbol.
		distCode := 0
		if newDist {
			if d.distBlks.blen == 0 {
				d.readBlockSwitch(&d.distBlks)
				base := d.distBlks.btype << distContextBits
				distMapType = d.distMap[base : base+maxDistContextIDs]
			}
			d.distBlks.blen--
			ctx := 3
			if cpyLen <= 4 {
				ctx = cpyLen - 2
			}
			distCode = d.readDistanceCode(&d.distBlks.prefixes[distMapType[ctx]])
		}

		dist := d.resolveDistance(distCode)
		if distCode > 0 {
			d.distRB[d.distRBIdx&3] = dist
			d.distRBIdx++
		}

		maxDist := d.ring.pos
		if m := int64(d.ring.size - ringTailSlack); maxDist > m {
			maxDist = m
		}
		if dist < 1 || int64(dist) > maxDist {
			panic(ErrCorrupt) // Backward reference before the start of output
		}
		if d.ring.pos+int64(cpyLen) > blkEnd {
			panic(ErrCorrupt) // Copy runs past the end of the meta-block
		}

		d.ring.WriteCopy(dist, cpyLen)
		d.p1, d.p2 = d.ring.LastBytes()
	}
}

// readBlockSwitch reads the next block type and block length for a category.
func (d *decoder) readBlockSwitch(pb *prefixBlocks) {
	var btype int
	switch sym := d.rd.ReadSymbol(&pb.decType); sym {
	case 0:
		btype = pb.typeRB[pb.rbIdx&1]
	case 1:
		btype = pb.typeRB[(pb.rbIdx-1)&1] + 1
		if btype >= pb.ntypes {
			btype -= pb.ntypes
		}
	default:
		btype = int(sym) - 2
	}
	pb.btype = btype
	pb.typeRB[pb.rbIdx&1] = btype
	pb.rbIdx++

	pb.blen = int64(d.rd.ReadOffset(d.rd.ReadSymbol(&pb.decLen), blkLenRanges))
}

// readCommand reads one insert-and-copy command. newDist reports whether an
// explicit distance follows the insert phase.
func (d *decoder) readCommand(pd *prefixDecoder) (insLen, cpyLen int, newDist bool) {
	sym := d.rd.ReadSymbol(pd)
	rangeIdx := sym >> 6
	if rangeIdx >= 2 {
		rangeIdx -= 2
		newDist = true
	}
	insCode := insRangeLUT[rangeIdx] + sym>>3&7
	cpyCode := cpyRangeLUT[rangeIdx] + sym&7
	insLen = d.rd.ReadOffset(insCode, insLenRanges)
	cpyLen = d.rd.ReadOffset(cpyCode, cpyLenRanges)
	return insLen, cpyLen, newDist
}

// readDistanceCode reads a distance symbol and expands it to a distance code,
// consuming the extra bits of codes beyond the direct range.
func (d *decoder) readDistanceCode(pd *prefixDecoder) int {
	code := int(d.rd.ReadSymbol(pd))
	if code < d.ndirect {
		return code
	}
	code -= d.ndirect
	postfix := code & (1<<d.npostfix - 1)
	code >>= d.npostfix
	nbits := uint(code>>1) + 1
	offset := (2+code&1)<<nbits - 4
	return d.ndirect + (offset+int(d.rd.ReadBits(nbits)))<<d.npostfix + postfix
}

// resolveDistance translates a distance code to an actual distance, looking
// up the recency ring for the short codes.
func (d *decoder) resolveDistance(code int) int {
	if code < numShortDistCodes {
		idx := (d.distRBIdx + uint(distShortIdxLUT[code])) & 3
		return d.distRB[idx] + distShortValLUT[code]
	}
	return code - numShortDistCodes + 1
}

// memWriter writes into a fixed-size buffer and fails once it is full.
type memWriter struct {
	buf []byte
	pos int
}

func (mw *memWriter) Write(buf []byte) (int, error) {
	cnt := copy(mw.buf[mw.pos:], buf)
	mw.pos += cnt
	if cnt < len(buf) {
		return cnt, Error("brotli: decoded buffer is too small")
	}
	return cnt, nil
}
