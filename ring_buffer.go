// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "io"

// Extra bytes kept past the end of the window so that block copies near the
// window edge never index out of bounds.
const ringTailSlack = 16

// ringBuffer is the sliding window over the decompressed output. It is both
// the source of backward references and the staging area for the sink: the
// window contents are flushed whenever the write position wraps, and a final
// partial flush drains whatever remains.
type ringBuffer struct {
	wr      io.Writer
	buf     []byte // Window contents; len(buf) is size plus tail slack
	size    int    // Window size; always a power of two
	mask    int
	pos     int64 // Absolute position of the next byte to be produced
	written int64 // Total bytes flushed to the sink
}

func (rb *ringBuffer) Init(wbits uint, wr io.Writer) {
	size := 1 << wbits
	if cap(rb.buf) >= size+ringTailSlack {
		rb.buf = rb.buf[:size+ringTailSlack]
	} else {
		rb.buf = make([]byte, size+ringTailSlack)
	}
	rb.size, rb.mask = size, size-1
	rb.pos, rb.written = 0, 0
	rb.wr = wr
}

// WriteByte appends a single literal byte to the window.
func (rb *ringBuffer) WriteByte(c byte) {
	i := int(rb.pos) & rb.mask
	rb.buf[i] = c
	rb.pos++
	if i == rb.mask {
		rb.flush(rb.buf[:rb.size])
	}
}

// WriteCopy copies cnt bytes starting dist bytes before the current position.
// The regions may overlap, in which case the copy repeats the dist-periodic
// pattern, since every read observes bytes written earlier in the same copy.
func (rb *ringBuffer) WriteCopy(dist, cnt int) {
	dstPos := int(rb.pos) & rb.mask
	srcPos := int(rb.pos-int64(dist)) & rb.mask

	// Fast path: neither region wraps the window, no flush boundary is
	// crossed, and a self-overlapping region repeats forward in the window.
	if srcPos+cnt <= rb.size && dstPos+cnt < rb.size && (dist >= cnt || srcPos < dstPos) {
		if dist >= cnt {
			copy(rb.buf[dstPos:dstPos+cnt], rb.buf[srcPos:srcPos+cnt])
		} else {
			// Grow the repeated pattern in place. Each pass may copy up to
			// twice the bytes of the previous one.
			endPos := dstPos + cnt
			for dstPos < endPos {
				dstPos += copy(rb.buf[dstPos:endPos], rb.buf[srcPos:dstPos])
			}
		}
		rb.pos += int64(cnt)
		return
	}

	// Slow path: copy one byte at a time through the window mask, flushing
	// whenever the write position wraps.
	for ; cnt > 0; cnt-- {
		i := int(rb.pos) & rb.mask
		rb.buf[i] = rb.buf[int(rb.pos-int64(dist))&rb.mask]
		rb.pos++
		if i == rb.mask {
			rb.flush(rb.buf[:rb.size])
		}
	}
}

// LastBytes returns the last two bytes in the window.
func (rb *ringBuffer) LastBytes() (p1, p2 byte) {
	return rb.buf[int(rb.pos-1)&rb.mask], rb.buf[int(rb.pos-2)&rb.mask]
}

// Flush writes out all bytes not yet passed to the sink.
func (rb *ringBuffer) Flush() {
	if n := int(rb.pos) & rb.mask; n > 0 {
		rb.flush(rb.buf[:n])
	}
}

func (rb *ringBuffer) flush(buf []byte) {
	cnt, err := rb.wr.Write(buf)
	rb.written += int64(cnt)
	if err != nil {
		panic(err)
	}
	if cnt < len(buf) {
		panic(io.ErrShortWrite)
	}
}
