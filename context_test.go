// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "testing"

func TestContextLUTs(t *testing.T) {
	vectors := []struct {
		mode   int
		p1, p2 uint8
		ctx    uint8
	}{
		// LSB6 keeps the low six bits of the previous byte.
		{contextLSB6, 0x00, 0xff, 0x00},
		{contextLSB6, 0xc3, 0xff, 0x03},
		{contextLSB6, 0x3f, 0x12, 0x3f},

		// MSB6 keeps the high six bits of the previous byte.
		{contextMSB6, 0xc3, 0xff, 0x30},
		{contextMSB6, 0x07, 0xff, 0x01},

		// UTF8 classifies by character role.
		{contextUTF8, 'a', 0x00, 56},
		{contextUTF8, 'e', 0x00, 56},
		{contextUTF8, 'b', 0x00, 60},
		{contextUTF8, 'A', 0x00, 48},
		{contextUTF8, ' ', 0x00, 8},
		{contextUTF8, '0', 0x00, 44},
		{contextUTF8, '.', 0x00, 36},
		{contextUTF8, 'a', 'A', 56 | 1},
		{contextUTF8, 'a', 'z', 56 | 2},
		{contextUTF8, 'a', 0x80, 56 | 3},
		{contextUTF8, 0x80, 0x00, 0},
		{contextUTF8, 0x81, 0x00, 1},
		{contextUTF8, 0xc0, 0x00, 2},
		{contextUTF8, 0xff, 0x00, 3},

		// Signed mode quantizes both bytes symmetrically about zero.
		{contextSigned, 0, 0, 0},
		{contextSigned, 1, 0, 1 << 3},
		{contextSigned, 0xff, 0xff, 7<<3 | 7},
		{contextSigned, 16, 255, 2<<3 | 7},
		{contextSigned, 128, 128, 4<<3 | 4},
	}

	for i, v := range vectors {
		base := v.mode << 8
		ctx := contextP1LUT[base+int(v.p1)] | contextP2LUT[base+int(v.p2)]
		if ctx != v.ctx {
			t.Errorf("test %d, context(mode: %d, p1: %#02x, p2: %#02x): got %d, want %d",
				i, v.mode, v.p1, v.p2, ctx, v.ctx)
		}
		if ctx >= maxLitContextIDs {
			t.Errorf("test %d, context %d exceeds %d", i, ctx, maxLitContextIDs)
		}
	}

	// Every entry must stay within the context ID space.
	for i, v := range contextP1LUT {
		if v >= maxLitContextIDs {
			t.Errorf("contextP1LUT[%d] = %d exceeds %d", i, v, maxLitContextIDs)
		}
	}
	for i, v := range contextP2LUT {
		if v >= 4 {
			t.Errorf("contextP2LUT[%d] = %d exceeds 4", i, v)
		}
	}
}
