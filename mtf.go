// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// moveToFront implements the inverse move-to-front transformation used on
// context maps. Keeping the dictionary in the struct lets a decoder reuse it
// across meta-blocks.
type moveToFront struct {
	dict [256]uint8
}

// Decode applies the inverse move-to-front transformation to vals in place.
func (m *moveToFront) Decode(vals []uint8) {
	for i := range m.dict {
		m.dict[i] = uint8(i)
	}
	for i, v := range vals {
		b := m.dict[v]
		copy(m.dict[1:int(v)+1], m.dict[:v])
		m.dict[0] = b
		vals[i] = b
	}
}
