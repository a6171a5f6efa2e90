// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Generates the raw test corpora. A portable LCG is used instead of math/rand
// so that the construction is reproducible from any language.
//
//	digits.txt   pseudo-random decimal digits; dense entropy, small alphabet
//	huffman.txt  skewed letter distribution; favors prefix coding
//	random.bin   uniform bytes; nearly incompressible
//	repeats.bin  random data with heavy self-references; favors LZ77
//	zeros.bin    all zero bytes
package main

import "io/ioutil"

const size = 1 << 15

type lcg uint32

func (r *lcg) next() uint32 {
	*r = (*r*1103515245 + 12345) & 0x7fffffff
	return uint32(*r)
}

func main() {
	write := func(name string, b []byte) {
		if err := ioutil.WriteFile(name, b, 0664); err != nil {
			panic(err)
		}
	}

	r := lcg(1)
	b := make([]byte, size)
	for i := range b {
		b[i] = byte('0' + r.next()%10)
	}
	write("digits.txt", b)

	r = lcg(2)
	alphabet := []byte("eetaoinshrdlcumwfgypbvkjxqz E.\n")
	b = make([]byte, size)
	for i := range b {
		v := r.next()
		idx := 0
		for v&1 == 1 && idx < len(alphabet)-1 {
			idx++
			v >>= 1
		}
		b[i] = alphabet[idx]
	}
	write("huffman.txt", b)

	r = lcg(3)
	b = make([]byte, size)
	for i := range b {
		b[i] = byte(r.next())
	}
	write("random.bin", b)

	write("zeros.bin", make([]byte, size))

	r = lcg(4)
	b = b[:0]
	for len(b) < size {
		v := r.next()
		if len(b) > 0 && v%4 == 0 {
			max := len(b)
			if max > 1024 {
				max = 1024
			}
			dist := 1 + int(r.next())%max
			cnt := 4 + int(r.next())%60
			for j := 0; j < cnt; j++ {
				b = append(b, b[len(b)-dist])
			}
		} else {
			b = append(b, byte(r.next()))
		}
	}
	write("repeats.bin", b[:size])
}
