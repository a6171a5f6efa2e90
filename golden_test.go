// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"bytes"
	"io/ioutil"
	"runtime"
	"testing"
)

func TestDecompressGolden(t *testing.T) {
	vectors := []struct {
		input  string // Input filename
		output string // Output filename
	}{
		{"digits.txt.br", "digits.txt"},
		{"huffman.txt.br", "huffman.txt"},
		{"random.bin.br", "random.bin"},
		{"repeats.bin.br", "repeats.bin"},
		{"zeros.bin.br", "zeros.bin"},
	}

	for i, v := range vectors {
		input, err := ioutil.ReadFile("testdata/" + v.input)
		if err != nil {
			t.Errorf("test %d: %s\n%v", i, v.input, err)
			continue
		}
		output, err := ioutil.ReadFile("testdata/" + v.output)
		if err != nil {
			t.Errorf("test %d: %s\n%v", i, v.output, err)
			continue
		}

		buf := new(bytes.Buffer)
		if _, err := Decompress(buf, bytes.NewReader(input)); err != nil {
			t.Errorf("test %d, %s\nerror mismatch: got %v, want nil", i, v.input, err)
		}
		if !bytes.Equal(buf.Bytes(), output) {
			t.Errorf("test %d, %s\noutput mismatch", i, v.input)
		}

		size, ok := DecodedSize(input)
		if ok || size != 0 {
			t.Errorf("test %d, %s\nunexpected size hint: got (%d, %v)", i, v.input, size, ok)
		}
	}
}

func benchmarkDecode(b *testing.B, testfile string) {
	b.StopTimer()
	b.ReportAllocs()

	input, err := ioutil.ReadFile("testdata/" + testfile)
	if err != nil {
		b.Fatal(err)
	}
	nb, err := Decompress(ioutil.Discard, bytes.NewReader(input))
	if err != nil {
		b.Fatal(err)
	}
	runtime.GC()

	b.SetBytes(nb)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		cnt, err := Decompress(ioutil.Discard, bytes.NewReader(input))
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if cnt != nb {
			b.Fatalf("unexpected count: got %d, want %d", cnt, nb)
		}
	}
}

func BenchmarkDecodeDigits(b *testing.B)  { benchmarkDecode(b, "digits.txt.br") }
func BenchmarkDecodeHuffman(b *testing.B) { benchmarkDecode(b, "huffman.txt.br") }
func BenchmarkDecodeRandom(b *testing.B)  { benchmarkDecode(b, "random.bin.br") }
func BenchmarkDecodeRepeats(b *testing.B) { benchmarkDecode(b, "repeats.bin.br") }
func BenchmarkDecodeZeros(b *testing.B)   { benchmarkDecode(b, "zeros.bin.br") }
