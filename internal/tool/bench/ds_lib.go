// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build !no_ds_lib

package bench

import (
	"io"

	"github.com/dsnet/brotli"
)

func init() {
	// There is no encoder for this format; the decoder streams through a
	// pipe to satisfy the io.ReadCloser contract of the registry.
	RegisterDecoder(FormatBrotli, "ds",
		func(r io.Reader) io.ReadCloser {
			pr, pw := io.Pipe()
			go func() {
				_, err := brotli.Decompress(pw, r)
				pw.CloseWithError(err)
			}()
			return pr
		})
}
