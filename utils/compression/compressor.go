// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package compression shrinks stored blobs.
package compression

// Compressor compresses and decompresses messages. Implementations are safe
// for concurrent use.
type Compressor interface {
	// Compress returns the compressed form of msg.
	Compress(msg []byte) ([]byte, error)
	// Decompress returns the original form of msg.
	Decompress(msg []byte) ([]byte, error)
}
