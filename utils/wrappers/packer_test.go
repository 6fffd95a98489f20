// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: ByteLen + IntLen + LongLen + 3}
	p.PackByte(1)
	p.PackInt(10)
	p.PackLong(1 << 40)
	p.PackFixedBytes([]byte("abc"))
	require.NoError(p.Err)
	require.Equal([]byte{0x01, 0x00, 0x00, 0x00, 0x0a}, p.Bytes[:5])

	r := Packer{Bytes: p.Bytes}
	require.Equal(byte(1), r.UnpackByte())
	require.Equal(uint32(10), r.UnpackInt())
	require.Equal(uint64(1<<40), r.UnpackLong())
	require.Equal([]byte("abc"), r.UnpackFixedBytes(3))
	require.NoError(r.Err)
}

func TestPackerMaxSize(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: IntLen}
	p.PackInt(1)
	p.PackByte(1)
	require.ErrorIs(p.Err, ErrInsufficientLength)

	// later writes are ignored once errored
	p.PackInt(2)
	require.Len(p.Bytes, IntLen)
}

func TestPackerUnpackShort(t *testing.T) {
	p := Packer{Bytes: []byte{0x01}}
	require.Zero(t, p.UnpackInt())
	require.ErrorIs(t, p.Err, ErrInsufficientLength)
}

func TestErrsKeepsFirst(t *testing.T) {
	require := require.New(t)

	first := errors.New("first")
	errs := Errs{}
	errs.Add(nil, first, errors.New("second"))
	errs.Add(errors.New("third"))
	require.True(errs.Errored())
	require.Equal(first, errs.Err)
}
