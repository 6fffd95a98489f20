// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
)

func TestRegistry(t *testing.T) {
	require := require.New(t)

	r := New(memdb.New())
	addr := ids.GenerateTestShortID()

	exists, err := r.Exists(addr)
	require.NoError(err)
	require.False(exists)

	_, err = r.Name(addr)
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(r.Set(addr, "alice"))
	exists, err = r.Exists(addr)
	require.NoError(err)
	require.True(exists)

	name, err := r.Name(addr)
	require.NoError(err)
	require.Equal("alice", name)
}

func TestVerifyName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "ok", in: "alice"},
		{name: "empty", in: "", wantErr: ErrInvalidName},
		{name: "too long", in: strings.Repeat("a", MaxNameLen+1), wantErr: ErrInvalidName},
		{name: "bad utf8", in: string([]byte{0xff, 0xfe}), wantErr: ErrInvalidName},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyName(test.in), test.wantErr)
		})
	}
}
