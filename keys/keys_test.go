// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumChunks(t *testing.T) {
	tests := []struct {
		size   int
		chunks uint16
		ok     bool
	}{
		{size: 0, chunks: 0, ok: true},
		{size: 1, chunks: 1, ok: true},
		{size: chunkSize - 1, chunks: 1, ok: true},
		{size: chunkSize, chunks: 2, ok: true},
		{size: MaxValueSize, chunks: ^uint16(0), ok: true},
		{size: MaxValueSize + 1, chunks: 0, ok: false},
	}
	for _, tt := range tests {
		chunks, ok := numChunks(tt.size)
		require.Equal(t, tt.ok, ok, "size=%d", tt.size)
		require.Equal(t, tt.chunks, chunks, "size=%d", tt.size)
	}
}

func TestEncodeAndVerify(t *testing.T) {
	require := require.New(t)

	key, ok := Encode([]byte{1, 2, 3}, 100)
	require.True(ok)
	require.True(Valid(string(key)))

	chunks, ok := MaxChunks(key)
	require.True(ok)
	require.Equal(uint16(2), chunks)

	require.True(VerifyValue(key, bytes.Repeat([]byte{1}, 100)))
	require.True(VerifyValue(key, nil))
	require.False(VerifyValue(key, bytes.Repeat([]byte{1}, 2*chunkSize)))

	_, ok = MaxChunks([]byte{1})
	require.False(ok)
	require.False(VerifyValue([]byte{1}, nil))

	_, ok = Encode([]byte{1}, MaxValueSize+1)
	require.False(ok)
}
