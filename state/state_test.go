// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestImmutableStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	im := ImmutableStorage{"key": []byte("value")}

	v, err := im.GetValue(ctx, []byte("key"))
	require.NoError(err)
	require.Equal([]byte("value"), v)

	_, err = im.GetValue(ctx, []byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestMutableStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := MutableStorage{}

	require.NoError(mu.Insert(ctx, []byte("key"), []byte("value")))
	v, err := mu.GetValue(ctx, []byte("key"))
	require.NoError(err)
	require.Equal([]byte("value"), v)

	require.NoError(mu.Remove(ctx, []byte("key")))
	_, err = mu.GetValue(ctx, []byte("key"))
	require.ErrorIs(err, database.ErrNotFound)

	// Removing a missing key is a no-op
	require.NoError(mu.Remove(ctx, []byte("key")))
}

func TestReadOnlyDatabase(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	require.NoError(db.Put([]byte("key"), []byte("value")))

	ro := NewReadOnlyDatabase(db)
	v, err := ro.GetValue(ctx, []byte("key"))
	require.NoError(err)
	require.Equal([]byte("value"), v)

	_, err = ro.GetValue(ctx, []byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)
}
