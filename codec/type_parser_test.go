// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type Blah interface {
	Typed
	Bark() string
}

type Blah1 struct{}

func (*Blah1) Bark() string { return "blah1" }

func (*Blah1) GetTypeID() uint8 { return 0 }

type Blah2 struct{}

func (*Blah2) Bark() string { return "blah2" }

func (*Blah2) GetTypeID() uint8 { return 1 }

type Blah1Dup struct{}

func (*Blah1Dup) Bark() string { return "dup" }

func (*Blah1Dup) GetTypeID() uint8 { return 0 }

func TestTypeParser(t *testing.T) {
	tp := NewTypeParser[Blah]()

	t.Run("empty parser", func(t *testing.T) {
		require := require.New(t)
		f, ok := tp.LookupIndex(0)
		require.Nil(f)
		require.False(ok)
		require.Zero(tp.Len())
	})

	t.Run("populated parser", func(t *testing.T) {
		require := require.New(t)

		errBlah2 := errors.New("blah2")
		require.NoError(tp.Register(&Blah1{}, func(*Packer) (Blah, error) { return &Blah1{}, nil }))
		require.NoError(tp.Register(&Blah2{}, func(*Packer) (Blah, error) { return nil, errBlah2 }))
		require.Equal(2, tp.Len())

		f, ok := tp.LookupIndex((&Blah1{}).GetTypeID())
		require.True(ok)
		res, err := f(nil)
		require.NoError(err)
		require.Equal("blah1", res.Bark())

		f, ok = tp.LookupIndex((&Blah2{}).GetTypeID())
		require.True(ok)
		_, err = f(nil)
		require.ErrorIs(err, errBlah2)
	})

	t.Run("duplicate item", func(t *testing.T) {
		require := require.New(t)
		err := tp.Register(&Blah1Dup{}, nil)
		require.ErrorIs(err, ErrDuplicateItem)
	})
}
