// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/consts"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(consts.ED25519ID, addrID)
	require.Equal(consts.ED25519ID, addr.TypeID())
	require.Equal(addrID, addr.ID())

	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressString(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())

	originalAddr, err := StringToAddress(addr.String())
	require.NoError(err)
	require.Equal(addr, originalAddr)

	_, err = StringToAddress("0x1234")
	require.ErrorIs(err, ErrInvalidSize)
}

func TestAddressBech32(t *testing.T) {
	tests := []struct {
		name   string
		typeID uint8
		id     ids.ID
	}{
		{
			name:   "empty",
			typeID: 0,
			id:     ids.Empty,
		},
		{
			name:   "ed25519",
			typeID: consts.ED25519ID,
			id:     ids.GenerateTestID(),
		},
		{
			name:   "program",
			typeID: consts.ProgramID,
			id:     ids.GenerateTestID(),
		},
		{
			name:   "all bits set",
			typeID: 0xff,
			id:     ids.ID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			addr := CreateAddress(tt.typeID, tt.id)

			saddr, err := AddressBech32(consts.HRP, addr)
			require.NoError(err)
			require.Equal(saddr, MustAddressBech32(consts.HRP, addr))

			parsed, err := ParseAddressBech32(consts.HRP, saddr)
			require.NoError(err)
			require.Equal(addr, parsed)

			_, err = ParseAddressBech32("other", saddr)
			require.ErrorIs(err, ErrIncorrectHRP)
		})
	}
}

func TestParseAddressBech32WrongLength(t *testing.T) {
	require := require.New(t)
	id := ids.GenerateTestID()
	p, err := bech32.ConvertBits(id[:], 8, 5, true)
	require.NoError(err)
	saddr, err := bech32.Encode(consts.HRP, p)
	require.NoError(err)

	_, err = ParseAddressBech32(consts.HRP, saddr)
	require.ErrorIs(err, ErrInsufficientLength)

	_, err = ParseAddressBech32(consts.HRP, "prov1notbech32")
	require.Error(err) //nolint:forbidigo
}

func TestProgramID(t *testing.T) {
	require := require.New(t)
	const declared = "HaPVZv6GAYyEfEF8HYKC8vhnkTAabJ3xdWXtVfAC8JBo"

	program, err := ParseProgramID(declared)
	require.NoError(err)
	require.Equal(consts.ProgramID, program.TypeID())
	require.Equal(declared, ProgramIDString(program))

	_, err = ParseProgramID("3mJr7AoUXx2Wqd")
	require.ErrorIs(err, ErrInvalidSize)

	_, err = ParseProgramID("not-base58-0OIl")
	require.Error(err) //nolint:forbidigo
}
