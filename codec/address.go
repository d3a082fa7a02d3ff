// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/mr-tron/base58"

	"github.com/ava-labs/provisionvm/consts"
)

const AddressLen = 1 + consts.IDLen

// Address represents the 33 byte address of an account: a one byte type
// prefix followed by a 32 byte identifier.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

// TypeID returns the prefix byte of a.
func (a Address) TypeID() uint8 {
	return a[0]
}

// ID returns the 32 byte identifier of a.
func (a Address) ID() ids.ID {
	var id ids.ID
	copy(id[:], a[1:])
	return id
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return ToHex(a[:])
}

// MarshalText returns the 0x-prefixed hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte("0x" + a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	b, err := LoadHex(string(input), AddressLen)
	if err != nil {
		return err
	}
	copy(a[:], b)
	return nil
}

// StringToAddress parses a hex-encoded address (with or without 0x).
func StringToAddress(s string) (Address, error) {
	var a Address
	return a, a.UnmarshalText([]byte(s))
}

// AddressBech32 returns the bech32 encoding of [a] under [hrp].
func AddressBech32(hrp string, a Address) (string, error) {
	p, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, p)
}

// MustAddressBech32 is like [AddressBech32] but panics on error.
func MustAddressBech32(hrp string, a Address) string {
	addr, err := AddressBech32(hrp, a)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddressBech32 parses a bech32 address and checks it was produced
// under [hrp].
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, p, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, fmt.Errorf("%w: expected %s, got %s", ErrIncorrectHRP, hrp, phrp)
	}
	// Drop the padding bits added by [AddressBech32].
	b, err := bech32.ConvertBits(p, 5, 8, false)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) != AddressLen {
		return EmptyAddress, ErrInsufficientLength
	}
	return Address(b), nil
}

// ProgramAddress returns the address of the program whose 32 byte
// identity is [key] (for example the ed25519 public key of a deployed
// program).
func ProgramAddress(key ids.ID) Address {
	return CreateAddress(consts.ProgramID, key)
}

// ParseProgramID decodes a base58 program identity, the text form used when
// a program declares its own id.
func ParseProgramID(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) != consts.IDLen {
		return EmptyAddress, fmt.Errorf("%w: program id has %d bytes", ErrInvalidSize, len(b))
	}
	return ProgramAddress(ids.ID(b)), nil
}

// ProgramIDString returns the base58 form of a program address.
func ProgramIDString(a Address) string {
	return base58.Encode(a[1:])
}
