// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/keys"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// State
// 0x0/ (height)
// 0x1/ (rent sysvar)
// 0x2/ (accounts)
//   -> [address] => balance|owner|space
// 0x3/ (account data)
//   -> [address] => data

const (
	heightPrefix byte = iota
	rentPrefix
	accountPrefix
	dataPrefix
)

const (
	HeightChunks  uint16 = 1
	RentChunks    uint16 = 1
	AccountChunks uint16 = 1

	// DataChunks lets an account hold any data size up to [keys.MaxValueSize].
	DataChunks = consts.MaxUint16

	AccountSize = consts.Uint64Len + codec.AddressLen + consts.Uint64Len
)

var (
	heightKey = keys.EncodeChunks([]byte{heightPrefix}, HeightChunks)
	rentKey   = keys.EncodeChunks([]byte{rentPrefix}, RentChunks)
)

func HeightKey() []byte {
	return heightKey
}

func RentKey() []byte {
	return rentKey
}

// [accountPrefix] + [address]
func AccountKey(addr codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, accountPrefix)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, AccountChunks)
}

// [dataPrefix] + [address]
func DataKey(addr codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, dataPrefix)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, DataChunks)
}

// Account is the record the ledger keeps for every address.
type Account struct {
	Balance uint64 `json:"balance"`
	// Owner is [codec.EmptyAddress] until a program is assigned.
	Owner codec.Address `json:"owner"`
	Space uint64        `json:"space"`
}

// Initialized reports whether the account has been funded, assigned or sized.
func (a Account) Initialized() bool {
	return a.Balance > 0 || a.Owner != codec.EmptyAddress || a.Space > 0
}

func (a Account) Bytes() []byte {
	p := codec.NewWriter(AccountSize, AccountSize)
	p.PackUint64(a.Balance)
	p.PackAddress(a.Owner)
	p.PackUint64(a.Space)
	return p.Bytes()
}

func ParseAccount(b []byte) (Account, error) {
	if len(b) != AccountSize {
		return Account{}, fmt.Errorf("%w: size %d != %d", ErrInvalidAccount, len(b), AccountSize)
	}
	var a Account
	p := codec.NewReader(b, AccountSize)
	a.Balance = p.UnpackUint64(false)
	p.UnpackOptionalAddress(&a.Owner)
	a.Space = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrInvalidAccount, err)
	}
	return a, nil
}

// GetAccount returns the record of [addr]. Accounts that were never
// initialized are returned as the zero [Account].
func GetAccount(ctx context.Context, im state.Immutable, addr codec.Address) (Account, error) {
	v, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return Account{}, nil
	}
	if err != nil {
		return Account{}, err
	}
	return ParseAccount(v)
}

// SetAccount writes [acct] for [addr]. If there is nothing left to record,
// the record is deleted instead.
func SetAccount(ctx context.Context, mu state.Mutable, addr codec.Address, acct Account) error {
	k := AccountKey(addr)
	if !acct.Initialized() {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, acct.Bytes())
}

// GetBalance returns the balance of [addr] (0 if it does not exist).
func GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	acct, err := GetAccount(ctx, im, addr)
	return acct.Balance, err
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(acct.Balance, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%v, amount=%d)",
			ErrBalanceOverflow,
			acct.Balance,
			addr,
			amount,
		)
	}
	acct.Balance = nbal
	return nbal, SetAccount(ctx, mu, addr, acct)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) (uint64, error) {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(acct.Balance, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, addr=%v, amount=%d)",
			ErrInsufficientFunds,
			acct.Balance,
			addr,
			amount,
		)
	}
	// If there is no balance left, the record is removed unless the account
	// is still owned or sized.
	acct.Balance = nbal
	return nbal, SetAccount(ctx, mu, addr, acct)
}

// GetAccountData returns the data held by [addr]. Accounts without data
// return an empty slice.
func GetAccountData(ctx context.Context, im state.Immutable, addr codec.Address) ([]byte, error) {
	v, err := im.GetValue(ctx, DataKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return []byte{}, nil
	}
	return v, err
}

// CreateAccount is the system account-creation primitive. It moves
// [lamports] from [from] to [to], allocates [space] zeroed bytes of data for
// [to] and assigns it to [owner].
//
// [to] must not be initialized. No changes are made when an error is
// returned unless the error comes from [mu] itself.
func CreateAccount(
	ctx context.Context,
	mu state.Mutable,
	from codec.Address,
	to codec.Address,
	lamports uint64,
	space uint64,
	owner codec.Address,
) error {
	if space > uint64(keys.MaxValueSize) {
		return fmt.Errorf("%w: %d > %d", ErrDataTooLarge, space, keys.MaxValueSize)
	}
	target, err := GetAccount(ctx, mu, to)
	if err != nil {
		return err
	}
	if target.Initialized() {
		return fmt.Errorf("%w: %s", ErrAccountAlreadyInitialized, to)
	}
	funding, err := GetAccount(ctx, mu, from)
	if err != nil {
		return err
	}
	if funding.Balance < lamports {
		return fmt.Errorf(
			"%w: need %d lamports, %s has %d",
			ErrInsufficientFunds,
			lamports,
			from,
			funding.Balance,
		)
	}
	funding.Balance -= lamports
	if err := SetAccount(ctx, mu, from, funding); err != nil {
		return err
	}
	target = Account{
		Balance: lamports,
		Owner:   owner,
		Space:   space,
	}
	if err := SetAccount(ctx, mu, to, target); err != nil {
		return err
	}
	if space == 0 {
		return nil
	}
	return mu.Insert(ctx, DataKey(to), make([]byte, space))
}

// GetRentSchedule reads the rent sysvar.
func GetRentSchedule(ctx context.Context, im state.Immutable) (rent.Schedule, error) {
	v, err := im.GetValue(ctx, RentKey())
	if errors.Is(err, database.ErrNotFound) {
		return rent.Schedule{}, ErrRentUnavailable
	}
	if err != nil {
		return rent.Schedule{}, err
	}
	return rent.FromBytes(v)
}

func SetRentSchedule(ctx context.Context, mu state.Mutable, s rent.Schedule) error {
	if err := s.Verify(); err != nil {
		return err
	}
	return mu.Insert(ctx, RentKey(), s.Bytes())
}

// GetHeight returns the height of the last accepted block (0 before the
// first block).
func GetHeight(ctx context.Context, im state.Immutable) (uint64, error) {
	v, err := im.GetValue(ctx, HeightKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return database.ParseUInt64(v)
}

func SetHeight(ctx context.Context, mu state.Mutable, height uint64) error {
	return mu.Insert(ctx, HeightKey(), database.PackUInt64(height))
}
