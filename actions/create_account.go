// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
)

const CreateAccountSize = codec.AddressLen*3 + consts.Uint64Len

var _ chain.Action = (*CreateAccount)(nil)

// CreateAccount provisions [To] as a rent-exempt account funded by [From].
//
// Both accounts must sign the transaction. [To] receives exactly the
// rent-exempt minimum for [Space] bytes under the rent schedule in effect
// when the action executes.
type CreateAccount struct {
	// From pays for the new account.
	From codec.Address `json:"from"`

	// To is the account being created. It must not be initialized.
	To codec.Address `json:"to"`

	// Space is the number of zeroed data bytes allocated for [To].
	Space uint64 `json:"space"`

	// Owner is the program assigned to [To]. It must be a program address.
	// If empty, the account is assigned to the calling program.
	Owner codec.Address `json:"owner"`
}

func (*CreateAccount) GetTypeID() uint8 {
	return consts.CreateAccountID
}

func (c *CreateAccount) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.RentKey()):          state.Read,
		string(storage.AccountKey(c.From)): state.Read | state.Write,
		string(storage.AccountKey(c.To)):   state.All,
		string(storage.DataKey(c.To)):      state.All,
	}
}

func (c *CreateAccount) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	signers set.Set[codec.Address],
	_ ids.ID,
) (chain.Output, error) {
	if !signers.Contains(c.From) {
		return nil, fmt.Errorf("%w: funding account %s did not sign", ErrMissingAuthorization, c.From)
	}
	if !signers.Contains(c.To) {
		return nil, fmt.Errorf("%w: target account %s did not sign", ErrMissingAuthorization, c.To)
	}
	if c.From == c.To {
		return nil, ErrFundingIsTarget
	}
	if c.Owner != codec.EmptyAddress && c.Owner.TypeID() != consts.ProgramID {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOwner, c.Owner)
	}
	if maxSize := r.GetMaxAccountDataSize(); c.Space > maxSize {
		return nil, fmt.Errorf("%w: %d > max %d", ErrInvalidDataSize, c.Space, maxSize)
	}

	// The schedule may change between transactions, so it is read on every
	// execution.
	schedule, err := storage.GetRentSchedule(ctx, mu)
	if err != nil {
		return nil, err
	}
	lamports, err := schedule.MinimumBalance(c.Space)
	if err != nil {
		return nil, err
	}
	owner := c.Owner
	if owner == codec.EmptyAddress {
		owner = r.GetProgramID()
	}
	if err := storage.CreateAccount(ctx, mu, c.From, c.To, lamports, c.Space, owner); err != nil {
		return nil, err
	}
	fundingBalance, err := storage.GetBalance(ctx, mu, c.From)
	if err != nil {
		return nil, err
	}
	return &CreateAccountResult{
		Lamports:       lamports,
		Space:          c.Space,
		Owner:          owner,
		FundingBalance: fundingBalance,
	}, nil
}

func (*CreateAccount) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func (*CreateAccount) Size() int {
	return CreateAccountSize
}

func (c *CreateAccount) Marshal(p *codec.Packer) {
	p.PackAddress(c.From)
	p.PackAddress(c.To)
	p.PackUint64(c.Space)
	p.PackAddress(c.Owner)
}

func UnmarshalCreateAccount(p *codec.Packer) (chain.Action, error) {
	var c CreateAccount
	p.UnpackAddress(&c.From)
	p.UnpackAddress(&c.To)
	c.Space = p.UnpackUint64(false)
	p.UnpackOptionalAddress(&c.Owner)
	return &c, p.Err()
}

var _ chain.Output = (*CreateAccountResult)(nil)

type CreateAccountResult struct {
	// Lamports moved into the new account.
	Lamports       uint64        `json:"lamports"`
	Space          uint64        `json:"space"`
	Owner          codec.Address `json:"owner"`
	FundingBalance uint64        `json:"fundingBalance"`
}

func (*CreateAccountResult) GetTypeID() uint8 {
	return consts.CreateAccountID // Common practice is to use the action ID
}

func (c *CreateAccountResult) Marshal(p *codec.Packer) {
	p.PackUint64(c.Lamports)
	p.PackUint64(c.Space)
	p.PackAddress(c.Owner)
	p.PackUint64(c.FundingBalance)
}

func UnmarshalCreateAccountResult(p *codec.Packer) (chain.Output, error) {
	var c CreateAccountResult
	c.Lamports = p.UnpackUint64(false)
	c.Space = p.UnpackUint64(false)
	p.UnpackAddress(&c.Owner)
	c.FundingBalance = p.UnpackUint64(false)
	return &c, p.Err()
}
