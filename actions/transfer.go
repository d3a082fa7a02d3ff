// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
)

const MaxMemoSize = 256

var _ chain.Action = (*Transfer)(nil)

type Transfer struct {
	// To is the recipient of the [Value].
	To codec.Address `json:"to"`

	// Amount are transferred to [To].
	Value uint64 `json:"value"`

	// Optional message to accompany transaction.
	Memo codec.Bytes `json:"memo"`
}

func (*Transfer) GetTypeID() uint8 {
	return consts.TransferID
}

func (t *Transfer) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AccountKey(actor)): state.Read | state.Write,
		string(storage.AccountKey(t.To)):  state.All,
	}
}

func (t *Transfer) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ set.Set[codec.Address],
	_ ids.ID,
) (chain.Output, error) {
	if t.Value == 0 {
		return nil, ErrOutputValueZero
	}
	if len(t.Memo) > MaxMemoSize {
		return nil, ErrOutputMemoTooLarge
	}
	senderBalance, err := storage.SubBalance(ctx, mu, actor, t.Value)
	if err != nil {
		return nil, err
	}
	receiverBalance, err := storage.AddBalance(ctx, mu, t.To, t.Value)
	if err != nil {
		return nil, err
	}
	if actor == t.To {
		senderBalance = receiverBalance
	}
	return &TransferResult{
		SenderBalance:   senderBalance,
		ReceiverBalance: receiverBalance,
	}, nil
}

func (*Transfer) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func (t *Transfer) Size() int {
	return codec.AddressLen + consts.Uint64Len + codec.BytesLen(t.Memo)
}

func (t *Transfer) Marshal(p *codec.Packer) {
	p.PackAddress(t.To)
	p.PackUint64(t.Value)
	p.PackBytes(t.Memo)
}

func UnmarshalTransfer(p *codec.Packer) (chain.Action, error) {
	var (
		transfer Transfer
		memo     []byte
	)
	p.UnpackAddress(&transfer.To)
	transfer.Value = p.UnpackUint64(true)
	p.UnpackBytes(MaxMemoSize, false, &memo)
	transfer.Memo = memo
	return &transfer, p.Err()
}

var _ chain.Output = (*TransferResult)(nil)

type TransferResult struct {
	SenderBalance   uint64 `json:"senderBalance"`
	ReceiverBalance uint64 `json:"receiverBalance"`
}

func (*TransferResult) GetTypeID() uint8 {
	return consts.TransferID // Common practice is to use the action ID
}

func (t *TransferResult) Marshal(p *codec.Packer) {
	p.PackUint64(t.SenderBalance)
	p.PackUint64(t.ReceiverBalance)
}

func UnmarshalTransferResult(p *codec.Packer) (chain.Output, error) {
	var t TransferResult
	t.SenderBalance = p.UnpackUint64(false)
	t.ReceiverBalance = p.UnpackUint64(false)
	return &t, p.Err()
}
