// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/utils"
)

const blockHeaderSize = consts.IDLen*2 + consts.Uint64Len + consts.Int64Len

// lastAcceptedKey sits outside of the state key space (see [storage]).
var lastAcceptedKey = []byte{0x11}

// Block is a batch of transactions committed atomically by [VM.Submit].
type Block struct {
	Parent    ids.ID `json:"parent"`
	Height    uint64 `json:"height"`
	Timestamp int64  `json:"timestamp"`

	Txs     []*chain.Transaction `json:"-"`
	Results []*chain.Result      `json:"results"`

	id ids.ID
}

func newBlock(parent *Block, timestamp int64, txs []*chain.Transaction, results []*chain.Result) *Block {
	b := &Block{
		Parent:    parent.ID(),
		Height:    parent.Height + 1,
		Timestamp: timestamp,
		Txs:       txs,
		Results:   results,
	}
	p := codec.NewWriter(blockHeaderSize+len(txs)*consts.IDLen, consts.MaxInt)
	p.PackID(b.Parent)
	p.PackUint64(b.Height)
	p.PackInt64(b.Timestamp)
	for _, tx := range txs {
		p.PackID(tx.ID())
	}
	b.id = utils.ToID(p.Bytes())
	return b
}

func (b *Block) ID() ids.ID {
	return b.id
}

// header encodes everything needed to restart from [b].
func (b *Block) header() []byte {
	p := codec.NewWriter(blockHeaderSize, blockHeaderSize)
	p.PackID(b.id)
	p.PackID(b.Parent)
	p.PackUint64(b.Height)
	p.PackInt64(b.Timestamp)
	return p.Bytes()
}

func parseHeader(raw []byte) (*Block, error) {
	p := codec.NewReader(raw, blockHeaderSize)
	var b Block
	p.UnpackID(false, &b.id)
	p.UnpackID(false, &b.Parent)
	b.Height = p.UnpackUint64(false)
	b.Timestamp = p.UnpackInt64(false)
	if !p.Empty() {
		return nil, chain.ErrInvalidObject
	}
	return &b, p.Err()
}

func getLastAccepted(db database.KeyValueReader) (*Block, bool, error) {
	raw, err := db.Get(lastAcceptedKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	b, err := parseHeader(raw)
	return b, err == nil, err
}
