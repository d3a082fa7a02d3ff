// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package indexer

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/fxamacker/cbor/v2"

	"github.com/ava-labs/provisionvm/chain"
)

// txPrefix keeps indexed transactions apart from state keys, which all
// start with a prefix below it.
const txPrefix byte = 0x10

var ErrMismatchedResults = errors.New("number of results does not match number of transactions")

// Transaction is the indexed record of an accepted transaction.
type Transaction struct {
	Height    uint64   `cbor:"1,keyasint" json:"height"`
	Timestamp int64    `cbor:"2,keyasint" json:"timestamp"`
	Success   bool     `cbor:"3,keyasint" json:"success"`
	Error     []byte   `cbor:"4,keyasint,omitempty" json:"error"`
	Outputs   [][]byte `cbor:"5,keyasint,omitempty" json:"outputs"`
	Bytes     []byte   `cbor:"6,keyasint" json:"bytes"`
}

// Indexer stores the outcome of every accepted transaction by ID. The VM
// writes the index in the same batch as the state changes of a block, so a
// transaction is indexed if and only if its block was committed.
type Indexer struct {
	db  database.KeyValueReader
	enc cbor.EncMode
}

func New(db database.KeyValueReader) (*Indexer, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return &Indexer{db: db, enc: enc}, nil
}

func TxKey(txID ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen)
	k[0] = txPrefix
	copy(k[1:], txID[:])
	return k
}

// Accept writes the records of [txs] to [w].
func (i *Indexer) Accept(
	w database.KeyValueWriter,
	height uint64,
	timestamp int64,
	txs []*chain.Transaction,
	results []*chain.Result,
) error {
	if len(txs) != len(results) {
		return fmt.Errorf("%w: %d != %d", ErrMismatchedResults, len(txs), len(results))
	}
	for j, tx := range txs {
		result := results[j]
		v, err := i.enc.Marshal(&Transaction{
			Height:    height,
			Timestamp: timestamp,
			Success:   result.Success,
			Error:     result.Error,
			Outputs:   result.Outputs,
			Bytes:     tx.Bytes(),
		})
		if err != nil {
			return err
		}
		if err := w.Put(TxKey(tx.ID()), v); err != nil {
			return err
		}
	}
	return nil
}

// GetTransaction returns the record of [txID]. The second value is false if
// the transaction was never accepted.
func (i *Indexer) GetTransaction(txID ids.ID) (*Transaction, bool, error) {
	v, err := i.db.Get(TxKey(txID))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var tx Transaction
	if err := cbor.Unmarshal(v, &tx); err != nil {
		return nil, false, err
	}
	return &tx, true, nil
}

// HasTransaction reports whether [txID] was accepted.
func (i *Indexer) HasTransaction(txID ids.ID) (bool, error) {
	return i.db.Has(TxKey(txID))
}
