// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/keys"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/tstate"
	"github.com/ava-labs/provisionvm/utils"
)

type Transaction struct {
	Base *Base `json:"base"`

	Actions []Action `json:"actions"`

	// Auths[0] is the actor of every action. The remaining auths co-sign the
	// transaction (for example, an account being created).
	Auths []Auth `json:"auths"`

	digest    []byte
	bytes     []byte
	size      int
	id        ids.ID
	stateKeys state.Keys
}

func NewTx(base *Base, actions []Action) *Transaction {
	return &Transaction{
		Base:    base,
		Actions: actions,
	}
}

// CreateActionID derives a unique ID for the action at [idx] of [txID].
func CreateActionID(idx uint8, txID ids.ID) ids.ID {
	return txID.Prefix(uint64(idx))
}

func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.IntLen
	for _, action := range t.Actions {
		size += consts.ByteLen + action.Size()
	}
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	p.PackInt(len(t.Actions))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
	return p.Bytes(), p.Err()
}

// Sign signs the transaction digest with every factory, in order. The first
// factory becomes the actor.
func (t *Transaction) Sign(
	factories []AuthFactory,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	if len(factories) == 0 {
		return nil, ErrNoAuths
	}
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	t.Auths = make([]Auth, 0, len(factories))
	for _, factory := range factories {
		auth, err := factory.Sign(msg)
		if err != nil {
			return nil, err
		}
		t.Auths = append(t.Auths, auth)
	}

	// Ensure transaction is fully initialized and correct by reloading it from
	// bytes
	size := len(msg) + consts.ByteLen + codec.CummSize(t.Auths) + len(t.Auths)*consts.ByteLen
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	p = codec.NewReader(p.Bytes(), consts.MaxInt)
	return UnmarshalTx(p, actionRegistry, authRegistry)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

// Actor is the account every action executes on behalf of.
func (t *Transaction) Actor() codec.Address { return t.Auths[0].Actor() }

// Signers returns every account that authorized the transaction.
func (t *Transaction) Signers() set.Set[codec.Address] {
	signers := set.NewSet[codec.Address](len(t.Auths))
	for _, auth := range t.Auths {
		signers.Add(auth.Actor())
	}
	return signers
}

func (t *Transaction) StateKeys() (state.Keys, error) {
	if t.stateKeys != nil {
		return t.stateKeys, nil
	}
	stateKeys := make(state.Keys)

	// Verify the formatting of state keys passed by the controller
	actor := t.Actor()
	for i, action := range t.Actions {
		actionKeys := action.StateKeys(actor, CreateActionID(uint8(i), t.id))
		for k, v := range actionKeys {
			if !keys.Valid(k) {
				return nil, tstate.ErrInvalidKeyValue
			}
			// [Add] will take the union of key permissions
			stateKeys.Add(k, v)
		}
	}

	// Cache keys if called again
	t.stateKeys = stateKeys
	return stateKeys, nil
}

// Verify checks every auth against the transaction digest.
func (t *Transaction) Verify(ctx context.Context) error {
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	for i, auth := range t.Auths {
		if err := auth.Verify(ctx, msg); err != nil {
			return fmt.Errorf("%w: auth %d: %w", ErrAuthFailed, i, err)
		}
	}
	return nil
}

// PreExecute checks everything about [t] that does not depend on state. A
// transaction that fails [PreExecute] is not included in a block.
func (t *Transaction) PreExecute(r Rules, timestamp int64) error {
	if err := t.Base.Execute(r.GetChainID(), r, timestamp); err != nil {
		return err
	}
	if len(t.Actions) > int(r.GetMaxActionsPerTx()) {
		return ErrTooManyActions
	}
	for i, action := range t.Actions {
		start, end := action.ValidRange(r)
		if start >= 0 && timestamp < start {
			return fmt.Errorf("%w: action type %d at index %d", ErrActionNotActivated, action.GetTypeID(), i)
		}
		if end >= 0 && timestamp > end {
			return fmt.Errorf("%w: action type %d at index %d", ErrActionNotActivated, action.GetTypeID(), i)
		}
	}
	return nil
}

// Execute runs every action against [ts]. If any action fails, all changes
// made by the transaction are reverted and the failure is recorded in the
// returned [Result].
//
// Invariant: [PreExecute] is called just before [Execute]
func (t *Transaction) Execute(
	ctx context.Context,
	r Rules,
	ts *tstate.TStateView,
	timestamp int64,
) (*Result, error) {
	var (
		actor       = t.Actor()
		signers     = t.Signers()
		actionStart = ts.OpIndex()
		outputs     = make([][]byte, 0, len(t.Actions))
	)
	handleRevert := func(rerr error) *Result {
		ts.Rollback(ctx, actionStart)
		return &Result{Success: false, Error: utils.ErrBytes(rerr)}
	}
	for i, action := range t.Actions {
		actionID := CreateActionID(uint8(i), t.id)
		output, err := action.Execute(ctx, r, ts, timestamp, actor, signers, actionID)
		if err != nil {
			return handleRevert(fmt.Errorf("action %d: %w", i, err)), nil
		}
		if output == nil {
			// Enforce object standardization (this is a VM bug and we should fail
			// fast)
			return handleRevert(ErrInvalidObject), nil
		}
		b, err := MarshalOutput(output)
		if err != nil {
			return handleRevert(err), nil
		}
		outputs = append(outputs, b)
	}
	return &Result{Success: true, Outputs: outputs}, nil
}

// MarshalOutput encodes [output] behind its type ID.
func MarshalOutput(output Output) ([]byte, error) {
	p := codec.NewWriter(consts.ByteLen, consts.NetworkSizeLimit)
	p.PackByte(output.GetTypeID())
	output.Marshal(p)
	return p.Bytes(), p.Err()
}

// UnmarshalOutput decodes an output produced by [MarshalOutput].
func UnmarshalOutput(b []byte, outputRegistry OutputRegistry) (Output, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	typeID := p.UnpackByte()
	unmarshalOutput, ok := outputRegistry.LookupIndex(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %d is unknown output type", ErrInvalidObject, typeID)
	}
	output, err := unmarshalOutput(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return output, p.Err()
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}

	t.Base.Marshal(p)
	p.PackInt(len(t.Actions))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
	p.PackByte(uint8(len(t.Auths)))
	for _, auth := range t.Auths {
		p.PackByte(auth.GetTypeID())
		auth.Marshal(p)
	}
	return p.Err()
}

func MarshalTxs(txs []*Transaction) ([]byte, error) {
	if len(txs) == 0 {
		return nil, ErrNoTxs
	}
	size := consts.IntLen + codec.CummSize(txs)
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	p.PackInt(len(txs))
	for _, tx := range txs {
		if err := tx.Marshal(p); err != nil {
			return nil, err
		}
	}
	return p.Bytes(), p.Err()
}

func UnmarshalTxs(
	raw []byte,
	initialCapacity int,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) ([]*Transaction, error) {
	p := codec.NewReader(raw, consts.NetworkSizeLimit)
	txCount := p.UnpackInt(true)
	txs := make([]*Transaction, 0, initialCapacity) // DoS to set size to txCount
	for i := 0; i < txCount; i++ {
		tx, err := UnmarshalTx(p, actionRegistry, authRegistry)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if !p.Empty() {
		// Ensure no leftover bytes
		return nil, ErrInvalidObject
	}
	return txs, p.Err()
}

func UnmarshalTx(
	p *codec.Packer,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	actions, err := unmarshalActions(p, actionRegistry)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal actions", err)
	}
	digest := p.Offset()
	auths, err := unmarshalAuths(p, authRegistry)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auths", err)
	}

	var tx Transaction
	tx.Base = base
	tx.Actions = actions
	tx.Auths = auths
	if err := p.Err(); err != nil {
		return nil, p.Err()
	}
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}

func unmarshalActions(
	p *codec.Packer,
	actionRegistry ActionRegistry,
) ([]Action, error) {
	actionCount := p.UnpackInt(true)
	if err := p.Err(); err != nil {
		return nil, ErrNoActions
	}
	if actionCount > int(consts.MaxUint8) {
		return nil, ErrTooManyActions
	}
	actions := make([]Action, 0, actionCount)
	for i := 0; i < actionCount; i++ {
		actionType := p.UnpackByte()
		unmarshalAction, ok := actionRegistry.LookupIndex(actionType)
		if !ok {
			return nil, fmt.Errorf("%w: %d is unknown action type", ErrInvalidObject, actionType)
		}
		action, err := unmarshalAction(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal action", err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func unmarshalAuths(
	p *codec.Packer,
	authRegistry AuthRegistry,
) ([]Auth, error) {
	authCount := int(p.UnpackByte())
	switch {
	case authCount == 0:
		return nil, ErrNoAuths
	case authCount > consts.MaxSigners:
		return nil, ErrTooManySigners
	}
	auths := make([]Auth, 0, authCount)
	seen := set.NewSet[codec.Address](authCount)
	for i := 0; i < authCount; i++ {
		authType := p.UnpackByte()
		unmarshalAuth, ok := authRegistry.LookupIndex(authType)
		if !ok {
			return nil, fmt.Errorf("%w: %d is unknown auth type", ErrInvalidObject, authType)
		}
		auth, err := unmarshalAuth(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal auth", err)
		}
		actor := auth.Actor()
		if actorType := actor.TypeID(); actorType != authType {
			return nil, fmt.Errorf("%w: actorType (%d) did not match authType (%d)", ErrInvalidActor, actorType, authType)
		}
		if seen.Contains(actor) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSigner, actor)
		}
		seen.Add(actor)
		auths = append(auths, auth)
	}
	return auths, nil
}
