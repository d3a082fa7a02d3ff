// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/state"
)

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_rules.go . Rules

// Rules are the chain parameters every action and transaction is executed
// against.
type Rules interface {
	// Should almost always be constant (unless there is a fork of
	// a live network)
	GetNetworkID() uint32
	GetChainID() ids.ID

	GetValidityWindow() int64 // in milliseconds
	GetMaxActionsPerTx() uint8

	// GetProgramID is the identity of the calling program. Accounts created
	// without an explicit owner are assigned to it.
	GetProgramID() codec.Address
	GetMaxAccountDataSize() uint64
	GetRentAuthority() codec.Address
}

type Action interface {
	codec.Typed

	// ValidRange is the timestamp range (in ms) that this [Action] is considered valid.
	//
	// -1 means no start/end
	ValidRange(Rules) (start int64, end int64)

	// StateKeys is a full enumeration of all database keys that could be touched during execution
	// of an [Action]. This is used to prefetch state and will be used to parallelize execution (making
	// an execution tree is trivial).
	//
	// All keys specified must be suffixed with the number of chunks that could ever be read from that
	// key (formatted as a big-endian uint16). This is used to automatically calculate storage usage.
	//
	// If any key is removed and then re-created, this will count as a creation instead of a modification.
	StateKeys(actor codec.Address, actionID ids.ID) state.Keys

	// Execute actually runs the [Action]. Any state changes that the [Action] performs should
	// be done here.
	//
	// If any keys are touched during [Execute] that are not specified in [StateKeys], the transaction
	// will revert and the error will be recorded in the result.
	//
	// [signers] holds every account that authorized the transaction; [actor]
	// is always a member.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		signers set.Set[codec.Address],
		actionID ids.ID,
	) (Output, error)

	Size() int
	Marshal(p *codec.Packer)
}

// Output is the typed result of a successful [Action].
type Output interface {
	codec.Typed

	Marshal(p *codec.Packer)
}

type Auth interface {
	codec.Typed

	// Verify checks the signature over [msg].
	//
	// Verify is not part of execution and may be called concurrently.
	Verify(ctx context.Context, msg []byte) error

	// Actor is the account that authorized the transaction.
	Actor() codec.Address

	Size() int
	Marshal(p *codec.Packer)
}

type AuthFactory interface {
	// Sign is used by helpers, auth object should store internally to be ready for marshaling
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}

// AuthBatchVerifier accumulates auths of one type and hands back jobs that
// verify them in groups.
type AuthBatchVerifier interface {
	Add(msg []byte, auth Auth) func() error
	Done() []func() error
}

// AuthEngine is registered per auth type to enable batch verification.
type AuthEngine interface {
	GetBatchVerifier(cores int, count int) AuthBatchVerifier
}

type (
	ActionRegistry = *codec.TypeParser[Action]
	AuthRegistry   = *codec.TypeParser[Auth]
	OutputRegistry = *codec.TypeParser[Output]
)
