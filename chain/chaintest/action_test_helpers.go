// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/tstate"
)

// ActionTest is a single parameterized test. It calls Execute on the action with the passed parameters
// and checks that all assertions pass.
//
// The action only sees the keys it declares in StateKeys, so touching an
// undeclared key fails the test. Changes are applied to [State] only when
// the action succeeds.
type ActionTest struct {
	Name string

	Action chain.Action

	Rules     chain.Rules
	State     *InMemoryStore
	Timestamp int64
	Actor     codec.Address
	// Signers defaults to the actor alone.
	Signers  set.Set[codec.Address]
	ActionID ids.ID

	ExpectedOutputs chain.Output
	ExpectedErr     error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

// Run executes the [ActionTest] and make sure all assertions pass.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		signers := test.Signers
		if signers == nil {
			signers = set.Of(test.Actor)
		}
		stateKeys := test.Action.StateKeys(test.Actor, test.ActionID)
		ts := tstate.New(len(stateKeys))
		tsv := ts.NewView(stateKeys, test.State.Scoped(stateKeys))

		output, err := test.Action.Execute(ctx, test.Rules, tsv, test.Timestamp, test.Actor, signers, test.ActionID)

		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)

		if err == nil {
			tsv.Commit()
			for k, v := range ts.ChangedKeys() {
				if v.IsNothing() {
					require.NoError(test.State.Remove(ctx, []byte(k)))
					continue
				}
				require.NoError(test.State.Insert(ctx, []byte(k), v.Value()))
			}
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}
