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
)

const GreetingPrefix = "Greetings from: "

var _ chain.Action = (*Initialize)(nil)

// Initialize greets the caller with the identity of the program. It does
// not touch state.
type Initialize struct{}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (*Initialize) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{}
}

func (*Initialize) Execute(
	_ context.Context,
	r chain.Rules,
	_ state.Mutable,
	_ int64,
	_ codec.Address,
	_ set.Set[codec.Address],
	_ ids.ID,
) (chain.Output, error) {
	return &InitializeResult{
		Greeting: GreetingPrefix + codec.ProgramIDString(r.GetProgramID()),
	}, nil
}

func (*Initialize) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func (*Initialize) Size() int {
	return 0
}

func (*Initialize) Marshal(*codec.Packer) {}

func UnmarshalInitialize(p *codec.Packer) (chain.Action, error) {
	return &Initialize{}, p.Err()
}

var _ chain.Output = (*InitializeResult)(nil)

type InitializeResult struct {
	Greeting string `json:"greeting"`
}

func (*InitializeResult) GetTypeID() uint8 {
	return consts.InitializeID
}

func (i *InitializeResult) Marshal(p *codec.Packer) {
	p.PackString(i.Greeting)
}

func UnmarshalInitializeResult(p *codec.Packer) (chain.Output, error) {
	return &InitializeResult{Greeting: p.UnpackString(true)}, p.Err()
}
