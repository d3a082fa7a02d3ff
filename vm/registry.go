// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/provisionvm/actions"
	"github.com/ava-labs/provisionvm/auth"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
)

var (
	ActionParser *codec.TypeParser[chain.Action]
	AuthParser   *codec.TypeParser[chain.Auth]
	OutputParser *codec.TypeParser[chain.Output]
)

// Setup types
func init() {
	ActionParser = codec.NewTypeParser[chain.Action]()
	AuthParser = codec.NewTypeParser[chain.Auth]()
	OutputParser = codec.NewTypeParser[chain.Output]()

	errs := &wrappers.Errs{}
	errs.Add(
		// When registering new actions, ALWAYS make sure to append at the end.
		ActionParser.Register(&actions.Initialize{}, actions.UnmarshalInitialize),
		ActionParser.Register(&actions.CreateAccount{}, actions.UnmarshalCreateAccount),
		ActionParser.Register(&actions.Transfer{}, actions.UnmarshalTransfer),
		ActionParser.Register(&actions.UpdateRent{}, actions.UnmarshalUpdateRent),

		// When registering new auth, ALWAYS make sure to append at the end.
		AuthParser.Register(&auth.ED25519{}, auth.UnmarshalED25519),

		OutputParser.Register(&actions.InitializeResult{}, actions.UnmarshalInitializeResult),
		OutputParser.Register(&actions.CreateAccountResult{}, actions.UnmarshalCreateAccountResult),
		OutputParser.Register(&actions.TransferResult{}, actions.UnmarshalTransferResult),
		OutputParser.Register(&actions.UpdateRentResult{}, actions.UnmarshalUpdateRentResult),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}
