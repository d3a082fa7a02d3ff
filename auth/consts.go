// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/consts"
)

// Note: Registry will error during initialization if a duplicate ID is assigned. We explicitly assign IDs to avoid accidental remapping.
const (
	// Auth TypeIDs
	ED25519ID = consts.ED25519ID

	ED25519Key = "ed25519"
)

// Engines returns the batch verification engines of every auth type that
// supports them.
func Engines() map[uint8]chain.AuthEngine {
	return map[uint8]chain.AuthEngine{
		ED25519ID: &ED25519AuthEngine{},
	}
}
