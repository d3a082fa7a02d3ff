// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Action TypeIDs
	InitializeID    uint8 = 0
	CreateAccountID uint8 = 1
	TransferID      uint8 = 2
	UpdateRentID    uint8 = 3

	// Auth TypeIDs
	ED25519ID uint8 = 0

	// ProgramID prefixes addresses that identify programs rather than
	// key holders. Programs never sign.
	ProgramID uint8 = 0xfe
)
