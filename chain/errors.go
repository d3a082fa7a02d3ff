// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing errors
	ErrInvalidObject   = errors.New("invalid object")
	ErrNoTxs           = errors.New("no transactions")
	ErrNoActions       = errors.New("no actions")
	ErrTooManyActions  = errors.New("too many actions")
	ErrNoAuths         = errors.New("no auths")
	ErrTooManySigners  = errors.New("too many signers")
	ErrDuplicateSigner = errors.New("duplicate signer")
	ErrInvalidActor    = errors.New("invalid actor")

	// Pre-execution errors
	ErrMisalignedTime     = errors.New("misaligned time")
	ErrTimestampTooLate   = errors.New("timestamp too late")
	ErrTimestampTooEarly  = errors.New("timestamp too early")
	ErrInvalidChainID     = errors.New("invalid chain ID")
	ErrActionNotActivated = errors.New("action not activated")
	ErrAuthFailed         = errors.New("auth failed")

	// Block errors
	ErrDuplicateTx = errors.New("duplicate transaction")
)
