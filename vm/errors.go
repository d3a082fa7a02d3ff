// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrNoValidTxs    = errors.New("no valid transactions")
	ErrTooManyTxs    = errors.New("too many transactions")
	ErrDuplicateTx   = errors.New("duplicate transaction")
	ErrInvalidConfig = errors.New("invalid config")
	ErrClosed        = errors.New("vm closed")
)
