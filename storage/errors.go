// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrAccountAlreadyInitialized = errors.New("account already initialized")
	ErrBalanceOverflow           = errors.New("balance overflow")
	ErrInvalidAccount            = errors.New("invalid account")
	ErrDataTooLarge              = errors.New("account data too large")
	ErrRentUnavailable           = errors.New("rent schedule unavailable")
)
