// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"errors"

	"github.com/ava-labs/provisionvm/storage"
)

var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidDataSize      = errors.New("invalid data size")
	ErrFundingIsTarget      = errors.New("funding account is the target account")
	ErrInvalidOwner         = errors.New("owner is not a program")
	ErrOutputValueZero      = errors.New("value is zero")
	ErrOutputMemoTooLarge   = errors.New("memo is too large")
	ErrUnauthorized         = errors.New("unauthorized")

	// Returned by the account-creation primitive.
	ErrInsufficientFunds         = storage.ErrInsufficientFunds
	ErrAccountAlreadyInitialized = storage.ErrAccountAlreadyInitialized
)
