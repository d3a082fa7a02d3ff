// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rent

import "errors"

var (
	ErrInvalidSchedule = errors.New("invalid rent schedule")
	ErrBalanceOverflow = errors.New("minimum balance overflow")
)
