// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/units"

	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/keys"
)

// DefaultProgramID is the identity accounts are assigned to when a
// provisioning request does not name an owner.
const DefaultProgramID = "HaPVZv6GAYyEfEF8HYKC8vhnkTAabJ3xdWXtVfAC8JBo"

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	NetworkID uint32 `json:"networkID"`
	ChainID   ids.ID `json:"chainID"`

	ValidityWindow  int64 `json:"validityWindow"` // ms
	MaxActionsPerTx uint8 `json:"maxActionsPerTx"`

	// ProgramID is base58 encoded.
	ProgramID          string `json:"programID"`
	MaxAccountDataSize uint64 `json:"maxAccountDataSize"`
	// RentAuthority is a bech32 address. If empty, the rent schedule can
	// never be updated.
	RentAuthority string `json:"rentAuthority"`

	programID     codec.Address
	rentAuthority codec.Address
}

func NewDefaultRules() *Rules {
	r := &Rules{
		ValidityWindow:     int64(time.Minute / time.Millisecond),
		MaxActionsPerTx:    16,
		ProgramID:          DefaultProgramID,
		MaxAccountDataSize: units.MiB,
	}
	if err := r.Parse(); err != nil {
		panic(err)
	}
	return r
}

// Parse validates [r] and decodes its text-encoded fields. It must be called
// after [r] is modified.
func (r *Rules) Parse() error {
	switch {
	case r.ValidityWindow <= 0:
		return fmt.Errorf("%w: validity window must be positive", ErrInvalidRules)
	case r.ValidityWindow%consts.MillisecondsPerSecond != 0:
		return fmt.Errorf("%w: validity window must be whole seconds", ErrInvalidRules)
	case r.MaxActionsPerTx == 0:
		return fmt.Errorf("%w: max actions per tx must be positive", ErrInvalidRules)
	case r.MaxAccountDataSize > uint64(keys.MaxValueSize):
		return fmt.Errorf("%w: max account data size %d > %d", ErrInvalidRules, r.MaxAccountDataSize, keys.MaxValueSize)
	}
	programID, err := codec.ParseProgramID(r.ProgramID)
	if err != nil {
		return fmt.Errorf("%w: program ID %q: %w", ErrInvalidRules, r.ProgramID, err)
	}
	r.programID = programID
	r.rentAuthority = codec.EmptyAddress
	if len(r.RentAuthority) > 0 {
		authority, err := codec.ParseAddressBech32(consts.HRP, r.RentAuthority)
		if err != nil {
			return fmt.Errorf("%w: rent authority %q: %w", ErrInvalidRules, r.RentAuthority, err)
		}
		r.rentAuthority = authority
	}
	return nil
}

func (r *Rules) GetNetworkID() uint32 {
	return r.NetworkID
}

func (r *Rules) GetChainID() ids.ID {
	return r.ChainID
}

func (r *Rules) GetValidityWindow() int64 {
	return r.ValidityWindow
}

func (r *Rules) GetMaxActionsPerTx() uint8 {
	return r.MaxActionsPerTx
}

func (r *Rules) GetProgramID() codec.Address {
	return r.programID
}

func (r *Rules) GetMaxAccountDataSize() uint64 {
	return r.MaxAccountDataSize
}

func (r *Rules) GetRentAuthority() codec.Address {
	return r.rentAuthority
}
