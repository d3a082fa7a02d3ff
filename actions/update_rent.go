// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
)

var _ chain.Action = (*UpdateRent)(nil)

// UpdateRent replaces the rent schedule. Only the rent authority may
// submit it.
type UpdateRent struct {
	Schedule rent.Schedule `json:"schedule"`
}

func (*UpdateRent) GetTypeID() uint8 {
	return consts.UpdateRentID
}

func (*UpdateRent) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.RentKey()): state.Read | state.Write,
	}
}

func (u *UpdateRent) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ set.Set[codec.Address],
	_ ids.ID,
) (chain.Output, error) {
	if authority := r.GetRentAuthority(); actor != authority {
		return nil, fmt.Errorf("%w: %s is not the rent authority", ErrUnauthorized, actor)
	}
	if err := u.Schedule.Verify(); err != nil {
		return nil, err
	}
	previous, err := storage.GetRentSchedule(ctx, mu)
	if err != nil {
		return nil, err
	}
	if err := storage.SetRentSchedule(ctx, mu, u.Schedule); err != nil {
		return nil, err
	}
	return &UpdateRentResult{Previous: previous, Current: u.Schedule}, nil
}

func (*UpdateRent) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func (*UpdateRent) Size() int {
	return rent.ScheduleSize
}

func (u *UpdateRent) Marshal(p *codec.Packer) {
	u.Schedule.Marshal(p)
}

func UnmarshalUpdateRent(p *codec.Packer) (chain.Action, error) {
	s, err := rent.Unmarshal(p)
	if err != nil {
		return nil, err
	}
	return &UpdateRent{Schedule: s}, nil
}

var _ chain.Output = (*UpdateRentResult)(nil)

type UpdateRentResult struct {
	Previous rent.Schedule `json:"previous"`
	Current  rent.Schedule `json:"current"`
}

func (*UpdateRentResult) GetTypeID() uint8 {
	return consts.UpdateRentID
}

func (u *UpdateRentResult) Marshal(p *codec.Packer) {
	u.Previous.Marshal(p)
	u.Current.Marshal(p)
}

func UnmarshalUpdateRentResult(p *codec.Packer) (chain.Output, error) {
	var (
		u   UpdateRentResult
		err error
	)
	if u.Previous, err = rent.Unmarshal(p); err != nil {
		return nil, err
	}
	if u.Current, err = rent.Unmarshal(p); err != nil {
		return nil, err
	}
	return &u, nil
}
