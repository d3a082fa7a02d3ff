// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

type CustomAllocation struct {
	Address string `json:"address"` // bech32 address
	Balance uint64 `json:"balance"`
}

type Genesis struct {
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
	Rent             rent.Schedule       `json:"rent"`
	Rules            *Rules              `json:"initialRules"`
}

func NewDefaultGenesis(customAllocations []*CustomAllocation) *Genesis {
	return &Genesis{
		CustomAllocation: customAllocations,
		Rent:             rent.Default(),
		Rules:            NewDefaultRules(),
	}
}

// Load parses [genesisBytes] on top of the default genesis. Fields missing
// from [genesisBytes] keep their default value.
func Load(genesisBytes []byte, networkID uint32, chainID ids.ID) (*Genesis, error) {
	g := NewDefaultGenesis(nil)
	if err := json.Unmarshal(genesisBytes, g); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
	}
	if g.Rules == nil {
		g.Rules = NewDefaultRules()
	}
	g.Rules.NetworkID = networkID
	g.Rules.ChainID = chainID
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// Verify checks [g] is usable and decodes the rules.
func (g *Genesis) Verify() error {
	if err := g.Rent.Verify(); err != nil {
		return err
	}
	if g.Rules == nil {
		return fmt.Errorf("%w: missing rules", ErrInvalidGenesis)
	}
	if err := g.Rules.Parse(); err != nil {
		return err
	}
	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		if _, err := codec.ParseAddressBech32(consts.HRP, alloc.Address); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidGenesis, alloc.Address, err)
		}
		var err error
		supply, err = safemath.Add(supply, alloc.Balance)
		if err != nil {
			return fmt.Errorf("%w: supply overflow", ErrInvalidGenesis)
		}
	}
	return nil
}

// InitializeState writes the rent sysvar and the genesis allocations.
func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	if err := storage.SetRentSchedule(ctx, mu, g.Rent); err != nil {
		return err
	}
	for _, alloc := range g.CustomAllocation {
		addr, err := codec.ParseAddressBech32(consts.HRP, alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		if _, err := storage.AddBalance(ctx, mu, addr, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}
