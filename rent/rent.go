// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rent computes the balance an account must hold to be exempt from
// rent.
package rent

import (
	"fmt"
	"math"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
)

const (
	// AccountStorageOverhead is charged for every account regardless of the
	// size of its data.
	AccountStorageOverhead uint64 = 128

	DefaultLamportsPerByteYear uint64  = 3480
	DefaultExemptionThreshold  float64 = 2.0
	DefaultBurnPercent         uint8   = 50

	// ScheduleSize is the encoded size of a [Schedule].
	ScheduleSize = consts.Uint64Len*2 + consts.ByteLen
)

// Schedule holds the rent parameters of the ledger.
type Schedule struct {
	LamportsPerByteYear uint64  `json:"lamportsPerByteYear"`
	ExemptionThreshold  float64 `json:"exemptionThreshold"`
	BurnPercent         uint8   `json:"burnPercent"`
}

func Default() Schedule {
	return Schedule{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
		BurnPercent:         DefaultBurnPercent,
	}
}

// Verify returns an error if [s] cannot be used to compute balances.
func (s Schedule) Verify() error {
	switch {
	case s.LamportsPerByteYear == 0:
		return fmt.Errorf("%w: lamports per byte-year must be positive", ErrInvalidSchedule)
	case math.IsNaN(s.ExemptionThreshold) || math.IsInf(s.ExemptionThreshold, 0):
		return fmt.Errorf("%w: exemption threshold must be finite", ErrInvalidSchedule)
	case s.ExemptionThreshold < 0:
		return fmt.Errorf("%w: exemption threshold must not be negative", ErrInvalidSchedule)
	case s.BurnPercent > 100:
		return fmt.Errorf("%w: burn percent %d > 100", ErrInvalidSchedule, s.BurnPercent)
	default:
		return nil
	}
}

// MinimumBalance returns the balance an account holding [dataSize] bytes
// of data needs to be rent exempt.
func (s Schedule) MinimumBalance(dataSize uint64) (uint64, error) {
	bytes, err := smath.Add(AccountStorageOverhead, dataSize)
	if err != nil {
		return 0, fmt.Errorf("%w: data size %d", ErrBalanceOverflow, dataSize)
	}
	perYear, err := smath.Mul(bytes, s.LamportsPerByteYear)
	if err != nil {
		return 0, fmt.Errorf("%w: data size %d", ErrBalanceOverflow, dataSize)
	}
	minimum := float64(perYear) * s.ExemptionThreshold
	if minimum >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: data size %d", ErrBalanceOverflow, dataSize)
	}
	return uint64(minimum), nil
}

// IsExempt reports whether [balance] covers the minimum for [dataSize].
func (s Schedule) IsExempt(balance uint64, dataSize uint64) (bool, error) {
	minimum, err := s.MinimumBalance(dataSize)
	if err != nil {
		return false, err
	}
	return balance >= minimum, nil
}

func (Schedule) Size() int {
	return ScheduleSize
}

func (s Schedule) Marshal(p *codec.Packer) {
	p.PackUint64(s.LamportsPerByteYear)
	p.PackUint64(math.Float64bits(s.ExemptionThreshold))
	p.PackByte(s.BurnPercent)
}

func Unmarshal(p *codec.Packer) (Schedule, error) {
	var s Schedule
	s.LamportsPerByteYear = p.UnpackUint64(true)
	s.ExemptionThreshold = math.Float64frombits(p.UnpackUint64(false))
	s.BurnPercent = p.UnpackByte()
	if err := p.Err(); err != nil {
		return Schedule{}, err
	}
	return s, s.Verify()
}

// Bytes encodes [s] on its own.
func (s Schedule) Bytes() []byte {
	p := codec.NewWriter(ScheduleSize, ScheduleSize)
	s.Marshal(p)
	return p.Bytes()
}

// FromBytes decodes a [Schedule] produced by [Schedule.Bytes].
func FromBytes(b []byte) (Schedule, error) {
	if len(b) != ScheduleSize {
		return Schedule{}, fmt.Errorf("%w: size %d != %d", ErrInvalidSchedule, len(b), ScheduleSize)
	}
	return Unmarshal(codec.NewReader(b, ScheduleSize))
}
