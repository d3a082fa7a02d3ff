// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
)

type Result struct {
	Success bool   `json:"success"`
	Error   []byte `json:"error"`

	// Outputs holds one typed output per action (see [MarshalOutput]). It is
	// empty when the transaction failed.
	Outputs [][]byte `json:"outputs"`
}

func (r *Result) Size() int {
	outputSize := consts.ByteLen // actions
	for _, output := range r.Outputs {
		outputSize += codec.BytesLen(output)
	}
	return consts.BoolLen + codec.BytesLen(r.Error) + outputSize
}

func (r *Result) Marshal(p *codec.Packer) error {
	p.PackBool(r.Success)
	p.PackBytes(r.Error)
	p.PackByte(uint8(len(r.Outputs)))
	for _, output := range r.Outputs {
		p.PackBytes(output)
	}
	return p.Err()
}

func MarshalResults(src []*Result) ([]byte, error) {
	size := consts.IntLen + codec.CummSize(src)
	p := codec.NewWriter(size, consts.MaxInt) // could be much larger than [NetworkSizeLimit]
	p.PackInt(len(src))
	for _, result := range src {
		if err := result.Marshal(p); err != nil {
			return nil, err
		}
	}
	return p.Bytes(), p.Err()
}

func UnmarshalResult(p *codec.Packer) (*Result, error) {
	result := &Result{
		Success: p.UnpackBool(),
	}
	p.UnpackBytes(consts.MaxInt, false, &result.Error)
	numOutputs := p.UnpackByte()
	outputs := make([][]byte, 0, numOutputs)
	for i := uint8(0); i < numOutputs; i++ {
		var output []byte
		p.UnpackBytes(consts.MaxInt, true, &output)
		outputs = append(outputs, output)
	}
	result.Outputs = outputs
	return result, p.Err()
}

func UnmarshalResults(src []byte) ([]*Result, error) {
	p := codec.NewReader(src, consts.MaxInt) // could be much larger than [NetworkSizeLimit]
	items := p.UnpackInt(false)
	results := make([]*Result, 0, items)
	for i := 0; i < items; i++ {
		result, err := UnmarshalResult(p)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return results, p.Err()
}
