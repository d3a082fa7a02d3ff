// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/provisionvm/consts"

type SizeType interface {
	Size() int
}

func BytesLen(msg []byte) int {
	return consts.IntLen + len(msg)
}

func StringLen(msg string) int {
	return consts.IntLen + len(msg)
}

// CummSize returns the sum of the sizes of [arr].
func CummSize[T SizeType](arr []T) int {
	size := 0
	for _, item := range arr {
		size += item.Size()
	}
	return size
}
