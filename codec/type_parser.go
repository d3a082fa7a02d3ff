// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every object that is encoded behind a one byte
// type prefix (actions, auths, outputs).
type Typed interface {
	GetTypeID() uint8
}

type decoder[T Typed] func(*Packer) (T, error)

// TypeParser maps type IDs to decoders.
type TypeParser[T Typed] struct {
	decoders map[uint8]decoder[T]
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		decoders: map[uint8]decoder[T]{},
	}
}

// Register makes [f] the decoder of objects with the type ID of [instance].
// Registering the same type ID twice returns [ErrDuplicateItem].
func (p *TypeParser[T]) Register(instance T, f func(*Packer) (T, error)) error {
	typeID := instance.GetTypeID()
	if _, ok := p.decoders[typeID]; ok {
		return ErrDuplicateItem
	}
	p.decoders[typeID] = f
	return nil
}

// LookupIndex returns the decoder registered for [typeID].
func (p *TypeParser[T]) LookupIndex(typeID uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.decoders[typeID]
	return f, ok
}

// Len returns the number of registered types.
func (p *TypeParser[T]) Len() int {
	return len(p.decoders)
}
