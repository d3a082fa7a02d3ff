// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/crypto/ed25519"
	"github.com/ava-labs/provisionvm/utils"
)

func TestED25519SignVerify(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := NewED25519Factory(priv)

	msg := []byte("digest")
	auth, err := factory.Sign(msg)
	require.NoError(err)
	require.NoError(auth.Verify(ctx, msg))
	require.ErrorIs(auth.Verify(ctx, []byte("other")), ed25519.ErrInvalidSignature)

	pub := priv.PublicKey()
	require.Equal(factory.Address(), auth.Actor())
	require.Equal(codec.CreateAddress(consts.ED25519ID, utils.ToID(pub[:])), auth.Actor())
	require.Equal(ED25519ID, auth.Actor().TypeID())
}

func TestED25519MarshalUnmarshal(t *testing.T) {
	require := require.New(t)
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	auth, err := NewED25519Factory(priv).Sign([]byte("digest"))
	require.NoError(err)

	p := codec.NewWriter(auth.Size(), consts.NetworkSizeLimit)
	auth.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), ED25519Size)

	parsed, err := UnmarshalED25519(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(auth.(*ED25519).Signer, parsed.(*ED25519).Signer)
	require.Equal(auth.(*ED25519).Signature, parsed.(*ED25519).Signature)
	require.Equal(auth.Actor(), parsed.Actor())

	_, err = UnmarshalED25519(codec.NewReader(p.Bytes()[:10], consts.NetworkSizeLimit))
	require.Error(err) //nolint:forbidigo
}

func TestED25519Batch(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		cores   int
		corrupt int // -1 for none
		wantErr bool
	}{
		{name: "single batch", count: 3, cores: 4, corrupt: -1},
		{name: "many batches", count: 37, cores: 4, corrupt: -1},
		{name: "corrupt signature", count: 37, cores: 4, corrupt: 20, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			bv := (&ED25519AuthEngine{}).GetBatchVerifier(tt.cores, tt.count)

			jobs := []func() error{}
			for i := 0; i < tt.count; i++ {
				priv, err := ed25519.GeneratePrivateKey()
				require.NoError(err)
				msg := []byte{byte(i)}
				auth, err := NewED25519Factory(priv).Sign(msg)
				require.NoError(err)
				if i == tt.corrupt {
					auth.(*ED25519).Signature[0]++
				}
				if job := bv.Add(msg, auth); job != nil {
					jobs = append(jobs, job)
				}
			}
			jobs = append(jobs, bv.Done()...)
			require.NotEmpty(jobs)

			var failed bool
			for _, job := range jobs {
				if err := job(); err != nil {
					require.ErrorIs(err, ed25519.ErrInvalidSignature)
					failed = true
				}
			}
			require.Equal(tt.wantErr, failed)
		})
	}
}
