// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	avatrace "github.com/ava-labs/avalanchego/trace"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		noop   bool
	}{
		{
			name:   "disabled",
			config: &Config{AppName: "provisionvm"},
			noop:   true,
		},
		{
			name: "enabled",
			config: &Config{
				Enabled:         true,
				TraceSampleRate: 1,
				Endpoint:        "http://127.0.0.1:1/api/v2/spans",
				AppName:         "provisionvm",
				Agent:           "test",
				Version:         "v0.0.1",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			tracer, err := New(tt.config)
			require.NoError(err)
			if tt.noop {
				require.Equal(avatrace.Noop, tracer)
			}

			_, span := tracer.Start(context.Background(), "TestNew")
			span.End()

			// The collector is unreachable, so Close may report an export error.
			_ = tracer.Close()
		})
	}
}
