// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

type Config struct {
	// AuthVerificationCores bounds concurrent signature verification.
	AuthVerificationCores int `json:"authVerificationCores" yaml:"authVerificationCores"`
	// VerifyAuth may only be disabled in tests. Node configs that disable it
	// are rejected when loaded.
	VerifyAuth bool `json:"verifyAuth" yaml:"verifyAuth"`
	// TransactionExecutionCores bounds how many independent transactions of a
	// block execute at once.
	TransactionExecutionCores int `json:"transactionExecutionCores" yaml:"transactionExecutionCores"`
	// MaxBlockTxs bounds the number of transactions submitted at once.
	MaxBlockTxs int `json:"maxBlockTxs" yaml:"maxBlockTxs"`
}

func NewConfig() Config {
	return Config{
		AuthVerificationCores:     1,
		VerifyAuth:                true,
		TransactionExecutionCores: 1,
		MaxBlockTxs:               1_024,
	}
}
