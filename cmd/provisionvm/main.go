// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "provisionvm" runs a provisionvm node and issues requests against one.
package main

import (
	"os"

	"github.com/ava-labs/provisionvm/cmd/provisionvm/cmd"
	"github.com/ava-labs/provisionvm/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}provisionvm exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
