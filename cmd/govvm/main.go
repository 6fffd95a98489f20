// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/govchain/cmd/govvm/genesis"
	"github.com/luxfi/govchain/cmd/govvm/run"
	"github.com/luxfi/govchain/cmd/govvm/signvote"
	"github.com/luxfi/govchain/vms/govvm"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:          "govvm",
		Short:        "Governance committee chain",
		Version:      govvm.Version,
		SilenceUsage: true,
	}
	c.AddCommand(
		run.Command(),
		genesis.Command(),
		signvote.Command(),
	)
	return c
}

func main() {
	if err := Command().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		os.Exit(1)
	}
}
