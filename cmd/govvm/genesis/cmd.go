// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "genesis",
		Short: "Writes the genesis bytes of a new governance chain",
		RunE:  genesisFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func genesisFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	genesisBytes, err := config.Genesis.Bytes()
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(config.Output, genesisBytes, 0o644); err != nil {
		return err
	}

	chainID := ids.ID(hash.ComputeHash256Array(genesisBytes))
	fmt.Fprintf(c.OutOrStdout(), "wrote %s with chainID %s\n", config.Output, chainID)
	return nil
}
