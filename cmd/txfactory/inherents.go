package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-txfactory/codec"
	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/inherents"
	"github.com/spacemeshos/go-txfactory/signing"
)

func inherentsCommand(conf *config.Config, configure func(*cobra.Command) error) *cobra.Command {
	var block uint32
	c := &cobra.Command{
		Use:   "inherents",
		Short: "print hex encoded inherent data of a block",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := configure(c); err != nil {
				return err
			}
			data, err := inherents.Build(block, conf.Chain.MinimumPeriod)
			if err != nil {
				return err
			}
			buf, err := codec.Encode(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), hex.EncodeToString(buf))
			return nil
		},
	}
	c.Flags().Uint32Var(&block, "block", 0, "block number")
	return c
}

func accountCommand() *cobra.Command {
	var seed uint32
	c := &cobra.Command{
		Use:   "account",
		Short: "print account id derived from a seed",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), signing.DeriveAccountID(seed))
			return nil
		},
	}
	c.Flags().Uint32Var(&seed, "seed", 0, "account seed")
	return c
}
