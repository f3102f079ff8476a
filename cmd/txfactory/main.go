// Package main contains the txfactory executable.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-txfactory/cmd"
	"github.com/spacemeshos/go-txfactory/config"
)

// Logger names.
const (
	AppLogger       = "app"
	FactoryLogger   = "factory"
	GeneratorLogger = "generator"
	StoreLogger     = "store"
	MetricsLogger   = "metrics"
)

func main() {
	if err := newRootCommand(os.Args[1:]).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCommand returns the txfactory command. args are parsed again
// after the config file and preset are applied.
func newRootCommand(args []string) *cobra.Command {
	conf := config.DefaultConfig()
	root := &cobra.Command{
		Use:          "txfactory",
		Short:        "produce signed extrinsics for load testing",
		Version:      cmd.Version,
		SilenceUsage: true,
	}
	cmd.AddFlags(root.PersistentFlags(), &conf)
	configure := func(c *cobra.Command) error {
		return cmd.Configure(c, args, &conf)
	}
	root.AddCommand(
		generateCommand(&conf, configure),
		inherentsCommand(&conf, configure),
		accountCommand(),
		verifyCommand(&conf, configure),
	)
	root.SetArgs(args)
	return root
}
