package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/pricepulse/internal/logger"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "pricectl",
		Short: "Inspect PricePulse game content and scoring",
		Long: `pricectl lists and validates the price catalog behind the
PricePulse games and scores one-off answers without starting a server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.WARN
			if verbose {
				level = logger.DEBUG
			}
			logger.SetDefault(logger.New(logger.WithLevel(level), logger.WithOutput(cmd.ErrOrStderr())))
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	root.AddCommand(newCatalogCmd(), newScoreCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
