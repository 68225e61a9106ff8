package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.fail.Render("error:"), userMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:           "katzefix",
		Short:         "katzefix: maintenance patches for the Katze frontend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .katzefix/logs/katzefix.log")

	cmd.AddCommand(
		importsCmd(),
		urlsCmd(),
		targetsCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
