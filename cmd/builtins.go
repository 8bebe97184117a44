package cmd

import (
	"fmt"

	"github.com/josephlewis42/lish/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the built-in commands
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the interpreter.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range shell.Builtins() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "NAME=VALUE")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
