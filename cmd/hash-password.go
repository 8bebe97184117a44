package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/josephlewis42/lish/core/config"
	"github.com/spf13/cobra"
)

var hashUsername string

// hashPasswordCmd creates entries for the ssh.users configuration
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [PASSWORD]",
	Short: "Hash a password for the ssh.users configuration.",
	Long: `Hash a password for the ssh.users configuration. The password is read
from the first line of standard input when it isn't an argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("couldn't read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		hash, err := config.HashPassword(password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "- username: %q\n  password_hash: %q\n", hashUsername, hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
	hashPasswordCmd.Flags().StringVarP(&hashUsername, "username", "u", "user", "username of the entry")
}
