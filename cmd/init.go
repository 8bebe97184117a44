package cmd

import (
	"log"

	"github.com/josephlewis42/lish/core/config"
	"github.com/spf13/cobra"
)

// initCmd intializes the configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration in the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		cfg, err := config.Initialize(cfgPath, logger)
		if err != nil {
			return err
		}

		logger.Printf("Configuration ready in %s", cfg.Dir())
		logger.Printf("Add SSH users with: lish hash-password")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
