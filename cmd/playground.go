package cmd

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephlewis42/lish/core/config"
	"github.com/spf13/cobra"
)

// playgroundCmd runs an interactive session in a scratch directory
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run an interactive session in a temporary directory with event logging.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir, err := os.MkdirTemp("", "playground")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)
		cfg, err := config.Initialize(dir, playgroundLogger)
		if err != nil {
			return err
		}
		cfg.StartDir = dir

		playgroundLogger.Printf("Logging to: file://%s\n", dir)
		playgroundLogger.Printf("See logs with: tail -f %s\n", filepath.Join(dir, cfg.AppLog))
		playgroundLogger.Println(strings.Repeat("=", 80))

		session := &localSession{configuration: cfg, interactive: true}
		exitCode, err = session.run(cmd)
		return err
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}
