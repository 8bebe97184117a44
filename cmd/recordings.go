package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/josephlewis42/lish/core/ttylog"
	"github.com/spf13/cobra"
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Explore recorded SSH sessions.",
}

var recordingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the recorded sessions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		config, err := loadConfig()
		if err != nil {
			return err
		}

		dir := config.RecordingsPath()
		if dir == "" {
			return fmt.Errorf("recordings_dir isn't set in %s", config.Dir())
		}

		files, err := filepath.Glob(filepath.Join(dir, "*."+ttylog.AsciicastFileExt))
		if err != nil {
			return err
		}
		sort.Strings(files)
		for _, name := range files {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(filepath.Base(name), "."+ttylog.AsciicastFileExt))
		}
		return nil
	},
}

var recordingsPlayCmd = &cobra.Command{
	Use:   "play RECORDING",
	Short: "Play a recorded session.",
	Long: `Plays a recorded session back to the current terminal.

RECORDING is either a path to an asciicast file or a session ID from the
recordings directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		maxSleep, err := cmd.Flags().GetDuration("max-sleep")
		if err != nil {
			return err
		}

		name := args[0]
		if _, err := os.Stat(name); os.IsNotExist(err) {
			config, cfgErr := loadConfig()
			if cfgErr != nil {
				return cfgErr
			}
			name = filepath.Join(config.RecordingsPath(), name+"."+ttylog.AsciicastFileExt)
		}

		fd, err := os.Open(name)
		if err != nil {
			return err
		}
		defer fd.Close()

		return ttylog.Replay(
			ttylog.NewAsciicastLogSource(fd),
			ttylog.NewRealTimePlayback(maxSleep, ttylog.NewClientOutput(cmd.OutOrStdout())),
		)
	},
}

func init() {
	rootCmd.AddCommand(recordingsCmd)
	recordingsCmd.AddCommand(recordingsListCmd)
	recordingsCmd.AddCommand(recordingsPlayCmd)

	recordingsPlayCmd.Flags().Duration("max-sleep", 2*time.Second, "longest pause between outputs, 0 plays without pauses")
}
