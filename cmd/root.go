package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/lish/core"
	"github.com/josephlewis42/lish/core/config"
	"github.com/josephlewis42/lish/core/logger"
	"github.com/josephlewis42/lish/core/shell"
	"github.com/josephlewis42/lish/core/stream"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string

	// exitCode is the process exit code once the command finishes.
	exitCode int
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to the built-in configuration without an
// event log when none was initialized.
func loadConfigOrDefault() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		configuration = config.Default(cfgPath)
		configuration.AppLog = ""
		return configuration, nil
	}
	return configuration, err
}

// openEventLog opens the configured event log, it returns a logger that
// discards events when the log is disabled.
func openEventLog(configuration *config.Configuration) (*logger.Logger, io.Closer, error) {
	fd, err := configuration.OpenAppLog()
	switch {
	case errors.Is(err, config.ErrAppLogDisabled):
		return logger.NewNopLogger(), io.NopCloser(nil), nil
	case err != nil:
		return nil, nil, err
	}
	return logger.NewJsonLinesLogRecorder(fd), fd, nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type localSession struct {
	configuration *config.Configuration
	// command is run instead of reading lines when set.
	command *string
	// interactive forces prompts even when stdin isn't a terminal.
	interactive bool
}

// run runs a session over the process's own streams and returns its exit
// code.
func (l *localSession) run(cmd *cobra.Command) (int, error) {
	virtOS, err := core.NewSessionOS(l.configuration, "", os.Environ())
	if err != nil {
		return 0, err
	}

	eventLog, closer, err := openEventLog(l.configuration)
	if err != nil {
		return 0, err
	}
	defer closer.Close()

	sh := shell.New(virtOS, shell.Stdio{
		In:  stream.NewReader(cmd.InOrStdin()),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	sh.Prompt = l.configuration.Prompt
	sh.Log = eventLog.NewSession()
	sh.SetColor(l.configuration.ColorEnabled(isTerminal(os.Stdout)))

	if l.command != nil {
		return sh.RunCommand(*l.command), nil
	}

	sh.Interactive = l.interactive || isTerminal(os.Stdin)
	return sh.Run(), nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lish [-c COMMAND]",
	Short: "A line oriented command interpreter",
	Long: `lish reads lines from standard input, or a single line given with -c,
and runs them as pipelines of built-in commands and host programs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfigOrDefault()
		if err != nil {
			return err
		}

		session := &localSession{configuration: configuration}
		if cmd.Flags().Changed("command") {
			session.command = &commandLine
		}

		code, err := session.run(cmd)
		exitCode = code
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(int(uint8(exitCode)))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
}
