package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephlewis42/lish/core"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve interpreter sessions over SSH.",
	Long: `Serve interpreter sessions over SSH. Each connection gets its own
environment, exec requests run a single line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Stdin.Close()
		cmd.SilenceUsage = true
		log.SetOutput(cmd.ErrOrStderr())
		log.Println("Initializing server...")

		configuration, err := loadConfig()
		if err != nil {
			return err
		}
		if len(configuration.SSH.Users) == 0 {
			log.Println("No users are configured, nobody can log in. Add one with hash-password.")
		}

		log.Println("Starting logger...")
		eventLog, closer, err := openEventLog(configuration)
		if err != nil {
			return err
		}
		defer closer.Close()

		server, err := core.NewServerWithLogger(configuration, eventLog)
		if err != nil {
			return err
		}

		go func() {
			if err := server.ListenAndServe(); err != nil {
				log.Fatal(err)
			}
		}()

		sigs := make(chan os.Signal, 1)

		log.Println("- Starting interrupt handler")
		signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		log.Printf("Got signal %q, terminating...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server shutdown failed: %s", err)
		}
		log.Print("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
