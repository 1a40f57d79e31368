package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/simulator"
)

var (
	configPath  string
	logPath     string
	logLevel    string
	fixturePath string
	onlyFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "confirmflow",
	Short: "Two-button confirmation flows for a signing device",
	Long: `confirmflow walks the user through the confirmation screens of a
signing device: public keys, messages, wallet policies and transactions.
Requests come from a YAML fixture; "demo" runs every built-in flow once.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		confirmflow.Init(confirmflow.Options{LogPath: logPath, LogLevel: logLevel})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		confirmflow.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "confirmflow.toml", "device configuration file")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "log file (default logs/confirmflow.log)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "application log level (debug, info, warn, error)")
}

// addFixtureFlags registers the flags shared by the commands that play fixtures.
func addFixtureFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", simulator.DefaultFixture, "built-in fixture name or YAML file")
	cmd.Flags().StringVar(&onlyFlag, "only", "", "only play requests for this scenario")
}

func loadFixture() (*simulator.Fixture, error) {
	f, err := simulator.LoadFixture(fixturePath)
	if err != nil {
		return nil, err
	}
	if onlyFlag != "" {
		return f.Only(onlyFlag)
	}
	return f, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// finish turns an abandoned run into a clean exit.
func finish(err error) error {
	if err == nil || confirmflow.IsCancelled(err) || errors.Is(err, context.Canceled) {
		return nil
	}
	return fmt.Errorf("confirmflow: %w", err)
}
