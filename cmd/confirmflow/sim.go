package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/simulator"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the flows in a terminal simulator",
	Long: `Draw each step in the terminal. The left and right arrows stand in
for the two buttons and enter presses both.`,
	RunE: runSim,
}

func init() {
	addFixtureFlags(simCmd)
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := confirmflow.LoadConfig(configPath)
	if err != nil {
		return err
	}
	fixture, err := loadFixture()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sim := simulator.New(cfg.Display, tea.WithAltScreen(), tea.WithContext(ctx))
	return finish(sim.Run(ctx, simulator.PlayFixture(fixture)))
}
