package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/device"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/simulator"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Run the flows on the device screen and buttons",
	RunE:  runDevice,
}

func init() {
	addFixtureFlags(deviceCmd)
	rootCmd.AddCommand(deviceCmd)
}

func runDevice(cmd *cobra.Command, args []string) error {
	cfg, err := confirmflow.LoadConfig(configPath)
	if err != nil {
		return err
	}
	fixture, err := loadFixture()
	if err != nil {
		return err
	}

	d, err := device.Open(cfg)
	if err != nil {
		return confirmflow.NewInfrastructureError("open device", err)
	}
	defer d.Close()

	ctx, cancel := signalContext()
	defer cancel()

	return finish(playOnDevice(ctx, cmd, d, fixture))
}

func playOnDevice(ctx context.Context, cmd *cobra.Command, d *device.Device, f *simulator.Fixture) error {
	session := confirmflow.NewSession(d, d)
	logger := confirmflow.GetLogger()

	return simulator.Play(ctx, session, f, func(req simulator.Request, res confirmflow.ConfirmResult) {
		logger.Info("request answered", "scenario", req.Scenario, "flow", res.Flow, "approved", res.Approved)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: approved=%t\n", req.Scenario, res.Approved)
	})
}
