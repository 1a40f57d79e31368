package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
)

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "List the built-in flows and their steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := confirmflow.NewSession(nil, nil)
		for _, f := range session.Flows().All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", f.Name(), describe(f))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flowsCmd)
}

func describe(f *flow.Flow) string {
	steps := make([]string, f.Len())
	for i := range steps {
		step := f.Step(i)
		steps[i] = step.Name()
		if step.Actionable() {
			steps[i] += "*"
		}
	}
	return strings.Join(steps, " > ")
}
