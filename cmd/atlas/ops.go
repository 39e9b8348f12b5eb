package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/atlas/internal/scenario"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operations a scenario step can use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, op := range scenario.Ops() {
			fmt.Fprintln(cmd.OutOrStdout(), op)
		}
	},
}
