package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/atlas/pkg/atlas"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the atlas version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "atlas v%s\nmodule: %s\n", atlas.Version, atlas.ModulePath)
	},
}
