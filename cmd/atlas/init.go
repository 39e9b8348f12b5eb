package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/atlas/internal/config"
	"github.com/mesh-intelligence/atlas/internal/log"
)

// exampleScenario is written to the scenario directory by init.
const exampleScenario = `name: example
steps:
  - {op: insert_image, as: t1, name: t1.nii.gz}
  - {op: insert_color_map, as: gray, name: gray}
  - {op: associate, owner: t1, child: gray}
  - {op: insert_slide, as: s1, name: "section 001"}
  - {op: insert_slide, as: s2, name: "section 002"}
  - {op: insert_annotation, as: roi, owner: s2, name: roi}
  - {op: set_active, ref: s2}
  - {op: unload, ref: s2}
  - op: expect
    expect:
      active: {slide: s1}
      order: {slide: [s1]}
      loaded: [roi]
      children:
        - {owner: t1, kind: color_map, names: [gray]}
`

// exampleName is the file name of the example scenario.
const exampleName = "example.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration and an example scenario",
	Long: `Create the configuration directory with a default config.yaml and write
an example scenario to the scenario directory. A --scenario-dir given to
init is recorded in config.yaml.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveScenarioDir()
		if err != nil {
			return systemError(fmt.Errorf("resolve scenario dir: %w", err))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return systemError(fmt.Errorf("create scenario dir: %w", err))
		}

		path := filepath.Join(dir, exampleName)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(exampleScenario), 0o644); err != nil {
				return systemError(fmt.Errorf("write example scenario: %w", err))
			}
			log.Info(log.CatCLI, "wrote example scenario", "path", path)
		}

		if flagScenarioDir != "" {
			if err := saveScenarioDir(dir); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config:    %s\n", configDir)
		fmt.Fprintf(out, "scenarios: %s\n", dir)
		fmt.Fprintln(out, "atlas initialized successfully")
		return nil
	},
}

// saveScenarioDir records dir in config.yaml. The file is re-read so that
// flag overrides such as --json are not persisted.
func saveScenarioDir(dir string) error {
	onDisk, err := config.Load(configDir)
	if err != nil {
		return userError(err)
	}
	if onDisk.ScenarioDir == dir {
		return nil
	}
	onDisk.ScenarioDir = dir
	if err := config.Write(configDir, onDisk); err != nil {
		return systemError(fmt.Errorf("save scenario dir: %w", err))
	}
	log.Info(log.CatConfig, "saved scenario dir", "dir", dir)
	return nil
}
