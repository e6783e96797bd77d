package cmd

import (
	"fmt"

	"unit-loader/core/config"
	"unit-loader/core/manifest"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest [path]",
	Short: "Validate a build manifest and list its units",
	Long:  `Parses the HCL build manifest, validates it and prints the declared entries and the shared unit. Without a path LOADER_MANIFEST is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := config.LoadConfig(".")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			path = cfg.Loader.Manifest
		}
		if path == "" {
			return fmt.Errorf("no manifest path given and LOADER_MANIFEST is empty")
		}

		m, err := manifest.LoadFile(afero.NewOsFs(), path)
		if err != nil {
			return err
		}

		fmt.Println("\n--- Build Manifest ---")
		fmt.Printf("File:      %s\n", path)
		fmt.Printf("Filename:  %s\n", m.Output.Filename)
		fmt.Printf("Path:      %s\n", m.Output.Path)
		if shared, ok := m.Shared(); ok {
			fmt.Printf("Shared:    %s (min_chunks %d)\n", shared, m.Common.MinChunks)
		}
		fmt.Println("Entries:")
		for _, name := range m.Names() {
			fmt.Printf("- %s\n", name)
		}
		fmt.Println("----------------------")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(manifestCmd)
}
