package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"unit-loader/core/config"
	"unit-loader/core/logger"
	"unit-loader/core/unit"
	"unit-loader/feature/units"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadResult is the per-unit outcome printed by the load command.
type loadResult struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
	State   string `json:"state"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load [name...]",
	Short: "Load one or more units and report their outcome",
	Long:  `Fetches and executes the named units concurrently, exactly once each. With --all every entry declared by the manifest is loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return runLoad(cmd.Context(), args, all, jsonOutput)
	},
}

func init() {
	loadCmd.Flags().Bool("all", false, "Load every entry declared by the manifest")
	loadCmd.Flags().Bool("json", false, "Output results in JSON format")
	RootCmd.AddCommand(loadCmd)
}

func runLoad(ctx context.Context, names []string, all, jsonOutput bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	comps, err := buildComponents(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer comps.Close(ctx)

	if all {
		if comps.manifest == nil {
			return errors.New("--all requires LOADER_MANIFEST to be set")
		}
		names = append(names, comps.manifest.Names()...)
	}
	if len(names) == 0 {
		return errors.New("no unit names given")
	}

	svc := units.NewService(comps.loader, comps.manifest, logg)

	start := time.Now()
	loadErr := svc.LoadAll(ctx, names...)
	logg.Info("Load finished", zap.Int("units", len(names)), zap.Duration("duration", time.Since(start)))

	results := make([]loadResult, 0, len(names))
	for _, u := range svc.Units() {
		if u.State == unit.NotRequested {
			continue
		}
		r := loadResult{Name: u.Name, Locator: u.Locator, State: u.State.String()}
		if u.Err != nil {
			r.Kind = u.Err.Kind().String()
			r.Error = u.Err.Cause.Error()
		}
		results = append(results, r)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		printLoadResults(results)
	}

	if loadErr != nil {
		return fmt.Errorf("one or more units failed to load: %w", loadErr)
	}
	return nil
}

func printLoadResults(results []loadResult) {
	const (
		green = "\033[32m"
		red   = "\033[31m"
		reset = "\033[0m"
	)

	fmt.Println("\n--- Unit Load Results ---")
	for _, r := range results {
		color := green
		if r.State == unit.Failed.String() {
			color = red
		}
		fmt.Printf("%-20s %s%-8s%s %s\n", r.Name, color, r.State, reset, r.Locator)
		if r.Error != "" {
			fmt.Printf("  %s: %s\n", r.Kind, r.Error)
		}
	}
	fmt.Println("-------------------------")
}
