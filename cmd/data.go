package cmd

import (
	"fmt"
	"os"

	"github.com/peilonrayz/underlords/internal/data"
	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect the hero dataset",
	Long: `Inspect the dataset the builder runs on.

Examples:
  underlords data path                  # which dataset is in use
  underlords data validate              # sanity-check a custom dataset
  underlords data export heroes.json    # dump the built-in dataset`,
}

var dataPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which dataset is in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Data.Path == "" {
			fmt.Println("built-in")
			return nil
		}
		fmt.Println(cfg.Data.Path)
		return nil
	},
}

var dataValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset for inconsistencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pool, err := loadPool(cfg)
		if err != nil {
			return err
		}
		if err := pool.Validate(); err != nil {
			return err
		}
		fmt.Printf("OK: %d heroes, %d alliances\n", len(pool.Heroes), len(pool.Alliances))
		return nil
	},
}

var dataExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the built-in dataset to a file",
	Long: `Write the built-in dataset to a file, as a starting point for a custom
dataset. Point data.path in the config (or --data) at the edited copy.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := "heroes.json"
		if len(args) > 0 {
			outputPath = args[0]
		}
		if err := os.WriteFile(outputPath, data.EmbeddedDataset(), 0644); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}
		fmt.Printf("Wrote dataset to %s\n", outputPath)
		return nil
	},
}

func init() {
	dataCmd.AddCommand(dataPathCmd)
	dataCmd.AddCommand(dataValidateCmd)
	dataCmd.AddCommand(dataExportCmd)
	rootCmd.AddCommand(dataCmd)
}
