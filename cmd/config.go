package cmd

import (
	"fmt"
	"strings"

	"github.com/peilonrayz/underlords/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if config.Exists() {
			fmt.Printf("Config: %s\n\n", path)
		} else {
			fmt.Printf("Config: %s (not created, using defaults)\n\n", path)
		}

		dataset := cfg.Data.Path
		if dataset == "" {
			dataset = "built-in"
		}
		fmt.Printf("Dataset:      %s\n", dataset)
		fmt.Printf("Jailed:       %s\n", strings.Join(cfg.Data.Jailed, ", "))
		fmt.Printf("Roster limit: %d\n", cfg.Team.Limit)
		fmt.Printf("Store:        enabled=%t max_count=%d\n", cfg.Store.Enabled, cfg.Store.MaxCount)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		path, _ := config.GetConfigPath()
		fmt.Printf("Config saved to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
