package cmd

import (
	"github.com/peilonrayz/underlords/internal/tui/builder"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive team builder",
	Long: `Start the interactive team builder.

This is also what running underlords with no arguments does. Type names to
add heroes or alliances, /help for the command list.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return builder.Run(pool, cfg, st)
}
