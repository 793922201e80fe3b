package cmd

import (
	"fmt"
	"strings"

	"github.com/peilonrayz/underlords/internal/ui"
	"github.com/spf13/cobra"
)

var alliancesPick bool

var alliancesCmd = &cobra.Command{
	Use:   "alliances [name]",
	Short: "List alliances or show one alliance's card",
	Long: `List all alliances with their size thresholds and members, or show a
single alliance with its bonus effect.

Examples:
  underlords alliances
  underlords alliances knight
  underlords alliances --pick`,
	RunE: runAlliances,
}

func init() {
	alliancesCmd.Flags().BoolVar(&alliancesPick, "pick", false, "Pick an alliance interactively")
	rootCmd.AddCommand(alliancesCmd)
}

func runAlliances(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}
	styles := ui.DefaultStyles()

	if alliancesPick {
		a, err := ui.PickAlliance(pool, styles)
		if err != nil {
			return err
		}
		fmt.Print(ui.AllianceDetail(a, styles, ui.TermWidth()))
		return nil
	}

	if len(args) > 0 {
		a, err := pool.Alliance(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Print(ui.AllianceDetail(a, styles, ui.TermWidth()))
		return nil
	}

	fmt.Print(ui.AllianceTable(pool.Alliances, styles))
	return nil
}
