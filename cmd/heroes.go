package cmd

import (
	"fmt"
	"strings"

	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/ui"
	"github.com/spf13/cobra"
)

var (
	heroesTier     int
	heroesAlliance string
	heroesPick     bool
)

var heroesCmd = &cobra.Command{
	Use:   "heroes [name]",
	Short: "List heroes or show one hero's card",
	Long: `List the hero pool, or show a single hero.

Examples:
  underlords heroes                 # full pool
  underlords heroes --tier 3
  underlords heroes --alliance savage
  underlords heroes "anti mage"     # one hero, fuzzy matched
  underlords heroes --pick          # choose interactively`,
	RunE: runHeroes,
}

func init() {
	heroesCmd.Flags().IntVar(&heroesTier, "tier", 0, "Only heroes of this tier")
	heroesCmd.Flags().StringVar(&heroesAlliance, "alliance", "", "Only heroes in this alliance")
	heroesCmd.Flags().BoolVar(&heroesPick, "pick", false, "Pick a hero interactively")
	rootCmd.AddCommand(heroesCmd)
}

func runHeroes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}
	styles := ui.DefaultStyles()

	if heroesPick {
		h, err := ui.PickHero(pool, styles)
		if err != nil {
			return err
		}
		fmt.Print(ui.HeroDetail(h, styles, ui.TermWidth()))
		return nil
	}

	if len(args) > 0 {
		h, err := pool.Hero(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Print(ui.HeroDetail(h, styles, ui.TermWidth()))
		return nil
	}

	heroes := pool.Heroes
	if heroesAlliance != "" {
		a, err := pool.Alliance(heroesAlliance)
		if err != nil {
			return err
		}
		heroes = a.Heroes
	}
	var filtered []*data.Hero
	for _, h := range heroes {
		if heroesTier != 0 && h.Tier != heroesTier {
			continue
		}
		filtered = append(filtered, h)
	}
	if len(filtered) == 0 {
		fmt.Println("No heroes match.")
		return nil
	}
	data.SortHeroes(filtered)

	fmt.Print(ui.HeroTable(filtered, styles))
	return nil
}
