package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/peilonrayz/underlords/internal/store"
	"github.com/peilonrayz/underlords/internal/suggest"
	"github.com/peilonrayz/underlords/internal/team"
	"github.com/peilonrayz/underlords/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildAlliances []string
	buildHeroes    []string
	buildLimit     int
	buildSuggest   int
	buildJSON      bool
	buildSheet     bool
	buildSave      string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a team from alliances and heroes",
	Long: `Build a team from flags. Alliances are added first, then heroes.
An alliance takes an optional level after '='; without one it is raised as
high as the roster allows. With no picks at all, an interactive picker walks
through alliances instead.

Examples:
  underlords build -a knight=3 -a "demon hunter"
  underlords build -a savage -H "lone druid" --suggest 1
  underlords build -a warrior --json
  underlords build -a mage=2 --save mage-core`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringArrayVarP(&buildAlliances, "alliance", "a", nil, "Alliance to demand, as name[=level] (repeatable)")
	buildCmd.Flags().StringArrayVarP(&buildHeroes, "hero", "H", nil, "Hero to lock in (repeatable)")
	buildCmd.Flags().IntVar(&buildLimit, "limit", 0, "Roster limit (default from config)")
	buildCmd.Flags().IntVar(&buildSuggest, "suggest", 0, "Also print suggestions, exploring this many steps ahead")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "Output the team as JSON")
	buildCmd.Flags().BoolVar(&buildSheet, "sheet", false, "Output the in-game pick sheet")
	buildCmd.Flags().StringVar(&buildSave, "save", "", "Save the team under this name")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}

	limit := buildLimit
	if limit <= 0 {
		limit = cfg.Team.Limit
	}
	if limit <= 0 {
		limit = team.DefaultLimit
	}

	styles := ui.DefaultStyles()

	t := team.New(limit)
	if len(buildAlliances) == 0 && len(buildHeroes) == 0 {
		// No picks given: build the team through the interactive picker
		for {
			a, err := ui.PickAlliance(pool, styles)
			if err != nil {
				return err
			}
			level, err := ui.PickLevel(a)
			if err != nil {
				return err
			}
			nt, err := t.Add(a, level)
			if err != nil {
				fmt.Println(styles.Error.Render(err.Error()))
			} else {
				t = nt
				fmt.Print(ui.TeamShort(t, styles))
			}
			more, err := ui.Confirm("Add another alliance?")
			if err != nil {
				return err
			}
			if !more {
				break
			}
		}
	}
	for _, spec := range buildAlliances {
		name, level, err := parseAllianceSpec(spec)
		if err != nil {
			return err
		}
		a, err := pool.Alliance(name)
		if err != nil {
			return err
		}
		if level > 0 {
			t, err = t.Add(a, level)
		} else {
			t, err = t.AddMax(a)
		}
		if err != nil {
			return err
		}
	}
	for _, name := range buildHeroes {
		h, err := pool.Hero(name)
		if err != nil {
			return err
		}
		if t, err = t.AddHero(h); err != nil {
			return err
		}
	}

	switch {
	case buildJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(store.Snapshot(t, buildSave)); err != nil {
			return err
		}
	case buildSheet:
		fmt.Print(ui.TeamSheet(t, styles))
	default:
		fmt.Print(ui.TeamDetail(t, styles))
	}

	if buildSuggest > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		teams := suggest.Explore(ctx, t, pool, suggest.Options{MaxDepth: buildSuggest})
		if len(teams) == 0 {
			fmt.Println("No extensions fit the current roster.")
		} else {
			fmt.Println(styles.Title.Render("Suggestions"))
			for i, s := range teams {
				fmt.Printf("  %2d. %s %s\n", i+1,
					styles.Subtitle.Render(fmt.Sprintf("%.2f", s.Score())), s.String())
			}
		}
	}

	if buildSave != "" {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Create(context.Background(), store.Snapshot(t, buildSave)); err != nil {
			return fmt.Errorf("failed to save team: %w", err)
		}
		fmt.Printf("Saved team %q.\n", buildSave)
	}

	return nil
}

// parseAllianceSpec splits "name[=level]".
func parseAllianceSpec(spec string) (string, int, error) {
	name, levelStr, found := strings.Cut(spec, "=")
	if !found {
		return name, 0, nil
	}
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 1 {
		return "", 0, fmt.Errorf("invalid alliance level in %q", spec)
	}
	return name, level, nil
}
