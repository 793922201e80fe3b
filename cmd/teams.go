package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peilonrayz/underlords/internal/store"
	"github.com/peilonrayz/underlords/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Manage saved teams",
	Long: `List, search, show, delete, and export saved teams.

Examples:
  underlords teams                        # List recent teams
  underlords teams search "knight"
  underlords teams show mage-core
  underlords teams delete mage-core
  underlords teams export mage-core [path.yaml]`,
	RunE: runTeamsList, // Default to list
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams",
	RunE:  runTeamsList,
}

var teamsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search team names and notes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTeamsSearch,
}

var teamsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a saved team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsShow,
}

var teamsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsDelete,
}

var teamsExportCmd = &cobra.Command{
	Use:   "export <name> [path]",
	Short: "Export a saved team as YAML",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTeamsExport,
}

var teamsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all teams (requires confirmation)",
	Long: `Delete the teams database entirely. This cannot be undone.

You must type 'yes' to confirm.`,
	RunE: runTeamsReset,
}

// Flags
var (
	teamsLimit int
	teamsJSON  bool
)

func init() {
	teamsListCmd.Flags().IntVar(&teamsLimit, "limit", 20, "Maximum number of teams to list")

	teamsShowCmd.Flags().BoolVar(&teamsJSON, "json", false, "Output as JSON")

	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsSearchCmd)
	teamsCmd.AddCommand(teamsShowCmd)
	teamsCmd.AddCommand(teamsDeleteCmd)
	teamsCmd.AddCommand(teamsExportCmd)
	teamsCmd.AddCommand(teamsResetCmd)

	rootCmd.AddCommand(teamsCmd)
}

func getTeamStore() (store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if !cfg.Store.Enabled {
		return nil, fmt.Errorf("team storage is disabled in config")
	}

	return openStore(cfg)
}

// findTeam looks a team up by name, falling back to ID.
func findTeam(ctx context.Context, st store.Store, name string) (*store.Team, error) {
	t, err := st.GetByName(ctx, name)
	if err != nil || t != nil {
		return t, err
	}
	return st.Get(ctx, name)
}

func runTeamsList(cmd *cobra.Command, args []string) error {
	st, err := getTeamStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	summaries, err := st.List(ctx, store.ListOptions{Limit: teamsLimit})
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No teams found.")
		return nil
	}

	fmt.Printf("%-24s %-8s %-8s %s\n", "Name", "Heroes", "Score", "Updated")
	fmt.Println(strings.Repeat("-", 56))

	for _, s := range summaries {
		name := s.Name
		if name == "" {
			name = store.ShortID(s.ID)
		}
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Printf("%-24s %-8d %-8.2f %s\n", name, s.HeroCount, s.Score, formatRelativeTime(s.UpdatedAt))
	}

	return nil
}

func runTeamsSearch(cmd *cobra.Command, args []string) error {
	st, err := getTeamStore()
	if err != nil {
		return err
	}
	defer st.Close()

	query := strings.Join(args, " ")
	ctx := context.Background()
	results, err := st.Search(ctx, query, 20)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results found for '%s'\n", query)
		return nil
	}

	fmt.Printf("Found %d matches for '%s':\n\n", len(results), query)
	for _, r := range results {
		name := r.Name
		if name == "" {
			name = store.ShortID(r.ID)
		}
		fmt.Printf("%s (%s)\n", name, formatRelativeTime(r.UpdatedAt))
		fmt.Printf("  %s\n\n", r.Snippet)
	}

	return nil
}

func runTeamsShow(cmd *cobra.Command, args []string) error {
	st, err := getTeamStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	saved, err := findTeam(ctx, st, args[0])
	if err != nil {
		return fmt.Errorf("failed to get team: %w", err)
	}
	if saved == nil {
		return fmt.Errorf("team '%s' not found", args[0])
	}

	if teamsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(saved)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Team: %s\n", saved.Name)
	fmt.Printf("Created: %s\n", saved.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated: %s\n", saved.UpdatedAt.Format(time.RFC3339))
	if saved.Notes != "" {
		fmt.Printf("Notes: %s\n", saved.Notes)
	}
	fmt.Println()

	t, err := store.Rebuild(saved, pool, 0)
	if err != nil {
		// Dataset may have changed since the save; fall back to the raw picks
		fmt.Printf("Team no longer fits the current dataset (%v), raw picks:\n", err)
		for _, p := range saved.Picks {
			switch p.Kind {
			case store.PickOpen:
				fmt.Printf("  %s %s %d\n", p.Kind, p.Alliance, p.Level)
			default:
				fmt.Printf("  %s %s\n", p.Kind, p.Hero)
			}
		}
		return nil
	}
	fmt.Print(ui.TeamDetail(t, ui.DefaultStyles()))
	return nil
}

func runTeamsDelete(cmd *cobra.Command, args []string) error {
	st, err := getTeamStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	saved, err := findTeam(ctx, st, args[0])
	if err != nil {
		return fmt.Errorf("failed to get team: %w", err)
	}
	if saved == nil {
		return fmt.Errorf("team '%s' not found", args[0])
	}
	if err := st.Delete(ctx, saved.ID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	fmt.Printf("Deleted team: %s\n", args[0])
	return nil
}

func runTeamsExport(cmd *cobra.Command, args []string) error {
	st, err := getTeamStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	saved, err := findTeam(ctx, st, args[0])
	if err != nil {
		return fmt.Errorf("failed to get team: %w", err)
	}
	if saved == nil {
		return fmt.Errorf("team '%s' not found", args[0])
	}

	// Determine output path
	var outputPath string
	if len(args) > 1 {
		outputPath = args[1]
	} else {
		name := saved.Name
		if name == "" {
			name = store.ShortID(saved.ID)
		}
		outputPath = fmt.Sprintf("%s.yaml", name)
	}

	out, err := yaml.Marshal(saved)
	if err != nil {
		return fmt.Errorf("failed to encode team: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Exported %s to %s\n", saved.Name, outputPath)
	return nil
}

// formatRelativeTime returns a human-readable relative time string
func formatRelativeTime(t time.Time) string {
	dur := time.Since(t)
	switch {
	case dur < time.Minute:
		return "just now"
	case dur < time.Hour:
		return fmt.Sprintf("%dm ago", int(dur.Minutes()))
	case dur < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(dur.Hours()))
	case dur < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(dur.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func runTeamsReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath := cfg.Store.Path
	if dbPath == "" {
		dbPath, err = store.GetDBPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
	}

	// Check if database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No teams database found.")
		return nil
	}

	// Require confirmation
	fmt.Printf("This will delete ALL saved teams at:\n  %s\n\n", dbPath)
	fmt.Print("Type 'yes' to confirm: ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if response != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	// Delete the database file and WAL files
	filesToDelete := []string{
		dbPath,
		dbPath + "-wal",
		dbPath + "-shm",
	}

	for _, f := range filesToDelete {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", f, err)
		}
	}

	fmt.Println("Teams database deleted.")
	return nil
}
