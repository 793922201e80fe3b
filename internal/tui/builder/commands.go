package builder

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peilonrayz/underlords/internal/store"
	"github.com/peilonrayz/underlords/internal/suggest"
	"github.com/peilonrayz/underlords/internal/team"
	"github.com/peilonrayz/underlords/internal/ui"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// Command represents a slash command
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
}

// AllCommands returns all available slash commands
func AllCommands() []Command {
	return []Command{
		{
			Name:        "help",
			Aliases:     []string{"h", "?"},
			Description: "Show help and available commands",
			Usage:       "/help",
		},
		{
			Name:        "new",
			Aliases:     []string{"n"},
			Description: "Start a fresh team",
			Usage:       "/new [limit]",
		},
		{
			Name:        "alliance",
			Aliases:     []string{"a"},
			Description: "Add an alliance, at a level or as high as fits",
			Usage:       "/alliance [name [level]]",
		},
		{
			Name:        "hero",
			Description: "Lock a hero into the team",
			Usage:       "/hero <name>",
		},
		{
			Name:        "max",
			Aliases:     []string{"m"},
			Description: "Raise an alliance as high as the roster allows",
			Usage:       "/max <alliance>",
		},
		{
			Name:        "suggest",
			Aliases:     []string{"s"},
			Description: "Suggest extensions of the current team",
			Usage:       "/suggest [depth]",
		},
		{
			Name:        "info",
			Aliases:     []string{"i"},
			Description: "Show a hero or alliance card",
			Usage:       "/info <name>",
		},
		{
			Name:        "team",
			Aliases:     []string{"t"},
			Description: "Show the team with per-alliance slots",
			Usage:       "/team",
		},
		{
			Name:        "sheet",
			Description: "Show the in-game pick sheet",
			Usage:       "/sheet",
		},
		{
			Name:        "limit",
			Description: "Change the roster limit",
			Usage:       "/limit <n>",
		},
		{
			Name:        "undo",
			Aliases:     []string{"u"},
			Description: "Undo the last change",
			Usage:       "/undo",
		},
		{
			Name:        "save",
			Description: "Save the team with a name",
			Usage:       "/save [name]",
		},
		{
			Name:        "load",
			Description: "Load a saved team",
			Usage:       "/load <name>",
		},
		{
			Name:        "teams",
			Aliases:     []string{"ls"},
			Description: "List saved teams",
			Usage:       "/teams",
		},
		{
			Name:        "delete",
			Aliases:     []string{"rm"},
			Description: "Delete a saved team",
			Usage:       "/delete <name>",
		},
		{
			Name:        "export",
			Description: "Export the team as YAML",
			Usage:       "/export [path]",
		},
		{
			Name:        "jail",
			Description: "Show heroes rotated out of the pool",
			Usage:       "/jail",
		},
		{
			Name:        "quit",
			Aliases:     []string{"q", "exit"},
			Description: "Exit the builder",
			Usage:       "/quit",
		},
	}
}

// CommandSource implements fuzzy.Source for command searching
type CommandSource []Command

func (c CommandSource) String(i int) string {
	return c[i].Name
}

func (c CommandSource) Len() int {
	return len(c)
}

// FilterCommands returns commands matching the query using fuzzy search
func FilterCommands(query string) []Command {
	commands := AllCommands()
	if query == "" {
		return commands
	}

	// Remove leading slash if present
	query = strings.TrimPrefix(query, "/")
	if query == "" {
		return commands
	}

	// First check for exact alias matches
	queryLower := strings.ToLower(query)
	for _, cmd := range commands {
		if cmd.Name == queryLower {
			return []Command{cmd}
		}
		for _, alias := range cmd.Aliases {
			if alias == queryLower {
				return []Command{cmd}
			}
		}
	}

	// Fuzzy search on command names
	source := CommandSource(commands)
	matches := fuzzy.FindFrom(query, source)

	var result []Command
	for _, match := range matches {
		result = append(result, commands[match.Index])
	}

	// If no fuzzy matches, also check if query is prefix of any command
	if len(result) == 0 {
		for _, cmd := range commands {
			if strings.HasPrefix(cmd.Name, queryLower) {
				result = append(result, cmd)
			}
		}
	}

	return result
}

// ExecuteCommand handles slash command execution
func (m *Model) ExecuteCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	cmdName := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	// Find matching command - first try exact match
	var cmd *Command
	for _, c := range AllCommands() {
		if c.Name == cmdName {
			cmd = &c
			break
		}
		for _, alias := range c.Aliases {
			if alias == cmdName {
				cmd = &c
				break
			}
		}
		if cmd != nil {
			break
		}
	}

	// If no exact match, try prefix matching
	if cmd == nil {
		var prefixMatches []Command
		for _, c := range AllCommands() {
			if strings.HasPrefix(c.Name, cmdName) {
				prefixMatches = append(prefixMatches, c)
			}
		}

		switch len(prefixMatches) {
		case 0:
			return m.showMessage(fmt.Sprintf("Unknown command: /%s\nType /help for available commands.", cmdName))
		case 1:
			cmd = &prefixMatches[0]
		default:
			var names []string
			for _, c := range prefixMatches {
				names = append(names, "/"+c.Name)
			}
			return m.showMessage(fmt.Sprintf("Ambiguous command: /%s\nDid you mean: %s?", cmdName, strings.Join(names, ", ")))
		}
	}

	switch cmd.Name {
	case "help":
		return m.cmdHelp()
	case "new":
		return m.cmdNew(args)
	case "alliance":
		return m.cmdAlliance(args)
	case "hero":
		return m.cmdHero(args)
	case "max":
		return m.cmdMax(args)
	case "suggest":
		return m.cmdSuggest(args)
	case "info":
		return m.cmdInfo(args)
	case "team":
		return m.showMessage(ui.TeamDetail(m.current, m.styles))
	case "sheet":
		return m.showMessage(ui.TeamSheet(m.current, m.styles))
	case "limit":
		return m.cmdLimit(args)
	case "undo":
		return m.cmdUndo()
	case "save":
		return m.cmdSave(args)
	case "load":
		return m.cmdLoad(args)
	case "teams":
		return m.cmdTeams()
	case "delete":
		return m.cmdDelete(args)
	case "export":
		return m.cmdExport(args)
	case "jail":
		return m.cmdJail()
	case "quit":
		m.quitting = true
		return m, tea.Quit
	default:
		return m.showMessage(fmt.Sprintf("Command /%s is not yet implemented.", cmd.Name))
	}
}

// Command implementations

func (m *Model) cmdHelp() (tea.Model, tea.Cmd) {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Commands") + "\n")
	for _, cmd := range AllCommands() {
		usage := cmd.Usage
		if len(cmd.Aliases) > 0 {
			usage += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		b.WriteString(fmt.Sprintf("  %-28s %s\n", usage, cmd.Description))
	}
	b.WriteString("\nBare input adds a hero or alliance by name. Names fuzzy match.\n")
	b.WriteString("ctrl+z undoes, ctrl+c quits.")
	return m.showMessage(b.String())
}

func (m *Model) cmdNew(args []string) (tea.Model, tea.Cmd) {
	limit := m.current.Limit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return m.showMessage("Usage: /new [limit]")
		}
		limit = n
	}
	m.push(team.New(limit))
	return m.showMessage(fmt.Sprintf("Started a fresh team with %d slots.", limit))
}

func (m *Model) cmdAlliance(args []string) (tea.Model, tea.Cmd) {
	// Bare /alliance lists the ranked one-level bumps from here
	if len(args) == 0 {
		return m.cmdSuggest(nil)
	}

	// A trailing integer is the requested level; the rest is the name
	level := 0
	if n, err := strconv.Atoi(args[len(args)-1]); err == nil && len(args) > 1 {
		level = n
		args = args[:len(args)-1]
	}

	a, err := m.pool.Alliance(strings.Join(args, " "))
	if err != nil {
		return m.showMessage(m.styles.Error.Render(err.Error()))
	}
	return m.addAlliance(a, level)
}

func (m *Model) cmdHero(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.showMessage("Usage: /hero <name>")
	}
	h, err := m.pool.Hero(strings.Join(args, " "))
	if err != nil {
		return m.showMessage(m.styles.Error.Render(err.Error()))
	}
	return m.addHero(h)
}

func (m *Model) cmdMax(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.showMessage("Usage: /max <alliance>")
	}
	a, err := m.pool.Alliance(strings.Join(args, " "))
	if err != nil {
		return m.showMessage(m.styles.Error.Render(err.Error()))
	}
	return m.addAlliance(a, 0)
}

func (m *Model) cmdSuggest(args []string) (tea.Model, tea.Cmd) {
	depth := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return m.showMessage("Usage: /suggest [depth]")
		}
		depth = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var teams []*team.Team
	if depth == 1 {
		teams = suggest.Next(ctx, m.current, m.pool, nil)
	} else {
		teams = suggest.Explore(ctx, m.current, m.pool, suggest.Options{MaxDepth: depth})
	}
	if len(teams) == 0 {
		return m.showMessage("No extensions fit the current roster.")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Suggestions") + "\n")
	for i, t := range teams {
		b.WriteString(fmt.Sprintf("  %2d. %s %s\n", i+1,
			m.styles.Subtitle.Render(fmt.Sprintf("%.2f", t.Score())), t.String()))
	}
	return m.showMessage(b.String())
}

func (m *Model) cmdInfo(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.showMessage("Usage: /info <hero or alliance>")
	}
	name := strings.Join(args, " ")

	if h, err := m.pool.Hero(name); err == nil {
		return m.showMessage(ui.HeroDetail(h, m.styles, m.width))
	}
	a, err := m.pool.Alliance(name)
	if err != nil {
		return m.showMessage(m.styles.Error.Render(err.Error()))
	}
	return m.showMessage(ui.AllianceDetail(a, m.styles, m.width))
}

func (m *Model) cmdLimit(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.showMessage(fmt.Sprintf("Roster limit is %d.\nUsage: /limit <n>", m.current.Limit))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return m.showMessage("Usage: /limit <n>")
	}

	// Replay the team under the new limit so overflow surfaces immediately
	t, err := store.Rebuild(store.Snapshot(m.current, "limit"), m.pool, n)
	if err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Team does not fit in %d slots: %v", n, err)))
	}
	m.push(t)
	return m.showMessage(fmt.Sprintf("Roster limit set to %d.", n))
}

func (m *Model) cmdUndo() (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m.showMessage("Nothing to undo.")
	}
	m.current = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.showTeam()
}

func (m *Model) cmdSave(args []string) (tea.Model, tea.Cmd) {
	name := strings.Join(args, "-")
	if name == "" {
		// Name from the team's alliances, or a timestamp for an empty team
		var parts []string
		for _, e := range m.current.ActiveEntries() {
			parts = append(parts, strings.ToLower(e.Alliance.Name))
		}
		name = strings.Join(parts, "-")
		if name == "" {
			name = fmt.Sprintf("team-%d", time.Now().Unix())
		}
	}

	ctx := context.Background()
	snap := store.Snapshot(m.current, name)

	existing, err := m.store.GetByName(ctx, name)
	if err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to save team: %v", err)))
	}
	if existing != nil {
		snap.ID = existing.ID
		snap.CreatedAt = existing.CreatedAt
		err = m.store.Update(ctx, snap)
	} else {
		err = m.store.Create(ctx, snap)
	}
	if err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to save team: %v", err)))
	}
	return m.showMessage(m.styles.Success.Render(fmt.Sprintf("Team saved as %q.", name)))
}

func (m *Model) cmdLoad(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.showMessage("Usage: /load <name>")
	}
	name := strings.Join(args, " ")

	saved, err := m.store.GetByName(context.Background(), name)
	if err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to load team: %v", err)))
	}
	if saved == nil {
		return m.showMessage(fmt.Sprintf("Team %q not found.", name))
	}

	t, err := store.Rebuild(saved, m.pool, 0)
	if err != nil {
		return m.showMessage(m.styles.Error.Render(err.Error()))
	}
	m.push(t)
	return m.showTeam()
}

func (m *Model) cmdTeams() (tea.Model, tea.Cmd) {
	summaries, err := m.store.List(context.Background(), store.ListOptions{})
	if err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to list teams: %v", err)))
	}
	if len(summaries) == 0 {
		return m.showMessage("No saved teams.\nUse /save [name] to save the current team.")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Saved teams") + "\n")
	for _, s := range summaries {
		b.WriteString(fmt.Sprintf("  %-24s %d heroes, score %.2f  %s\n",
			s.Name, s.HeroCount, s.Score,
			m.styles.Subtitle.Render(s.UpdatedAt.Format("2006-01-02 15:04"))))
	}
	b.WriteString("\nUse /load <name> to load a team.")
	return m.showMessage(b.String())
}

func (m *Model) cmdDelete(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.showMessage("Usage: /delete <name>")
	}
	name := strings.Join(args, " ")

	ctx := context.Background()
	saved, err := m.store.GetByName(ctx, name)
	if err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to delete team: %v", err)))
	}
	if saved == nil {
		return m.showMessage(fmt.Sprintf("Team %q not found.", name))
	}
	if err := m.store.Delete(ctx, saved.ID); err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to delete team: %v", err)))
	}
	return m.showMessage(fmt.Sprintf("Deleted team %q.", name))
}

func (m *Model) cmdExport(args []string) (tea.Model, tea.Cmd) {
	var outputPath string
	if len(args) > 0 {
		outputPath = strings.Join(args, " ")
	} else {
		outputPath = fmt.Sprintf("team-%s.yaml", time.Now().Format("2006-01-02_15-04-05"))
	}

	out, err := yaml.Marshal(store.Snapshot(m.current, strings.TrimSuffix(outputPath, ".yaml")))
	if err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to export: %v", err)))
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return m.showMessage(m.styles.Error.Render(fmt.Sprintf("Failed to export: %v", err)))
	}
	return m.showMessage(m.styles.Success.Render(fmt.Sprintf("Exported team to %s", outputPath)))
}

func (m *Model) cmdJail() (tea.Model, tea.Cmd) {
	if len(m.cfg.Data.Jailed) == 0 {
		return m.showMessage("No heroes are jailed.")
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Jailed heroes") + "\n")
	for _, p := range m.cfg.Data.Jailed {
		b.WriteString("  " + p + "\n")
	}
	b.WriteString(m.styles.Subtitle.Render("Patterns match against the dataset; edit data.jailed in the config to change the rotation."))
	return m.showMessage(b.String())
}
