// Package builder is the interactive team building shell. It is an inline
// bubbletea program: results scroll past in the terminal and the prompt stays
// at the bottom.
package builder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/peilonrayz/underlords/internal/config"
	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/debuglog"
	"github.com/peilonrayz/underlords/internal/store"
	"github.com/peilonrayz/underlords/internal/team"
	"github.com/peilonrayz/underlords/internal/ui"
)

// Model is the builder shell state.
type Model struct {
	pool   *data.Pool
	cfg    *config.Config
	store  store.Store
	styles *ui.Styles

	current *team.Team
	history []*team.Team

	input    textinput.Model
	width    int
	quitting bool

	watcher *datasetWatcher
}

// NewModel creates the builder shell over the given pool and store.
func NewModel(pool *data.Pool, cfg *config.Config, st store.Store) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "alliance, hero or /command"
	ti.Focus()

	limit := cfg.Team.Limit
	if limit <= 0 {
		limit = team.DefaultLimit
	}

	m := &Model{
		pool:    pool,
		cfg:     cfg,
		store:   st,
		styles:  ui.DefaultStyles(),
		current: team.New(limit),
		input:   ti,
		width:   ui.TermWidth(),
	}

	if cfg.Data.Path != "" {
		w, err := newDatasetWatcher(cfg.Data.Path, cfg.Data.Jailed)
		if err != nil {
			debuglog.L().Warn().Err(err).Str("path", cfg.Data.Path).Msg("dataset watch unavailable")
		} else {
			m.watcher = w
		}
	}

	return m
}

// Run starts the shell and blocks until the user quits.
func Run(pool *data.Pool, cfg *config.Config, st store.Store) error {
	m := NewModel(pool, cfg, st)
	defer m.close()

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m *Model) close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tea.Println(m.styles.Title.Render("Underlords team builder") +
			m.styles.Subtitle.Render("  /help for commands, ctrl+c to quit") + "\n"),
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+z":
			return m.cmdUndo()
		case "enter":
			input := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if input == "" {
				return m, nil
			}
			return m.handleInput(input)
		}

	case datasetReloadedMsg:
		return m.handleDatasetReload(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.input.View())

	// Live command hints while typing a slash command
	if q := m.input.Value(); strings.HasPrefix(q, "/") {
		matches := FilterCommands(q)
		if len(matches) > 0 {
			hints := make([]string, 0, len(matches))
			for i, c := range matches {
				if i == 5 {
					hints = append(hints, "...")
					break
				}
				hints = append(hints, "/"+c.Name)
			}
			b.WriteString("\n" + m.styles.Muted.Render(strings.Join(hints, "  ")))
		}
	}
	return b.String()
}

func (m *Model) statusLine() string {
	status := fmt.Sprintf("team %d/%d", m.current.Size(), m.current.Limit)
	var levels []string
	for _, e := range m.current.ActiveEntries() {
		levels = append(levels, fmt.Sprintf("%s %d", e.Alliance.Name, e.Level))
	}
	if len(levels) > 0 {
		status += "  " + strings.Join(levels, ", ")
	}
	return m.styles.Subtitle.Render(ui.Truncate(status, m.width))
}

// handleInput routes a line: slash commands dispatch, anything else is
// shorthand for adding an alliance or hero by name. Alliances resolve first
// so "knight" demands the alliance rather than fuzzy matching a hero.
func (m *Model) handleInput(input string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(input, "/") {
		return m.ExecuteCommand(input)
	}

	if a, err := m.pool.Alliance(input); err == nil {
		return m.addAlliance(a, 0)
	}
	if h, err := m.pool.Hero(input); err == nil {
		return m.addHero(h)
	}
	return m.showMessage(m.styles.Error.Render(fmt.Sprintf("No hero or alliance matches %q.", input)))
}

// push records the current team for undo and switches to the new one.
func (m *Model) push(t *team.Team) {
	m.history = append(m.history, m.current)
	m.current = t
}

func (m *Model) showMessage(content string) (tea.Model, tea.Cmd) {
	return m, tea.Println(content)
}

func (m *Model) showTeam() (tea.Model, tea.Cmd) {
	return m.showMessage(ui.TeamShort(m.current, m.styles))
}

func (m *Model) addHero(h *data.Hero) (tea.Model, tea.Cmd) {
	t, err := m.current.AddHero(h)
	if err != nil {
		return m.showMessage(m.styles.Error.Render(err.Error()))
	}
	m.push(t)
	return m.showTeam()
}

// addAlliance adds an alliance at the given level, or at the highest level
// that fits when level is 0.
func (m *Model) addAlliance(a *data.Alliance, level int) (tea.Model, tea.Cmd) {
	var t *team.Team
	var err error
	if level > 0 {
		t, err = m.current.Add(a, level)
	} else {
		t, err = m.current.AddMax(a)
	}
	if err != nil {
		return m.showMessage(m.styles.Error.Render(err.Error()))
	}
	m.push(t)
	return m.showTeam()
}

func (m *Model) handleDatasetReload(msg datasetReloadedMsg) (tea.Model, tea.Cmd) {
	next := m.watcher.wait()
	if msg.err != nil {
		return m, tea.Batch(next,
			tea.Println(m.styles.Error.Render(fmt.Sprintf("Dataset reload failed: %v", msg.err))))
	}

	// Replay the current team against the new pool so hero and alliance
	// pointers stay consistent. On conflict keep the team and the old pool.
	rebuilt, err := store.Rebuild(store.Snapshot(m.current, "reload"), msg.pool, m.current.Limit)
	if err != nil {
		return m, tea.Batch(next,
			tea.Println(m.styles.Error.Render(fmt.Sprintf("Dataset changed but the team no longer fits: %v", err))))
	}

	m.pool = msg.pool
	m.history = nil
	m.current = rebuilt
	debuglog.L().Info().Int("heroes", len(msg.pool.Heroes)).Msg("dataset reloaded")
	return m, tea.Batch(next, tea.Println(m.styles.Success.Render("Dataset reloaded.")))
}
