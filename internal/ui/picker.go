package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/peilonrayz/underlords/internal/data"
)

// formatHeroOption renders a hero pick with its alliances as muted context
func formatHeroOption(h *data.Hero, styles *Styles) string {
	names := make([]string, 0, len(h.Alliances))
	for _, a := range h.Alliances {
		names = append(names, a.Name)
	}
	return styles.Bold.Render(h.Label()) + styles.Subtitle.Render("  "+strings.Join(names, ", "))
}

// PickHero presents the full hero roster and returns the selected hero
func PickHero(pool *data.Pool, styles *Styles) (*data.Hero, error) {
	heroes := append([]*data.Hero(nil), pool.Heroes...)
	data.SortHeroes(heroes)

	options := make([]huh.Option[*data.Hero], 0, len(heroes))
	for _, h := range heroes {
		options = append(options, huh.NewOption(formatHeroOption(h, styles), h))
	}

	var selected *data.Hero
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[*data.Hero]().
				Title("Pick a hero").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

// PickAlliance presents all alliances and returns the selected one
func PickAlliance(pool *data.Pool, styles *Styles) (*data.Alliance, error) {
	options := make([]huh.Option[*data.Alliance], 0, len(pool.Alliances))
	for _, a := range pool.Alliances {
		label := styles.Bold.Render(a.Name) + styles.Subtitle.Render("  "+a.SizeLabel())
		options = append(options, huh.NewOption(label, a))
	}

	var selected *data.Alliance
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[*data.Alliance]().
				Title("Pick an alliance").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

// PickLevel asks for an alliance level between 1 and the alliance maximum
func PickLevel(a *data.Alliance) (int, error) {
	max := a.MaxLevel()
	options := make([]huh.Option[int], 0, max)
	for lvl := 1; lvl <= max; lvl++ {
		options = append(options, huh.NewOption(fmt.Sprintf("%d (%d heroes)", lvl, lvl*a.Level), lvl))
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%s level", a.Name)).
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return 0, err
	}
	return selected, nil
}

// Confirm asks a yes/no question
func Confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
