package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/peilonrayz/underlords/internal/data"
	"golang.org/x/term"
)

// TermWidth returns the terminal width, falling back to 80 columns when
// stdout is not a terminal.
func TermWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// Wrap word-wraps prose to the given width.
func Wrap(s string, width int) string {
	if width <= 0 {
		width = 80
	}
	return wordwrap.String(s, width)
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", maxInt(0, width-runewidth.StringWidth(s)))
}

// HeroTable renders heroes as "tier  name  alliances" rows.
func HeroTable(heroes []*data.Hero, styles *Styles) string {
	nameWidth := len("Hero")
	for _, h := range heroes {
		nameWidth = maxInt(nameWidth, runewidth.StringWidth(h.Name))
	}

	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(pad("Tier", 4)+" "+pad("Hero", nameWidth)+" Alliances") + "\n")
	for _, h := range heroes {
		names := make([]string, len(h.Alliances))
		for i, a := range h.Alliances {
			names[i] = a.Name
			if h.AceAlliance == a {
				names[i] += "*"
			}
		}
		row := styles.Tier(h.Tier).Render(pad(fmt.Sprint(h.Tier), 4)) +
			" " + styles.Bold.Render(pad(h.Name, nameWidth)) +
			" " + styles.Subtitle.Render(strings.Join(names, ", "))
		b.WriteString(styles.TableCell.Render(row) + "\n")
	}
	return b.String()
}

// AllianceTable renders alliances as "name  sizes  members" rows.
func AllianceTable(alliances []*data.Alliance, styles *Styles) string {
	nameWidth := len("Alliance")
	sizeWidth := len("Sizes")
	for _, a := range alliances {
		nameWidth = maxInt(nameWidth, runewidth.StringWidth(a.Name))
		sizeWidth = maxInt(sizeWidth, len(a.SizeLabel()))
	}

	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(pad("Alliance", nameWidth)+" "+pad("Sizes", sizeWidth)+" Heroes") + "\n")
	for _, a := range alliances {
		members := append([]*data.Hero(nil), a.Heroes...)
		data.SortHeroes(members)
		names := make([]string, len(members))
		for i, h := range members {
			names[i] = h.Label()
		}
		row := styles.Bold.Render(pad(a.Name, nameWidth)) +
			" " + pad(a.SizeLabel(), sizeWidth) +
			" " + styles.Subtitle.Render(strings.Join(names, ", "))
		b.WriteString(styles.TableCell.Render(row) + "\n")
	}
	return b.String()
}

// HeroDetail renders a single hero's full card.
func HeroDetail(h *data.Hero, styles *Styles, width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(h.Label()) + "\n")
	b.WriteString("  Alliances:\n")
	for _, a := range h.Alliances {
		marker := ""
		if h.AceAlliance == a {
			marker = " " + styles.Locked.Render("* ace")
		}
		b.WriteString(fmt.Sprintf("    %s (%s)%s\n", a.Name, a.SizeLabel(), marker))
	}
	if len(h.Abilities) > 0 {
		b.WriteString("  Abilities: " + strings.Join(h.Abilities, ", ") + "\n")
	}
	if h.Description != "" {
		b.WriteString(indent(Wrap(styles.Subtitle.Render(h.Description), width-2), "  ") + "\n")
	}
	for i, s := range h.Stats {
		b.WriteString(fmt.Sprintf("  %d★ %d HP, %d mana, %d-%d dmg @%.1fs, %d armor, %d MR\n",
			i+1, s.Health, s.Mana, s.Damage[0], s.Damage[1], s.AttackRate, s.Armor, s.MagicResist))
	}
	return b.String()
}

// AllianceDetail renders a single alliance's full card, the layout the
// original picker printed for `info alliance`.
func AllianceDetail(a *data.Alliance, styles *Styles, width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("%s (%s)", a.Name, a.SizeLabel())) + "\n")
	b.WriteString(indent(Wrap(styles.Subtitle.Render(a.Effect), width-2), "  ") + "\n")
	b.WriteString("  Heroes:\n")
	members := append([]*data.Hero(nil), a.Heroes...)
	data.SortHeroes(members)
	for _, h := range members {
		b.WriteString("    " + styles.Tier(h.Tier).Render(h.Label()) + "\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
