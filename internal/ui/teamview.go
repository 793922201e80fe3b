package ui

import (
	"fmt"
	"strings"

	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/team"
)

// TeamShort renders the one-screen team summary: size, picked heroes and
// alliance levels.
func TeamShort(t *team.Team, styles *Styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", styles.Title.Render(fmt.Sprintf("Team %d/%d (score %.2f)", t.Size(), t.Limit, t.Score())))
	fmt.Fprintf(&b, "  Locked(%d): %s\n", t.Locked.Len(), styles.Locked.Render(t.Locked.Labels()))
	fmt.Fprintf(&b, "  Flex(%d):   %s\n", t.Flex.Len(), styles.Flex.Render(t.Flex.Labels()))
	var levels []string
	for _, e := range t.ActiveEntries() {
		levels = append(levels, fmt.Sprintf("%s %d", e.Alliance.Name, e.Level))
	}
	if len(levels) > 0 {
		fmt.Fprintf(&b, "  %s\n", styles.Subtitle.Render(strings.Join(levels, "   ")))
	}
	return b.String()
}

// TeamDetail renders per-alliance slot accounting.
func TeamDetail(t *team.Team, styles *Styles) string {
	var b strings.Builder
	b.WriteString(TeamShort(t, styles))
	for _, e := range t.ActiveEntries() {
		fmt.Fprintf(&b, "  %s %d\n", styles.Bold.Render(e.Alliance.Name), e.Level)
		fmt.Fprintf(&b, "    Locked %d of %s\n", e.LockedSize(), labelOrDash(e.LockedHeroes()))
		fmt.Fprintf(&b, "    Flex   %d of %s\n", e.FlexSize(), labelOrDash(e.FlexHeroes()))
		fmt.Fprintf(&b, "    Open   %d of %s\n", e.OpenSize(), labelOrDash(e.OpenHeroes()))
	}
	return b.String()
}

// TeamSheet renders the in-game pick sheet: hero counts per tier, then the
// locked heroes grouped by tier with the index of their first team alliance.
func TeamSheet(t *team.Team, styles *Styles) string {
	locked := t.Locked.Sorted()

	counts := [6]int{}
	for _, h := range locked {
		if h.Tier >= 1 && h.Tier <= 5 {
			counts[h.Tier]++
		}
	}
	parts := make([]string, 5)
	for i := 1; i <= 5; i++ {
		parts[i-1] = fmt.Sprint(counts[i])
	}

	entries := t.Entries()
	indexOf := func(h *data.Hero) int {
		best := len(entries)
		for _, a := range h.Alliances {
			for i, e := range entries {
				if e.Alliance == a && i < best {
					best = i
				}
			}
		}
		return best + 1
	}

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render(strings.Join(parts, " ")) + "\n")
	tier := 0
	for _, h := range locked {
		if h.Tier > tier {
			tier = h.Tier
			b.WriteString(styles.Tier(tier).Render(fmt.Sprintf("%d:", tier)) + "\n")
		}
		fmt.Fprintf(&b, "  %d %s\n", indexOf(h), h.Name)
	}
	return b.String()
}

func labelOrDash(heroes []*data.Hero) string {
	if len(heroes) == 0 {
		return "-"
	}
	data.SortHeroes(heroes)
	parts := make([]string, len(heroes))
	for i, h := range heroes {
		parts[i] = h.Label()
	}
	return strings.Join(parts, ", ")
}
