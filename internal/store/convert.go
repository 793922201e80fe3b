package store

import (
	"fmt"

	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/team"
)

// Snapshot converts a working team into its saved form. Open picks record the
// demanded alliances and levels, lock and flex picks record the chosen heroes.
func Snapshot(t *team.Team, name string) *Team {
	st := &Team{
		Name:        name,
		RosterLimit: t.Limit,
		Score:       t.Score(),
	}

	pos := 0
	for _, e := range t.ActiveEntries() {
		st.Picks = append(st.Picks, Pick{
			Kind:     PickOpen,
			Alliance: e.Alliance.Name,
			Level:    e.Level,
			Position: pos,
		})
		pos++
	}
	for _, h := range t.Locked.Sorted() {
		st.Picks = append(st.Picks, Pick{Kind: PickLock, Hero: h.Name, Position: pos})
		pos++
	}
	for _, h := range t.Flex.Sorted() {
		st.Picks = append(st.Picks, Pick{Kind: PickFlex, Hero: h.Name, Position: pos})
		pos++
	}
	return st
}

// Rebuild replays a saved team's picks against the pool. Flex picks are
// skipped since propagation re-derives them from the alliances and locked
// heroes. Replaying keeps saved teams valid when the dataset changes, at the
// cost of failing when a saved pick no longer fits.
func Rebuild(st *Team, pool *data.Pool, limit int) (*team.Team, error) {
	if limit <= 0 {
		limit = st.RosterLimit
	}
	if limit <= 0 {
		limit = team.DefaultLimit
	}

	t := team.New(limit)
	for _, p := range st.Picks {
		var err error
		switch p.Kind {
		case PickOpen:
			var a *data.Alliance
			if a, err = pool.Alliance(p.Alliance); err == nil {
				t, err = t.Add(a, p.Level)
			}
		case PickLock:
			var h *data.Hero
			if h, err = pool.Hero(p.Hero); err == nil {
				t, err = t.AddHero(h)
			}
		case PickFlex:
			continue
		default:
			err = fmt.Errorf("unknown pick kind %q", p.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("replaying %q: %w", st.Name, err)
		}
	}
	return t, nil
}
