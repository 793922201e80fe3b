package team

import (
	"context"

	"github.com/peilonrayz/underlords/internal/data"
)

// Add returns a team holding the alliance at the given level, capped at the
// alliance's maximum. Heroes shared with other alliances' open slots are
// counted once.
func (t *Team) Add(a *data.Alliance, level int) (*Team, error) {
	return t.add(a, []int{minInt(level, a.MaxLevel())})
}

// AddMax returns a team holding the alliance at the highest level that fits
// the roster limit.
func (t *Team) AddMax(a *data.Alliance) (*Team, error) {
	levels := make([]int, 0, a.MaxLevel())
	for lvl := a.MaxLevel(); lvl >= 1; lvl-- {
		levels = append(levels, lvl)
	}
	return t.add(a, levels)
}

func (t *Team) add(a *data.Alliance, levels []int) (*Team, error) {
	nt := t.Clone()
	pool := nt.pool()

	// Estimate how many of the new alliance's slots are covered by heroes
	// shared with other alliances that still have open slots. Each shared
	// hero counts once across the whole estimate.
	shared := 0
	acc := pool.Clone()
	if nt.Entry(a) == nil {
		for _, e := range nt.Entries() {
			if e.Alliance == a || e.OpenSize() <= 0 {
				continue
			}
			fresh := 0
			for _, h := range e.Alliance.Heroes {
				if hasAlliance(h, a) && !acc.Has(h) {
					fresh++
				}
			}
			shared += minInt(e.OpenSize(), fresh)
			for _, h := range e.Alliance.Heroes {
				if hasAlliance(h, a) {
					acc.Add(h)
				}
			}
		}
	}
	overlap := NewHeroSet()
	for h := range acc {
		if !pool.Has(h) {
			overlap.Add(h)
		}
	}

	entry := nt.ensure(a)
	size := nt.Size()
	chosen := 0
	for _, lvl := range levels {
		chosen = lvl
		if lvl > entry.Level {
			if amount := entry.levelUpAmount(lvl, shared); size+amount <= nt.Limit {
				break
			}
		}
	}
	// Never lower a level the team already holds: re-adding a maxed alliance
	// is a no-op, not a downgrade.
	if chosen < entry.Level {
		chosen = entry.Level
	}

	nt.Flex.AddAll(overlap)
	nt.set(a, chosen)
	if nt.Size() > nt.Limit {
		return nil, &CapacityError{Alliance: a.Name, Size: nt.Size(), Limit: t.Limit, Overlap: overlap.Sorted()}
	}
	if err := nt.postCheck(); err != nil {
		return nil, err
	}
	nt.propagate()
	return nt, nil
}

// AddHero returns a team with the hero locked in. A hero may join a full
// team only when it fills an open slot of an active alliance.
func (t *Team) AddHero(h *data.Hero) (*Team, error) {
	fills := false
	for _, e := range t.Entries() {
		if e.OpenSize() > 0 && !t.Locked.Has(h) && !t.Flex.Has(h) && hasAlliance(h, e.Alliance) {
			fills = true
			break
		}
	}
	if !fills && t.Size()+1 > t.Limit {
		return nil, &CapacityError{Hero: h.Name, Size: t.Size() + 1, Limit: t.Limit}
	}

	nt := t.Clone()
	nt.Locked.Add(h)
	nt.Flex.RemoveAll(nt.Locked)
	if err := nt.postCheck(); err != nil {
		return nil, err
	}
	nt.propagate()
	return nt, nil
}

// postCheck verifies every entry can still fill its demanded slots.
func (t *Team) postCheck() error {
	for _, e := range t.Entries() {
		if open := e.OpenHeroes(); len(open) < e.OpenSize() {
			return &RosterError{Alliance: e.Alliance.Name, Kind: "open", Need: e.OpenSize(), Available: open}
		}
		if flex := e.FlexHeroes(); len(flex) < e.FlexSize() {
			return &RosterError{Alliance: e.Alliance.Name, Kind: "flex", Need: e.FlexSize(), Available: flex}
		}
	}
	return nil
}

// propagate settles the roster after a change:
//  1. an alliance whose remaining members exactly cover its open slots pulls
//     them all into the flex pool;
//  2. flex heroes an alliance fully requires become locked;
//  3. locked heroes auto-raise alliance levels they complete.
func (t *Team) propagate() {
	grab := NewHeroSet()
	for _, e := range t.Entries() {
		open := e.OpenHeroes()
		if len(open) <= e.OpenSize() {
			for _, h := range open {
				grab.Add(h)
			}
		}
	}
	t.Flex.AddAll(grab)

	lock := NewHeroSet()
	for _, e := range t.Entries() {
		flex := e.FlexHeroes()
		if len(flex) <= e.FlexSize() {
			for _, h := range flex {
				lock.Add(h)
			}
		}
	}
	t.Locked.AddAll(lock)
	t.Flex.RemoveAll(t.Locked)

	counts := make(map[*data.Alliance]int)
	for h := range t.Locked {
		for _, a := range h.Alliances {
			counts[a]++
		}
	}
	for a, n := range counts {
		if lvl := n / a.Level; lvl > 0 {
			e := t.ensure(a)
			if lvl > e.Level {
				e.Level = lvl
			}
		}
	}
}

// StepFunc advances a team one step for a given alliance.
type StepFunc func(*Team, *data.Alliance) (*Team, error)

// SetLevel returns a step that sets the alliance to a fixed level.
func SetLevel(level int) StepFunc {
	return func(t *Team, a *data.Alliance) (*Team, error) {
		return t.Add(a, level)
	}
}

// Bump raises the alliance one level above the team's current holding.
func Bump(t *Team, a *data.Alliance) (*Team, error) {
	level := 1
	if e := t.Entry(a); e != nil {
		level = e.Level + 1
	}
	return t.Add(a, level)
}

// Max pushes the alliance as far as the roster allows.
func Max(t *Team, a *data.Alliance) (*Team, error) {
	return t.AddMax(a)
}

// successors returns the distinct viable teams one step away. Steps that
// fail or change nothing are dropped.
func (t *Team) successors(alliances []*data.Alliance, fn StepFunc) []*Team {
	var out []*Team
	for _, a := range alliances {
		nt, err := fn(t, a)
		if err != nil {
			continue
		}
		if !nt.Equal(t) {
			out = append(out, nt)
		}
	}
	return out
}

// Increase yields every viable one-step successor, or the team itself when
// no step is viable.
func (t *Team) Increase(alliances []*data.Alliance, fn StepFunc) []*Team {
	succ := t.successors(alliances, fn)
	if len(succ) == 0 {
		return []*Team{t}
	}
	return succ
}

// RecursiveIncrease yields the saturated teams reachable by repeated steps.
// Cancellation truncates the search, returning what was found so far.
func (t *Team) RecursiveIncrease(ctx context.Context, alliances []*data.Alliance, fn StepFunc) []*Team {
	if ctx.Err() != nil {
		return []*Team{t}
	}
	succ := t.successors(alliances, fn)
	if len(succ) == 0 {
		return []*Team{t}
	}
	var out []*Team
	for _, s := range succ {
		out = append(out, s.RecursiveIncrease(ctx, alliances, fn)...)
		if ctx.Err() != nil {
			break
		}
	}
	return out
}

func hasAlliance(h *data.Hero, a *data.Alliance) bool {
	for _, ha := range h.Alliances {
		if ha == a {
			return true
		}
	}
	return false
}
