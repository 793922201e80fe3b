// Package team implements the alliance-level team algebra: which heroes a
// roster commits to, which slots stay interchangeable, and how far each
// alliance can be pushed within the roster limit.
package team

import (
	"fmt"
	"sort"
	"strings"

	"github.com/peilonrayz/underlords/internal/data"
)

// DefaultLimit is the standard roster size.
const DefaultLimit = 10

// Entry records the level a team holds in one alliance, plus the slot
// accounting derived from the team's picked heroes.
//
// Terminology: a hero is "locked" when the team has committed to fielding it,
// "flex" when it counts toward some alliance but could still be swapped for
// another member, and "open" when an alliance slot is demanded but no
// concrete hero has been chosen yet.
type Entry struct {
	Alliance *data.Alliance
	Level    int

	team *Team
}

// Slots is the number of member heroes this entry's level demands.
func (e *Entry) Slots() int { return e.Alliance.Level * e.Level }

func (e *Entry) pooled() []*data.Hero {
	var out []*data.Hero
	for _, h := range e.Alliance.Heroes {
		if e.team.Locked.Has(h) || e.team.Flex.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// PooledSize counts picked heroes filling this entry's slots.
func (e *Entry) PooledSize() int {
	return minInt(e.Slots(), len(e.pooled()))
}

// LockedHeroes are members the team has committed to.
func (e *Entry) LockedHeroes() []*data.Hero {
	var out []*data.Hero
	for _, h := range e.Alliance.Heroes {
		if e.team.Locked.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// LockedSize counts committed members, capped at the demanded slots.
func (e *Entry) LockedSize() int {
	return minInt(e.Slots(), len(e.LockedHeroes()))
}

// FlexHeroes are members counted toward the alliance but still swappable.
func (e *Entry) FlexHeroes() []*data.Hero {
	var out []*data.Hero
	for _, h := range e.Alliance.Heroes {
		if e.team.Flex.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// FlexSize counts slots filled by flex heroes.
func (e *Entry) FlexSize() int { return e.PooledSize() - e.LockedSize() }

// OpenSize counts demanded slots not yet tied to a picked hero.
func (e *Entry) OpenSize() int { return e.Slots() - e.PooledSize() }

// OpenHeroes are members still available to fill open slots.
func (e *Entry) OpenHeroes() []*data.Hero {
	var out []*data.Hero
	for _, h := range e.Alliance.Heroes {
		if !e.team.Locked.Has(h) && !e.team.Flex.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// levelUpAmount is how many extra roster slots raising to level would cost,
// given shared slots already promised by overlapping alliances.
func (e *Entry) levelUpAmount(level, shared int) int {
	return maxInt(0, level*e.Alliance.Level-len(e.pooled())-shared)
}

// Team is an immutable-by-convention roster under construction. Mutating
// operations return a new team and leave the receiver untouched.
type Team struct {
	Limit  int
	Locked HeroSet
	Flex   HeroSet

	entries map[*data.Alliance]*Entry
	order   []*data.Alliance
}

// New creates an empty team with the given roster limit.
func New(limit int) *Team {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Team{
		Limit:   limit,
		Locked:  NewHeroSet(),
		Flex:    NewHeroSet(),
		entries: make(map[*data.Alliance]*Entry),
	}
}

// Entry returns the entry for an alliance, or nil when the team holds none.
func (t *Team) Entry(a *data.Alliance) *Entry { return t.entries[a] }

// Entries returns all entries in insertion order.
func (t *Team) Entries() []*Entry {
	out := make([]*Entry, 0, len(t.order))
	for _, a := range t.order {
		out = append(out, t.entries[a])
	}
	return out
}

// ActiveEntries returns entries with a level above zero.
func (t *Team) ActiveEntries() []*Entry {
	var out []*Entry
	for _, e := range t.Entries() {
		if e.Level > 0 {
			out = append(out, e)
		}
	}
	return out
}

func (t *Team) ensure(a *data.Alliance) *Entry {
	if e, ok := t.entries[a]; ok {
		return e
	}
	e := &Entry{Alliance: a, team: t}
	t.entries[a] = e
	t.order = append(t.order, a)
	return e
}

func (t *Team) set(a *data.Alliance, level int) {
	t.ensure(a).Level = level
}

// Size is the number of roster slots the team occupies: picked heroes plus
// demanded slots not yet filled.
func (t *Team) Size() int {
	size := t.Locked.Len() + t.Flex.Len()
	for _, e := range t.Entries() {
		size += maxInt(0, e.OpenSize())
	}
	return size
}

func (t *Team) pool() HeroSet {
	p := t.Locked.Clone()
	p.AddAll(t.Flex)
	return p
}

// Clone deep-copies the team.
func (t *Team) Clone() *Team {
	nt := &Team{
		Limit:   t.Limit,
		Locked:  t.Locked.Clone(),
		Flex:    t.Flex.Clone(),
		entries: make(map[*data.Alliance]*Entry, len(t.entries)),
		order:   append([]*data.Alliance(nil), t.order...),
	}
	for a, e := range t.entries {
		nt.entries[a] = &Entry{Alliance: a, Level: e.Level, team: nt}
	}
	return nt
}

// Key is a canonical identity string: two teams with the same key hold the
// same heroes and alliance levels. Level-zero entries are ignored.
func (t *Team) Key() string {
	var locked, flex, levels []string
	for h := range t.Locked {
		locked = append(locked, h.Name)
	}
	for h := range t.Flex {
		flex = append(flex, h.Name)
	}
	for _, e := range t.Entries() {
		if e.Level > 0 {
			levels = append(levels, fmt.Sprintf("%s=%d", e.Alliance.Name, e.Level))
		}
	}
	sort.Strings(locked)
	sort.Strings(flex)
	sort.Strings(levels)
	return strings.Join(locked, ",") + "|" + strings.Join(flex, ",") + "|" + strings.Join(levels, ",")
}

// Equal reports whether two teams are interchangeable.
func (t *Team) Equal(o *Team) bool {
	return t.Limit == o.Limit && t.Key() == o.Key()
}

// Score measures synergy density: demanded alliance slots per roster slot.
// Higher is better. An empty team scores zero.
func (t *Team) Score() float64 {
	size := t.Size()
	if size == 0 {
		return 0
	}
	slots := 0
	for _, e := range t.Entries() {
		slots += e.Slots()
	}
	return float64(slots) / float64(size)
}

// Sort orders teams best-first: by score, then by larger size, then by key
// for determinism.
func Sort(teams []*Team) {
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Score() != teams[j].Score() {
			return teams[i].Score() > teams[j].Score()
		}
		if teams[i].Size() != teams[j].Size() {
			return teams[i].Size() > teams[j].Size()
		}
		return teams[i].Key() < teams[j].Key()
	})
}

// String renders a compact summary for logs and tests.
func (t *Team) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Team(%d/%d)", t.Size(), t.Limit)
	for _, e := range t.ActiveEntries() {
		fmt.Fprintf(&b, " %s=%d", e.Alliance.Name, e.Level)
	}
	if t.Locked.Len() > 0 {
		fmt.Fprintf(&b, " locked[%s]", t.Locked.Labels())
	}
	if t.Flex.Len() > 0 {
		fmt.Fprintf(&b, " flex[%s]", t.Flex.Labels())
	}
	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
