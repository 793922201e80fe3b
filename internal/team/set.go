package team

import (
	"strings"

	"github.com/peilonrayz/underlords/internal/data"
)

// HeroSet is a set of heroes keyed by identity. Heroes come from a single
// loaded pool, so pointer identity is stable.
type HeroSet map[*data.Hero]struct{}

func NewHeroSet(heroes ...*data.Hero) HeroSet {
	s := make(HeroSet, len(heroes))
	for _, h := range heroes {
		s[h] = struct{}{}
	}
	return s
}

func (s HeroSet) Add(h *data.Hero)  { s[h] = struct{}{} }
func (s HeroSet) Has(h *data.Hero) bool {
	_, ok := s[h]
	return ok
}
func (s HeroSet) Len() int { return len(s) }

func (s HeroSet) Clone() HeroSet {
	out := make(HeroSet, len(s))
	for h := range s {
		out[h] = struct{}{}
	}
	return out
}

func (s HeroSet) AddAll(o HeroSet) {
	for h := range o {
		s[h] = struct{}{}
	}
}

func (s HeroSet) RemoveAll(o HeroSet) {
	for h := range o {
		delete(s, h)
	}
}

// Sorted returns the members ordered by tier then name.
func (s HeroSet) Sorted() []*data.Hero {
	out := make([]*data.Hero, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	data.SortHeroes(out)
	return out
}

// Labels renders the members as "Name(tier), Name(tier)".
func (s HeroSet) Labels() string {
	return labelHeroes(s.Sorted())
}

func labelHeroes(heroes []*data.Hero) string {
	parts := make([]string, len(heroes))
	for i, h := range heroes {
		parts[i] = h.Label()
	}
	return strings.Join(parts, ", ")
}
