package data

import (
	"fmt"
	"sort"
	"strings"
)

// Stats describes a hero's combat numbers for one star level.
type Stats struct {
	Health      int     `json:"health"`
	Mana        int     `json:"mana"`
	DPS         int     `json:"dps"`
	Damage      [2]int  `json:"damage"`
	AttackRate  float64 `json:"attack_rate"`
	MoveSpeed   int     `json:"move_speed"`
	AttackRange int     `json:"attack_range"`
	MagicResist int     `json:"magic_resist"`
	Armor       int     `json:"armour"`
	HealthRegen int     `json:"health_regen"`
}

// Hero is a recruitable unit. AllianceNames holds the raw dataset references;
// Alliances is populated during linking.
type Hero struct {
	Name          string   `json:"name"`
	Tier          int      `json:"tier"`
	AceOf         string   `json:"ace,omitempty"`
	AllianceNames []string `json:"alliances"`
	Abilities     []string `json:"abilities,omitempty"`
	Description   string   `json:"description,omitempty"`
	Stats         []Stats  `json:"stats,omitempty"`

	Alliances   []*Alliance `json:"-"`
	AceAlliance *Alliance   `json:"-"`
}

// Label returns the short display form "Name(tier)".
func (h *Hero) Label() string {
	return fmt.Sprintf("%s(%d)", h.Name, h.Tier)
}

// Alliance is a synergy group. Level is the member count per rank and Total
// the maximum counted members, so a 3/6/9 alliance has Level 3, Total 9.
type Alliance struct {
	Name   string `json:"name"`
	Level  int    `json:"level"`
	Total  int    `json:"total"`
	Effect string `json:"effect"`

	Heroes []*Hero `json:"-"`
}

// Sizes returns the member thresholds at which the alliance ranks up.
func (a *Alliance) Sizes() []int {
	var sizes []int
	for n := a.Level; n <= a.Total; n += a.Level {
		sizes = append(sizes, n)
	}
	return sizes
}

// MaxLevel is the highest attainable rank.
func (a *Alliance) MaxLevel() int {
	if a.Level <= 0 {
		return 0
	}
	return a.Total / a.Level
}

// SizeLabel renders the thresholds as "3/6/9".
func (a *Alliance) SizeLabel() string {
	parts := make([]string, 0, a.MaxLevel())
	for _, n := range a.Sizes() {
		parts = append(parts, fmt.Sprint(n))
	}
	return strings.Join(parts, "/")
}

// SortHeroes orders heroes by tier then name, the display order used
// throughout the CLI.
func SortHeroes(heroes []*Hero) {
	sort.Slice(heroes, func(i, j int) bool {
		if heroes[i].Tier != heroes[j].Tier {
			return heroes[i].Tier < heroes[j].Tier
		}
		return heroes[i].Name < heroes[j].Name
	})
}

// Pool is a loaded dataset with lookup indexes.
type Pool struct {
	Heroes    []*Hero
	Alliances []*Alliance

	heroIndex     map[string]*Hero
	allianceIndex map[string]*Alliance
}

// HeroNames returns all hero names in dataset order.
func (p *Pool) HeroNames() []string {
	names := make([]string, len(p.Heroes))
	for i, h := range p.Heroes {
		names[i] = h.Name
	}
	return names
}

// AllianceNames returns all alliance names in dataset order.
func (p *Pool) AllianceNames() []string {
	names := make([]string, len(p.Alliances))
	for i, a := range p.Alliances {
		names[i] = a.Name
	}
	return names
}

// Overlap returns the heroes belonging to both alliances.
func (p *Pool) Overlap(a, b *Alliance) []*Hero {
	in := make(map[*Hero]bool, len(a.Heroes))
	for _, h := range a.Heroes {
		in[h] = true
	}
	var shared []*Hero
	for _, h := range b.Heroes {
		if in[h] {
			shared = append(shared, h)
		}
	}
	return shared
}
