package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
)

//go:embed dataset.json
var embedded []byte

type rawDataset struct {
	Heroes    []*Hero     `json:"heroes"`
	Alliances []*Alliance `json:"alliances"`
}

// LoadDefault loads the embedded dataset, skipping heroes that match any of
// the jailed patterns.
func LoadDefault(jailed []string) (*Pool, error) {
	return load(embedded, jailed)
}

// Load reads a dataset from path. Jailed patterns use glob syntax and match
// hero names case-insensitively.
func Load(path string, jailed []string) (*Pool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return load(b, jailed)
}

// EmbeddedDataset returns the raw bytes of the built-in dataset, for export.
func EmbeddedDataset() []byte {
	out := make([]byte, len(embedded))
	copy(out, embedded)
	return out
}

func load(b []byte, jailed []string) (*Pool, error) {
	var raw rawDataset
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	patterns, err := compileJail(jailed)
	if err != nil {
		return nil, err
	}

	pool := &Pool{
		Alliances:     raw.Alliances,
		heroIndex:     make(map[string]*Hero),
		allianceIndex: make(map[string]*Alliance, len(raw.Alliances)),
	}
	for _, a := range raw.Alliances {
		pool.allianceIndex[strings.ToLower(a.Name)] = a
	}

	for _, h := range raw.Heroes {
		if matchesAny(patterns, strings.ToLower(h.Name)) {
			continue
		}
		if err := link(pool, h); err != nil {
			return nil, fmt.Errorf("loading %s: %w", h.Name, err)
		}
		pool.Heroes = append(pool.Heroes, h)
		pool.heroIndex[strings.ToLower(h.Name)] = h
	}

	return pool, nil
}

// link resolves a hero's alliance references and registers it as a member.
func link(pool *Pool, h *Hero) error {
	h.Alliances = make([]*Alliance, 0, len(h.AllianceNames))
	for _, name := range h.AllianceNames {
		a, ok := pool.allianceIndex[strings.ToLower(name)]
		if !ok {
			return &UnknownNameError{Kind: "alliance", Name: name}
		}
		h.Alliances = append(h.Alliances, a)
		a.Heroes = append(a.Heroes, h)
	}
	if h.AceOf != "" {
		a, ok := pool.allianceIndex[strings.ToLower(h.AceOf)]
		if !ok {
			return &UnknownNameError{Kind: "alliance", Name: h.AceOf}
		}
		h.AceAlliance = a
	}
	return nil
}

func compileJail(jailed []string) ([]glob.Glob, error) {
	patterns := make([]glob.Glob, 0, len(jailed))
	for _, p := range jailed {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, fmt.Errorf("invalid jail pattern %q: %w", p, err)
		}
		patterns = append(patterns, g)
	}
	return patterns, nil
}

func matchesAny(patterns []glob.Glob, name string) bool {
	for _, g := range patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}
