package data

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Hero resolves a hero by name: exact match first, then unique prefix, then
// best fuzzy match. A prefix shared by several heroes is ambiguous.
func (p *Pool) Hero(name string) (*Hero, error) {
	idx, err := resolve("hero", name, p.HeroNames())
	if err != nil {
		return nil, err
	}
	return p.Heroes[idx], nil
}

// Alliance resolves an alliance by name with the same rules as Hero.
func (p *Pool) Alliance(name string) (*Alliance, error) {
	idx, err := resolve("alliance", name, p.AllianceNames())
	if err != nil {
		return nil, err
	}
	return p.Alliances[idx], nil
}

func resolve(kind, query string, names []string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, &UnknownNameError{Kind: kind, Name: query}
	}

	for i, n := range names {
		if strings.ToLower(n) == q {
			return i, nil
		}
	}

	var prefixed []int
	for i, n := range names {
		if strings.HasPrefix(strings.ToLower(n), q) {
			prefixed = append(prefixed, i)
		}
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
		// fall through to fuzzy
	default:
		candidates := make([]string, len(prefixed))
		for i, idx := range prefixed {
			candidates[i] = names[idx]
		}
		return 0, &AmbiguousNameError{Kind: kind, Name: query, Candidates: candidates}
	}

	matches := fuzzy.Find(q, names)
	if len(matches) == 0 {
		return 0, &UnknownNameError{Kind: kind, Name: query}
	}
	return matches[0].Index, nil
}
