package data

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks dataset consistency after loading. All problems are
// reported at once via errors.Join.
func (p *Pool) Validate() error {
	var problems []error

	seen := make(map[string]bool, len(p.Heroes))
	for _, h := range p.Heroes {
		key := strings.ToLower(h.Name)
		if seen[key] {
			problems = append(problems, fmt.Errorf("duplicate hero %q", h.Name))
		}
		seen[key] = true

		if h.Tier < 1 || h.Tier > 5 {
			problems = append(problems, fmt.Errorf("hero %q: tier %d out of range 1-5", h.Name, h.Tier))
		}
		if len(h.Alliances) == 0 {
			problems = append(problems, fmt.Errorf("hero %q: no alliances", h.Name))
		}
	}

	seenAlliance := make(map[string]bool, len(p.Alliances))
	for _, a := range p.Alliances {
		key := strings.ToLower(a.Name)
		if seenAlliance[key] {
			problems = append(problems, fmt.Errorf("duplicate alliance %q", a.Name))
		}
		seenAlliance[key] = true

		if a.Level <= 0 {
			problems = append(problems, fmt.Errorf("alliance %q: step %d must be positive", a.Name, a.Level))
			continue
		}
		if a.Total%a.Level != 0 {
			problems = append(problems, fmt.Errorf("alliance %q: step %d does not divide total %d", a.Name, a.Level, a.Total))
		}
		if len(a.Heroes) == 0 {
			problems = append(problems, fmt.Errorf("alliance %q: no member heroes", a.Name))
		} else if len(a.Heroes) < a.Level {
			problems = append(problems, fmt.Errorf("alliance %q: only %d members, first rank needs %d", a.Name, len(a.Heroes), a.Level))
		}
	}

	return errors.Join(problems...)
}
