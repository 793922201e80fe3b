package team

import (
	"fmt"

	"github.com/peilonrayz/underlords/internal/data"
)

// CapacityError reports an operation that would exceed the roster limit.
type CapacityError struct {
	Alliance string
	Hero     string
	Size     int
	Limit    int
	Overlap  []*data.Hero
}

func (e *CapacityError) Error() string {
	if e.Hero != "" {
		return fmt.Sprintf("team full, cannot add %s", e.Hero)
	}
	msg := fmt.Sprintf("adding %s requires %d heroes with a limit of %d", e.Alliance, e.Size, e.Limit)
	if len(e.Overlap) > 0 {
		msg += fmt.Sprintf(", even counting %s as shared", labelHeroes(e.Overlap))
	}
	return msg
}

// RosterError reports an alliance that cannot fill its demanded slots from
// the available heroes.
type RosterError struct {
	Alliance  string
	Kind      string // "open" or "flex"
	Need      int
	Available []*data.Hero
}

func (e *RosterError) Error() string {
	return fmt.Sprintf("not enough %s heroes for %s: need %d, only %s available",
		e.Kind, e.Alliance, e.Need, labelHeroes(e.Available))
}
