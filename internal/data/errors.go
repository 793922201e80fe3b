package data

import (
	"fmt"
	"strings"
)

// UnknownNameError reports a hero or alliance lookup that matched nothing.
type UnknownNameError struct {
	Kind string // "hero" or "alliance"
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// AmbiguousNameError reports a lookup that matched several entries.
type AmbiguousNameError struct {
	Kind       string
	Name       string
	Candidates []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("ambiguous %s %q: did you mean %s?",
		e.Kind, e.Name, strings.Join(e.Candidates, ", "))
}
