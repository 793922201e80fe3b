// Package suggest explores the space of viable alliance increases and ranks
// the results.
package suggest

import (
	"context"
	"runtime"
	"sync"

	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/team"
)

// Options bounds an exploration.
type Options struct {
	MaxDepth   int // increase steps per branch; 0 means unbounded
	MaxResults int // teams returned; 0 means DefaultMaxResults
	Workers    int // concurrent starting branches; 0 picks a sensible default
	Step       team.StepFunc
}

const DefaultMaxResults = 10

// Next returns the distinct viable one-step successors of a team, best
// first. The team itself is never included.
func Next(ctx context.Context, t *team.Team, pool *data.Pool, fn team.StepFunc) []*team.Team {
	if fn == nil {
		fn = team.Bump
	}
	seen := map[string]bool{t.Key(): true}
	var out []*team.Team
	for _, s := range t.Increase(pool.Alliances, fn) {
		if ctx.Err() != nil {
			break
		}
		if key := s.Key(); !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	team.Sort(out)
	return out
}

// Explore runs a bounded search: each alliance seeds a branch, branches are
// expanded breadth-first up to MaxDepth, and the best distinct teams are
// returned. Branches fan out across a small worker pool.
func Explore(ctx context.Context, t *team.Team, pool *data.Pool, opts Options) []*team.Team {
	fn := opts.Step
	if fn == nil {
		fn = team.Max
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = minInt(runtime.NumCPU(), 4)
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	sem := make(chan struct{}, workers)
	results := make(chan *team.Team)

	var wg sync.WaitGroup
	for _, a := range pool.Alliances {
		seed, err := fn(t, a)
		if err != nil || seed.Equal(t) {
			continue
		}
		wg.Add(1)
		go func(seed *team.Team) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			expand(ctx, seed, pool.Alliances, fn, opts.MaxDepth, results)
		}(seed)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	seen := map[string]bool{t.Key(): true}
	var out []*team.Team
	for s := range results {
		if key := s.Key(); !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	team.Sort(out)
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// expand walks one branch depth-first, emitting every team along the way.
func expand(ctx context.Context, t *team.Team, alliances []*data.Alliance, fn team.StepFunc, depth int, results chan<- *team.Team) {
	select {
	case results <- t:
	case <-ctx.Done():
		return
	}
	if depth == 1 || ctx.Err() != nil {
		return
	}
	for _, s := range t.Increase(alliances, fn) {
		if s.Equal(t) {
			continue
		}
		expand(ctx, s, alliances, fn, depth-1, results)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
