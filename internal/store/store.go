// Package store persists saved teams in SQLite.
package store

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// PickKind classifies how a roster slot is held.
type PickKind string

const (
	PickLock PickKind = "lock" // committed hero
	PickFlex PickKind = "flex" // counted but swappable hero
	PickOpen PickKind = "open" // demanded slot with no hero chosen
)

// Pick is one roster slot of a saved team. Open picks name a demanded
// alliance and its level; lock and flex picks name a hero.
type Pick struct {
	Kind     PickKind `json:"kind" yaml:"kind"`
	Hero     string   `json:"hero,omitempty" yaml:"hero,omitempty"`
	Alliance string   `json:"alliance,omitempty" yaml:"alliance,omitempty"`
	Level    int      `json:"level,omitempty" yaml:"level,omitempty"`
	Position int      `json:"position" yaml:"position"`
}

// Team is a saved roster.
type Team struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Notes       string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	RosterLimit int       `json:"roster_limit" yaml:"roster_limit"`
	Score       float64   `json:"score" yaml:"score"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
	Picks       []Pick    `json:"picks" yaml:"picks"`
}

// Summary is a team row for listings.
type Summary struct {
	ID        string
	Name      string
	HeroCount int
	Score     float64
	UpdatedAt time.Time
}

// SearchResult is one full-text match over team names and notes.
type SearchResult struct {
	ID        string
	Name      string
	Snippet   string
	UpdatedAt time.Time
}

// ListOptions filters List.
type ListOptions struct {
	Limit  int
	Offset int
}

// Store persists teams.
type Store interface {
	Create(ctx context.Context, t *Team) error
	Get(ctx context.Context, id string) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Summary, error)
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
	Close() error
}

// Config controls persistence.
type Config struct {
	Enabled  bool
	Path     string // database file; empty uses the default data dir
	MaxCount int    // keep at most this many teams; 0 disables cleanup
}

// DefaultConfig enables the store at the default location.
func DefaultConfig() Config {
	return Config{Enabled: true, MaxCount: 200}
}

// NewStore returns a SQLite store, or a NoopStore when disabled.
func NewStore(cfg Config) (Store, error) {
	if !cfg.Enabled {
		return &NoopStore{}, nil
	}
	return NewSQLiteStore(cfg)
}

// GetDBPath returns the database location: $XDG_DATA_HOME/underlords/teams.db
// or ~/.local/share/underlords/teams.db.
func GetDBPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "underlords", "teams.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "underlords", "teams.db"), nil
}
