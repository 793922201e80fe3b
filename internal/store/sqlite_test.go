package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := NewSQLiteStore(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTeam(name string) *Team {
	return &Team{
		ID:          NewID(),
		Name:        name,
		Notes:       "wraps around a knight core",
		RosterLimit: 10,
		Score:       1.5,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Picks: []Pick{
			{Kind: PickOpen, Alliance: "Knight", Level: 2, Position: 0},
			{Kind: PickLock, Hero: "Chaos Knight", Position: 1},
			{Kind: PickFlex, Hero: "Luna", Position: 2},
		},
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := sampleTeam("knights")
	if err := store.Create(ctx, saved); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	loaded, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("failed to load team: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected team to exist")
	}
	if loaded.Name != "knights" || loaded.Notes != saved.Notes {
		t.Errorf("loaded %q/%q, want %q/%q", loaded.Name, loaded.Notes, saved.Name, saved.Notes)
	}
	if loaded.Score != 1.5 || loaded.RosterLimit != 10 {
		t.Errorf("loaded score=%f limit=%d", loaded.Score, loaded.RosterLimit)
	}
	if len(loaded.Picks) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(loaded.Picks))
	}
	if p := loaded.Picks[0]; p.Kind != PickOpen || p.Alliance != "Knight" || p.Level != 2 {
		t.Errorf("pick 0 = %+v", p)
	}
	if p := loaded.Picks[1]; p.Kind != PickLock || p.Hero != "Chaos Knight" {
		t.Errorf("pick 1 = %+v", p)
	}

	byName, err := store.GetByName(ctx, "knights")
	if err != nil {
		t.Fatalf("failed to load by name: %v", err)
	}
	if byName == nil || byName.ID != saved.ID {
		t.Errorf("GetByName = %+v", byName)
	}
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil for missing team, got %+v", loaded)
	}
}

func TestSQLiteStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := sampleTeam("knights")
	if err := store.Create(ctx, saved); err != nil {
		t.Fatal(err)
	}

	saved.Name = "knights-v2"
	saved.Picks = append(saved.Picks, Pick{Kind: PickLock, Hero: "Abaddon", Position: 3})
	if err := store.Update(ctx, saved); err != nil {
		t.Fatalf("failed to update team: %v", err)
	}

	loaded, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "knights-v2" {
		t.Errorf("name = %q, want knights-v2", loaded.Name)
	}
	if len(loaded.Picks) != 4 {
		t.Errorf("expected 4 picks after update, got %d", len(loaded.Picks))
	}

	missing := sampleTeam("ghost")
	if err := store.Update(ctx, missing); err == nil {
		t.Error("expected error updating a missing team")
	}
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := sampleTeam("knights")
	if err := store.Create(ctx, saved); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("failed to delete team: %v", err)
	}

	loaded, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != nil {
		t.Error("team still present after delete")
	}

	if err := store.Delete(ctx, saved.ID); err == nil {
		t.Error("expected error deleting a missing team")
	}
}

func TestSQLiteStoreList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		team := sampleTeam(name)
		if err := store.Create(ctx, team); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := store.List(ctx, ListOptions{Limit: 10})
	if err != nil {
		t.Fatalf("failed to list teams: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	// Open picks don't count as heroes
	if summaries[0].HeroCount != 2 {
		t.Errorf("hero count = %d, want 2", summaries[0].HeroCount)
	}

	limited, err := store.List(ctx, ListOptions{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 summaries with limit, got %d", len(limited))
	}
}

func TestSQLiteStoreSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	knight := sampleTeam("knight-wall")
	if err := store.Create(ctx, knight); err != nil {
		t.Fatal(err)
	}
	mage := sampleTeam("mage-burst")
	mage.Notes = "glass cannon mages"
	if err := store.Create(ctx, mage); err != nil {
		t.Fatal(err)
	}

	results, err := store.Search(ctx, "mages", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != mage.ID {
		t.Errorf("search matched %q", results[0].Name)
	}
}

func TestSQLiteStoreCleanup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "teams.db")
	cfg := Config{Enabled: true, Path: dbPath, MaxCount: 2}

	store, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i, name := range []string{"old", "mid", "new"} {
		team := sampleTeam(name)
		team.CreatedAt = time.Now().Add(time.Duration(i-3) * time.Hour)
		team.UpdatedAt = team.CreatedAt
		if err := store.Create(ctx, team); err != nil {
			t.Fatal(err)
		}
	}
	store.Close()

	// Reopening triggers cleanup of the oldest teams beyond MaxCount.
	store, err = NewSQLiteStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	summaries, err := store.List(ctx, ListOptions{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 teams after cleanup, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.Name == "old" {
			t.Error("oldest team survived cleanup")
		}
	}
}

func TestSQLiteStoreCustomPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "custom", "teams.db")

	store, err := NewSQLiteStore(Config{Enabled: true, Path: dbPath})
	if err != nil {
		t.Fatalf("failed to create store at custom path: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database not created at %s: %v", dbPath, err)
	}
}

func TestNoopStore(t *testing.T) {
	store := &NoopStore{}
	ctx := context.Background()

	if err := store.Create(ctx, sampleTeam("x")); err != nil {
		t.Errorf("noop Create returned %v", err)
	}
	loaded, err := store.Get(ctx, "anything")
	if err != nil || loaded != nil {
		t.Errorf("noop Get = %v, %v", loaded, err)
	}
	summaries, err := store.List(ctx, ListOptions{})
	if err != nil || len(summaries) != 0 {
		t.Errorf("noop List = %v, %v", summaries, err)
	}
}
