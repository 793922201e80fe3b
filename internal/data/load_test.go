package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	pool, err := LoadDefault(nil)
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}

	if len(pool.Heroes) != 60 {
		t.Errorf("got %d heroes, want 60", len(pool.Heroes))
	}
	if len(pool.Alliances) != 23 {
		t.Errorf("got %d alliances, want 23", len(pool.Alliances))
	}
	if err := pool.Validate(); err != nil {
		t.Errorf("built-in dataset invalid: %v", err)
	}
}

func TestLoadLinksAlliances(t *testing.T) {
	pool, err := LoadDefault(nil)
	if err != nil {
		t.Fatal(err)
	}

	h, err := pool.Hero("Axe")
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Alliances) == 0 {
		t.Fatal("Axe has no linked alliances")
	}
	for _, a := range h.Alliances {
		found := false
		for _, member := range a.Heroes {
			if member == h {
				found = true
			}
		}
		if !found {
			t.Errorf("Axe not registered as a member of %s", a.Name)
		}
	}
}

func TestLoadJail(t *testing.T) {
	pool, err := LoadDefault([]string{"Axe", "Shadow *"})
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}

	// Axe, Shadow Shaman and Shadow Demon are rotated out.
	if len(pool.Heroes) != 57 {
		t.Errorf("got %d heroes, want 57", len(pool.Heroes))
	}
	for _, h := range pool.Heroes {
		if h.Name == "Axe" || h.Name == "Shadow Shaman" || h.Name == "Shadow Demon" {
			t.Errorf("%s should be jailed", h.Name)
		}
	}

	// Jailed heroes are not alliance members either.
	a, err := pool.Alliance("Brawny")
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range a.Heroes {
		if h.Name == "Axe" {
			t.Error("jailed hero still an alliance member")
		}
	}
}

func TestLoadBadJailPattern(t *testing.T) {
	if _, err := LoadDefault([]string{"[unclosed"}); err == nil {
		t.Error("expected error for invalid glob pattern")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heroes.json")
	if err := os.WriteFile(path, EmbeddedDataset(), 0644); err != nil {
		t.Fatal(err)
	}

	pool, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(pool.Heroes) != 60 {
		t.Errorf("got %d heroes, want 60", len(pool.Heroes))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveHero(t *testing.T) {
	pool, err := LoadDefault(nil)
	if err != nil {
		t.Fatal(err)
	}

	// Exact, case-insensitive
	h, err := pool.Hero("axe")
	if err != nil || h.Name != "Axe" {
		t.Errorf("Hero(axe) = %v, %v", h, err)
	}

	// Unique prefix
	h, err = pool.Hero("jug")
	if err != nil || h.Name != "Juggernaut" {
		t.Errorf("Hero(jug) = %v, %v", h, err)
	}

	// Shared prefix is ambiguous
	_, err = pool.Hero("shadow")
	var ambErr *AmbiguousNameError
	if !errors.As(err, &ambErr) {
		t.Errorf("Hero(shadow) error = %v, want AmbiguousNameError", err)
	} else if len(ambErr.Candidates) != 2 {
		t.Errorf("candidates = %v, want Shadow Shaman and Shadow Demon", ambErr.Candidates)
	}

	// Fuzzy fallback
	h, err = pool.Hero("qeen of pain")
	if err != nil || h.Name != "Queen of Pain" {
		t.Errorf("Hero(qeen of pain) = %v, %v", h, err)
	}

	// Nothing close
	_, err = pool.Hero("zzzzz")
	var unkErr *UnknownNameError
	if !errors.As(err, &unkErr) {
		t.Errorf("Hero(zzzzz) error = %v, want UnknownNameError", err)
	}

	_, err = pool.Hero("  ")
	if !errors.As(err, &unkErr) {
		t.Errorf("Hero(blank) error = %v, want UnknownNameError", err)
	}
}

func TestResolveAlliance(t *testing.T) {
	pool, err := LoadDefault(nil)
	if err != nil {
		t.Fatal(err)
	}

	a, err := pool.Alliance("kni")
	if err != nil || a.Name != "Knight" {
		t.Errorf("Alliance(kni) = %v, %v", a, err)
	}

	_, err = pool.Alliance("war")
	var ambErr *AmbiguousNameError
	if !errors.As(err, &ambErr) {
		t.Errorf("Alliance(war) error = %v, want AmbiguousNameError", err)
	}
}

func TestAllianceSizes(t *testing.T) {
	pool, err := LoadDefault(nil)
	if err != nil {
		t.Fatal(err)
	}

	a, err := pool.Alliance("Assassin")
	if err != nil {
		t.Fatal(err)
	}
	want := []int{3, 6, 9}
	got := a.Sizes()
	if len(got) != len(want) {
		t.Fatalf("Sizes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sizes()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if a.MaxLevel() != 3 {
		t.Errorf("MaxLevel() = %d, want 3", a.MaxLevel())
	}
	if a.SizeLabel() != "3/6/9" {
		t.Errorf("SizeLabel() = %q, want 3/6/9", a.SizeLabel())
	}
}

func TestValidateCatchesBrokenDatasets(t *testing.T) {
	pool := &Pool{
		Heroes: []*Hero{
			{Name: "a", Tier: 0},
			{Name: "a", Tier: 9},
		},
		Alliances: []*Alliance{
			{Name: "empty", Level: 2, Total: 4},
			{Name: "ragged", Level: 3, Total: 4},
		},
	}
	if err := pool.Validate(); err == nil {
		t.Error("expected validation errors")
	}
}
