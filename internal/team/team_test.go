package team

import (
	"context"
	"errors"
	"testing"

	"github.com/peilonrayz/underlords/internal/data"
)

func alliance(name string, step, total int) *data.Alliance {
	return &data.Alliance{Name: name, Level: step, Total: total}
}

func hero(name string, tier int, alliances ...*data.Alliance) *data.Hero {
	h := &data.Hero{Name: name, Tier: tier, Alliances: alliances}
	for _, a := range alliances {
		a.Heroes = append(a.Heroes, h)
	}
	return h
}

// fixture builds two 2/4 alliances sharing the hero "x":
//
//	A: x a1 a2 a3
//	B: x b1 b2 b3
func fixture() (a, b *data.Alliance, heroes map[string]*data.Hero) {
	a = alliance("A", 2, 4)
	b = alliance("B", 2, 4)
	heroes = map[string]*data.Hero{
		"x":  hero("x", 1, a, b),
		"a1": hero("a1", 1, a),
		"a2": hero("a2", 2, a),
		"a3": hero("a3", 3, a),
		"b1": hero("b1", 1, b),
		"b2": hero("b2", 2, b),
		"b3": hero("b3", 3, b),
	}
	return a, b, heroes
}

func TestAddAlliance(t *testing.T) {
	a, _, _ := fixture()

	base := New(10)
	got, err := base.Add(a, 1)
	if err != nil {
		t.Fatalf("Add(A, 1) failed: %v", err)
	}

	if got.Size() != 2 {
		t.Errorf("Size() = %d, want 2", got.Size())
	}
	if e := got.Entry(a); e == nil || e.Level != 1 {
		t.Errorf("Entry(A).Level = %v, want 1", e)
	}
	if base.Size() != 0 || base.Entry(a) != nil {
		t.Errorf("Add mutated the receiver: %s", base)
	}
}

func TestAddCapsAtMaxLevel(t *testing.T) {
	a, _, _ := fixture()

	got, err := New(10).Add(a, 99)
	if err != nil {
		t.Fatalf("Add(A, 99) failed: %v", err)
	}
	if e := got.Entry(a); e.Level != a.MaxLevel() {
		t.Errorf("Entry(A).Level = %d, want %d", e.Level, a.MaxLevel())
	}
}

func TestAddSharedHeroCountsOnce(t *testing.T) {
	a, b, heroes := fixture()

	team1, err := New(10).Add(a, 1)
	if err != nil {
		t.Fatalf("Add(A, 1) failed: %v", err)
	}
	team2, err := team1.Add(b, 1)
	if err != nil {
		t.Fatalf("Add(B, 1) failed: %v", err)
	}

	// x covers one slot of each alliance, so the team needs x plus one more
	// member of each: 3 slots, not 4.
	if team2.Size() != 3 {
		t.Errorf("Size() = %d, want 3", team2.Size())
	}
	// x is the only member that can fill both shared slots, so propagation
	// commits to it.
	if !team2.Locked.Has(heroes["x"]) {
		t.Errorf("x not locked: %s", team2)
	}
	if team2.Flex.Len() != 0 {
		t.Errorf("Flex = %s, want empty", team2.Flex.Labels())
	}
}

func TestAddOverflowingLevelFails(t *testing.T) {
	a, _, _ := fixture()

	// Level 2 demands 4 slots; the requested level is kept even though level
	// 1 would fit, and the roster check rejects it.
	_, err := New(3).Add(a, 2)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("Add(A, 2) error = %v, want CapacityError", err)
	}
	if capErr.Size != 4 || capErr.Limit != 3 {
		t.Errorf("CapacityError = %d/%d, want 4/3", capErr.Size, capErr.Limit)
	}
}

func TestAddMaxPicksHighestFittingLevel(t *testing.T) {
	a, _, _ := fixture()

	got, err := New(3).AddMax(a)
	if err != nil {
		t.Fatalf("AddMax(A) failed: %v", err)
	}
	if e := got.Entry(a); e.Level != 1 {
		t.Errorf("Entry(A).Level = %d, want 1", e.Level)
	}

	got, err = New(10).AddMax(a)
	if err != nil {
		t.Fatalf("AddMax(A) failed: %v", err)
	}
	if e := got.Entry(a); e.Level != 2 {
		t.Errorf("Entry(A).Level = %d, want 2", e.Level)
	}
}

func TestAddInsufficientMembersFails(t *testing.T) {
	d := alliance("D", 2, 4)
	hero("d1", 1, d)
	hero("d2", 1, d)

	// Level 2 demands 4 members but only 2 exist.
	_, err := New(10).Add(d, 2)
	var rosterErr *RosterError
	if !errors.As(err, &rosterErr) {
		t.Fatalf("Add(D, 2) error = %v, want RosterError", err)
	}
	if rosterErr.Alliance != "D" || rosterErr.Kind != "open" {
		t.Errorf("RosterError = %+v", rosterErr)
	}
}

func TestAddHeroRaisesLevel(t *testing.T) {
	a, _, heroes := fixture()

	team1, err := New(10).AddHero(heroes["a1"])
	if err != nil {
		t.Fatalf("AddHero(a1) failed: %v", err)
	}
	if team1.Size() != 1 {
		t.Errorf("Size() = %d, want 1", team1.Size())
	}
	if e := team1.Entry(a); e != nil && e.Level != 0 {
		t.Errorf("one member already raised A to %d", e.Level)
	}

	team2, err := team1.AddHero(heroes["a2"])
	if err != nil {
		t.Fatalf("AddHero(a2) failed: %v", err)
	}
	if e := team2.Entry(a); e == nil || e.Level != 1 {
		t.Errorf("two members should raise A to level 1, got %v", e)
	}
}

func TestAddHeroFillsOpenSlotOnFullTeam(t *testing.T) {
	a, _, heroes := fixture()

	full, err := New(2).Add(a, 1)
	if err != nil {
		t.Fatalf("Add(A, 1) failed: %v", err)
	}
	if full.Size() != full.Limit {
		t.Fatalf("Size() = %d, want %d", full.Size(), full.Limit)
	}

	// a1 fills one of A's open slots, so it joins without growing the team.
	got, err := full.AddHero(heroes["a1"])
	if err != nil {
		t.Fatalf("AddHero(a1) failed: %v", err)
	}
	if got.Size() != 2 {
		t.Errorf("Size() = %d, want 2", got.Size())
	}

	// b1 fills nothing the team demands.
	_, err = full.AddHero(heroes["b1"])
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Errorf("AddHero(b1) error = %v, want CapacityError", err)
	}
}

func TestEntryAccounting(t *testing.T) {
	a, _, heroes := fixture()

	built, err := New(10).Add(a, 1)
	if err != nil {
		t.Fatalf("Add(A, 1) failed: %v", err)
	}
	built, err = built.AddHero(heroes["x"])
	if err != nil {
		t.Fatalf("AddHero(x) failed: %v", err)
	}

	e := built.Entry(a)
	if e.Slots() != 2 {
		t.Errorf("Slots() = %d, want 2", e.Slots())
	}
	if e.LockedSize() != 1 {
		t.Errorf("LockedSize() = %d, want 1", e.LockedSize())
	}
	if e.FlexSize() != 0 {
		t.Errorf("FlexSize() = %d, want 0", e.FlexSize())
	}
	if e.OpenSize() != 1 {
		t.Errorf("OpenSize() = %d, want 1", e.OpenSize())
	}
	if built.Size() != 2 {
		t.Errorf("Size() = %d, want 2", built.Size())
	}
}

func TestAddDemandedAlliancePullsExactMembers(t *testing.T) {
	a, _, _ := fixture()

	// Level 2 demands all four members of A, so every one of them is
	// committed immediately.
	built, err := New(10).Add(a, 2)
	if err != nil {
		t.Fatalf("Add(A, 2) failed: %v", err)
	}
	if built.Locked.Len() != 4 {
		t.Errorf("Locked = %s, want all 4 members", built.Locked.Labels())
	}
	if built.Entry(a).OpenSize() != 0 {
		t.Errorf("OpenSize() = %d, want 0", built.Entry(a).OpenSize())
	}
	if built.Size() != 4 {
		t.Errorf("Size() = %d, want 4", built.Size())
	}
}

func TestKeyIgnoresLevelZeroEntries(t *testing.T) {
	a, _, heroes := fixture()

	team1, err := New(10).AddHero(heroes["a1"])
	if err != nil {
		t.Fatalf("AddHero(a1) failed: %v", err)
	}

	team2 := New(10)
	team2.Locked.Add(heroes["a1"])
	team2.ensure(a) // level 0

	if team1.Key() != team2.Key() {
		t.Errorf("keys differ: %q vs %q", team1.Key(), team2.Key())
	}
	if !team1.Equal(team2) {
		t.Error("teams with identical holdings should be equal")
	}
}

func TestScoreAndSort(t *testing.T) {
	a, b, _ := fixture()

	empty := New(10)
	if empty.Score() != 0 {
		t.Errorf("empty Score() = %f, want 0", empty.Score())
	}

	one, err := New(10).Add(a, 1)
	if err != nil {
		t.Fatal(err)
	}
	two, err := one.Add(b, 1)
	if err != nil {
		t.Fatal(err)
	}

	// one: 2 slots over 2 roster spots. two: 4 slots over 3.
	if got := one.Score(); got != 1 {
		t.Errorf("one.Score() = %f, want 1", got)
	}
	if got := two.Score(); got <= one.Score() {
		t.Errorf("two.Score() = %f, want > %f", got, one.Score())
	}

	teams := []*Team{one, two}
	Sort(teams)
	if teams[0] != two {
		t.Errorf("Sort put %s first", teams[0])
	}
}

func TestIncrease(t *testing.T) {
	a, b, _ := fixture()
	alliances := []*data.Alliance{a, b}

	succ := New(10).Increase(alliances, Bump)
	if len(succ) != 2 {
		t.Fatalf("Increase returned %d teams, want 2", len(succ))
	}
	for _, s := range succ {
		if s.Size() != 2 {
			t.Errorf("successor %s has size %d, want 2", s, s.Size())
		}
	}

	// A full team has no viable steps and yields itself.
	full, err := New(2).Add(a, 1)
	if err != nil {
		t.Fatal(err)
	}
	succ = full.Increase(alliances, Bump)
	if len(succ) != 1 || succ[0] != full {
		t.Errorf("Increase on a stuck team = %v, want the team itself", succ)
	}
}

func TestRecursiveIncrease(t *testing.T) {
	a, _, _ := fixture()
	alliances := []*data.Alliance{a}

	leaves := New(2).RecursiveIncrease(context.Background(), alliances, Bump)
	if len(leaves) != 1 {
		t.Fatalf("RecursiveIncrease returned %d teams, want 1", len(leaves))
	}
	if e := leaves[0].Entry(a); e == nil || e.Level != 1 {
		t.Errorf("leaf = %s, want A at level 1", leaves[0])
	}

	// Cancellation returns the team itself.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	leaves = New(10).RecursiveIncrease(ctx, alliances, Bump)
	if len(leaves) != 1 || leaves[0].Entry(a) != nil {
		t.Errorf("cancelled search = %v, want just the starting team", leaves)
	}
}

func TestCloneIsDeep(t *testing.T) {
	a, _, heroes := fixture()

	orig, err := New(10).Add(a, 1)
	if err != nil {
		t.Fatal(err)
	}
	clone := orig.Clone()
	clone.Locked.Add(heroes["a3"])
	clone.set(a, 2)

	if orig.Locked.Has(heroes["a3"]) {
		t.Error("clone shares the locked set")
	}
	if orig.Entry(a).Level != 1 {
		t.Error("clone shares entries")
	}
}
