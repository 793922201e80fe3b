package ui

import (
	"strings"
	"testing"

	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/team"
)

func testAlliance(name string, step, total int) *data.Alliance {
	return &data.Alliance{Name: name, Level: step, Total: total, Effect: name + " effect text"}
}

func testHero(name string, tier int, alliances ...*data.Alliance) *data.Hero {
	h := &data.Hero{Name: name, Tier: tier, Alliances: alliances}
	for _, a := range alliances {
		a.Heroes = append(a.Heroes, h)
	}
	return h
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Truncate = %q", got)
	}
}

func TestWrap(t *testing.T) {
	wrapped := Wrap("one two three four", 9)
	if !strings.Contains(wrapped, "\n") {
		t.Errorf("Wrap did not break the line: %q", wrapped)
	}
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if got := Wrap("short", 0); got != "short" {
		t.Errorf("Wrap with zero width = %q", got)
	}
}

func TestHeroTable(t *testing.T) {
	warrior := testAlliance("Warrior", 3, 9)
	demon := testAlliance("Demon", 1, 1)
	axe := testHero("Axe", 1, warrior)
	ck := testHero("Chaos Knight", 2, demon, warrior)
	ck.AceAlliance = demon

	out := HeroTable([]*data.Hero{axe, ck}, DefaultStyles())
	for _, want := range []string{"Tier", "Hero", "Alliances", "Axe", "Warrior", "Demon*"} {
		if !strings.Contains(out, want) {
			t.Errorf("HeroTable missing %q:\n%s", want, out)
		}
	}
}

func TestAllianceTable(t *testing.T) {
	knight := testAlliance("Knight", 2, 6)
	testHero("Luna", 3, knight)
	testHero("Abaddon", 1, knight)

	out := AllianceTable([]*data.Alliance{knight}, DefaultStyles())
	for _, want := range []string{"Alliance", "Sizes", "Knight", "2/4/6", "Abaddon(1)", "Luna(3)"} {
		if !strings.Contains(out, want) {
			t.Errorf("AllianceTable missing %q:\n%s", want, out)
		}
	}
	// Members sort by tier then name
	if strings.Index(out, "Abaddon") > strings.Index(out, "Luna") {
		t.Errorf("members out of order:\n%s", out)
	}
}

func TestHeroDetail(t *testing.T) {
	warrior := testAlliance("Warrior", 3, 9)
	axe := testHero("Axe", 1, warrior)
	axe.AceAlliance = warrior
	axe.Abilities = []string{"Berserker's Call"}
	axe.Description = "A sturdy frontliner."
	axe.Stats = []data.Stats{{Health: 750, Mana: 100, Damage: [2]int{50, 60}, AttackRate: 1.2, Armor: 10, MagicResist: 10}}

	out := HeroDetail(axe, DefaultStyles(), 80)
	for _, want := range []string{"Axe(1)", "Warrior (3/6/9)", "ace", "Berserker's Call", "frontliner", "750 HP"} {
		if !strings.Contains(out, want) {
			t.Errorf("HeroDetail missing %q:\n%s", want, out)
		}
	}
}

func TestAllianceDetail(t *testing.T) {
	knight := testAlliance("Knight", 2, 6)
	testHero("Abaddon", 1, knight)

	out := AllianceDetail(knight, DefaultStyles(), 80)
	for _, want := range []string{"Knight (2/4/6)", "Knight effect text", "Abaddon(1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("AllianceDetail missing %q:\n%s", want, out)
		}
	}
}

func TestTeamShort(t *testing.T) {
	knight := testAlliance("Knight", 2, 4)
	testHero("Abaddon", 1, knight)
	testHero("Luna", 3, knight)

	built, err := team.New(10).Add(knight, 1)
	if err != nil {
		t.Fatal(err)
	}

	out := TeamShort(built, DefaultStyles())
	for _, want := range []string{"Team 2/10", "Locked(2)", "Abaddon(1), Luna(3)", "Knight 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("TeamShort missing %q:\n%s", want, out)
		}
	}
}

func TestTeamDetail(t *testing.T) {
	knight := testAlliance("Knight", 2, 4)
	testHero("Abaddon", 1, knight)
	testHero("Luna", 3, knight)

	built, err := team.New(10).Add(knight, 1)
	if err != nil {
		t.Fatal(err)
	}

	out := TeamDetail(built, DefaultStyles())
	for _, want := range []string{"Locked 2 of Abaddon(1), Luna(3)", "Flex   0 of -", "Open   0 of -"} {
		if !strings.Contains(out, want) {
			t.Errorf("TeamDetail missing %q:\n%s", want, out)
		}
	}
}

func TestTeamSheet(t *testing.T) {
	knight := testAlliance("Knight", 2, 4)
	testHero("Abaddon", 1, knight)
	testHero("Luna", 3, knight)

	built, err := team.New(10).Add(knight, 1)
	if err != nil {
		t.Fatal(err)
	}

	out := TeamSheet(built, DefaultStyles())
	if !strings.HasPrefix(out, "1 0 1 0 0") {
		t.Errorf("tier counts wrong:\n%s", out)
	}
	for _, want := range []string{"1:", "3:", "1 Abaddon", "1 Luna"} {
		if !strings.Contains(out, want) {
			t.Errorf("TeamSheet missing %q:\n%s", want, out)
		}
	}
}
