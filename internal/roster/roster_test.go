package roster

import "testing"

func testRoster() Roster {
	return Roster{
		{ID: "ash", Age: 28, Profession: "mechwarrior", UnitID: "alpha"},
		{ID: "boone", Age: 35, Profession: "tech", UnitID: "alpha"},
		{ID: "cole", Age: 19, Profession: "mechwarrior", UnitID: "bravo"},
		{ID: "dara", Age: 42, Profession: "doctor"},
	}
}

func TestByID(t *testing.T) {
	r := testRoster()

	c, ok := r.ByID("boone")
	if !ok {
		t.Fatal("expected boone to be found")
	}
	if c.Profession != "tech" {
		t.Fatalf("profession = %q, want tech", c.Profession)
	}
	if _, ok := r.ByID("nobody"); ok {
		t.Fatal("expected missing character to report not found")
	}
}

func TestFilterProfession(t *testing.T) {
	r := testRoster()

	warriors := r.FilterProfession([]string{"mechwarrior"})
	if len(warriors) != 2 {
		t.Fatalf("expected 2 mechwarriors, got %d", len(warriors))
	}

	all := r.FilterProfession(nil)
	if len(all) != len(r) {
		t.Fatalf("empty filter should match everyone, got %d", len(all))
	}
}

func TestUnitMates(t *testing.T) {
	r := testRoster()

	mates := r.UnitMates("ash")
	if len(mates) != 1 || mates[0].ID != "boone" {
		t.Fatalf("unexpected unit mates: %+v", mates)
	}

	if mates := r.UnitMates("dara"); mates != nil {
		t.Fatalf("character without unit should have no mates, got %+v", mates)
	}
	if mates := r.UnitMates("ghost"); mates != nil {
		t.Fatalf("unknown character should have no mates, got %+v", mates)
	}
}

func TestSkillLevelAndAttribute(t *testing.T) {
	c := Character{
		Skills:     map[string]int{"negotiation": 3},
		Attributes: map[string]int{"charisma": 5},
	}

	level, trained := c.SkillLevel("negotiation")
	if !trained || level != 3 {
		t.Fatalf("SkillLevel = (%d, %v), want (3, true)", level, trained)
	}
	if _, trained := c.SkillLevel("gunnery"); trained {
		t.Fatal("expected untrained skill to report false")
	}
	if got := c.Attribute("charisma"); got != 5 {
		t.Fatalf("Attribute = %d, want 5", got)
	}
	if got := c.Attribute("strength"); got != 0 {
		t.Fatalf("absent attribute = %d, want 0", got)
	}
}
