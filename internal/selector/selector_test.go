package selector

import (
	"math/rand"
	"testing"

	"github.com/mgracey/rapport/internal/rules"
)

func testTables() (map[string]map[string]rules.Interaction, map[string]rules.ModifierTable, map[string]rules.ModifierTable) {
	interactions := map[string]map[string]rules.Interaction{
		"social": {
			"friendly_chat": {RollType: "2d6"},
			"heated_debate": {RollType: "2d6"},
		},
		"operational": {
			"joint_repair": {RollType: "2d6"},
		},
	}
	environments := map[string]rules.ModifierTable{
		"mess_hall": {
			WeightDeltas: map[string]float64{"friendly_chat": 9.0, "heated_debate": -1.0},
			Modifiers:    map[string]int{"crowded": -1},
		},
		"briefing_room": {
			AllowedDomains: []string{"operational"},
		},
	}
	tones := map[string]rules.ModifierTable{
		"tense": {
			WeightDeltas: map[string]float64{"heated_debate": 0.5},
			Modifiers:    map[string]int{"crowded": -1, "pressure": -2},
		},
	}
	return interactions, environments, tones
}

func newTestSelector(seed int64) *Selector {
	interactions, environments, tones := testTables()
	return New(interactions, environments, tones, rand.New(rand.NewSource(seed)))
}

func TestWeightedProbability(t *testing.T) {
	s := newTestSelector(1)

	if got := s.WeightedProbability("friendly_chat", "mess_hall", "tense"); got != 10.0 {
		t.Fatalf("weight = %v, want 10.0", got)
	}
	if got := s.WeightedProbability("heated_debate", "mess_hall", "tense"); got != 0.5 {
		t.Fatalf("weight = %v, want 0.5", got)
	}
	if got := s.WeightedProbability("friendly_chat", "", ""); got != BaseWeight {
		t.Fatalf("weight without tags = %v, want %v", got, BaseWeight)
	}
}

func TestWeightedProbabilityFlooredAtZero(t *testing.T) {
	interactions := map[string]map[string]rules.Interaction{
		"social": {"insult_match": {RollType: "2d6"}},
	}
	environments := map[string]rules.ModifierTable{
		"chapel": {WeightDeltas: map[string]float64{"insult_match": -5.0}},
	}
	s := New(interactions, environments, nil, rand.New(rand.NewSource(1)))

	if got := s.WeightedProbability("insult_match", "chapel", ""); got != 0 {
		t.Fatalf("weight = %v, want 0", got)
	}
}

// TestSelectZeroWeightNeverChosen verifies weighted selection across
// repeated seeded trials: a zero-weight candidate is never drawn.
func TestSelectZeroWeightNeverChosen(t *testing.T) {
	interactions := map[string]map[string]rules.Interaction{
		"social": {
			"likely":     {RollType: "2d6"},
			"impossible": {RollType: "2d6"},
		},
	}
	environments := map[string]rules.ModifierTable{
		"yard": {WeightDeltas: map[string]float64{"likely": 9.0, "impossible": -1.0}},
	}

	for seed := int64(0); seed < 200; seed++ {
		s := New(interactions, environments, nil, rand.New(rand.NewSource(seed)))
		selected := s.Select("social", []string{"ash", "boone"}, "yard", "", nil)
		if selected == nil {
			t.Fatalf("seed %d: expected a selection", seed)
		}
		if selected.Name != "likely" {
			t.Fatalf("seed %d: zero-weight interaction selected", seed)
		}
	}
}

func TestSelectZeroTotalWeight(t *testing.T) {
	interactions := map[string]map[string]rules.Interaction{
		"social": {"friendly_chat": {RollType: "2d6"}},
	}
	environments := map[string]rules.ModifierTable{
		"void": {WeightDeltas: map[string]float64{"friendly_chat": -1.0}},
	}
	s := New(interactions, environments, nil, rand.New(rand.NewSource(1)))

	if got := s.Select("social", nil, "void", "", nil); got != nil {
		t.Fatalf("expected nil for zero total weight, got %+v", got)
	}
}

func TestSelectRespectsEnvironmentDomainRestriction(t *testing.T) {
	s := newTestSelector(1)

	if got := s.Select("social", nil, "briefing_room", "", nil); got != nil {
		t.Fatalf("social domain should be barred in briefing_room, got %+v", got)
	}
	if got := s.Select("operational", nil, "briefing_room", "", nil); got == nil {
		t.Fatal("operational domain should be permitted in briefing_room")
	}
}

func TestSelectUnknownDomain(t *testing.T) {
	s := newTestSelector(1)

	if got := s.Select("arcane", nil, "", "", nil); got != nil {
		t.Fatalf("expected nil for unknown domain, got %+v", got)
	}
}

func TestSelectAllowedListRestrictsCandidates(t *testing.T) {
	s := newTestSelector(3)

	for i := 0; i < 20; i++ {
		got := s.Select("social", nil, "", "", []string{"heated_debate"})
		if got == nil || got.Name != "heated_debate" {
			t.Fatalf("expected heated_debate, got %+v", got)
		}
	}
}

func TestSelectMergesModifiers(t *testing.T) {
	s := newTestSelector(5)

	got := s.Select("social", []string{"ash", "boone"}, "mess_hall", "tense", nil)
	if got == nil {
		t.Fatal("expected a selection")
	}
	if got.Modifiers["crowded"] != -2 {
		t.Fatalf("crowded modifier = %d, want -2 (summed)", got.Modifiers["crowded"])
	}
	if got.Modifiers["pressure"] != -2 {
		t.Fatalf("pressure modifier = %d, want -2", got.Modifiers["pressure"])
	}
	if got.Domain != "social" || got.Environment != "mess_hall" || got.Tone != "tense" {
		t.Fatalf("context not carried: %+v", got)
	}
	if len(got.Participants) != 2 {
		t.Fatalf("participants not carried: %+v", got)
	}
}
