package resolver

import (
	"testing"

	"github.com/mgracey/rapport/internal/dice"
	"github.com/mgracey/rapport/internal/roster"
	"github.com/mgracey/rapport/internal/rules"
	"github.com/mgracey/rapport/internal/selector"
)

func testCharacters() roster.Roster {
	return roster.Roster{
		{
			ID:         "ash",
			Skills:     map[string]int{"negotiation": 3},
			Attributes: map[string]int{"charisma": 4, "willpower": 2},
		},
		{ID: "boone"},
	}
}

func testInteractions(stages ...rules.Stage) map[string]map[string]rules.Interaction {
	return map[string]map[string]rules.Interaction{
		"social": {
			"friendly_chat": {RollType: "2d6", Stages: stages},
		},
	}
}

func testProfiles() map[string]rules.ResolutionProfile {
	return map[string]rules.ResolutionProfile{
		"social_grace": {
			Skill:             "negotiation",
			Attribute:         "charisma",
			AttributeLink:     1,
			DifficultyContext: "pressure",
		},
		"composure": {
			Skill:     "meditation",
			Attribute: "willpower",
		},
	}
}

func selected(modifiers map[string]int) *selector.SelectedInteraction {
	return &selector.SelectedInteraction{
		Name:         "friendly_chat",
		Domain:       "social",
		RollType:     "2d6",
		Participants: []string{"ash", "boone"},
		Modifiers:    modifiers,
	}
}

func TestResolveNoStagesIsAutomaticSuccess(t *testing.T) {
	r := New(testInteractions(), testProfiles(), dice.NewRoller(1))

	result := r.Resolve(selected(nil), testCharacters(), 0)

	if !result.Success {
		t.Fatal("expected automatic success")
	}
	if len(result.Stages) != 0 {
		t.Fatalf("expected no stage results, got %d", len(result.Stages))
	}
	if result.Tier() != TierSuccess {
		t.Fatalf("tier = %s, want %s", result.Tier(), TierSuccess)
	}
}

func TestResolveShortCircuitSkipsLaterStages(t *testing.T) {
	interactions := testInteractions(
		rules.Stage{Name: "approach", Profile: "social_grace", OnFailure: OnFailureNoInteraction},
		rules.Stage{Name: "banter", Profile: "social_grace"},
	)
	r := New(interactions, testProfiles(), dice.NewRoller(1))

	// Target 100 is unreachable, so the first stage always fails.
	result := r.Resolve(selected(nil), testCharacters(), 100)

	if !result.ShortCircuited {
		t.Fatal("expected short circuit")
	}
	if len(result.Stages) != 1 {
		t.Fatalf("expected 1 executed stage, got %d", len(result.Stages))
	}
	if result.Success {
		t.Fatal("short-circuited interaction must fail overall")
	}
	if result.Tier() != TierFailure {
		t.Fatalf("tier = %s, want %s", result.Tier(), TierFailure)
	}
}

func TestResolveRunsAllStagesWithoutShortCircuit(t *testing.T) {
	interactions := testInteractions(
		rules.Stage{Name: "approach", Profile: "social_grace"},
		rules.Stage{Name: "banter", Profile: "composure"},
	)
	r := New(interactions, testProfiles(), dice.NewRoller(1))

	result := r.Resolve(selected(nil), testCharacters(), 100)

	if len(result.Stages) != 2 {
		t.Fatalf("expected 2 executed stages, got %d", len(result.Stages))
	}
	if result.Success {
		t.Fatal("no stage can reach target 100")
	}
}

func TestResolveAggregatesStageFlags(t *testing.T) {
	interactions := testInteractions(
		rules.Stage{Name: "approach", Profile: "social_grace"},
		rules.Stage{Name: "banter", Profile: "composure"},
	)

	for seed := int64(0); seed < 100; seed++ {
		r := New(interactions, testProfiles(), dice.NewRoller(seed))
		result := r.Resolve(selected(nil), testCharacters(), DefaultTargetNumber)

		anySuccess, anyStunning, anyFumble := false, false, false
		for _, stage := range result.Stages {
			if stage.Success != stage.Check.Success {
				t.Fatalf("seed %d: stage success flag mismatch", seed)
			}
			if stage.Margin != stage.Check.Margin {
				t.Fatalf("seed %d: stage margin mismatch", seed)
			}
			anySuccess = anySuccess || stage.Success
			anyStunning = anyStunning || stage.Check.Stunning
			anyFumble = anyFumble || stage.Check.Fumble
		}
		if result.Success != anySuccess || result.GreatSuccess != anyStunning || result.Fumble != anyFumble {
			t.Fatalf("seed %d: aggregate flags diverge from stages: %+v", seed, result)
		}
	}
}

func TestResolveTrainedSkillModifiers(t *testing.T) {
	interactions := testInteractions(rules.Stage{Name: "approach", Profile: "social_grace"})
	r := New(interactions, testProfiles(), dice.NewRoller(9))

	// social_grace names the "pressure" difficulty context, so only that
	// modifier applies: 3 (skill) + 1 (link) - 2 (pressure) = 2.
	result := r.Resolve(selected(map[string]int{"pressure": -2, "crowded": -7}), testCharacters(), DefaultTargetNumber)

	check := result.Stages[0].Check
	if got := check.Total - check.Roll.Value; got != 2 {
		t.Fatalf("non-roll contribution = %d, want 2", got)
	}
}

func TestResolveUntrainedFallsBackToAttribute(t *testing.T) {
	interactions := testInteractions(rules.Stage{Name: "banter", Profile: "composure"})
	r := New(interactions, testProfiles(), dice.NewRoller(9))

	// ash lacks the meditation skill; composure falls back to willpower
	// (2) and, naming no difficulty context, sums all modifiers (-3).
	result := r.Resolve(selected(map[string]int{"crowded": -1, "pressure": -2}), testCharacters(), DefaultTargetNumber)

	check := result.Stages[0].Check
	if got := check.Total - check.Roll.Value; got != -1 {
		t.Fatalf("non-roll contribution = %d, want -1", got)
	}
}

func TestResolveUnknownProfileRollsBare(t *testing.T) {
	interactions := testInteractions(rules.Stage{Name: "approach", Profile: "missing"})
	r := New(interactions, testProfiles(), dice.NewRoller(9))

	result := r.Resolve(selected(map[string]int{"crowded": -1}), testCharacters(), DefaultTargetNumber)

	check := result.Stages[0].Check
	if got := check.Total - check.Roll.Value; got != -1 {
		t.Fatalf("non-roll contribution = %d, want -1", got)
	}
}

func TestTierGreatSuccess(t *testing.T) {
	result := ResolutionResult{Success: true, GreatSuccess: true}
	if result.Tier() != TierGreatSuccess {
		t.Fatalf("tier = %s, want %s", result.Tier(), TierGreatSuccess)
	}
}
