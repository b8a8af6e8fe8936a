package mcp

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/mgracey/rapport/internal/axis"
	"github.com/mgracey/rapport/internal/injector"
	"github.com/mgracey/rapport/internal/relationship"
	"github.com/mgracey/rapport/internal/roster"
	"github.com/mgracey/rapport/internal/rules"
	"github.com/mgracey/rapport/internal/session"
)

func fixtureSession() *session.Session {
	set := &rules.Set{
		Events: map[string]rules.Event{
			"tavern_night": {Name: "Tavern Night", Category: "social"},
		},
		EventRules: map[string]rules.EventRule{
			"tavern_night": {
				Requires: rules.Requirements{MinCount: 2},
				Primary:  rules.PrimarySelection{Kind: injector.KindPair},
			},
		},
		Interactions: map[string]map[string]rules.Interaction{
			"social": {"friendly_chat": {RollType: "none"}},
		},
		Environments: map[string]rules.ModifierTable{"tavern": {}},
		Tones:        map[string]rules.ModifierTable{"relaxed": {}},
		Outcomes: map[string]rules.OutcomeTable{
			"friendly_chat": {
				OnSuccess: &rules.Effects{AxisDelta: map[string]int{axis.AxisFriendship: 2}},
			},
		},
		Triggers: rules.DefaultTriggerSchemas(),
		Axes:     axis.DefaultDefinitions(),
	}
	characters := roster.Roster{
		{ID: "ash", Age: 30, Profession: "guard"},
		{ID: "boone", Age: 28, Profession: "guard"},
	}
	return session.New(set, characters, session.Options{
		Seed:   1,
		Logger: log.New(&bytes.Buffer{}, "", 0),
	})
}

func TestAvailableEventsHandler(t *testing.T) {
	handler := AvailableEventsHandler(fixtureSession())

	_, result, err := handler(context.Background(), nil, AvailableEventsInput{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0] != "tavern_night" {
		t.Fatalf("events = %v", result.Events)
	}
}

func TestRunEventCycleHandler(t *testing.T) {
	sess := fixtureSession()
	handler := RunEventCycleHandler(sess)

	_, result, err := handler(context.Background(), nil, RunEventCycleInput{
		Event:       "tavern_night",
		Domain:      "social",
		Environment: "tavern",
		Tone:        "relaxed",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Interaction != "friendly_chat" {
		t.Fatalf("interaction = %s", result.Interaction)
	}
	if len(result.Participants) != 2 {
		t.Fatalf("participants = %v", result.Participants)
	}
	if len(result.Effects) == 0 {
		t.Fatal("expected applied effect descriptions")
	}
}

func TestRunEventCycleHandlerRandomEvent(t *testing.T) {
	handler := RunEventCycleHandler(fixtureSession())

	_, result, err := handler(context.Background(), nil, RunEventCycleInput{
		Domain:      "social",
		Environment: "tavern",
		Tone:        "relaxed",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Event != "tavern_night" {
		t.Fatalf("event = %s", result.Event)
	}
}

func TestRelationshipQueryHandler(t *testing.T) {
	sess := fixtureSession()
	if err := sess.Registry().SetRelationshipAxis("ash", "boone", axis.AxisFriendship, -60); err != nil {
		t.Fatalf("set: %v", err)
	}
	handler := RelationshipQueryHandler(sess)

	_, result, err := handler(context.Background(), nil, RelationshipQueryInput{A: "ash", B: "boone"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Friendship != -60 {
		t.Fatalf("friendship = %d", result.Friendship)
	}
	if !result.SuppressFriendly {
		t.Fatal("expected friendly suppression at -60")
	}
	if result.FriendlyWeight != relationship.MinWeightModifier {
		t.Fatalf("friendly weight = %v, want floor %v", result.FriendlyWeight, relationship.MinWeightModifier)
	}
	if result.RomanticWeight != 1.0 {
		t.Fatalf("romantic weight = %v, want 1.0 with neutral romance", result.RomanticWeight)
	}
}

func TestEmitTriggerHandler(t *testing.T) {
	sess := fixtureSession()
	handler := EmitTriggerHandler(sess)

	_, result, err := handler(context.Background(), nil, EmitTriggerInput{
		Name:    rules.TriggerHeroicAction,
		Payload: map[string]any{"actor": "ash", "witnesses": []any{"boone"}},
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.Accepted {
		t.Fatal("expected trigger to be accepted")
	}
	if got := sess.Query().AxisValue("ash", "boone", axis.AxisRespect); got != 5 {
		t.Fatalf("respect = %d, want 5", got)
	}
}

func TestEmitTriggerHandlerRejectsBadPayload(t *testing.T) {
	handler := EmitTriggerHandler(fixtureSession())

	_, _, err := handler(context.Background(), nil, EmitTriggerInput{
		Name:    rules.TriggerHeroicAction,
		Payload: map[string]any{"actor": "ash"},
	})
	if err == nil {
		t.Fatal("expected validation error for missing witnesses")
	}
}

func TestRollCheckHandlerDeterministicSeed(t *testing.T) {
	handler := RollCheckHandler()
	seed := int64(11)

	_, first, err := handler(context.Background(), nil, RollCheckInput{
		Trained:    true,
		SkillLevel: 3,
		Seed:       &seed,
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	_, second, err := handler(context.Background(), nil, RollCheckInput{
		Trained:    true,
		SkillLevel: 3,
		Seed:       &seed,
	})
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if first.Roll != second.Roll || first.Total != second.Total {
		t.Fatalf("seeded rolls diverged: %+v vs %+v", first, second)
	}
	if first.Total != first.Roll+3 {
		t.Fatalf("total = %d, want roll %d + 3", first.Total, first.Roll)
	}
}
