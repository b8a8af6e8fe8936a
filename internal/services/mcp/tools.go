package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mgracey/rapport/internal/axis"
	"github.com/mgracey/rapport/internal/dice"
	"github.com/mgracey/rapport/internal/relationship"
	"github.com/mgracey/rapport/internal/resolver"
	"github.com/mgracey/rapport/internal/rules"
	"github.com/mgracey/rapport/internal/session"
)

// AvailableEventsInput is the (empty) input for listing available events.
type AvailableEventsInput struct{}

// AvailableEventsResult lists the events able to fire right now.
type AvailableEventsResult struct {
	Events []string `json:"events" jsonschema:"event ids available against the current roster"`
}

// AvailableEventsTool defines the MCP tool schema for event availability.
func AvailableEventsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "available_events",
		Description: "Lists the events that can currently fire",
	}
}

// AvailableEventsHandler returns the handler for event availability.
func AvailableEventsHandler(sess *session.Session) mcp.ToolHandlerFor[AvailableEventsInput, AvailableEventsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ AvailableEventsInput) (*mcp.CallToolResult, AvailableEventsResult, error) {
		return nil, AvailableEventsResult{Events: sess.AvailableEvents()}, nil
	}
}

// RunEventCycleInput selects the event and context for one cycle.
type RunEventCycleInput struct {
	Event       string `json:"event,omitempty" jsonschema:"event id to run; empty picks a random available event"`
	Domain      string `json:"domain" jsonschema:"interaction domain"`
	Environment string `json:"environment,omitempty" jsonschema:"environment tag"`
	Tone        string `json:"tone,omitempty" jsonschema:"tone tag"`
}

// RunEventCycleResult summarizes one completed cycle.
type RunEventCycleResult struct {
	RequestID    string   `json:"request_id" jsonschema:"cycle correlation identifier"`
	Event        string   `json:"event" jsonschema:"event id that fired"`
	Interaction  string   `json:"interaction" jsonschema:"selected interaction"`
	Tier         string   `json:"tier" jsonschema:"outcome tier reached"`
	Participants []string `json:"participants" jsonschema:"participant character ids"`
	Effects      []string `json:"effects" jsonschema:"applied effect descriptions"`
	Forwarded    []string `json:"forwarded_triggers,omitempty" jsonschema:"outcome triggers accepted by the intake"`
}

// RunEventCycleTool defines the MCP tool schema for running a cycle.
func RunEventCycleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "run_event_cycle",
		Description: "Runs one full event cycle: injection, selection, resolution, outcome",
	}
}

// RunEventCycleHandler returns the handler for running event cycles.
func RunEventCycleHandler(sess *session.Session) mcp.ToolHandlerFor[RunEventCycleInput, RunEventCycleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RunEventCycleInput) (*mcp.CallToolResult, RunEventCycleResult, error) {
		var result *session.CycleResult
		var err error
		if input.Event == "" {
			result, err = sess.InjectRandomEvent(ctx, input.Domain, input.Environment, input.Tone)
		} else {
			result, err = sess.RunEventCycle(ctx, input.Event, input.Domain, input.Environment, input.Tone)
		}
		if err != nil {
			return nil, RunEventCycleResult{}, err
		}
		return nil, RunEventCycleResult{
			RequestID:    result.RequestID,
			Event:        result.Event.EventID,
			Interaction:  result.Interaction.Name,
			Tier:         result.Outcome.Tier,
			Participants: result.Event.Participants(),
			Effects:      result.Outcome.Effects,
			Forwarded:    result.ForwardedTriggers,
		}, nil
	}
}

// RelationshipQueryInput names the pair to inspect.
type RelationshipQueryInput struct {
	A string `json:"a" jsonschema:"first character id"`
	B string `json:"b" jsonschema:"second character id"`
}

// RelationshipQueryResult is the read-only relationship view of a pair.
type RelationshipQueryResult struct {
	Friendship        int     `json:"friendship" jsonschema:"friendship axis value"`
	Respect           int     `json:"respect" jsonschema:"respect axis value"`
	Romance           int     `json:"romance" jsonschema:"romance axis value"`
	SuppressRomantic bool    `json:"suppress_romantic" jsonschema:"whether romantic content is suppressed"`
	SuppressFriendly bool    `json:"suppress_friendly" jsonschema:"whether friendly content is suppressed"`
	Awkward          bool    `json:"awkward" jsonschema:"whether the pair is in an awkward spot"`
	RomanticWeight   float64 `json:"romantic_weight" jsonschema:"bounded weight modifier for romantic interactions"`
	FriendlyWeight   float64 `json:"friendly_weight" jsonschema:"bounded weight modifier for friendly interactions"`
	BondingWeight    float64 `json:"bonding_weight" jsonschema:"bounded weight modifier for bonding interactions"`
}

// RelationshipQueryTool defines the MCP tool schema for relationship reads.
func RelationshipQueryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "relationship_query",
		Description: "Reads the relationship state and suppression predicates of a character pair",
	}
}

// RelationshipQueryHandler returns the handler for relationship reads.
func RelationshipQueryHandler(sess *session.Session) mcp.ToolHandlerFor[RelationshipQueryInput, RelationshipQueryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RelationshipQueryInput) (*mcp.CallToolResult, RelationshipQueryResult, error) {
		query := sess.Query()
		return nil, RelationshipQueryResult{
			Friendship:       query.AxisValue(input.A, input.B, axis.AxisFriendship),
			Respect:          query.AxisValue(input.A, input.B, axis.AxisRespect),
			Romance:          query.AxisValue(input.A, input.B, axis.AxisRomance),
			SuppressRomantic: query.ShouldSuppressRomantic(input.A, input.B),
			SuppressFriendly: query.ShouldSuppressFriendly(input.A, input.B),
			Awkward:          query.IsAwkward(input.A, input.B),
			RomanticWeight:   query.InteractionWeightModifier(input.A, input.B, relationship.InteractionRomantic),
			FriendlyWeight:   query.InteractionWeightModifier(input.A, input.B, relationship.InteractionFriendly),
			BondingWeight:    query.InteractionWeightModifier(input.A, input.B, relationship.InteractionBonding),
		}, nil
	}
}

// EmitTriggerInput carries an externally sourced trigger.
type EmitTriggerInput struct {
	Name    string         `json:"name" jsonschema:"trigger name from the taxonomy"`
	Payload map[string]any `json:"payload" jsonschema:"trigger payload matching its schema"`
}

// EmitTriggerResult reports the engine state after dispatch.
type EmitTriggerResult struct {
	Accepted   bool `json:"accepted" jsonschema:"whether the intake accepted the trigger"`
	CurrentDay int  `json:"current_day" jsonschema:"campaign day after dispatch"`
}

// EmitTriggerTool defines the MCP tool schema for trigger emission.
func EmitTriggerTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "emit_trigger",
		Description: "Validates and dispatches a relationship trigger as the GM",
	}
}

// EmitTriggerHandler returns the handler for GM-sourced triggers.
func EmitTriggerHandler(sess *session.Session) mcp.ToolHandlerFor[EmitTriggerInput, EmitTriggerResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EmitTriggerInput) (*mcp.CallToolResult, EmitTriggerResult, error) {
		if err := sess.EmitTrigger(ctx, input.Name, input.Payload, rules.SourceGM); err != nil {
			return nil, EmitTriggerResult{}, err
		}
		return nil, EmitTriggerResult{Accepted: true, CurrentDay: sess.CurrentDay()}, nil
	}
}

// RollCheckInput configures one standalone skill check.
type RollCheckInput struct {
	TargetNumber   int    `json:"target_number,omitempty" jsonschema:"target number; defaults to the standard check target"`
	Trained        bool   `json:"trained" jsonschema:"whether the actor is trained in the skill"`
	SkillLevel     int    `json:"skill_level,omitempty" jsonschema:"trained skill level"`
	AttributeLink  int    `json:"attribute_link,omitempty" jsonschema:"linked attribute modifier for trained checks"`
	AttributeScore int    `json:"attribute_score,omitempty" jsonschema:"attribute score for untrained checks"`
	Modifiers      int    `json:"modifiers,omitempty" jsonschema:"situational modifiers"`
	Seed           *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic rolls"`
}

// RollCheckResult reports one resolved check.
type RollCheckResult struct {
	Dice     []int `json:"dice" jsonschema:"individual die results including explosions"`
	Roll     int   `json:"roll" jsonschema:"dice total"`
	Total    int   `json:"total" jsonschema:"roll plus skill and modifiers"`
	Success  bool  `json:"success" jsonschema:"whether the check succeeded"`
	Margin   int   `json:"margin" jsonschema:"total minus target number"`
	Fumble   bool  `json:"fumble" jsonschema:"natural 2, unconditional failure"`
	Stunning bool  `json:"stunning" jsonschema:"exploded natural 12, stunning success"`
}

// RollCheckTool defines the MCP tool schema for standalone checks.
func RollCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_check",
		Description: "Rolls a 2d6 skill check with fumble and exploding-12 rules",
	}
}

// RollCheckHandler returns the handler for standalone checks.
func RollCheckHandler() mcp.ToolHandlerFor[RollCheckInput, RollCheckResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollCheckInput) (*mcp.CallToolResult, RollCheckResult, error) {
		seed := int64(0)
		if input.Seed != nil {
			seed = *input.Seed
		} else {
			generated, err := dice.NewSeed()
			if err != nil {
				return nil, RollCheckResult{}, err
			}
			seed = generated
		}

		targetNumber := input.TargetNumber
		if targetNumber == 0 {
			targetNumber = resolver.DefaultTargetNumber
		}

		roller := dice.NewRoller(seed)
		check := roller.Check(dice.CheckRequest{
			TargetNumber:   targetNumber,
			Trained:        input.Trained,
			SkillLevel:     input.SkillLevel,
			AttributeLink:  input.AttributeLink,
			AttributeScore: input.AttributeScore,
			Modifiers:      input.Modifiers,
		})

		faces := []int{check.Roll.Dice[0], check.Roll.Dice[1]}
		faces = append(faces, check.Roll.Extra...)
		return nil, RollCheckResult{
			Dice:     faces,
			Roll:     check.Roll.Value,
			Total:    check.Total,
			Success:  check.Success,
			Margin:   check.Margin,
			Fumble:   check.Fumble,
			Stunning: check.Stunning,
		}, nil
	}
}
