// Package rules defines the declarative tables driving event injection,
// interaction selection, resolution and outcome application. Tables are
// loaded once at startup from JSON files that may carry // and /* */
// comments, and are read-only afterwards.
package rules

import "github.com/mgracey/rapport/internal/axis"

// Event is one entry of the event catalog.
type Event struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// PrimarySelection describes how primary participants are chosen.
// Kind is one of "single_person", "pair" or "multiple_persons".
type PrimarySelection struct {
	Kind        string   `json:"kind"`
	Min         int      `json:"min,omitempty"`
	Max         int      `json:"max,omitempty"`
	Professions []string `json:"professions,omitempty"`
}

// DerivedSelection resolves additional participants from a relation token.
type DerivedSelection struct {
	// Relation is one of the supported relation tokens: "all_present",
	// "unit_mates". Unsupported relations resolve to no participants.
	Relation string `json:"relation"`
}

// Requirements gate event availability against the live roster.
type Requirements struct {
	MinCount    int      `json:"min_count"`
	Professions []string `json:"professions,omitempty"`
	AgeGroups   []string `json:"age_groups,omitempty"`
}

// EventRule is the per-event selection rule.
type EventRule struct {
	Requires Requirements       `json:"requires"`
	Primary  PrimarySelection   `json:"primary"`
	Derived  []DerivedSelection `json:"derived,omitempty"`
}

// AgeBand names an inclusive age range.
type AgeBand struct {
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

// Stage is one resolution stage of an interaction.
type Stage struct {
	Name    string `json:"name"`
	Profile string `json:"profile"`
	// OnFailure set to "no_interaction" short-circuits the whole
	// interaction when this stage fails.
	OnFailure string `json:"on_failure,omitempty"`
}

// Interaction is one catalog entry within a domain.
type Interaction struct {
	RollType string  `json:"roll_type"`
	Stages   []Stage `json:"stages,omitempty"`
}

// Modifier tables attach weight deltas and numeric modifiers to an
// environment or tone tag.
type ModifierTable struct {
	// WeightDeltas adjust interaction selection weights by interaction name.
	WeightDeltas map[string]float64 `json:"weight_deltas,omitempty"`
	// Modifiers are numeric check modifiers merged into the selected
	// interaction, keyed by modifier name.
	Modifiers map[string]int `json:"modifiers,omitempty"`
	// AllowedDomains, when non-empty on an environment, restricts which
	// interaction domains may occur there.
	AllowedDomains []string `json:"allowed_domains,omitempty"`
}

// ResolutionProfile maps a stage to the skill or attribute backing it.
type ResolutionProfile struct {
	Skill string `json:"skill,omitempty"`
	// Attribute is the linked attribute when trained, and the fallback
	// score when the character lacks the skill.
	Attribute string `json:"attribute"`
	// AttributeLink is the modifier contributed by the linked attribute
	// for trained checks.
	AttributeLink int `json:"attribute_link,omitempty"`
	// DifficultyContext names the merged-modifier key supplying the
	// situational difficulty for this stage.
	DifficultyContext string `json:"difficulty_context,omitempty"`
}

// Effects is one outcome-tier entry of an outcome table. Only effects
// declared here are ever applied.
type Effects struct {
	AxisDelta           map[string]int `json:"axis_delta,omitempty"`
	XPDelta             int            `json:"xp_delta,omitempty"`
	FatigueDelta        int            `json:"fatigue_delta,omitempty"`
	ConfidenceDelta     int            `json:"confidence_delta,omitempty"`
	ReputationPoolDelta int            `json:"reputation_pool_delta,omitempty"`
	SetFlags            []string       `json:"set_flags,omitempty"`
	EmitTriggers        []string       `json:"emit_triggers,omitempty"`
	Descriptions        []string       `json:"descriptions,omitempty"`
}

// OutcomeTable holds the per-tier effects for one interaction.
type OutcomeTable struct {
	OnFailure      *Effects `json:"on_failure,omitempty"`
	OnSuccess      *Effects `json:"on_success,omitempty"`
	OnGreatSuccess *Effects `json:"on_great_success,omitempty"`
}

// TriggerFieldType tags the runtime type a trigger payload field must have.
type TriggerFieldType string

const (
	FieldInteger      TriggerFieldType = "integer"
	FieldString       TriggerFieldType = "string"
	FieldCharacterID  TriggerFieldType = "character_id"
	FieldCharacterIDs TriggerFieldType = "character_id[]"
)

// TriggerSchema declares a trigger's required payload and emitters.
type TriggerSchema struct {
	Fields  map[string]TriggerFieldType `json:"fields"`
	Sources []string                    `json:"sources"`
}

// Set aggregates every loaded table.
type Set struct {
	Events     map[string]Event
	EventRules map[string]EventRule
	AgeBands   []AgeBand
	// Interactions maps domain name to interaction name to definition.
	Interactions map[string]map[string]Interaction
	Environments map[string]ModifierTable
	Tones        map[string]ModifierTable
	Profiles     map[string]ResolutionProfile
	Outcomes     map[string]OutcomeTable
	Triggers     map[string]TriggerSchema
	Axes         []axis.Definition
}
