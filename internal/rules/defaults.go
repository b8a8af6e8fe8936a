package rules

// Trigger names understood by the relationship engine. The taxonomy is
// closed: adding a trigger means adding a schema, a payload type and an
// engine transition together.
const (
	TriggerTimeSkip           = "TIME_SKIP"
	TriggerRomanticRejection  = "ROMANTIC_REJECTION"
	TriggerRomanticAcceptance = "ROMANTIC_ACCEPTANCE"
	TriggerApologyAccepted    = "APOLOGY_ACCEPTED"
	TriggerBetrayalEvent      = "BETRAYAL_EVENT"
	TriggerHeroicAction       = "HEROIC_ACTION"
)

// Well-known emitting sources.
const (
	SourceOutcomeApplier = "outcome_applier"
	SourceCalendar       = "calendar"
	SourceGM             = "gm"
)

// DefaultTriggerSchemas returns the built-in trigger schema registry used
// when no triggers file is configured.
func DefaultTriggerSchemas() map[string]TriggerSchema {
	return map[string]TriggerSchema{
		TriggerTimeSkip: {
			Fields:  map[string]TriggerFieldType{"days_skipped": FieldInteger},
			Sources: []string{SourceCalendar, SourceGM},
		},
		TriggerRomanticRejection: {
			Fields: map[string]TriggerFieldType{
				"initiator": FieldCharacterID,
				"target":    FieldCharacterID,
				"context":   FieldString,
			},
			Sources: []string{SourceOutcomeApplier, SourceGM},
		},
		TriggerRomanticAcceptance: {
			Fields: map[string]TriggerFieldType{
				"initiator": FieldCharacterID,
				"target":    FieldCharacterID,
				"context":   FieldString,
			},
			Sources: []string{SourceOutcomeApplier, SourceGM},
		},
		TriggerApologyAccepted: {
			Fields: map[string]TriggerFieldType{
				"initiator": FieldCharacterID,
				"target":    FieldCharacterID,
			},
			Sources: []string{SourceOutcomeApplier, SourceGM},
		},
		TriggerBetrayalEvent: {
			Fields: map[string]TriggerFieldType{
				"initiator": FieldCharacterID,
				"target":    FieldCharacterID,
				"severity":  FieldInteger,
			},
			Sources: []string{SourceOutcomeApplier, SourceGM},
		},
		TriggerHeroicAction: {
			Fields: map[string]TriggerFieldType{
				"actor":     FieldCharacterID,
				"witnesses": FieldCharacterIDs,
			},
			Sources: []string{SourceOutcomeApplier, SourceGM},
		},
	}
}
