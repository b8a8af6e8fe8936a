// Package errors provides structured error handling for the simulation engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Axis registry errors
	CodeAxisUnknown           Code = "AXIS_UNKNOWN"
	CodeAxisSnapshotMalformed Code = "AXIS_SNAPSHOT_MALFORMED"

	// Rule loading errors
	CodeRulesFileMissing   Code = "RULES_FILE_MISSING"
	CodeRulesFileMalformed Code = "RULES_FILE_MALFORMED"

	// Trigger intake errors
	CodeTriggerUnknown            Code = "TRIGGER_UNKNOWN"
	CodeTriggerFieldMissing       Code = "TRIGGER_FIELD_MISSING"
	CodeTriggerFieldType          Code = "TRIGGER_FIELD_TYPE"
	CodeTriggerUnauthorizedSource Code = "TRIGGER_UNAUTHORIZED_SOURCE"
	CodeTriggerUnhandled          Code = "TRIGGER_UNHANDLED"

	// Event cycle errors
	CodeCycleNoEvent       Code = "CYCLE_NO_EVENT"
	CodeCycleNoInteraction Code = "CYCLE_NO_INTERACTION"
	CodeCycleUnknownDomain Code = "CYCLE_UNKNOWN_DOMAIN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
