// Package axis implements the registry of bounded numeric character and
// relationship axes. The registry is the only store for axis values; the
// outcome applier is its only writer.
package axis

// Scope identifies whether an axis describes a character or a relationship.
type Scope string

const (
	// ScopeCharacter marks an axis stored per character.
	ScopeCharacter Scope = "character"
	// ScopeRelationship marks an axis stored per unordered character pair.
	ScopeRelationship Scope = "relationship"
)

// Definition describes one axis. Definitions are immutable after load.
type Definition struct {
	// Name identifies the axis.
	Name string `json:"name"`
	// Scope selects character or relationship storage.
	Scope Scope `json:"scope"`
	// Min and Max bound stored values. Writes clamp silently.
	Min int `json:"min"`
	Max int `json:"max"`
	// Decay marks the axis for time-based decay by external systems.
	Decay bool `json:"decay"`
	// Gating marks the axis as usable in availability gates.
	Gating bool `json:"gating"`
}

// Clamp returns value constrained to the definition bounds.
func (d Definition) Clamp(value int) int {
	if value < d.Min {
		return d.Min
	}
	if value > d.Max {
		return d.Max
	}
	return value
}

// Default axis names.
const (
	AxisFriendship = "friendship"
	AxisRespect    = "respect"
	AxisRomance    = "romance"
	AxisConfidence = "confidence"
	AxisReputation = "reputation"
)

// DefaultDefinitions returns the built-in axis set used when no definitions
// file is configured. This is the documented safe fallback for a missing
// axis-definition table.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: AxisFriendship, Scope: ScopeRelationship, Min: -100, Max: 100, Decay: true, Gating: true},
		{Name: AxisRespect, Scope: ScopeRelationship, Min: -100, Max: 100, Decay: true, Gating: true},
		{Name: AxisRomance, Scope: ScopeRelationship, Min: -100, Max: 100, Gating: true},
		{Name: AxisConfidence, Scope: ScopeCharacter, Min: 0, Max: 100},
		{Name: AxisReputation, Scope: ScopeCharacter, Min: -50, Max: 50},
	}
}
