package axis

import (
	apperrors "github.com/mgracey/rapport/internal/errors"
)

// State holds the live value of one axis instance.
type State struct {
	// Value is the current value, always within the definition bounds.
	Value int `json:"value"`
	// Flags holds named boolean markers scoped to this axis instance.
	Flags map[string]bool `json:"flags,omitempty"`
	// Metadata holds free-form annotations for external consumers.
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *State) clone() State {
	out := State{Value: s.Value}
	if len(s.Flags) > 0 {
		out.Flags = make(map[string]bool, len(s.Flags))
		for k, v := range s.Flags {
			out.Flags[k] = v
		}
	}
	if len(s.Metadata) > 0 {
		out.Metadata = make(map[string]any, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Registry is the sole store of axis state. State instances are created
// lazily on first access and live until restored or the process ends.
type Registry struct {
	defs          map[string]Definition
	characters    map[string]map[string]*State
	relationships map[PairKey]map[string]*State
}

// NewRegistry creates a registry from loaded definitions. An empty
// definition list falls back to DefaultDefinitions.
func NewRegistry(defs []Definition) *Registry {
	if len(defs) == 0 {
		defs = DefaultDefinitions()
	}
	byName := make(map[string]Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}
	return &Registry{
		defs:          byName,
		characters:    make(map[string]map[string]*State),
		relationships: make(map[PairKey]map[string]*State),
	}
}

// Definition returns the definition for an axis name.
func (r *Registry) Definition(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

func (r *Registry) definition(name string, scope Scope) (Definition, error) {
	def, ok := r.defs[name]
	if !ok || def.Scope != scope {
		return Definition{}, apperrors.WithMetadata(apperrors.CodeAxisUnknown,
			"axis is not defined", map[string]string{"axis": name, "scope": string(scope)})
	}
	return def, nil
}

func (r *Registry) characterState(id, name string, def Definition) *State {
	axes, ok := r.characters[id]
	if !ok {
		axes = make(map[string]*State)
		r.characters[id] = axes
	}
	state, ok := axes[name]
	if !ok {
		state = &State{Value: def.Clamp(0), Flags: make(map[string]bool)}
		axes[name] = state
	}
	return state
}

func (r *Registry) relationshipState(key PairKey, name string, def Definition) *State {
	axes, ok := r.relationships[key]
	if !ok {
		axes = make(map[string]*State)
		r.relationships[key] = axes
	}
	state, ok := axes[name]
	if !ok {
		state = &State{Value: def.Clamp(0), Flags: make(map[string]bool)}
		axes[name] = state
	}
	return state
}

// CharacterAxis returns the current value of a character axis.
func (r *Registry) CharacterAxis(id, name string) (int, error) {
	def, err := r.definition(name, ScopeCharacter)
	if err != nil {
		return 0, err
	}
	return r.characterState(id, name, def).Value, nil
}

// SetCharacterAxis sets a character axis, clamping silently.
func (r *Registry) SetCharacterAxis(id, name string, value int) error {
	def, err := r.definition(name, ScopeCharacter)
	if err != nil {
		return err
	}
	r.characterState(id, name, def).Value = def.Clamp(value)
	return nil
}

// ModifyCharacterAxis adds delta to a character axis, clamping silently,
// and returns the stored value.
func (r *Registry) ModifyCharacterAxis(id, name string, delta int) (int, error) {
	def, err := r.definition(name, ScopeCharacter)
	if err != nil {
		return 0, err
	}
	state := r.characterState(id, name, def)
	state.Value = def.Clamp(state.Value + delta)
	return state.Value, nil
}

// RelationshipAxis returns the current value of a relationship axis.
// Lookups are commutative in the character pair.
func (r *Registry) RelationshipAxis(a, b, name string) (int, error) {
	def, err := r.definition(name, ScopeRelationship)
	if err != nil {
		return 0, err
	}
	return r.relationshipState(NewPairKey(a, b), name, def).Value, nil
}

// SetRelationshipAxis sets a relationship axis, clamping silently.
func (r *Registry) SetRelationshipAxis(a, b, name string, value int) error {
	def, err := r.definition(name, ScopeRelationship)
	if err != nil {
		return err
	}
	r.relationshipState(NewPairKey(a, b), name, def).Value = def.Clamp(value)
	return nil
}

// ModifyRelationshipAxis adds delta to a relationship axis, clamping
// silently, and returns the stored value.
func (r *Registry) ModifyRelationshipAxis(a, b, name string, delta int) (int, error) {
	def, err := r.definition(name, ScopeRelationship)
	if err != nil {
		return 0, err
	}
	state := r.relationshipState(NewPairKey(a, b), name, def)
	state.Value = def.Clamp(state.Value + delta)
	return state.Value, nil
}

// SetFlag sets a named boolean flag on a relationship axis instance.
func (r *Registry) SetFlag(a, b, name, flag string, value bool) error {
	def, err := r.definition(name, ScopeRelationship)
	if err != nil {
		return err
	}
	state := r.relationshipState(NewPairKey(a, b), name, def)
	if state.Flags == nil {
		state.Flags = make(map[string]bool)
	}
	state.Flags[flag] = value
	return nil
}

// Flag reports a named boolean flag on a relationship axis instance.
func (r *Registry) Flag(a, b, name, flag string) (bool, error) {
	def, err := r.definition(name, ScopeRelationship)
	if err != nil {
		return false, err
	}
	return r.relationshipState(NewPairKey(a, b), name, def).Flags[flag], nil
}
