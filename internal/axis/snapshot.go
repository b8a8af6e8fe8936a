package axis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/mgracey/rapport/internal/errors"
)

// Snapshot is the persisted export of all axis state. Relationship entries
// are keyed by the canonical "idA:idB" form.
type Snapshot struct {
	CharacterAxes    map[string]map[string]State `json:"character_axes"`
	RelationshipAxes map[string]map[string]State `json:"relationship_axes"`
}

// Snapshot exports the full registry state. The export is normalized so
// that restoring it into a fresh registry reproduces an equal snapshot.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		CharacterAxes:    make(map[string]map[string]State),
		RelationshipAxes: make(map[string]map[string]State),
	}
	for id, axes := range r.characters {
		out := make(map[string]State, len(axes))
		for name, state := range axes {
			out[name] = normalize(state.clone())
		}
		snap.CharacterAxes[id] = out
	}
	for key, axes := range r.relationships {
		out := make(map[string]State, len(axes))
		for name, state := range axes {
			out[name] = normalize(state.clone())
		}
		snap.RelationshipAxes[key.String()] = out
	}
	return snap
}

func normalize(s State) State {
	if len(s.Flags) == 0 {
		s.Flags = nil
	}
	if len(s.Metadata) == 0 {
		s.Metadata = nil
	}
	return s
}

// Restore replaces all registry state with the snapshot contents. A
// snapshot referencing unknown axes fails without retaining partial state.
func (r *Registry) Restore(snap Snapshot) error {
	characters := make(map[string]map[string]*State)
	relationships := make(map[PairKey]map[string]*State)

	for id, axes := range snap.CharacterAxes {
		out := make(map[string]*State, len(axes))
		for name, state := range axes {
			def, err := r.definition(name, ScopeCharacter)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeAxisSnapshotMalformed,
					fmt.Sprintf("character %s references unknown axis %s", id, name), err)
			}
			restored := state.clone()
			restored.Value = def.Clamp(restored.Value)
			out[name] = &restored
		}
		characters[id] = out
	}

	for rawKey, axes := range snap.RelationshipAxes {
		key, err := ParsePairKey(rawKey)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeAxisSnapshotMalformed, "malformed relationship key", err)
		}
		out := make(map[string]*State, len(axes))
		for name, state := range axes {
			def, err := r.definition(name, ScopeRelationship)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeAxisSnapshotMalformed,
					fmt.Sprintf("pair %s references unknown axis %s", rawKey, name), err)
			}
			restored := state.clone()
			restored.Value = def.Clamp(restored.Value)
			out[name] = &restored
		}
		relationships[key] = out
	}

	r.characters = characters
	r.relationships = relationships
	return nil
}

// SaveFile writes the snapshot atomically: the file is fully written to a
// temp file in the same directory and renamed into place.
func (r *Registry) SaveFile(path string) error {
	data, err := json.MarshalIndent(r.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".axis-snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadFile restores the registry from a snapshot file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return apperrors.Wrap(apperrors.CodeAxisSnapshotMalformed, "decode snapshot", err)
	}
	return r.Restore(snap)
}
