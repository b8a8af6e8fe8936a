// Package outcome implements the fourth pipeline layer. The applier is the
// only layer that mutates the axis registry, and it applies exactly the
// effects declared in the loaded outcome tables: nothing is ever invented,
// and a missing tier entry is a no-op.
package outcome

import (
	"fmt"
	"sort"

	"github.com/mgracey/rapport/internal/axis"
	apperrors "github.com/mgracey/rapport/internal/errors"
	"github.com/mgracey/rapport/internal/resolver"
	"github.com/mgracey/rapport/internal/rules"
	"github.com/mgracey/rapport/internal/selector"
)

// CharacterDeltas are per-participant numeric deltas recorded for the
// external character model to apply. Confidence is absent here because it
// routes through the axis registry instead.
type CharacterDeltas struct {
	XP             int
	Fatigue        int
	ReputationPool int
}

// AppliedOutcome records everything the applier did for one interaction.
type AppliedOutcome struct {
	Interaction string
	Tier        string
	// Effects lists human-readable descriptions of applied effects, in
	// application order.
	Effects []string
	// EmittedTriggers lists trigger names recorded for the intake
	// adapter. The applier does not validate or dispatch them.
	EmittedTriggers []string
	// CharacterDeltas holds plain deltas per participant ID.
	CharacterDeltas map[string]CharacterDeltas
}

// Applier applies declared outcome effects to the axis registry.
type Applier struct {
	outcomes map[string]rules.OutcomeTable
	registry *axis.Registry
}

// New creates an applier over the loaded outcome tables and the registry
// it is allowed to write.
func New(outcomes map[string]rules.OutcomeTable, registry *axis.Registry) *Applier {
	return &Applier{outcomes: outcomes, registry: registry}
}

// Apply looks up the effects declared for the resolution's outcome tier
// and applies them. Relationship axis deltas apply pairwise across every
// unordered participant pair; character axis deltas apply to each
// participant. A missing table or tier entry is a no-op.
func (a *Applier) Apply(selected *selector.SelectedInteraction, resolution resolver.ResolutionResult) (*AppliedOutcome, error) {
	applied := &AppliedOutcome{
		Interaction:     selected.Name,
		Tier:            resolution.Tier(),
		CharacterDeltas: make(map[string]CharacterDeltas),
	}

	effects := a.tierEffects(selected.Name, applied.Tier)
	if effects == nil {
		return applied, nil
	}

	participants := selected.Participants

	if err := a.applyAxisDeltas(applied, effects, participants); err != nil {
		return nil, err
	}
	a.applyCharacterDeltas(applied, effects, participants)
	if err := a.applyConfidence(applied, effects, participants); err != nil {
		return nil, err
	}
	if err := a.applyFlags(applied, effects, participants); err != nil {
		return nil, err
	}

	applied.Effects = append(applied.Effects, effects.Descriptions...)
	applied.EmittedTriggers = append(applied.EmittedTriggers, effects.EmitTriggers...)
	return applied, nil
}

func (a *Applier) tierEffects(interaction, tier string) *rules.Effects {
	table, ok := a.outcomes[interaction]
	if !ok {
		return nil
	}
	switch tier {
	case resolver.TierFailure:
		return table.OnFailure
	case resolver.TierSuccess:
		return table.OnSuccess
	case resolver.TierGreatSuccess:
		return table.OnGreatSuccess
	default:
		return nil
	}
}

func (a *Applier) applyAxisDeltas(applied *AppliedOutcome, effects *rules.Effects, participants []string) error {
	names := make([]string, 0, len(effects.AxisDelta))
	for name := range effects.AxisDelta {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		delta := effects.AxisDelta[name]
		def, ok := a.registry.Definition(name)
		if !ok {
			return apperrors.WithMetadata(apperrors.CodeAxisUnknown,
				"outcome table references an undefined axis", map[string]string{"axis": name})
		}

		switch def.Scope {
		case axis.ScopeRelationship:
			for i := 0; i < len(participants); i++ {
				for j := i + 1; j < len(participants); j++ {
					value, err := a.registry.ModifyRelationshipAxis(participants[i], participants[j], name, delta)
					if err != nil {
						return err
					}
					applied.Effects = append(applied.Effects,
						fmt.Sprintf("%s %+d between %s and %s (now %d)", name, delta, participants[i], participants[j], value))
				}
			}
		case axis.ScopeCharacter:
			for _, id := range participants {
				value, err := a.registry.ModifyCharacterAxis(id, name, delta)
				if err != nil {
					return err
				}
				applied.Effects = append(applied.Effects,
					fmt.Sprintf("%s %+d for %s (now %d)", name, delta, id, value))
			}
		}
	}
	return nil
}

func (a *Applier) applyCharacterDeltas(applied *AppliedOutcome, effects *rules.Effects, participants []string) {
	if effects.XPDelta == 0 && effects.FatigueDelta == 0 && effects.ReputationPoolDelta == 0 {
		return
	}
	for _, id := range participants {
		deltas := applied.CharacterDeltas[id]
		deltas.XP += effects.XPDelta
		deltas.Fatigue += effects.FatigueDelta
		deltas.ReputationPool += effects.ReputationPoolDelta
		applied.CharacterDeltas[id] = deltas
	}
	if effects.XPDelta != 0 {
		applied.Effects = append(applied.Effects, fmt.Sprintf("xp %+d per participant", effects.XPDelta))
	}
	if effects.FatigueDelta != 0 {
		applied.Effects = append(applied.Effects, fmt.Sprintf("fatigue %+d per participant", effects.FatigueDelta))
	}
	if effects.ReputationPoolDelta != 0 {
		applied.Effects = append(applied.Effects, fmt.Sprintf("reputation pool %+d per participant", effects.ReputationPoolDelta))
	}
}

// applyConfidence routes confidence through the axis registry: it is both
// a per-character delta and a registry axis.
func (a *Applier) applyConfidence(applied *AppliedOutcome, effects *rules.Effects, participants []string) error {
	if effects.ConfidenceDelta == 0 {
		return nil
	}
	for _, id := range participants {
		value, err := a.registry.ModifyCharacterAxis(id, axis.AxisConfidence, effects.ConfidenceDelta)
		if err != nil {
			return err
		}
		applied.Effects = append(applied.Effects,
			fmt.Sprintf("confidence %+d for %s (now %d)", effects.ConfidenceDelta, id, value))
	}
	return nil
}

// applyFlags sets declared flags on the friendship axis of every
// participant pair.
func (a *Applier) applyFlags(applied *AppliedOutcome, effects *rules.Effects, participants []string) error {
	for _, flag := range effects.SetFlags {
		for i := 0; i < len(participants); i++ {
			for j := i + 1; j < len(participants); j++ {
				if err := a.registry.SetFlag(participants[i], participants[j], axis.AxisFriendship, flag, true); err != nil {
					return err
				}
				applied.Effects = append(applied.Effects,
					fmt.Sprintf("flag %s set between %s and %s", flag, participants[i], participants[j]))
			}
		}
	}
	return nil
}
