// Package resolver implements the third pipeline layer: dice-based
// mechanical resolution of a selected interaction.
package resolver

import (
	"github.com/mgracey/rapport/internal/dice"
	"github.com/mgracey/rapport/internal/roster"
	"github.com/mgracey/rapport/internal/rules"
	"github.com/mgracey/rapport/internal/selector"
)

// DefaultTargetNumber is the standard 2d6 check target.
const DefaultTargetNumber = 8

// OnFailureNoInteraction short-circuits the interaction when a stage fails.
const OnFailureNoInteraction = "no_interaction"

// Outcome tiers derived from a resolution.
const (
	TierFailure      = "on_failure"
	TierSuccess      = "on_success"
	TierGreatSuccess = "on_great_success"
)

// StageResult captures one resolved stage.
type StageResult struct {
	Stage   string
	Check   dice.CheckResult
	Success bool
	Margin  int
}

// ResolutionResult aggregates all executed stages.
type ResolutionResult struct {
	Interaction string
	Stages      []StageResult
	// Success is true when any stage succeeded.
	Success bool
	// GreatSuccess is true when any stage rolled a stunning success.
	GreatSuccess bool
	// Fumble is true when any stage rolled a natural 2.
	Fumble bool
	// ShortCircuited is true when a failed stage aborted the interaction.
	ShortCircuited bool
}

// Tier maps the aggregate result to its outcome tier.
func (r ResolutionResult) Tier() string {
	switch {
	case !r.Success:
		return TierFailure
	case r.GreatSuccess:
		return TierGreatSuccess
	default:
		return TierSuccess
	}
}

// Resolver resolves interactions from stage definitions and resolution
// profiles.
type Resolver struct {
	interactions map[string]map[string]rules.Interaction
	profiles     map[string]rules.ResolutionProfile
	roller       *dice.Roller
}

// New creates a resolver over loaded tables and an injected roller.
func New(interactions map[string]map[string]rules.Interaction, profiles map[string]rules.ResolutionProfile, roller *dice.Roller) *Resolver {
	return &Resolver{
		interactions: interactions,
		profiles:     profiles,
		roller:       roller,
	}
}

// Resolve iterates the interaction's stages in order. A stage configured
// with on_failure "no_interaction" aborts the remainder on failure and
// forces overall failure. An interaction with no configured stages is an
// automatic success.
func (r *Resolver) Resolve(selected *selector.SelectedInteraction, characters roster.Roster, targetNumber int) ResolutionResult {
	if targetNumber == 0 {
		targetNumber = DefaultTargetNumber
	}

	result := ResolutionResult{Interaction: selected.Name}
	stages := r.stages(selected)
	if len(stages) == 0 {
		result.Success = true
		return result
	}

	actor, _ := r.actor(selected, characters)

	for _, stage := range stages {
		check := r.roller.Check(r.checkRequest(stage, actor, selected, targetNumber))

		result.Stages = append(result.Stages, StageResult{
			Stage:   stage.Name,
			Check:   check,
			Success: check.Success,
			Margin:  check.Margin,
		})
		result.Success = result.Success || check.Success
		result.GreatSuccess = result.GreatSuccess || check.Stunning
		result.Fumble = result.Fumble || check.Fumble

		if !check.Success && stage.OnFailure == OnFailureNoInteraction {
			result.ShortCircuited = true
			result.Success = false
			break
		}
	}

	return result
}

func (r *Resolver) stages(selected *selector.SelectedInteraction) []rules.Stage {
	catalog, ok := r.interactions[selected.Domain]
	if !ok {
		return nil
	}
	return catalog[selected.Name].Stages
}

// actor returns the character making the checks: the first participant.
func (r *Resolver) actor(selected *selector.SelectedInteraction, characters roster.Roster) (roster.Character, bool) {
	if len(selected.Participants) == 0 {
		return roster.Character{}, false
	}
	return characters.ByID(selected.Participants[0])
}

func (r *Resolver) checkRequest(stage rules.Stage, actor roster.Character, selected *selector.SelectedInteraction, targetNumber int) dice.CheckRequest {
	request := dice.CheckRequest{TargetNumber: targetNumber}

	profile, ok := r.profiles[stage.Profile]
	if !ok {
		// No profile: a bare roll against the target with context
		// modifiers only.
		request.Modifiers = r.difficulty(rules.ResolutionProfile{}, selected)
		return request
	}

	if level, trained := actor.SkillLevel(profile.Skill); trained {
		request.Trained = true
		request.SkillLevel = level
		request.AttributeLink = profile.AttributeLink
	} else {
		request.AttributeScore = actor.Attribute(profile.Attribute)
	}
	request.Modifiers = r.difficulty(profile, selected)
	return request
}

// difficulty picks the situational modifier for a stage. A profile naming
// a difficulty context uses that merged modifier alone; otherwise every
// merged modifier applies.
func (r *Resolver) difficulty(profile rules.ResolutionProfile, selected *selector.SelectedInteraction) int {
	if profile.DifficultyContext != "" {
		return selected.Modifiers[profile.DifficultyContext]
	}
	total := 0
	for _, value := range selected.Modifiers {
		total += value
	}
	return total
}
