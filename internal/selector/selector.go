// Package selector implements the second pipeline layer: the weighted
// choice of which interaction occurs given the event context.
package selector

import (
	"math/rand"
	"sort"

	"github.com/mgracey/rapport/internal/rules"
)

// BaseWeight is the starting selection weight of every interaction before
// environment and tone deltas apply.
const BaseWeight = 1.0

// SelectedInteraction is the chosen interaction plus its merged context.
type SelectedInteraction struct {
	Name         string
	Domain       string
	RollType     string
	Participants []string
	Environment  string
	Tone         string
	// Modifiers merges the numeric modifiers of the active environment
	// and tone tags, summing values that share a key.
	Modifiers map[string]int
}

// Selector draws interactions from per-domain catalogs.
type Selector struct {
	interactions map[string]map[string]rules.Interaction
	environments map[string]rules.ModifierTable
	tones        map[string]rules.ModifierTable
	rng          *rand.Rand
}

// New creates a selector over loaded tables and an injected generator.
func New(interactions map[string]map[string]rules.Interaction, environments, tones map[string]rules.ModifierTable, rng *rand.Rand) *Selector {
	return &Selector{
		interactions: interactions,
		environments: environments,
		tones:        tones,
		rng:          rng,
	}
}

// WeightedProbability computes an interaction's selection weight under the
// given environment and tone tags, floored at zero.
func (s *Selector) WeightedProbability(interaction, environment, tone string) float64 {
	weight := BaseWeight
	if table, ok := s.environments[environment]; ok {
		weight += table.WeightDeltas[interaction]
	}
	if table, ok := s.tones[tone]; ok {
		weight += table.WeightDeltas[interaction]
	}
	if weight < 0 {
		return 0
	}
	return weight
}

// Select performs weighted-roulette selection among the domain's
// interactions. The optional allowed list restricts candidates by name.
// It returns nil when no candidate carries weight, or when the environment
// does not permit the domain.
func (s *Selector) Select(domain string, participants []string, environment, tone string, allowed []string) *SelectedInteraction {
	catalog, ok := s.interactions[domain]
	if !ok || len(catalog) == 0 {
		return nil
	}
	if !s.domainPermitted(domain, environment) {
		return nil
	}

	allowedSet := map[string]bool{}
	for _, name := range allowed {
		allowedSet[name] = true
	}

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		if len(allowedSet) > 0 && !allowedSet[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	weights := make([]float64, len(names))
	total := 0.0
	for i, name := range names {
		weights[i] = s.WeightedProbability(name, environment, tone)
		total += weights[i]
	}
	if total <= 0 {
		return nil
	}

	draw := s.rng.Float64() * total
	// The walk below can undershoot the draw by a float ulp; the last
	// candidate stands in that case.
	chosen := names[len(names)-1]
	accumulated := 0.0
	for i, name := range names {
		accumulated += weights[i]
		if draw < accumulated {
			chosen = name
			break
		}
	}

	return &SelectedInteraction{
		Name:         chosen,
		Domain:       domain,
		RollType:     catalog[chosen].RollType,
		Participants: participants,
		Environment:  environment,
		Tone:         tone,
		Modifiers:    s.mergedModifiers(environment, tone),
	}
}

func (s *Selector) domainPermitted(domain, environment string) bool {
	table, ok := s.environments[environment]
	if !ok || len(table.AllowedDomains) == 0 {
		return true
	}
	for _, allowed := range table.AllowedDomains {
		if allowed == domain {
			return true
		}
	}
	return false
}

func (s *Selector) mergedModifiers(environment, tone string) map[string]int {
	merged := make(map[string]int)
	if table, ok := s.environments[environment]; ok {
		for key, value := range table.Modifiers {
			merged[key] += value
		}
	}
	if table, ok := s.tones[tone]; ok {
		for key, value := range table.Modifiers {
			merged[key] += value
		}
	}
	return merged
}
