// Package injector implements the first pipeline layer: choosing which
// event fires and who participates, from declarative selection rules. The
// injector is pure selection logic and never touches axis or relationship
// state.
package injector

import (
	"math/rand"
	"sort"

	"github.com/mgracey/rapport/internal/roster"
	"github.com/mgracey/rapport/internal/rules"
)

// Selection kinds for primary participants.
const (
	KindSinglePerson    = "single_person"
	KindPair            = "pair"
	KindMultiplePersons = "multiple_persons"
)

// Derived-participant relation tokens.
const (
	RelationAllPresent = "all_present"
	RelationUnitMates  = "unit_mates"
)

// EventInstance is a concrete occurrence of a catalog event.
type EventInstance struct {
	EventID  string
	Category string
	// Primary holds the directly selected participant IDs.
	Primary []string
	// Derived holds participants resolved from relation tokens.
	Derived []string
	// Context carries free-form values for downstream layers.
	Context map[string]any
}

// Participants returns primary and derived participants in order, without
// duplicates.
func (e *EventInstance) Participants() []string {
	seen := make(map[string]bool, len(e.Primary)+len(e.Derived))
	out := make([]string, 0, len(e.Primary)+len(e.Derived))
	for _, id := range e.Primary {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range e.Derived {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Injector selects events and participants.
type Injector struct {
	events map[string]rules.Event
	rules  map[string]rules.EventRule
	bands  []rules.AgeBand
	rng    *rand.Rand
}

// New creates an injector over loaded tables and an injected generator.
func New(events map[string]rules.Event, eventRules map[string]rules.EventRule, bands []rules.AgeBand, rng *rand.Rand) *Injector {
	return &Injector{
		events: events,
		rules:  eventRules,
		bands:  bands,
		rng:    rng,
	}
}

func (inj *Injector) inBand(age int, names []string) bool {
	for _, name := range names {
		for _, band := range inj.bands {
			if band.Name == name && age >= band.MinAge && age <= band.MaxAge {
				return true
			}
		}
	}
	return false
}

// candidates applies the rule's availability filters to the roster.
func (inj *Injector) candidates(rule rules.EventRule, characters roster.Roster) roster.Roster {
	out := characters.FilterProfession(rule.Requires.Professions)
	if len(rule.Requires.AgeGroups) == 0 {
		return out
	}
	var filtered roster.Roster
	for _, c := range out {
		if inj.inBand(c.Age, rule.Requires.AgeGroups) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// CheckAvailability reports whether an event can fire against the roster.
// An event with no rule entry is unavailable.
func (inj *Injector) CheckAvailability(eventID string, characters roster.Roster) bool {
	rule, ok := inj.rules[eventID]
	if !ok {
		return false
	}
	return len(inj.candidates(rule, characters)) >= rule.Requires.MinCount
}

// AvailableEvents filters the full rule set by CheckAvailability. The
// result is sorted for deterministic iteration.
func (inj *Injector) AvailableEvents(characters roster.Roster) []string {
	var out []string
	for eventID := range inj.rules {
		if inj.CheckAvailability(eventID, characters) {
			out = append(out, eventID)
		}
	}
	sort.Strings(out)
	return out
}

// SelectPrimary chooses primary participants per the event's selection
// policy. An empty result means no valid selection exists.
func (inj *Injector) SelectPrimary(eventID string, characters roster.Roster) []string {
	rule, ok := inj.rules[eventID]
	if !ok {
		return nil
	}
	pool := inj.candidates(rule, characters).FilterProfession(rule.Primary.Professions)

	switch rule.Primary.Kind {
	case KindSinglePerson:
		if len(pool) == 0 {
			return nil
		}
		return []string{pool[inj.rng.Intn(len(pool))].ID}
	case KindPair:
		if len(pool) < 2 {
			return nil
		}
		perm := inj.rng.Perm(len(pool))
		return []string{pool[perm[0]].ID, pool[perm[1]].ID}
	case KindMultiplePersons:
		lo, hi := rule.Primary.Min, rule.Primary.Max
		if lo <= 0 {
			lo = 1
		}
		if hi < lo {
			hi = lo
		}
		if len(pool) < lo {
			return nil
		}
		count := lo + inj.rng.Intn(hi-lo+1)
		if count > len(pool) {
			count = len(pool)
		}
		perm := inj.rng.Perm(len(pool))
		out := make([]string, 0, count)
		for _, idx := range perm[:count] {
			out = append(out, pool[idx].ID)
		}
		return out
	default:
		return nil
	}
}

// SelectDerived resolves the event's derived-participant relations against
// the roster. Unsupported relations contribute nothing; the injector never
// guesses.
func (inj *Injector) SelectDerived(eventID string, primary []string, characters roster.Roster) []string {
	rule, ok := inj.rules[eventID]
	if !ok {
		return nil
	}

	isPrimary := make(map[string]bool, len(primary))
	for _, id := range primary {
		isPrimary[id] = true
	}

	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if !isPrimary[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	for _, derived := range rule.Derived {
		switch derived.Relation {
		case RelationAllPresent:
			for _, c := range characters {
				add(c.ID)
			}
		case RelationUnitMates:
			for _, id := range primary {
				for _, mate := range characters.UnitMates(id) {
					add(mate.ID)
				}
			}
		}
	}
	return out
}

// Inject composes availability, primary and derived selection into an
// EventInstance. It returns nil on any failed step, with no side effects.
func (inj *Injector) Inject(eventID string, characters roster.Roster) *EventInstance {
	if !inj.CheckAvailability(eventID, characters) {
		return nil
	}
	primary := inj.SelectPrimary(eventID, characters)
	if len(primary) == 0 {
		return nil
	}

	event := inj.events[eventID]
	return &EventInstance{
		EventID:  eventID,
		Category: event.Category,
		Primary:  primary,
		Derived:  inj.SelectDerived(eventID, primary, characters),
		Context:  make(map[string]any),
	}
}
