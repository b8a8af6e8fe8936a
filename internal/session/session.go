// Package session wires the four pipeline layers, the relationship
// engine and the trigger intake into one simulation session, and runs
// complete event cycles over them.
package session

import (
	"context"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/mgracey/rapport/internal/axis"
	"github.com/mgracey/rapport/internal/dice"
	apperrors "github.com/mgracey/rapport/internal/errors"
	"github.com/mgracey/rapport/internal/injector"
	"github.com/mgracey/rapport/internal/outcome"
	"github.com/mgracey/rapport/internal/relationship"
	"github.com/mgracey/rapport/internal/resolver"
	"github.com/mgracey/rapport/internal/roster"
	"github.com/mgracey/rapport/internal/rules"
	"github.com/mgracey/rapport/internal/selector"
	"github.com/mgracey/rapport/internal/storage"
	"github.com/mgracey/rapport/internal/trigger"
)

// SourceSession identifies triggers the session forwards on behalf of
// applied outcomes.
const SourceSession = rules.SourceOutcomeApplier

// Options configure a session. The zero value is usable: a random seed
// would be nicer, so callers normally set Seed explicitly.
type Options struct {
	// Seed drives every random draw in the session. Identical seeds over
	// identical inputs replay identical cycles.
	Seed int64
	// TargetNumber overrides the standard check target when non-zero.
	TargetNumber int
	// Store, when set, journals accepted triggers and backs snapshot
	// persistence.
	Store storage.Store
	// Logger defaults to the process logger.
	Logger *log.Logger
}

// CycleResult reports everything one event cycle produced.
type CycleResult struct {
	// RequestID tags the cycle for logs and journals.
	RequestID   string
	Event       *injector.EventInstance
	Interaction *selector.SelectedInteraction
	Resolution  resolver.ResolutionResult
	Outcome     *outcome.AppliedOutcome
	// ForwardedTriggers lists the outcome triggers accepted by the
	// intake after application.
	ForwardedTriggers []string
}

// Session owns one simulation run: the axis registry, the relationship
// engine, the trigger intake and the four pipeline layers, all built
// explicitly from the loaded rule set.
type Session struct {
	set        *rules.Set
	characters roster.Roster

	registry *axis.Registry
	engine   *relationship.Engine
	query    *relationship.Query
	intake   *trigger.Intake

	injector *injector.Injector
	selector *selector.Selector
	resolver *resolver.Resolver
	applier  *outcome.Applier

	rng          *rand.Rand
	targetNumber int
	store        storage.Store
	logger       *log.Logger
}

// New builds a session from a loaded rule set and roster. The relationship
// engine subscribes to the intake, so every accepted trigger reaches it.
func New(set *rules.Set, characters roster.Roster, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	registry := axis.NewRegistry(set.Axes)
	engine := relationship.NewEngine(registry)
	intake := trigger.NewIntake(set.Triggers, logger)
	intake.RegisterHandler(engine.Process)

	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Session{
		set:          set,
		characters:   characters,
		registry:     registry,
		engine:       engine,
		query:        relationship.NewQuery(engine),
		intake:       intake,
		injector:     injector.New(set.Events, set.EventRules, set.AgeBands, rng),
		selector:     selector.New(set.Interactions, set.Environments, set.Tones, rng),
		resolver:     resolver.New(set.Interactions, set.Profiles, dice.NewRoller(opts.Seed)),
		applier:      outcome.New(set.Outcomes, registry),
		rng:          rng,
		targetNumber: opts.TargetNumber,
		store:        opts.Store,
		logger:       logger,
	}
	return s
}

// Registry exposes the session's axis registry.
func (s *Session) Registry() *axis.Registry { return s.registry }

// Query exposes the read-only relationship view.
func (s *Session) Query() *relationship.Query { return s.query }

// Roster exposes the session's characters.
func (s *Session) Roster() roster.Roster { return s.characters }

// CurrentDay reports the campaign day.
func (s *Session) CurrentDay() int { return s.engine.CurrentDay() }

// AvailableEvents lists the events that can fire right now.
func (s *Session) AvailableEvents() []string {
	return s.injector.AvailableEvents(s.characters)
}

// RunEventCycle executes one full cycle for the named event: injection,
// selection, resolution and outcome application, in that order. Any
// failed layer aborts the cycle with a descriptive error and leaves all
// state untouched.
func (s *Session) RunEventCycle(ctx context.Context, eventID, domain, environment, tone string) (*CycleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	requestID := uuid.NewString()

	if _, ok := s.set.Interactions[domain]; !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeCycleUnknownDomain,
			"no interaction catalog exists for this domain",
			map[string]string{"domain": domain, "request_id": requestID})
	}

	instance := s.injector.Inject(eventID, s.characters)
	if instance == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeCycleNoEvent,
			"event is unavailable or participant selection failed",
			map[string]string{"event": eventID, "request_id": requestID})
	}

	selected := s.selector.Select(domain, instance.Participants(), environment, tone, nil)
	if selected == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeCycleNoInteraction,
			"no interaction carries weight in this context",
			map[string]string{"event": eventID, "domain": domain,
				"environment": environment, "tone": tone, "request_id": requestID})
	}

	resolution := s.resolver.Resolve(selected, s.characters, s.targetNumber)

	// The applier is the first mutating layer; keep a snapshot so a
	// mid-application failure rolls back cleanly.
	before := s.registry.Snapshot()
	applied, err := s.applier.Apply(selected, resolution)
	if err != nil {
		if restoreErr := s.registry.Restore(before); restoreErr != nil {
			s.logger.Printf("cycle %s: rollback failed: %v", requestID, restoreErr)
		}
		return nil, err
	}

	result := &CycleResult{
		RequestID:   requestID,
		Event:       instance,
		Interaction: selected,
		Resolution:  resolution,
		Outcome:     applied,
	}
	s.forwardTriggers(ctx, result)

	s.logger.Printf("cycle %s: event=%s interaction=%s tier=%s participants=%v",
		requestID, eventID, selected.Name, applied.Tier, instance.Participants())
	return result, nil
}

// InjectRandomEvent picks a uniformly random available event and runs a
// full cycle on it.
func (s *Session) InjectRandomEvent(ctx context.Context, domain, environment, tone string) (*CycleResult, error) {
	available := s.AvailableEvents()
	if len(available) == 0 {
		return nil, apperrors.New(apperrors.CodeCycleNoEvent, "no event is currently available")
	}
	eventID := available[s.rng.Intn(len(available))]
	return s.RunEventCycle(ctx, eventID, domain, environment, tone)
}

// EmitTrigger validates and dispatches an externally sourced trigger,
// journaling it when a store is configured.
func (s *Session) EmitTrigger(ctx context.Context, name string, payload map[string]any, source string) error {
	if err := s.intake.Emit(name, payload, source); err != nil {
		return err
	}
	s.journal(ctx, name, payload, source)
	return nil
}

// forwardTriggers translates outcome-recorded trigger names into intake
// emissions. A trigger the intake rejects is logged and skipped; the
// cycle itself has already committed.
func (s *Session) forwardTriggers(ctx context.Context, result *CycleResult) {
	participants := result.Event.Participants()
	for _, name := range result.Outcome.EmittedTriggers {
		payload, ok := s.outcomePayload(name, participants)
		if !ok {
			s.logger.Printf("cycle %s: no payload mapping for trigger %s", result.RequestID, name)
			continue
		}
		if err := s.intake.Emit(name, payload, SourceSession); err != nil {
			s.logger.Printf("cycle %s: trigger %s rejected: %v", result.RequestID, name, err)
			continue
		}
		s.journal(ctx, name, payload, SourceSession)
		result.ForwardedTriggers = append(result.ForwardedTriggers, name)
	}
}

// outcomePayload builds the payload for an outcome-emitted trigger from
// the cycle's participants. The first participant acts; the rest are
// counterparts or witnesses.
func (s *Session) outcomePayload(name string, participants []string) (map[string]any, bool) {
	if len(participants) == 0 {
		return nil, false
	}
	actor := participants[0]
	others := participants[1:]

	switch name {
	case rules.TriggerHeroicAction:
		return map[string]any{"actor": actor, "witnesses": others}, true
	case rules.TriggerRomanticRejection, rules.TriggerRomanticAcceptance:
		if len(others) == 0 {
			return nil, false
		}
		return map[string]any{"initiator": actor, "target": others[0], "context": "interaction"}, true
	case rules.TriggerApologyAccepted:
		if len(others) == 0 {
			return nil, false
		}
		return map[string]any{"initiator": actor, "target": others[0]}, true
	case rules.TriggerBetrayalEvent:
		if len(others) == 0 {
			return nil, false
		}
		return map[string]any{"initiator": actor, "target": others[0], "severity": 1}, true
	default:
		return nil, false
	}
}

func (s *Session) journal(ctx context.Context, name string, payload map[string]any, source string) {
	if s.store == nil {
		return
	}
	record := storage.TriggerRecord{Name: name, Source: source, Payload: payload}
	if err := s.store.AppendTrigger(ctx, record); err != nil {
		s.logger.Printf("journal trigger %s: %v", name, err)
	}
}

// SaveSnapshot persists the registry under a name in the configured store.
func (s *Session) SaveSnapshot(ctx context.Context, name string) error {
	if s.store == nil {
		return apperrors.New(apperrors.CodeNotFound, "no store is configured")
	}
	return s.store.SaveSnapshot(ctx, name, s.registry.Snapshot())
}

// LoadSnapshot restores the registry from a named snapshot.
func (s *Session) LoadSnapshot(ctx context.Context, name string) error {
	if s.store == nil {
		return apperrors.New(apperrors.CodeNotFound, "no store is configured")
	}
	snapshot, err := s.store.LoadSnapshot(ctx, name)
	if err != nil {
		return err
	}
	return s.registry.Restore(snapshot)
}
