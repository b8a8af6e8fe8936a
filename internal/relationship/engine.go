package relationship

import (
	"github.com/mgracey/rapport/internal/axis"
	apperrors "github.com/mgracey/rapport/internal/errors"
	"github.com/mgracey/rapport/internal/trigger"
)

// Engine applies trigger transitions to relationship state. It is the
// only writer of sentiments, flags and roles; axis changes go through
// the shared registry so its bounds keep applying.
type Engine struct {
	registry   *axis.Registry
	states     map[axis.PairKey]*State
	currentDay int
}

// NewEngine creates an engine writing axis effects to the given registry.
func NewEngine(registry *axis.Registry) *Engine {
	return &Engine{
		registry: registry,
		states:   make(map[axis.PairKey]*State),
	}
}

// CurrentDay reports the campaign day the engine has advanced to.
func (e *Engine) CurrentDay() int { return e.currentDay }

// State returns the pair's qualitative state, creating an empty one on
// first access.
func (e *Engine) State(idA, idB string) *State {
	key := axis.NewPairKey(idA, idB)
	state, ok := e.states[key]
	if !ok {
		state = newState()
		e.states[key] = state
	}
	return state
}

// SetFlag sets a relationship flag. A nil expiry makes it permanent;
// otherwise it lapses once the campaign day reaches the given day.
func (e *Engine) SetFlag(idA, idB, flag string, expiresDay *int) {
	e.State(idA, idB).Flags[flag] = expiresDay
}

// ClearFlag removes a relationship flag if present.
func (e *Engine) ClearFlag(idA, idB, flag string) {
	delete(e.State(idA, idB).Flags, flag)
}

// SetRole declares a relationship role such as "rival" or "mentor".
func (e *Engine) SetRole(idA, idB, role string) {
	e.State(idA, idB).Roles[role] = true
}

// Process applies one trigger transition. The dispatch is exhaustive
// over the taxonomy; a trigger kind without a transition here is a bug
// and fails loudly instead of being ignored.
func (e *Engine) Process(tr trigger.Trigger) error {
	switch t := tr.(type) {
	case trigger.TimeSkip:
		return e.processTimeSkip(t)
	case trigger.RomanticRejection:
		return e.processRomanticRejection(t)
	case trigger.RomanticAcceptance:
		return e.processRomanticAcceptance(t)
	case trigger.ApologyAccepted:
		return e.processApologyAccepted(t)
	case trigger.BetrayalEvent:
		return e.processBetrayalEvent(t)
	case trigger.HeroicAction:
		return e.processHeroicAction(t)
	default:
		return apperrors.WithMetadata(apperrors.CodeTriggerUnhandled,
			"no transition exists for this trigger",
			map[string]string{"trigger": tr.Kind().String()})
	}
}

// processTimeSkip advances the day counter and sweeps expired flags
// from every pair.
func (e *Engine) processTimeSkip(t trigger.TimeSkip) error {
	if t.DaysSkipped <= 0 {
		return nil
	}
	e.currentDay += t.DaysSkipped
	for _, state := range e.states {
		state.expire(e.currentDay)
	}
	return nil
}

// processRomanticRejection stamps HURT at exactly strength 2 no matter
// how often the pair repeats the scene, raises the JEALOUS flag for a
// week of campaign time and cools the romance axis.
func (e *Engine) processRomanticRejection(t trigger.RomanticRejection) error {
	state := e.touch(t.Initiator, t.Target)
	state.setSentiment(SentimentHurt, 2)
	jealousUntil := e.currentDay + 7
	state.Flags[FlagJealous] = &jealousUntil
	_, err := e.registry.ModifyRelationshipAxis(t.Initiator, t.Target, axis.AxisRomance, -5)
	return err
}

func (e *Engine) processRomanticAcceptance(t trigger.RomanticAcceptance) error {
	state := e.touch(t.Initiator, t.Target)
	state.addSentiment(SentimentHurt, -1)
	_, err := e.registry.ModifyRelationshipAxis(t.Initiator, t.Target, axis.AxisRomance, 10)
	return err
}

func (e *Engine) processApologyAccepted(t trigger.ApologyAccepted) error {
	state := e.touch(t.Initiator, t.Target)
	delete(state.Flags, FlagConflictActive)
	state.addSentiment(SentimentHurt, -2)
	return nil
}

func (e *Engine) processBetrayalEvent(t trigger.BetrayalEvent) error {
	state := e.touch(t.Initiator, t.Target)
	state.raiseSentiment(SentimentBetrayed, 2+t.Severity)

	deltas := map[string]int{
		axis.AxisFriendship: -20,
		axis.AxisRespect:    -15,
		axis.AxisRomance:    -30,
	}
	for _, name := range []string{axis.AxisFriendship, axis.AxisRespect, axis.AxisRomance} {
		if _, err := e.registry.ModifyRelationshipAxis(t.Initiator, t.Target, name, deltas[name]); err != nil {
			return err
		}
	}
	return nil
}

// processHeroicAction raises the respect every witness holds for the
// actor. The actor appearing in their own witness list is skipped.
func (e *Engine) processHeroicAction(t trigger.HeroicAction) error {
	for _, witness := range t.Witnesses {
		if witness == t.Actor {
			continue
		}
		e.touch(t.Actor, witness)
		if _, err := e.registry.ModifyRelationshipAxis(t.Actor, witness, axis.AxisRespect, 5); err != nil {
			return err
		}
	}
	return nil
}

// touch fetches pair state and stamps the interaction day.
func (e *Engine) touch(idA, idB string) *State {
	state := e.State(idA, idB)
	state.LastInteractionDay = e.currentDay
	return state
}
