package relationship

import "github.com/mgracey/rapport/internal/axis"

// Weight modifier bounds. Every modifier returned by the query stays
// inside these, no matter how extreme the underlying state is.
const (
	MinWeightModifier = 0.25
	MaxWeightModifier = 2.0
)

// Suppression and awkwardness thresholds.
const (
	betrayedSuppressStrength  = 3
	romanceSuppressThreshold  = -30
	friendshipSuppressMinimum = -50
)

// Interaction kinds with distinct weighting rules. Kinds outside this
// set weight by the pair's mutual standing alone.
const (
	InteractionRomantic = "romantic"
	InteractionFriendly = "friendly"
	InteractionBonding  = "bonding"
)

// Query is the read-only façade other layers use to consult relationship
// state. It exposes predicates and weight modifiers and nothing that
// mutates; writers go through the engine.
type Query struct {
	engine *Engine
}

// NewQuery wraps an engine in its read-only view.
func NewQuery(engine *Engine) *Query {
	return &Query{engine: engine}
}

// AxisValue reads a relationship axis. Undefined axes read as zero.
func (q *Query) AxisValue(idA, idB, name string) int {
	value, err := q.engine.registry.RelationshipAxis(idA, idB, name)
	if err != nil {
		return 0
	}
	return value
}

// HasFlag reports whether the flag is currently set for the pair.
func (q *Query) HasFlag(idA, idB, flag string) bool {
	_, ok := q.pairState(idA, idB).Flags[flag]
	return ok
}

// HasSentiment reports whether the sentiment is present at any strength.
func (q *Query) HasSentiment(idA, idB, name string) bool {
	return q.SentimentStrength(idA, idB, name) > 0
}

// SentimentStrength reports the sentiment's strength, zero if absent.
func (q *Query) SentimentStrength(idA, idB, name string) int {
	return q.pairState(idA, idB).Sentiments[name]
}

// HasRole reports whether the pair carries the declared role.
func (q *Query) HasRole(idA, idB, role string) bool {
	return q.pairState(idA, idB).Roles[role]
}

// LastInteractionDay reports the campaign day of the pair's most recent
// trigger, or -1 if the pair has no history.
func (q *Query) LastInteractionDay(idA, idB string) int {
	return q.pairState(idA, idB).LastInteractionDay
}

// ShouldSuppressRomantic reports whether romantic content should be kept
// away from the pair: an active conflict or estrangement, a strong
// betrayal, or romance driven deep negative.
func (q *Query) ShouldSuppressRomantic(idA, idB string) bool {
	if q.HasFlag(idA, idB, FlagConflictActive) || q.HasFlag(idA, idB, FlagEstranged) {
		return true
	}
	if q.SentimentStrength(idA, idB, SentimentBetrayed) >= betrayedSuppressStrength {
		return true
	}
	return q.AxisValue(idA, idB, axis.AxisRomance) <= romanceSuppressThreshold
}

// ShouldSuppressFriendly reports whether friendly content should be kept
// away from the pair.
func (q *Query) ShouldSuppressFriendly(idA, idB string) bool {
	if q.HasFlag(idA, idB, FlagEstranged) {
		return true
	}
	return q.AxisValue(idA, idB, axis.AxisFriendship) <= friendshipSuppressMinimum
}

// IsAwkward reports whether the pair is in an awkward spot: hurt and
// jealous at once, or mid-conflict.
func (q *Query) IsAwkward(idA, idB string) bool {
	if q.HasSentiment(idA, idB, SentimentHurt) && q.HasFlag(idA, idB, FlagJealous) {
		return true
	}
	return q.HasFlag(idA, idB, FlagConflictActive)
}

// InteractionWeightModifier scales interaction weights of the given
// kind for the pair. Suppressed kinds drop to the floor rather than
// zero so the selector's own weights stay meaningful. Romantic kinds
// track the romance axis, bonding kinds delegate to
// BondingWeightModifier, everything else tracks the pair's mutual
// standing. Awkward pairs are halved. The result is always within
// [MinWeightModifier, MaxWeightModifier].
func (q *Query) InteractionWeightModifier(idA, idB, kind string) float64 {
	switch kind {
	case InteractionRomantic:
		if q.ShouldSuppressRomantic(idA, idB) {
			return MinWeightModifier
		}
		modifier := 1.0 + float64(q.AxisValue(idA, idB, axis.AxisRomance))/100.0
		if q.IsAwkward(idA, idB) {
			modifier *= 0.5
		}
		return clampModifier(modifier)
	case InteractionBonding:
		return q.BondingWeightModifier(idA, idB)
	case InteractionFriendly:
		if q.ShouldSuppressFriendly(idA, idB) {
			return MinWeightModifier
		}
	}

	friendship := q.AxisValue(idA, idB, axis.AxisFriendship)
	respect := q.AxisValue(idA, idB, axis.AxisRespect)

	modifier := 1.0 + float64(friendship+respect)/400.0
	if q.IsAwkward(idA, idB) {
		modifier *= 0.5
	}
	return clampModifier(modifier)
}

// BondingWeightModifier scales bonding-style content. Pairs under
// friendly suppression drop to the floor rather than to zero so the
// selector's own weights stay meaningful.
func (q *Query) BondingWeightModifier(idA, idB string) float64 {
	if q.ShouldSuppressFriendly(idA, idB) {
		return MinWeightModifier
	}
	friendship := q.AxisValue(idA, idB, axis.AxisFriendship)
	return clampModifier(1.0 + float64(friendship)/100.0)
}

// pairState reads the pair state without creating it.
func (q *Query) pairState(idA, idB string) *State {
	key := axis.NewPairKey(idA, idB)
	if state, ok := q.engine.states[key]; ok {
		return state
	}
	return emptyState
}

var emptyState = newState()

func clampModifier(modifier float64) float64 {
	if modifier < MinWeightModifier {
		return MinWeightModifier
	}
	if modifier > MaxWeightModifier {
		return MaxWeightModifier
	}
	return modifier
}
