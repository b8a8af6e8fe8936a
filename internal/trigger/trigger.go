// Package trigger defines the closed trigger taxonomy and the intake
// adapter that gates the relationship engine. Triggers describe things
// that happened; they are never synthesized or inferred by this layer.
package trigger

import "github.com/mgracey/rapport/internal/rules"

// Kind identifies a trigger in the closed taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeSkip
	KindRomanticRejection
	KindRomanticAcceptance
	KindApologyAccepted
	KindBetrayalEvent
	KindHeroicAction
)

func (k Kind) String() string {
	switch k {
	case KindTimeSkip:
		return rules.TriggerTimeSkip
	case KindRomanticRejection:
		return rules.TriggerRomanticRejection
	case KindRomanticAcceptance:
		return rules.TriggerRomanticAcceptance
	case KindApologyAccepted:
		return rules.TriggerApologyAccepted
	case KindBetrayalEvent:
		return rules.TriggerBetrayalEvent
	case KindHeroicAction:
		return rules.TriggerHeroicAction
	default:
		return "UNKNOWN"
	}
}

// Trigger is a strongly-typed trigger payload. The interface is sealed:
// adding a trigger means adding a payload type here, a schema entry and an
// engine transition together.
type Trigger interface {
	Kind() Kind
}

// TimeSkip advances the campaign day counter.
type TimeSkip struct {
	DaysSkipped int
}

// Kind implements Trigger.
func (TimeSkip) Kind() Kind { return KindTimeSkip }

// RomanticRejection records a rejected romantic advance.
type RomanticRejection struct {
	Initiator string
	Target    string
	Context   string
}

// Kind implements Trigger.
func (RomanticRejection) Kind() Kind { return KindRomanticRejection }

// RomanticAcceptance records an accepted romantic advance.
type RomanticAcceptance struct {
	Initiator string
	Target    string
	Context   string
}

// Kind implements Trigger.
func (RomanticAcceptance) Kind() Kind { return KindRomanticAcceptance }

// ApologyAccepted records a resolved conflict.
type ApologyAccepted struct {
	Initiator string
	Target    string
}

// Kind implements Trigger.
func (ApologyAccepted) Kind() Kind { return KindApologyAccepted }

// BetrayalEvent records a betrayal of the target by the initiator.
type BetrayalEvent struct {
	Initiator string
	Target    string
	Severity  int
}

// Kind implements Trigger.
func (BetrayalEvent) Kind() Kind { return KindBetrayalEvent }

// HeroicAction records an act witnessed by other characters.
type HeroicAction struct {
	Actor     string
	Witnesses []string
}

// Kind implements Trigger.
func (HeroicAction) Kind() Kind { return KindHeroicAction }
