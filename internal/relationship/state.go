// Package relationship owns the qualitative side of a pair's history:
// sentiments, flags, roles and interaction recency. Numeric axes stay in
// the axis registry; this package mutates them only through it, and only
// in response to triggers.
package relationship

// Sentiment names used by the trigger transitions.
const (
	SentimentHurt     = "HURT"
	SentimentBetrayed = "BETRAYED"
)

// Flag names with engine-level meaning.
const (
	FlagConflictActive = "CONFLICT_ACTIVE"
	FlagEstranged      = "ESTRANGED"
	FlagJealous        = "JEALOUS"
)

// MaxSentimentStrength caps every sentiment.
const MaxSentimentStrength = 5

// State is the qualitative record for one character pair.
type State struct {
	// Sentiments maps sentiment name to its current strength.
	Sentiments map[string]int
	// Flags maps flag name to its expiry day; nil means permanent.
	Flags map[string]*int
	// Roles is the set of declared relationship roles (rival, mentor).
	Roles map[string]bool
	// LastInteractionDay is the campaign day of the most recent trigger
	// touching this pair, or -1 if none.
	LastInteractionDay int
}

func newState() *State {
	return &State{
		Sentiments:         make(map[string]int),
		Flags:              make(map[string]*int),
		Roles:              make(map[string]bool),
		LastInteractionDay: -1,
	}
}

// setSentiment overwrites the sentiment strength, clamping into
// [0, MaxSentimentStrength]. Zero removes the sentiment.
func (s *State) setSentiment(name string, strength int) {
	if strength > MaxSentimentStrength {
		strength = MaxSentimentStrength
	}
	if strength <= 0 {
		delete(s.Sentiments, name)
		return
	}
	s.Sentiments[name] = strength
}

func (s *State) addSentiment(name string, delta int) {
	s.setSentiment(name, s.Sentiments[name]+delta)
}

// raiseSentiment sets the sentiment to at least the given strength,
// never lowering an existing stronger one.
func (s *State) raiseSentiment(name string, strength int) {
	if strength > s.Sentiments[name] {
		s.setSentiment(name, strength)
	}
}

// expire drops every flag whose expiry day has passed. Sentiments carry
// no expiry; they only change through trigger transitions.
func (s *State) expire(day int) {
	for name, expires := range s.Flags {
		if expires != nil && *expires <= day {
			delete(s.Flags, name)
		}
	}
}
