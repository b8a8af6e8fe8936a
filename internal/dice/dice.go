// Package dice implements the 2d6 skill-check mechanic used by the
// interaction resolver.
package dice

import "math/rand"

const (
	// FumbleRoll is the natural roll that always fails.
	FumbleRoll = 2
	// ExplodeRoll is the natural roll that triggers exploding re-rolls.
	ExplodeRoll = 12
	// DefaultMaxExplodingTotal caps the value of an exploding roll.
	DefaultMaxExplodingTotal = 30
)

// Roll captures a single 2d6 roll, including any exploding dice.
type Roll struct {
	// Dice holds the two base dice.
	Dice [2]int
	// Extra holds exploding re-rolls, in order.
	Extra []int
	// Value is the total roll value including extras, capped.
	Value int
	// Fumble is set on a natural 2. A fumble always fails.
	Fumble bool
	// Stunning is set on a natural 12. Stunning and Fumble are mutually
	// exclusive.
	Stunning bool
}

// Roller produces seeded rolls.
//
// A Roller is deterministic with respect to its seed: the same seed and the
// same call sequence always produce the same rolls. Callers that need
// isolation between unrelated subsystems construct one Roller per owner.
type Roller struct {
	rng      *rand.Rand
	maxTotal int
}

// Option adjusts Roller construction.
type Option func(*Roller)

// WithMaxExplodingTotal overrides the exploding roll cap.
func WithMaxExplodingTotal(max int) Option {
	return func(r *Roller) {
		r.maxTotal = max
	}
}

// NewRoller creates a Roller from an explicit seed.
func NewRoller(seed int64, opts ...Option) *Roller {
	r := &Roller{
		rng:      rand.New(rand.NewSource(seed)),
		maxTotal: DefaultMaxExplodingTotal,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Roll rolls 2d6 with exploding re-rolls on a natural 12.
func (r *Roller) Roll() Roll {
	first := r.die()
	second := r.die()
	roll := Roll{
		Dice:  [2]int{first, second},
		Value: first + second,
	}

	switch roll.Value {
	case FumbleRoll:
		roll.Fumble = true
	case ExplodeRoll:
		roll.Stunning = true
		for {
			extra := r.die()
			roll.Extra = append(roll.Extra, extra)
			roll.Value += extra
			if roll.Value >= r.maxTotal {
				roll.Value = r.maxTotal
				break
			}
			if extra != 6 {
				break
			}
		}
	}

	return roll
}

func (r *Roller) die() int {
	return r.rng.Intn(6) + 1
}

// CheckRequest describes a skill or attribute check against a target number.
type CheckRequest struct {
	// TargetNumber is the number the total must meet or beat.
	TargetNumber int
	// Trained selects the skill path (level + attribute link) over the
	// untrained path (attribute score alone).
	Trained bool
	// SkillLevel is the trained skill level.
	SkillLevel int
	// AttributeLink is the linked-attribute modifier applied when trained.
	AttributeLink int
	// AttributeScore is the raw attribute score used when untrained.
	AttributeScore int
	// Modifiers aggregates situational and difficulty modifiers.
	Modifiers int
	// EdgePre is edge spent before the roll (worth 2 per point).
	EdgePre int
	// EdgePost is edge spent after the roll (worth 1 per point).
	EdgePost int
}

// CheckResult captures a resolved check.
type CheckResult struct {
	Roll     Roll
	Total    int
	Target   int
	Margin   int
	Success  bool
	Fumble   bool
	Stunning bool
}

// EvaluateCheck deterministically resolves a check from an existing roll.
// A fumbled roll fails regardless of modifiers.
func EvaluateCheck(roll Roll, request CheckRequest) CheckResult {
	base := request.AttributeScore
	if request.Trained {
		base = request.SkillLevel + request.AttributeLink
	}

	total := roll.Value + base + request.Modifiers + 2*request.EdgePre + request.EdgePost
	margin := total - request.TargetNumber
	success := total >= request.TargetNumber
	if roll.Fumble {
		success = false
	}

	return CheckResult{
		Roll:     roll,
		Total:    total,
		Target:   request.TargetNumber,
		Margin:   margin,
		Success:  success,
		Fumble:   roll.Fumble,
		Stunning: roll.Stunning,
	}
}

// Check rolls and resolves a check in one step.
func (r *Roller) Check(request CheckRequest) CheckResult {
	return EvaluateCheck(r.Roll(), request)
}
