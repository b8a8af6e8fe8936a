package trigger

import (
	apperrors "github.com/mgracey/rapport/internal/errors"
	"github.com/mgracey/rapport/internal/rules"
)

// Decode converts a validated generic payload into its typed trigger.
// Payloads must already have passed schema validation; Decode only fails
// for names outside the taxonomy.
func Decode(name string, payload map[string]any) (Trigger, error) {
	switch name {
	case rules.TriggerTimeSkip:
		return TimeSkip{DaysSkipped: asInt(payload["days_skipped"])}, nil
	case rules.TriggerRomanticRejection:
		return RomanticRejection{
			Initiator: asString(payload["initiator"]),
			Target:    asString(payload["target"]),
			Context:   asString(payload["context"]),
		}, nil
	case rules.TriggerRomanticAcceptance:
		return RomanticAcceptance{
			Initiator: asString(payload["initiator"]),
			Target:    asString(payload["target"]),
			Context:   asString(payload["context"]),
		}, nil
	case rules.TriggerApologyAccepted:
		return ApologyAccepted{
			Initiator: asString(payload["initiator"]),
			Target:    asString(payload["target"]),
		}, nil
	case rules.TriggerBetrayalEvent:
		return BetrayalEvent{
			Initiator: asString(payload["initiator"]),
			Target:    asString(payload["target"]),
			Severity:  asInt(payload["severity"]),
		}, nil
	case rules.TriggerHeroicAction:
		return HeroicAction{
			Actor:     asString(payload["actor"]),
			Witnesses: asStringSlice(payload["witnesses"]),
		}, nil
	default:
		return nil, apperrors.WithMetadata(apperrors.CodeTriggerUnknown,
			"trigger name is not in the taxonomy", map[string]string{"trigger": name})
	}
}

func asInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
