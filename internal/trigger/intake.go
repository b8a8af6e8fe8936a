package trigger

import (
	"fmt"
	"log"

	apperrors "github.com/mgracey/rapport/internal/errors"
	"github.com/mgracey/rapport/internal/rules"
)

// Handler consumes a validated, typed trigger.
type Handler func(Trigger) error

// Intake is the schema gate in front of the relationship engine. It
// validates trigger payloads and emitting sources, then forwards typed
// triggers to every registered handler. It performs pure validation and
// forwarding: no trigger is ever synthesized here.
type Intake struct {
	schemas  map[string]rules.TriggerSchema
	handlers []Handler
	logger   *log.Logger
}

// NewIntake creates an intake over a loaded schema registry. A nil schema
// map falls back to the default registry; a nil logger falls back to the
// process logger.
func NewIntake(schemas map[string]rules.TriggerSchema, logger *log.Logger) *Intake {
	if schemas == nil {
		schemas = rules.DefaultTriggerSchemas()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Intake{schemas: schemas, logger: logger}
}

// RegisterHandler appends a handler. Handlers run in registration order.
func (in *Intake) RegisterHandler(handler Handler) {
	in.handlers = append(in.handlers, handler)
}

// Validate checks a payload against the trigger's registered schema. It
// fails for unregistered names, missing required fields and mistyped
// fields, in that order.
func (in *Intake) Validate(name string, payload map[string]any) error {
	schema, ok := in.schemas[name]
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeTriggerUnknown,
			"trigger is not registered", map[string]string{"trigger": name})
	}

	for field, fieldType := range schema.Fields {
		value, ok := payload[field]
		if !ok {
			return apperrors.WithMetadata(apperrors.CodeTriggerFieldMissing,
				"required trigger field is missing",
				map[string]string{"trigger": name, "field": field})
		}
		if !matchesType(value, fieldType) {
			return apperrors.WithMetadata(apperrors.CodeTriggerFieldType,
				"trigger field has the wrong type",
				map[string]string{"trigger": name, "field": field, "want": string(fieldType)})
		}
	}
	return nil
}

// Emit validates the trigger, checks the emitting source against the
// schema's authorized list, and invokes every handler in registration
// order. A failing handler is logged and does not prevent the remaining
// handlers from running.
func (in *Intake) Emit(name string, payload map[string]any, source string) error {
	if err := in.Validate(name, payload); err != nil {
		return err
	}

	schema := in.schemas[name]
	if !authorized(schema.Sources, source) {
		return apperrors.WithMetadata(apperrors.CodeTriggerUnauthorizedSource,
			"source is not authorized to emit this trigger",
			map[string]string{"trigger": name, "source": source})
	}

	typed, err := Decode(name, payload)
	if err != nil {
		return err
	}

	for i, handler := range in.handlers {
		if err := in.invoke(handler, typed); err != nil {
			in.logger.Printf("trigger %s: handler %d failed: %v", name, i, err)
		}
	}
	return nil
}

// invoke isolates a single handler call, converting panics to errors so
// one broken consumer cannot block the rest.
func (in *Intake) invoke(handler Handler, typed Trigger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(typed)
}

func authorized(sources []string, source string) bool {
	for _, s := range sources {
		if s == source {
			return true
		}
	}
	return false
}

func matchesType(value any, fieldType rules.TriggerFieldType) bool {
	switch fieldType {
	case rules.FieldInteger:
		switch value.(type) {
		case int, int64:
			return true
		case float64:
			// JSON numbers decode to float64; integral values pass.
			f := value.(float64)
			return f == float64(int64(f))
		default:
			return false
		}
	case rules.FieldString, rules.FieldCharacterID:
		_, ok := value.(string)
		return ok
	case rules.FieldCharacterIDs:
		switch v := value.(type) {
		case []string:
			return true
		case []any:
			for _, item := range v {
				if _, ok := item.(string); !ok {
					return false
				}
			}
			return true
		default:
			return false
		}
	default:
		return false
	}
}
