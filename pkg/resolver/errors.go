package resolver

import "fmt"

// ConfigurationError reports a field spec that cannot be resolved against a
// descriptor: a derivable label was requested for a name with no field
// metadata, or a spec that can never derive one omitted its label. It is
// raised at configuration time, never per request.
type ConfigurationError struct {
	// Index is the position of the offending spec in the declared list.
	Index int
	// Evaluator is the raw evaluator value from the spec.
	Evaluator any
	// Reason describes what made the spec invalid.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("resolver: field spec %d (evaluator %v): %s", e.Index, e.Evaluator, e.Reason)
}
