package extender

import (
	"encoding/json"
	"fmt"
)

// Extender is a server-side behavior attached to an existing page control.
// An extender does not render anything itself: it emits a ScriptBinding on
// its target element and, for the kinds that need it, hooks the scope's
// lifecycle.
type Extender interface {
	TargetID() string
	Behavior() string
}

// ScriptBinding is the client-side behavior binding emitted by an extender:
// the name of a client runtime behavior, the element it applies to, and the
// JSON-encoded configuration carried verbatim to the client. Drivers render
// bindings as part of the element's markup.
type ScriptBinding struct {
	Behavior string
	TargetID string
	Config   json.RawMessage
}

// bind encodes cfg and records the binding on the target element. Config is
// pure declarative state for the client runtime; the server never reads it
// back.
func bind(target *Element, behavior string, cfg interface{}) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("bind %s on %s: %w", behavior, target.ID, err)
	}
	target.Bindings = append(target.Bindings, ScriptBinding{behavior, target.ID, raw})
	return nil
}
