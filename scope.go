package extender

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Scope represents one page-processing scope for one request cycle: the
// control tree being rendered, the lifecycle stage bus, and the response
// payload that will be delivered to the client runtime.
//
// Extender instances are created anew each round-trip, bound to the scope
// servicing the request. A scope is not shared between goroutines; one
// request cycle is serviced synchronously start to finish.
type Scope struct {
	ID   string
	Root *Element

	Lifecycle Lifecycle

	payload *Payload

	// parent is non-nil for a partial scope: a nested rendering context
	// (embedded sub-page, isolated update region) whose results must
	// surface through an outer scope's payload.
	parent *Scope

	processed bool

	Log zerolog.Logger
}

// NewScope creates a top-level page scope.
func NewScope(options ...func(*Scope) *Scope) *Scope {
	s := &Scope{
		ID:        NewID(),
		Root:      NewElement("body", NewID()),
		Lifecycle: newLifecycle(),
		payload:   newPayload(),
		Log:       zerolog.Nop(),
	}
	for _, option := range options {
		s = option(s)
	}
	return s
}

// NewPartialScope creates a nested scope rendering inside outer. The partial
// keeps its own tree and lifecycle but its extenders may only reach the
// client through outer's payload (see ProxyRelay).
func NewPartialScope(outer *Scope, options ...func(*Scope) *Scope) *Scope {
	s := NewScope(options...)
	s.parent = outer
	s.Log = outer.Log
	return s
}

// WithLogger sets the scope's structured logger. The default is a no-op
// logger so library users opt in to logging.
func WithLogger(l zerolog.Logger) func(*Scope) *Scope {
	return func(s *Scope) *Scope {
		s.Log = l
		return s
	}
}

// WithRoot replaces the scope's default empty root element.
func WithRoot(root *Element) func(*Scope) *Scope {
	return func(s *Scope) *Scope {
		s.Root = root
		return s
	}
}

// Outer returns the enclosing scope for a partial scope, nil otherwise.
func (s *Scope) Outer() *Scope {
	return s.parent
}

// Payload returns the scope's response payload registry.
func (s *Scope) Payload() *Payload {
	return s.payload
}

// AddStageListener subscribes a handler to a lifecycle stage of the scope.
func (s *Scope) AddStageListener(stage Stage, h *StageHandler) *Scope {
	s.Lifecycle.Add(stage, h)
	return s
}

func (s *Scope) RemoveStageListener(stage Stage, h *StageHandler) *Scope {
	s.Lifecycle.Remove(stage, h)
	return s
}

// Process runs the scope through its lifecycle stages in order and seals the
// response payload. It returns the first handler error, leaving the payload
// open so the failure surfaces instead of producing a half-built response.
// A scope services a single request cycle: processing it twice is a bug in
// the host.
func (s *Scope) Process() error {
	if s.processed {
		return fmt.Errorf("scope %s: %w", s.ID, ErrScopeProcessed)
	}
	s.processed = true
	for stage := StageInit; stage <= StageUnload; stage++ {
		s.Log.Debug().Str("scope", s.ID).Stringer("stage", stage).Msg("firing stage")
		if err := s.fire(stage); err != nil {
			return fmt.Errorf("stage %s: %w", stage, err)
		}
	}
	s.payload.seal()
	return nil
}

func (s *Scope) fire(stage Stage) error {
	return s.Lifecycle.fire(&StageEvent{stage, s})
}
