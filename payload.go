package extender

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResponseTransaction is returned when a data item is registered
	// against a payload whose response has already been finalized.
	ErrNoResponseTransaction = errors.New("no active response transaction")

	// ErrScopeProcessed is returned when a scope is processed a second time.
	ErrScopeProcessed = errors.New("scope already processed")
)

// Item is one keyed data item of the response payload. The client runtime
// looks up the entry keyed by a target element's identifier and reacts to
// its value.
type Item struct {
	TargetID string `json:"targetId"`
	Value    string `json:"value"`
}

// Payload is the response payload registry for one scope: an append-only set
// of keyed string items delivered to the client runtime alongside the
// rendered page. Registering the same key again overwrites the value but
// keeps the original position.
type Payload struct {
	items  map[string]string
	order  []string
	sealed bool
}

func newPayload() *Payload {
	return &Payload{items: make(map[string]string)}
}

// Register attaches a data item to the outgoing response, keyed by the
// target element's identifier. Values are relayed verbatim; interpretation
// is entirely the client surface's responsibility.
func (p *Payload) Register(targetID string, value string) error {
	if p.sealed {
		return fmt.Errorf("register %q: %w", targetID, ErrNoResponseTransaction)
	}
	if _, ok := p.items[targetID]; !ok {
		p.order = append(p.order, targetID)
	}
	p.items[targetID] = value
	return nil
}

// Get returns the value registered for targetID.
func (p *Payload) Get(targetID string) (string, bool) {
	v, ok := p.items[targetID]
	return v, ok
}

// Items returns the registered data items in registration order.
func (p *Payload) Items() []Item {
	items := make([]Item, 0, len(p.order))
	for _, k := range p.order {
		items = append(items, Item{k, p.items[k]})
	}
	return items
}

func (p *Payload) Len() int {
	return len(p.order)
}

// Sealed reports whether the response has been finalized.
func (p *Payload) Sealed() bool {
	return p.sealed
}

func (p *Payload) seal() {
	p.sealed = true
}
