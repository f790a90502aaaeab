package extender

// ProxyRelay forwards a popup decision recorded in a nested scope to the
// outer scope's response payload. The target control lives in a scope the
// relay cannot see or address, so at flush time the relay appends an
// invisible placeholder element to the outer tree and delivers the result
// under the placeholder's identifier: the placeholder's sole purpose is to
// give the delivery a valid key in the outer scope's namespace.
//
// A relay exposes only Cancel and Commit. It subscribes to the outer scope's
// checkpoint exactly once, at construction.
type ProxyRelay struct {
	outer *Scope

	session session

	subscribed bool
}

// NewProxyRelay binds a relay to the outer scope that will emit the response
// payload read by the client.
func NewProxyRelay(outer *Scope) *ProxyRelay {
	r := &ProxyRelay{outer: outer}
	r.subscribe()
	return r
}

func (r *ProxyRelay) subscribe() {
	if r.subscribed {
		return
	}
	r.subscribed = true
	r.outer.AddStageListener(StagePreRender, NewStageHandler(r.flush))
}

func (r *ProxyRelay) Cancel() {
	r.session.record(CancelSentinel)
}

func (r *ProxyRelay) Commit(result string) {
	r.session.record(result)
}

func (r *ProxyRelay) flush(evt *StageEvent) error {
	result, ok := r.session.take()
	if !ok {
		return nil
	}
	placeholder := NewElement("span", NewID())
	placeholder.Set("hidden", "hidden")
	evt.Scope.Root.AppendChild(placeholder)
	evt.Scope.Log.Debug().Str("placeholder", placeholder.ID).Str("result", result).Msg("relaying popup result")
	return evt.Scope.Payload().Register(placeholder.ID, result)
}
