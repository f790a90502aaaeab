package extender

// CancelSentinel is the reserved result value meaning the popup was
// abandoned without a commit. The client runtime hides the popup and applies
// no value when it reads this sentinel; any other string is a committed
// result passed through unmodified.
const CancelSentinel = "$$CANCEL$$"

// Closer is the narrow surface shared by a direct popup session and a proxy
// relay. Cancel and Commit may be called any number of times during a
// request cycle; the last call before the scope reaches its checkpoint wins.
// Calls made after the checkpoint are accepted but have no client-visible
// effect, the flush point having already passed.
type Closer interface {
	Cancel()
	Commit(result string)
}

type flushState int

const (
	flushIdle flushState = iota
	flushPending
	flushFlushed
)

// session records the close decision of one popup for one request cycle.
// It is mutated by Cancel/Commit and read exactly once at flush time.
type session struct {
	state  flushState
	result string
}

// record notes a close decision. Repeated calls overwrite the result; the
// pending state is only entered from idle so that a decision recorded after
// the flush already ran stays client-invisible.
func (s *session) record(result string) {
	s.result = result
	if s.state == flushIdle {
		s.state = flushPending
	}
}

// take consumes the pending decision. It reports false when nothing is
// pending, including when the session was already flushed: firing the
// checkpoint twice delivers at most once.
func (s *session) take() (string, bool) {
	if s.state != flushPending {
		return "", false
	}
	s.state = flushFlushed
	return s.result, true
}

// Popup is a direct popup session: the target control is rendered by the
// scope the session is bound to, so the close decision is delivered under
// the target's own identifier.
type Popup struct {
	scope    *Scope
	targetID string

	session session

	// subscribed guards the checkpoint subscription, keeping it idempotent
	// even if the attach point is reached more than once during setup.
	subscribed bool
}

// NewPopup binds a popup session for targetID to scope and registers its
// flush hook on the scope's checkpoint stage.
func NewPopup(scope *Scope, targetID string) *Popup {
	p := &Popup{scope: scope, targetID: targetID}
	p.subscribe()
	return p
}

func (p *Popup) subscribe() {
	if p.subscribed {
		return
	}
	p.subscribed = true
	p.scope.AddStageListener(StagePreRender, NewStageHandler(p.flush))
}

// Cancel records the cancel sentinel as the popup's outcome.
func (p *Popup) Cancel() {
	p.session.record(CancelSentinel)
}

// Commit records result as the popup's outcome. Any string is accepted and
// relayed verbatim, the empty string included: interpretation belongs to the
// client surface.
func (p *Popup) Commit(result string) {
	p.session.record(result)
}

func (p *Popup) flush(evt *StageEvent) error {
	result, ok := p.session.take()
	if !ok {
		return nil
	}
	evt.Scope.Log.Debug().Str("target", p.targetID).Str("result", result).Msg("flushing popup result")
	return evt.Scope.Payload().Register(p.targetID, result)
}

// NewCloser selects the session type for a popup. A partial scope cannot
// address the client surface directly, so its popups close through a relay
// against the outer scope; a page scope gets a direct session.
func NewCloser(scope *Scope, targetID string) Closer {
	if outer := scope.Outer(); outer != nil {
		return NewProxyRelay(outer)
	}
	return NewPopup(scope, targetID)
}

// PopupExtender attaches popup behavior to an existing page control: it
// emits the client behavior binding built from cfg and carries the session
// the server logic uses to close the popup.
type PopupExtender struct {
	Closer

	Target *Element
	Config PopupConfig
}

// AttachPopup wires a popup extender to target within scope.
func AttachPopup(scope *Scope, target *Element, cfg PopupConfig) (*PopupExtender, error) {
	if err := bind(target, "popup", cfg); err != nil {
		return nil, err
	}
	return &PopupExtender{NewCloser(scope, target.ID), target, cfg}, nil
}

func (p *PopupExtender) TargetID() string { return p.Target.ID }
func (p *PopupExtender) Behavior() string { return "popup" }
