package extender

// Stage identifies a point in a scope's request-processing pipeline.
// Handlers subscribe to a stage; Scope.Process fires the stages in order.
type Stage int

const (
	StageInit Stage = iota
	StageLoad
	// StagePreRender is the checkpoint: the single designated point where
	// pending popup decisions are flushed to the response payload.
	StagePreRender
	StageRender
	StageUnload
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageLoad:
		return "load"
	case StagePreRender:
		return "prerender"
	case StageRender:
		return "render"
	case StageUnload:
		return "unload"
	}
	return "unknown"
}

// StageEvent is passed to lifecycle handlers when a scope reaches a stage.
type StageEvent struct {
	Stage Stage
	Scope *Scope
}

// StageHandler is a wrapper type around a callback run when a scope reaches
// the stage the handler was registered for. A non-nil error aborts the
// remainder of the pipeline and is returned by Scope.Process.
type StageHandler struct {
	Fn   func(*StageEvent) error
	Once bool
}

func NewStageHandler(fn func(*StageEvent) error) *StageHandler {
	return &StageHandler{fn, false}
}

// TriggerOnce marks the handler for removal after its first run.
func (h *StageHandler) TriggerOnce() *StageHandler {
	h.Once = true
	return h
}

type stageHandlers struct {
	List []*StageHandler
}

func newStageHandlers() *stageHandlers {
	return &stageHandlers{make([]*StageHandler, 0)}
}

func (s *stageHandlers) Add(h *StageHandler) *stageHandlers {
	s.List = append(s.List, h)
	return s
}

func (s *stageHandlers) Remove(h *StageHandler) *stageHandlers {
	index := -1
	for k, v := range s.List {
		if v != h {
			continue
		}
		index = k
		break
	}
	if index >= 0 {
		s.List = append(s.List[:index], s.List[index+1:]...)
	}
	return s
}

// Lifecycle holds the per-stage handler lists of one scope.
type Lifecycle struct {
	list map[Stage]*stageHandlers
}

func newLifecycle() Lifecycle {
	return Lifecycle{make(map[Stage]*stageHandlers)}
}

func (l Lifecycle) Add(stage Stage, h *StageHandler) {
	shs, ok := l.list[stage]
	if !ok {
		shs = newStageHandlers()
		l.list[stage] = shs
	}
	shs.Add(h)
}

func (l Lifecycle) Remove(stage Stage, h *StageHandler) {
	shs, ok := l.list[stage]
	if !ok {
		return
	}
	shs.Remove(h)
}

// fire runs the handlers registered for the event's stage, in registration
// order. Handlers registered while firing do not run in this pass.
func (l Lifecycle) fire(evt *StageEvent) error {
	shs, ok := l.list[evt.Stage]
	if !ok {
		return nil
	}
	handlers := make([]*StageHandler, len(shs.List))
	copy(handlers, shs.List)
	for _, h := range handlers {
		err := h.Fn(evt)
		if h.Once {
			shs.Remove(h)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
