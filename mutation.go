package extender

// Mutation notifies a watcher that a data property of an element changed.
type Mutation struct {
	Label string
	Value interface{}
	Src   *Element
}

func (m Mutation) ObservedLabel() string { return m.Label }
func (m Mutation) Origin() *Element      { return m.Src }
func (m Mutation) NewValue() interface{} { return m.Value }

// MutationHandler is a wrapper type around a callback function run after a
// mutation occurred. Returning true stops propagation to later handlers.
type MutationHandler struct {
	Fn func(Mutation) bool
}

func NewMutationHandler(f func(evt Mutation) bool) *MutationHandler {
	return &MutationHandler{f}
}

func (m *MutationHandler) Handle(evt Mutation) bool {
	return m.Fn(evt)
}

type mutationHandlers struct {
	list []*MutationHandler
}

func newMutationHandlers() *mutationHandlers {
	return &mutationHandlers{make([]*MutationHandler, 0)}
}

func (m *mutationHandlers) Add(h *MutationHandler) *mutationHandlers {
	m.list = append(m.list, h)
	return m
}

func (m *mutationHandlers) Remove(h *MutationHandler) *mutationHandlers {
	index := -1
	for k, v := range m.list {
		if v != h {
			continue
		}
		index = k
		break
	}
	if index >= 0 {
		m.list = append(m.list[:index], m.list[index+1:]...)
	}
	return m
}

func (m *mutationHandlers) Handle(evt Mutation) {
	for _, h := range m.list {
		if h.Handle(evt) {
			return
		}
	}
}
