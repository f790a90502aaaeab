package extender

// New applies a list of modifiers to an element, enabling declarative
// construction of a scope's control tree.
func New(e *Element, modifiers ...func(*Element) *Element) *Element {
	for _, mod := range modifiers {
		e = mod(e)
	}
	return e
}

func Children(children ...*Element) func(*Element) *Element {
	return func(e *Element) *Element {
		e.SetChildrenElements(children...)
		return e
	}
}

func WithData(label string, value interface{}) func(*Element) *Element {
	return func(e *Element) *Element {
		e.Set(label, value)
		return e
	}
}

func Watching(label string, h *MutationHandler) func(*Element) *Element {
	return func(e *Element) *Element {
		return e.Watch(label, h)
	}
}
