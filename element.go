// Package extender implements server-side extender controls for page-rendered
// UIs: components that attach behavior to existing page controls through
// page-lifecycle hooks and declarative properties, and deliver their results
// back to the client runtime via the response payload.
package extender

import (
	"github.com/google/uuid"
)

// NewID returns a unique identifier usable for scopes and generated Elements.
// Generated IDs only need to be unique within one request cycle, but a UUID
// keeps them collision-free across nested scopes without coordination.
func NewID() string {
	return uuid.NewString()
}

// Element is a node of a page scope's control tree. Extenders attach to
// Elements; generated carrier elements (see ProxyRelay) are plain Elements
// too. The Name doubles as the markup tag when a driver renders the tree.
type Element struct {
	Parent *Element

	Name string
	ID   string

	Data DataStore

	// Bindings holds the client-side behavior bindings emitted by the
	// extenders attached to this element.
	Bindings []ScriptBinding

	Children *Elements
}

// NewElement creates a detached element. Pass NewID() when the caller has no
// meaningful identifier for it.
func NewElement(name string, id string) *Element {
	return &Element{nil, name, id, NewDataStore(), nil, NewElements()}
}

// DataStore holds an element's data properties alongside the handlers
// watching them.
type DataStore struct {
	Store    map[string]interface{}
	Watchers map[string]*mutationHandlers
}

func NewDataStore() DataStore {
	return DataStore{make(map[string]interface{}), make(map[string]*mutationHandlers)}
}

func (d DataStore) Get(label string) (interface{}, bool) {
	v, ok := d.Store[label]
	return v, ok
}

func (d DataStore) Set(label string, value interface{}) {
	d.Store[label] = value
}

// Elements is a list of *Element.
type Elements struct {
	List []*Element
}

func NewElements(elements ...*Element) *Elements {
	return &Elements{elements}
}

func (e *Elements) InsertLast(elements ...*Element) *Elements {
	e.List = append(e.List, elements...)
	return e
}

func (e *Elements) InsertFirst(elements ...*Element) *Elements {
	e.List = append(elements, e.List...)
	return e
}

func (e *Elements) Insert(el *Element, index int) *Elements {
	nel := make([]*Element, 0, len(e.List)+1)
	nel = append(nel, e.List[:index]...)
	nel = append(nel, el)
	nel = append(nel, e.List[index:]...)
	e.List = nel
	return e
}

func (e *Elements) Remove(el *Element) *Elements {
	index := -1
	for k, element := range e.List {
		if element == el {
			index = k
			break
		}
	}
	if index >= 0 {
		e.List = append(e.List[:index], e.List[index+1:]...)
	}
	return e
}

func (e *Elements) Replace(old *Element, new *Element) *Elements {
	for k, element := range e.List {
		if element == old {
			e.List[k] = new
			return e
		}
	}
	return e
}

// AppendChild appends a new element to the element's children list.
func (e *Element) AppendChild(child *Element) *Element {
	attach(e, child)
	e.Children.InsertLast(child)
	return e
}

func (e *Element) Prepend(child *Element) *Element {
	attach(e, child)
	e.Children.InsertFirst(child)
	return e
}

func (e *Element) InsertChild(child *Element, index int) *Element {
	attach(e, child)
	e.Children.Insert(child, index)
	return e
}

func (e *Element) ReplaceChild(old *Element, new *Element) *Element {
	attach(e, new)
	detach(old)
	e.Children.Replace(old, new)
	return e
}

func (e *Element) RemoveChild(child *Element) *Element {
	detach(child)
	e.Children.Remove(child)
	return e
}

func (e *Element) RemoveChildren() *Element {
	for _, child := range e.Children.List {
		detach(child)
	}
	e.Children.List = nil
	return e
}

// SetChildrenElements replaces the current children list wholesale.
func (e *Element) SetChildrenElements(children ...*Element) *Element {
	e.RemoveChildren()
	for _, child := range children {
		e.AppendChild(child)
	}
	return e
}

func attach(parent, child *Element) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = parent
}

func detach(e *Element) {
	e.Parent = nil
}

// FindByID walks the subtree rooted at e looking for the element carrying
// the given id. Returns nil when absent.
func (e *Element) FindByID(id string) *Element {
	if e.ID == id {
		return e
	}
	for _, child := range e.Children.List {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Get reads a data property of the element.
func (e *Element) Get(label string) (interface{}, bool) {
	return e.Data.Get(label)
}

// Set mutates a data property of the element and notifies any handler
// watching that property.
func (e *Element) Set(label string, value interface{}) {
	e.Data.Set(label, value)
	mhs, ok := e.Data.Watchers[label]
	if !ok {
		return
	}
	mhs.Handle(Mutation{label, value, e})
}

// Watch registers a handler run whenever the given data property of the
// element is Set.
func (e *Element) Watch(label string, h *MutationHandler) *Element {
	mhs, ok := e.Data.Watchers[label]
	if !ok {
		mhs = newMutationHandlers()
		e.Data.Watchers[label] = mhs
	}
	mhs.Add(h)
	return e
}

func (e *Element) Unwatch(label string, h *MutationHandler) *Element {
	mhs, ok := e.Data.Watchers[label]
	if !ok {
		return e
	}
	mhs.Remove(h)
	return e
}
