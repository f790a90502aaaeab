// Package doc renders a processed page scope to HTML readable by the client
// runtime: the control tree as markup, extender bindings as data attributes,
// and the response payload as a JSON script island.
package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	ext "github.com/atdiar/extender"

	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// PayloadScriptID is the id of the script element carrying the response
// payload items. The client runtime parses its JSON body and dispatches each
// item to the element it is keyed by.
const PayloadScriptID = "xt-payload"

// BindingAttrPrefix prefixes the data attributes carrying extender bindings.
const BindingAttrPrefix = "data-xt-"

var ErrUnprocessedScope = errors.New("scope has not been processed")

// Render writes the scope as formatted HTML. The scope must have completed
// its lifecycle first: rendering an unfinalized response would ship a payload
// the checkpoint never flushed into.
func Render(w io.Writer, s *ext.Scope) error {
	if !s.Payload().Sealed() {
		return fmt.Errorf("render scope %s: %w", s.ID, ErrUnprocessedScope)
	}
	tree, err := NewHTMLTree(s)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, tree); err != nil {
		return err
	}
	_, err = io.WriteString(w, gohtml.Format(buf.String()))
	return err
}

// NewHTMLTree builds the html node tree for a scope, payload island included.
func NewHTMLTree(s *ext.Scope) (*html.Node, error) {
	root := newHTMLTree(s.Root)
	island, err := payloadScriptNode(s.Payload())
	if err != nil {
		return nil, err
	}
	root.AppendChild(island)
	return root, nil
}

func newHTMLTree(e *ext.Element) *html.Node {
	n := NewHTMLNode(e)
	if e.Children != nil {
		for _, child := range e.Children.List {
			n.AppendChild(newHTMLTree(child))
		}
	}
	return n
}

// NewHTMLNode translates one element into an html node. The element name is
// the tag; string data properties become plain attributes; bindings become
// prefixed data attributes holding their JSON configuration.
func NewHTMLNode(e *ext.Element) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: e.Name}
	n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: e.ID})
	for k, v := range e.Data.Store {
		sv, ok := v.(string)
		if !ok {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: sv})
	}
	for _, b := range e.Bindings {
		n.Attr = append(n.Attr, html.Attribute{Key: BindingAttrPrefix + b.Behavior, Val: string(b.Config)})
	}
	return n
}

func payloadScriptNode(p *ext.Payload) (*html.Node, error) {
	raw, err := json.Marshal(p.Items())
	if err != nil {
		return nil, err
	}
	script := &html.Node{Type: html.ElementNode, Data: "script"}
	script.Attr = []html.Attribute{
		{Key: "type", Val: "application/json"},
		{Key: "id", Val: PayloadScriptID},
	}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: string(raw)})
	return script, nil
}
