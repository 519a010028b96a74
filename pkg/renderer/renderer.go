// Package renderer provides the host node construction and mutation
// primitives used by the VM engine during server-side rendering.
package renderer

import (
	"slices"

	"github.com/vango-dev/ssr/pkg/host"
)

// ElementCreator creates host element nodes.
type ElementCreator interface {
	CreateElement(tagName string) *host.Node
}

// Adapter is the full capability set handed to the VM engine.
type Adapter interface {
	ElementCreator

	CreateElementNS(tagName, namespace string) *host.Node
	CreateText(content string) *host.Node
	CreateComment(content string) *host.Node
	CreateRaw(markup string) *host.Node
	AttachShadow(elm *host.Node, mode host.ShadowMode) *host.Node

	Insert(node, parent, anchor *host.Node)
	Remove(node, parent *host.Node)

	SetAttribute(elm *host.Node, name, value, namespace string)
	GetAttribute(elm *host.Node, name, namespace string) (string, bool)
	RemoveAttribute(elm *host.Node, name, namespace string)
	SetText(node *host.Node, content string)
}

// Renderer is the default Adapter. It holds no state and is safe for
// concurrent use.
type Renderer struct{}

// New returns the default renderer adapter.
func New() *Renderer {
	return &Renderer{}
}

// CreateElement creates a detached element in the HTML namespace.
func (r *Renderer) CreateElement(tagName string) *host.Node {
	return host.NewElement(tagName, host.HTMLNamespace)
}

// CreateElementNS creates a detached element in the given namespace.
func (r *Renderer) CreateElementNS(tagName, namespace string) *host.Node {
	return host.NewElement(tagName, namespace)
}

// CreateText creates a detached text node.
func (r *Renderer) CreateText(content string) *host.Node {
	return host.NewText(content)
}

// CreateComment creates a detached comment node.
func (r *Renderer) CreateComment(content string) *host.Node {
	return host.NewComment(content)
}

// CreateRaw creates a detached node holding pre-rendered markup.
func (r *Renderer) CreateRaw(markup string) *host.Node {
	return host.NewRaw(markup)
}

// AttachShadow attaches a new shadow root to elm and returns it. An existing
// shadow root is returned unchanged.
func (r *Renderer) AttachShadow(elm *host.Node, mode host.ShadowMode) *host.Node {
	if elm.ShadowRoot != nil {
		return elm.ShadowRoot
	}
	root := host.NewShadowRoot(mode)
	root.Host = elm
	elm.ShadowRoot = root
	return root
}

// Insert inserts node into parent before anchor. A nil anchor, or one that
// is not a child of parent, appends. The node is first removed from its
// previous parent so both sides of the link stay consistent.
func (r *Renderer) Insert(node, parent, anchor *host.Node) {
	if node.Parent != nil {
		r.Remove(node, node.Parent)
	}

	i := -1
	if anchor != nil {
		i = slices.Index(parent.Children, anchor)
	}
	if i < 0 {
		parent.Children = append(parent.Children, node)
	} else {
		parent.Children = slices.Insert(parent.Children, i, node)
	}
	node.Parent = parent
}

// Remove removes node from parent's children and clears its parent link.
func (r *Renderer) Remove(node, parent *host.Node) {
	if i := slices.Index(parent.Children, node); i >= 0 {
		parent.Children = slices.Delete(parent.Children, i, i+1)
	}
	if node.Parent == parent {
		node.Parent = nil
	}
}

// SetAttribute sets or replaces an attribute value, keeping the position of
// an existing record.
func (r *Renderer) SetAttribute(elm *host.Node, name, value, namespace string) {
	if i := elm.AttrIndex(name, namespace); i >= 0 {
		elm.Attributes[i].Value = value
		return
	}
	elm.Attributes = append(elm.Attributes, host.Attribute{
		Name:      name,
		Namespace: namespace,
		Value:     value,
	})
}

// GetAttribute returns an attribute value.
func (r *Renderer) GetAttribute(elm *host.Node, name, namespace string) (string, bool) {
	i := elm.AttrIndex(name, namespace)
	if i < 0 {
		return "", false
	}
	return elm.Attributes[i].Value, true
}

// RemoveAttribute removes an attribute if present.
func (r *Renderer) RemoveAttribute(elm *host.Node, name, namespace string) {
	if i := elm.AttrIndex(name, namespace); i >= 0 {
		elm.Attributes = slices.Delete(elm.Attributes, i, i+1)
	}
}

// SetText replaces the data of a text or comment node.
func (r *Renderer) SetText(node *host.Node, content string) {
	node.Value = content
}
