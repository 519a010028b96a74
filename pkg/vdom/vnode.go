package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Inline component, rendered in place
	KindRaw                    // Raw markup (dangerous)
	KindCustom                 // Nested custom element with its own VM
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	case KindCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// VNode is the template node.
type VNode struct {
	Kind      VKind       // Node type
	Tag       string      // Element tag name (e.g., "div")
	Namespace string      // Empty means inherited from the parent element
	Props     Props       // Attributes
	Children  []*VNode    // Child nodes
	Key       string      // Identity key, not rendered
	Text      string      // For KindText and KindRaw
	Comp      Component   // For KindComponent
	Ctor      Constructor // For KindCustom
	Bindings  []Property  // For KindCustom: initial properties, in order
}

// Props holds attributes.
type Props map[string]any

// IsCustom reports whether this node hosts a nested component.
func (v *VNode) IsCustom() bool {
	return v != nil && v.Kind == KindCustom
}

// HasHandlers returns true if any prop looks like an event handler binding.
// Handlers are never serialized.
func (v *VNode) HasHandlers() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key, value := range v.Props {
		if strings.HasPrefix(key, "on") && IsHandler(value) {
			return true
		}
	}
	return false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Property is an initial property bound onto a nested custom element.
type Property struct {
	Key   string
	Value any
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// Constructor creates a fresh component instance.
type Constructor func() Component

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// IsHandler returns true if value is a function. Functions are bound by
// client code and have no markup representation.
func IsHandler(value any) bool {
	switch value.(type) {
	case nil:
		return false
	case func():
		return true
	case func(any):
		return true
	}
	return strings.HasPrefix(typeName(value), "func")
}
