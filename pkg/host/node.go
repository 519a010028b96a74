package host

import "slices"

// Namespaces recognized by the renderer and serializer.
const (
	HTMLNamespace   = "http://www.w3.org/1999/xhtml"
	SVGNamespace    = "http://www.w3.org/2000/svg"
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"
	XLinkNamespace  = "http://www.w3.org/1999/xlink"
	XMLNamespace    = "http://www.w3.org/XML/1998/namespace"
)

// NodeType is the host node kind discriminator.
type NodeType uint8

const (
	TypeElement    NodeType = iota // <div>, <x-foo>, etc.
	TypeText                       // Text content
	TypeComment                    // <!-- comment -->
	TypeRaw                        // Pre-rendered markup
	TypeShadowRoot                 // Shadow root attached to an element
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case TypeElement:
		return "Element"
	case TypeText:
		return "Text"
	case TypeComment:
		return "Comment"
	case TypeRaw:
		return "Raw"
	case TypeShadowRoot:
		return "ShadowRoot"
	default:
		return "Unknown"
	}
}

// ShadowMode is the encapsulation mode of a shadow root.
type ShadowMode string

const (
	ModeOpen   ShadowMode = "open"
	ModeClosed ShadowMode = "closed"
)

// Attribute is a single attribute record on an element.
type Attribute struct {
	Name      string
	Namespace string // Empty for attributes in no namespace
	Value     string
}

// Node is a document-free host node.
type Node struct {
	Type       NodeType
	TagName    string      // Elements only
	Namespace  string      // Elements only, HTMLNamespace unless overridden
	Parent     *Node       // Nil for detached nodes
	Children   []*Node     // Ordered child nodes
	Attributes []Attribute // Ordered attribute records
	ShadowRoot *Node       // Attached shadow root, if any
	Host       *Node       // Shadow roots only: the element it is attached to
	Mode       ShadowMode  // Shadow roots only
	Value      string      // Text, comment and raw data

	// ContextProviders maps a provider identity to the value it provides
	// to descendants.
	ContextProviders map[any]any

	// Instance is an opaque slot owned by the VM engine.
	Instance any

	propKeys []string
	props    map[string]any
}

// NewElement returns a detached element node. An empty namespace selects
// HTMLNamespace.
func NewElement(tagName, namespace string) *Node {
	if namespace == "" {
		namespace = HTMLNamespace
	}
	return &Node{
		Type:             TypeElement,
		TagName:          tagName,
		Namespace:        namespace,
		Children:         []*Node{},
		Attributes:       []Attribute{},
		ContextProviders: make(map[any]any),
	}
}

// NewText returns a detached text node.
func NewText(value string) *Node {
	return &Node{Type: TypeText, Value: value}
}

// NewComment returns a detached comment node.
func NewComment(value string) *Node {
	return &Node{Type: TypeComment, Value: value}
}

// NewRaw returns a detached node holding pre-rendered markup.
func NewRaw(markup string) *Node {
	return &Node{Type: TypeRaw, Value: markup}
}

// NewShadowRoot returns a shadow root with the given mode. It is not yet
// attached to a host.
func NewShadowRoot(mode ShadowMode) *Node {
	return &Node{
		Type:     TypeShadowRoot,
		Mode:     mode,
		Children: []*Node{},
	}
}

// ParentOrHost returns the parent link, or the host element for a shadow
// root.
func (n *Node) ParentOrHost() *Node {
	if n.Parent == nil && n.Type == TypeShadowRoot {
		return n.Host
	}
	return n.Parent
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == TypeElement
}

// SetProperty assigns value to the property key. Re-assigning a key keeps
// its original position.
func (n *Node) SetProperty(key string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	if _, ok := n.props[key]; !ok {
		n.propKeys = append(n.propKeys, key)
	}
	n.props[key] = value
}

// Property returns the value of the property key.
func (n *Node) Property(key string) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

// Properties returns the property bag in assignment order.
func (n *Node) Properties() Props {
	out := make(Props, 0, len(n.propKeys))
	for _, k := range n.propKeys {
		out = append(out, Prop{Key: k, Value: n.props[k]})
	}
	return out
}

// Attribute returns the value of the named attribute in no namespace.
func (n *Node) Attribute(name string) (string, bool) {
	i := n.AttrIndex(name, "")
	if i < 0 {
		return "", false
	}
	return n.Attributes[i].Value, true
}

// AttrIndex returns the index of the attribute matching name and namespace,
// or -1.
func (n *Node) AttrIndex(name, namespace string) int {
	return slices.IndexFunc(n.Attributes, func(a Attribute) bool {
		return a.Name == name && a.Namespace == namespace
	})
}
