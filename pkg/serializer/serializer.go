package serializer

import (
	"io"
	"strings"

	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// Config configures the serializer.
type Config struct {
	// Pretty enables indented output. It changes whitespace in the markup
	// and is meant for debugging.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Serializer renders host trees to markup. It holds no per-call state and
// is safe for concurrent use.
type Serializer struct {
	config Config
}

// New creates a Serializer with the given configuration.
func New(config Config) *Serializer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Serializer{config: config}
}

var defaultSerializer = New(Config{})

// SerializeElement renders node with the default configuration.
func SerializeElement(node *host.Node) (string, error) {
	return defaultSerializer.SerializeElement(node)
}

// SerializeElement renders node and its subtree to a string.
func (s *Serializer) SerializeElement(node *host.Node) (string, error) {
	var b strings.Builder
	if err := s.WriteElement(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteElement streams node and its subtree to w.
func (s *Serializer) WriteElement(w io.Writer, node *host.Node) error {
	ew := &errWriter{w: w}
	if err := s.writeNode(ew, node, nil, 0); err != nil {
		return err
	}
	return ew.err
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// writeNode dispatches on node type. parent is the enclosing element, used
// to decide whether text is raw.
func (s *Serializer) writeNode(w *errWriter, node, parent *host.Node, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Type {
	case host.TypeElement:
		return s.writeElement(w, node, depth)
	case host.TypeText:
		if parent != nil && parent.Namespace == host.HTMLNamespace && rawTextElements[parent.TagName] {
			w.WriteString(node.Value)
		} else {
			w.WriteString(escapeHTML(node.Value))
		}
	case host.TypeComment:
		w.WriteString("<!--")
		w.WriteString(escapeComment(node.Value))
		w.WriteString("-->")
	case host.TypeRaw:
		w.WriteString(node.Value)
	case host.TypeShadowRoot:
		return s.writeShadowRoot(w, node, parent, depth)
	default:
		return errors.New("E020").WithDetailf("node type %s (%d)", node.Type, node.Type)
	}
	return w.err
}

// writeElement renders an element with its attributes, shadow root and
// light children.
func (s *Serializer) writeElement(w *errWriter, node *host.Node, depth int) error {
	tag := node.TagName
	if s.config.Pretty && depth > 0 {
		s.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(tag)
	s.writeAttributes(w, node)
	w.WriteString(">")

	if node.Namespace == host.HTMLNamespace && vdom.IsVoidElement(tag) {
		if s.config.Pretty {
			w.WriteString("\n")
		}
		return w.err
	}

	block := s.config.Pretty && !inlineElements[tag] &&
		(node.ShadowRoot != nil || len(node.Children) > 0)
	if block {
		w.WriteString("\n")
	}

	if node.ShadowRoot != nil {
		if err := s.writeShadowRoot(w, node.ShadowRoot, node, depth+1); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := s.writeNode(w, child, node, depth+1); err != nil {
			return err
		}
	}

	if block {
		s.writeIndent(w, depth)
	}
	w.WriteString("</")
	w.WriteString(tag)
	w.WriteString(">")
	if s.config.Pretty {
		w.WriteString("\n")
	}

	return w.err
}

// writeShadowRoot renders a shadow root as a declarative shadow DOM
// template.
func (s *Serializer) writeShadowRoot(w *errWriter, root, hostElm *host.Node, depth int) error {
	mode := root.Mode
	if mode == "" {
		mode = host.ModeOpen
	}

	if s.config.Pretty {
		s.writeIndent(w, depth)
	}
	w.WriteString(`<template shadowrootmode="`)
	w.WriteString(string(mode))
	w.WriteString(`">`)
	if s.config.Pretty && len(root.Children) > 0 {
		w.WriteString("\n")
	}

	for _, child := range root.Children {
		if err := s.writeNode(w, child, hostElm, depth+1); err != nil {
			return err
		}
	}

	if s.config.Pretty && len(root.Children) > 0 {
		s.writeIndent(w, depth)
	}
	w.WriteString("</template>")
	if s.config.Pretty {
		w.WriteString("\n")
	}
	return w.err
}

// writeAttributes renders attribute records in their stored order.
func (s *Serializer) writeAttributes(w *errWriter, node *host.Node) {
	for _, attr := range node.Attributes {
		name := qualifiedName(attr)

		w.WriteString(" ")
		w.WriteString(name)
		if attr.Value == "" && booleanAttrs[name] {
			continue
		}
		w.WriteString(`="`)
		w.WriteString(escapeAttr(attr.Value))
		w.WriteString(`"`)
	}
}

// qualifiedName returns the attribute name with the conventional prefix for
// its namespace.
func qualifiedName(attr host.Attribute) string {
	switch attr.Namespace {
	case host.XLinkNamespace:
		return "xlink:" + attr.Name
	case host.XMLNamespace:
		return "xml:" + attr.Name
	default:
		return attr.Name
	}
}

// writeIndent writes indentation for pretty printing.
func (s *Serializer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(s.config.Indent)
	}
}
