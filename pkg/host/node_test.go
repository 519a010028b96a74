package host

import "testing"

func TestNodeTypeString(t *testing.T) {
	tests := []struct {
		typ  NodeType
		want string
	}{
		{TypeElement, "Element"},
		{TypeText, "Text"},
		{TypeComment, "Comment"},
		{TypeRaw, "Raw"},
		{TypeShadowRoot, "ShadowRoot"},
		{NodeType(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("NodeType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestNewElementDefaults(t *testing.T) {
	n := NewElement("x-foo", "")
	if n.Type != TypeElement {
		t.Errorf("Type = %v, want Element", n.Type)
	}
	if n.Namespace != HTMLNamespace {
		t.Errorf("Namespace = %q, want %q", n.Namespace, HTMLNamespace)
	}
	if n.Parent != nil {
		t.Error("new element should be detached")
	}
	if len(n.Children) != 0 || len(n.Attributes) != 0 {
		t.Error("new element should have no children or attributes")
	}
	if n.ContextProviders == nil {
		t.Error("context registry should be initialized")
	}

	svg := NewElement("circle", SVGNamespace)
	if svg.Namespace != SVGNamespace {
		t.Errorf("Namespace = %q, want %q", svg.Namespace, SVGNamespace)
	}
}

func TestSetPropertyOrderAndOverwrite(t *testing.T) {
	n := NewElement("x-foo", "")
	n.SetProperty("b", 1)
	n.SetProperty("a", 2)
	n.SetProperty("b", 3)

	props := n.Properties()
	if len(props) != 2 {
		t.Fatalf("len(props) = %d, want 2", len(props))
	}
	if props[0].Key != "b" || props[0].Value != 3 {
		t.Errorf("props[0] = %+v, want b=3", props[0])
	}
	if props[1].Key != "a" || props[1].Value != 2 {
		t.Errorf("props[1] = %+v, want a=2", props[1])
	}

	v, ok := n.Property("b")
	if !ok || v != 3 {
		t.Errorf("Property(b) = %v, %v", v, ok)
	}
	if _, ok := n.Property("missing"); ok {
		t.Error("Property(missing) should not be found")
	}
}

func TestSetPropertyDoesNotTouchStructure(t *testing.T) {
	parent := NewElement("div", "")
	n := NewElement("x-foo", "")
	n.Parent = parent

	n.SetProperty("parent", "nope")
	n.SetProperty("children", []string{"a"})

	if n.Parent != parent {
		t.Error("parent link changed by SetProperty")
	}
	if len(n.Children) != 0 {
		t.Error("children changed by SetProperty")
	}
}

func TestAttributeLookup(t *testing.T) {
	n := NewElement("a", "")
	n.Attributes = append(n.Attributes,
		Attribute{Name: "href", Value: "/x"},
		Attribute{Name: "href", Namespace: XLinkNamespace, Value: "#y"},
	)

	if v, ok := n.Attribute("href"); !ok || v != "/x" {
		t.Errorf("Attribute(href) = %q, %v", v, ok)
	}
	if i := n.AttrIndex("href", XLinkNamespace); i != 1 {
		t.Errorf("AttrIndex(xlink:href) = %d, want 1", i)
	}
	if i := n.AttrIndex("title", ""); i != -1 {
		t.Errorf("AttrIndex(title) = %d, want -1", i)
	}
}

func TestParentOrHost(t *testing.T) {
	el := NewElement("x-foo", "")
	root := NewShadowRoot(ModeOpen)
	root.Host = el
	if root.ParentOrHost() != el {
		t.Error("shadow root should resolve to its host")
	}

	child := NewText("x")
	child.Parent = root
	if child.ParentOrHost() != root {
		t.Error("regular node should resolve to its parent")
	}
}
