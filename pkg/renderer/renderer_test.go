package renderer

import (
	"testing"

	"github.com/vango-dev/ssr/pkg/host"
)

func TestCreateElement(t *testing.T) {
	r := New()

	el := r.CreateElement("x-foo")
	if el.Type != host.TypeElement || el.TagName != "x-foo" {
		t.Errorf("got %v %q, want Element x-foo", el.Type, el.TagName)
	}
	if el.Namespace != host.HTMLNamespace {
		t.Errorf("Namespace = %q, want HTML", el.Namespace)
	}

	svg := r.CreateElementNS("svg", host.SVGNamespace)
	if svg.Namespace != host.SVGNamespace {
		t.Errorf("Namespace = %q, want SVG", svg.Namespace)
	}
}

func TestInsertKeepsLinksConsistent(t *testing.T) {
	r := New()
	parent := r.CreateElement("ul")
	a := r.CreateElement("li")
	b := r.CreateElement("li")
	c := r.CreateElement("li")

	r.Insert(a, parent, nil)
	r.Insert(c, parent, nil)
	r.Insert(b, parent, c)

	want := []*host.Node{a, b, c}
	if len(parent.Children) != len(want) {
		t.Fatalf("len(children) = %d, want 3", len(parent.Children))
	}
	for i, n := range want {
		if parent.Children[i] != n {
			t.Errorf("children[%d] is wrong node", i)
		}
		if n.Parent != parent {
			t.Errorf("children[%d].Parent not set", i)
		}
	}
}

func TestInsertMovesBetweenParents(t *testing.T) {
	r := New()
	p1 := r.CreateElement("div")
	p2 := r.CreateElement("div")
	child := r.CreateText("hi")

	r.Insert(child, p1, nil)
	r.Insert(child, p2, nil)

	if len(p1.Children) != 0 {
		t.Errorf("old parent still has %d children", len(p1.Children))
	}
	if len(p2.Children) != 1 || child.Parent != p2 {
		t.Error("child not moved to new parent")
	}
}

func TestRemove(t *testing.T) {
	r := New()
	parent := r.CreateElement("div")
	child := r.CreateElement("span")
	r.Insert(child, parent, nil)

	r.Remove(child, parent)

	if len(parent.Children) != 0 {
		t.Error("child still listed")
	}
	if child.Parent != nil {
		t.Error("parent link not cleared")
	}
}

func TestAttributes(t *testing.T) {
	r := New()
	el := r.CreateElement("input")

	r.SetAttribute(el, "type", "text", "")
	r.SetAttribute(el, "name", "q", "")
	r.SetAttribute(el, "type", "search", "")

	if len(el.Attributes) != 2 {
		t.Fatalf("len(attrs) = %d, want 2", len(el.Attributes))
	}
	if el.Attributes[0].Name != "type" || el.Attributes[0].Value != "search" {
		t.Errorf("attrs[0] = %+v, want type=search", el.Attributes[0])
	}

	if v, ok := r.GetAttribute(el, "name", ""); !ok || v != "q" {
		t.Errorf("GetAttribute(name) = %q, %v", v, ok)
	}

	r.RemoveAttribute(el, "type", "")
	if _, ok := r.GetAttribute(el, "type", ""); ok {
		t.Error("type should be removed")
	}
}

func TestAttachShadow(t *testing.T) {
	r := New()
	el := r.CreateElement("x-foo")

	root := r.AttachShadow(el, host.ModeOpen)
	if el.ShadowRoot != root || root.Host != el || root.ParentOrHost() != el {
		t.Error("shadow root not linked to host")
	}
	if root.Mode != host.ModeOpen {
		t.Errorf("Mode = %q, want open", root.Mode)
	}
	if again := r.AttachShadow(el, host.ModeClosed); again != root {
		t.Error("second AttachShadow should return the existing root")
	}
	if len(el.Children) != 0 || root.Parent != nil {
		t.Error("shadow root must not be a light child")
	}
}
