// Package components holds the built-in components shipped with the
// vango-ssr CLI and render server.
package components

import (
	"strings"

	"github.com/vango-dev/ssr/pkg/engine"
	"github.com/vango-dev/ssr/pkg/registry"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// Register adds every built-in component to reg.
func Register(reg *registry.Registry) error {
	builtins := []struct {
		tag  string
		ctor vdom.Constructor
		desc string
	}{
		{"x-empty", NewEmpty, "Renders nothing"},
		{"x-greeting", NewGreeting, "Greets by label; props: label, count"},
		{"x-list", NewList, "Renders items as nested x-item elements; props: items, ordered"},
		{"x-item", NewItem, "A single list entry; props: text"},
		{"x-theme", NewTheme, "Provides a theme to descendants; props: theme, label"},
		{"x-themed-button", NewThemedButton, "Button styled by the nearest x-theme; props: label"},
		{"x-card", NewCard, "Light DOM card with a heading; props: title, body"},
		{"x-icon", NewIcon, "Inline SVG icon; props: name, size"},
	}
	for _, b := range builtins {
		if err := reg.Register(b.tag, b.ctor, b.desc); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// x-empty
// =============================================================================

type empty struct{}

// NewEmpty creates a component with no output.
func NewEmpty() vdom.Component { return empty{} }

func (empty) Render() *vdom.VNode { return nil }

// =============================================================================
// x-greeting
// =============================================================================

// Greeting renders its label.
type Greeting struct {
	Label string `prop:"label"`
	Count int    `prop:"count"`
}

// NewGreeting creates a Greeting.
func NewGreeting() vdom.Component { return &Greeting{Label: "world"} }

func (g *Greeting) Render() *vdom.VNode {
	return vdom.P(vdom.Class("greeting"),
		vdom.Textf("Hello, %s!", g.Label),
		vdom.If(g.Count > 1, vdom.Span(vdom.Class("count"), vdom.Textf(" x%d", g.Count))),
	)
}

// =============================================================================
// x-list / x-item
// =============================================================================

// List renders Items as x-item children.
type List struct {
	Items   []string `prop:"items"`
	Ordered bool     `prop:"ordered"`
}

// NewList creates a List.
func NewList() vdom.Component { return &List{} }

func (l *List) Render() *vdom.VNode {
	items := vdom.Range(l.Items, func(item string, i int) *vdom.VNode {
		return vdom.Li(vdom.Key(i),
			vdom.Custom("x-item", NewItem, vdom.Bind("text", item)),
		)
	})
	if l.Ordered {
		return vdom.Ol(items)
	}
	return vdom.Ul(items)
}

// Item renders one list entry.
type Item struct {
	Text string `prop:"text"`
}

// NewItem creates an Item.
func NewItem() vdom.Component { return &Item{} }

func (i *Item) Render() *vdom.VNode {
	return vdom.Span(vdom.Class("item"), vdom.Text(i.Text))
}

// =============================================================================
// x-theme / x-themed-button
// =============================================================================

// ThemeKey is the context key under which Theme provides its name.
type ThemeKey struct{}

// Theme provides a theme name to descendant components.
type Theme struct {
	Name  string `prop:"theme"`
	Label string `prop:"label"`
}

// NewTheme creates a Theme with the light theme.
func NewTheme() vdom.Component { return &Theme{Name: "light", Label: "OK"} }

// ProvideContext implements engine.ContextProvider.
func (t *Theme) ProvideContext() map[any]any {
	return map[any]any{ThemeKey{}: t.Name}
}

func (t *Theme) Render() *vdom.VNode {
	return vdom.Div(vdom.Class("theme-"+t.Name),
		vdom.Custom("x-themed-button", NewThemedButton, vdom.Bind("label", t.Label)),
		vdom.Slot(),
	)
}

// ThemedButton renders a button using the nearest provided theme.
type ThemedButton struct {
	Label string `prop:"label"`
	theme string
}

// NewThemedButton creates a ThemedButton.
func NewThemedButton() vdom.Component { return &ThemedButton{Label: "OK"} }

// Connected implements engine.ConnectedHook.
func (b *ThemedButton) Connected(vm *engine.VM) {
	b.theme = "default"
	if v, ok := vm.Consume(ThemeKey{}); ok {
		if name, ok := v.(string); ok {
			b.theme = name
		}
	}
	vm.SetHostAttribute("data-theme", b.theme)
}

func (b *ThemedButton) Render() *vdom.VNode {
	return vdom.Button(vdom.Type("button"), vdom.Class("btn", "btn-"+b.theme), vdom.Text(b.Label))
}

// =============================================================================
// x-card
// =============================================================================

// Card renders into its host instead of a shadow root.
type Card struct {
	Title string `prop:"title"`
	Body  string `prop:"body"`
}

// NewCard creates a Card.
func NewCard() vdom.Component { return &Card{} }

// LightDOM implements engine.LightDOMComponent.
func (*Card) LightDOM() bool { return true }

func (c *Card) Render() *vdom.VNode {
	return vdom.Article(vdom.Class("card"),
		vdom.H2(vdom.Text(c.Title)),
		vdom.When(c.Body != "", func() *vdom.VNode {
			return vdom.P(vdom.Text(c.Body))
		}),
	)
}

// =============================================================================
// x-icon
// =============================================================================

var iconPaths = map[string]string{
	"check": "M20 6 9 17l-5-5",
	"close": "M18 6 6 18M6 6l12 12",
	"plus":  "M12 5v14M5 12h14",
}

// Icon renders an inline SVG icon.
type Icon struct {
	Name string `prop:"name"`
	Size int    `prop:"size"`
}

// NewIcon creates an Icon.
func NewIcon() vdom.Component { return &Icon{Name: "check", Size: 24} }

func (i *Icon) Render() *vdom.VNode {
	path, ok := iconPaths[strings.ToLower(i.Name)]
	if !ok {
		return vdom.Nothing()
	}
	return vdom.Svg(
		vdom.AttrOf("viewBox", "0 0 24 24"),
		vdom.AttrOf("width", i.Size),
		vdom.AttrOf("height", i.Size),
		vdom.AttrOf("aria-hidden", "true"),
		vdom.Element("path", vdom.AttrOf("d", path)),
	)
}
