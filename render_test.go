package ssr

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	vangoerrors "github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/engine"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/renderer"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// =============================================================================
// Fixtures
// =============================================================================

type empty struct{}

func (empty) Render() *vdom.VNode { return nil }

func newEmpty() Component { return empty{} }

type label struct {
	Label string `prop:"label"`
}

func (l *label) Render() *vdom.VNode {
	return vdom.Span(vdom.Text(l.Label))
}

func newLabel() *label { return &label{} }

type spyAdapter struct {
	*renderer.Renderer
	mu      sync.Mutex
	created int
}

func (s *spyAdapter) CreateElement(tagName string) *host.Node {
	s.mu.Lock()
	s.created++
	s.mu.Unlock()
	return s.Renderer.CreateElement(tagName)
}

type failingEngine struct {
	err error
}

func (f failingEngine) CreateVM(*host.Node, vdom.Constructor, renderer.Adapter, engine.VMConfig) error {
	return nil
}

func (f failingEngine) ConnectRootElement(*host.Node) error { return f.err }

type failingSerializer struct {
	err error
}

func (f failingSerializer) SerializeElement(*host.Node) (string, error) { return "", f.err }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newSpyRenderer() (*Renderer, *spyAdapter) {
	spy := &spyAdapter{Renderer: renderer.New()}
	return New(WithAdapter(spy), WithLogger(quietLogger())), spy
}

func assertRootClean(t *testing.T) {
	t.Helper()
	if len(syntheticRoot.Children) != 0 {
		t.Fatalf("synthetic root has %d children", len(syntheticRoot.Children))
	}
	if syntheticRoot.Parent != nil || len(syntheticRoot.Attributes) != 0 || len(syntheticRoot.ContextProviders) != 0 {
		t.Fatal("synthetic root was mutated")
	}
}

// =============================================================================
// Validation
// =============================================================================

func TestRenderRejectsNonStringTag(t *testing.T) {
	tags := []any{nil, 42, 3.5, true, []string{"x-a"}, struct{}{}, new(string)}

	for _, tag := range tags {
		t.Run(fmt.Sprintf("%T", tag), func(t *testing.T) {
			r, spy := newSpyRenderer()

			_, err := r.Render(tag, newEmpty)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if code := vangoerrors.CodeOf(err); code != "E001" {
				t.Errorf("code = %q, want E001", code)
			}
			if !strings.Contains(err.Error(), "first parameter") {
				t.Errorf("error should name the parameter: %v", err)
			}
			if spy.created != 0 {
				t.Errorf("adapter invoked %d times", spy.created)
			}
			assertRootClean(t)
		})
	}
}

func TestRenderRejectsNonConstructor(t *testing.T) {
	var nilCtor Constructor
	var nilFunc func() *label

	tests := []struct {
		name string
		ctor any
	}{
		{"nil", nil},
		{"string", "x-empty"},
		{"component value", empty{}},
		{"nil constructor", nilCtor},
		{"nil func", nilFunc},
		{"func with args", func(string) Component { return empty{} }},
		{"func without result", func() {}},
		{"func with two results", func() (Component, error) { return empty{}, nil }},
		{"func returning non-component", func() string { return "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, spy := newSpyRenderer()

			_, err := r.Render("x-empty", tt.ctor, map[string]any{"label": "hi"})
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if code := vangoerrors.CodeOf(err); code != "E002" {
				t.Errorf("code = %q, want E002", code)
			}
			if spy.created != 0 {
				t.Error("no node may be created before validation passes")
			}
			assertRootClean(t)
		})
	}
}

func TestRenderComponentRejectsNilConstructor(t *testing.T) {
	r, spy := newSpyRenderer()
	_, err := r.RenderComponent("x-empty", nil, P("label", "hi"))
	if !errors.Is(err, ErrInvalidArgument) || vangoerrors.CodeOf(err) != "E002" {
		t.Fatalf("err = %v", err)
	}
	if spy.created != 0 {
		t.Error("adapter invoked")
	}
}

func TestRenderRejectsBadProps(t *testing.T) {
	var nilProps Props
	var nilMap map[string]any

	tests := []struct {
		name  string
		props []any
	}{
		{"nil", []any{nil}},
		{"nil Props", []any{nilProps}},
		{"nil map", []any{nilMap}},
		{"string", []any{"label=hi"}},
		{"number", []any{7}},
		{"single prop", []any{P("label", "hi")}},
		{"typed map", []any{map[string]string{"label": "hi"}}},
		{"two bags", []any{Props{}, Props{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, spy := newSpyRenderer()

			_, err := r.Render("x-empty", newEmpty, tt.props...)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if code := vangoerrors.CodeOf(err); code != "E003" {
				t.Errorf("code = %q, want E003", code)
			}
			if spy.created != 0 {
				t.Error("adapter invoked")
			}
			assertRootClean(t)
		})
	}
}

func TestRenderValidationOrder(t *testing.T) {
	r, _ := newSpyRenderer()

	_, err := r.Render(1, nil, nil)
	if code := vangoerrors.CodeOf(err); code != "E001" {
		t.Errorf("code = %q, want E001 first", code)
	}
	_, err = r.Render("x", nil, nil)
	if code := vangoerrors.CodeOf(err); code != "E002" {
		t.Errorf("code = %q, want E002 second", code)
	}
}

// =============================================================================
// Rendering
// =============================================================================

func TestRenderEmptyComponent(t *testing.T) {
	r, _ := newSpyRenderer()

	omitted, err := r.Render("x-empty", newEmpty)
	if err != nil {
		t.Fatal(err)
	}
	explicit, err := r.Render("x-empty", newEmpty, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	typed, err := r.RenderComponent("x-empty", newEmpty)
	if err != nil {
		t.Fatal(err)
	}

	want := `<x-empty><template shadowrootmode="open"></template></x-empty>`
	for name, got := range map[string]string{"omitted": omitted, "explicit": explicit, "typed": typed} {
		if got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}

func TestRenderEmptyTagName(t *testing.T) {
	r, spy := newSpyRenderer()

	got, err := r.Render("", newEmpty)
	if err != nil {
		t.Fatalf("empty tag name should render: %v", err)
	}
	if want := `<><template shadowrootmode="open"></template></>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if spy.created != 1 {
		t.Errorf("adapter invoked %d times, want 1", spy.created)
	}
	assertRootClean(t)
}

func TestRenderReflectsProps(t *testing.T) {
	tests := []struct {
		name  string
		props []any
	}{
		{"map", []any{map[string]any{"label": "hi"}}},
		{"Props", []any{Props{P("label", "hi")}}},
		{"[]Prop", []any{[]Prop{P("label", "hi")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newSpyRenderer()

			out, err := r.Render("x-label", newLabel, tt.props...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "hi") {
				t.Errorf("output %q should contain hi", out)
			}
			if strings.Contains(out, "label=") {
				t.Errorf("props must not become attributes: %q", out)
			}
			if strings.Contains(out, "fake-root-element") {
				t.Errorf("synthetic root leaked into output: %q", out)
			}
		})
	}
}

func TestRenderLastPropWins(t *testing.T) {
	r, _ := newSpyRenderer()
	out, err := r.RenderComponent("x-label", func() Component { return newLabel() },
		P("label", "first"), P("label", "second"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<span>second</span>") {
		t.Errorf("got %q", out)
	}
}

func TestRenderReservedKeysAreOrdinaryProps(t *testing.T) {
	var got *host.Node
	capture := func() Component {
		return vdom.Func(func() *vdom.VNode { return nil })
	}
	r := New(WithLogger(quietLogger()), WithSerializer(serializerFunc(func(n *host.Node) (string, error) {
		got = n
		return "", nil
	})))

	if _, err := r.RenderComponent("x-any", capture, P("parent", "p"), P("children", "c")); err != nil {
		t.Fatal(err)
	}
	if got.Parent != syntheticRoot {
		t.Error("parent link must point at the synthetic root")
	}
	if v, _ := got.Property("parent"); v != "p" {
		t.Errorf("parent prop = %v", v)
	}
	assertRootClean(t)
}

type serializerFunc func(*host.Node) (string, error)

func (f serializerFunc) SerializeElement(n *host.Node) (string, error) { return f(n) }

func TestRenderIsRepeatable(t *testing.T) {
	first, err := Render("x-label", newLabel, map[string]any{"label": "hi"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Render("x-label", newLabel, map[string]any{"label": "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("outputs differ:\n%s\n%s", first, second)
	}
	assertRootClean(t)
}

func TestRenderConcurrent(t *testing.T) {
	r, spy := newSpyRenderer()
	want, err := r.RenderComponent("x-label", func() Component { return newLabel() }, P("label", "hi"))
	if err != nil {
		t.Fatal(err)
	}

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.RenderComponent("x-label", func() Component { return newLabel() }, P("label", "hi"))
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- fmt.Errorf("got %q", got)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	if spy.created != n+1 {
		t.Errorf("created = %d, want %d", spy.created, n+1)
	}
	assertRootClean(t)
}

// =============================================================================
// Collaborator failures
// =============================================================================

func TestRenderPropagatesEngineError(t *testing.T) {
	boom := errors.New("connect failed")
	r := New(WithEngine(failingEngine{err: boom}), WithLogger(quietLogger()))

	_, err := r.RenderComponent("x-empty", newEmpty)
	if err != boom {
		t.Fatalf("err = %v, want the engine error unchanged", err)
	}
	assertRootClean(t)
}

func TestRenderPropagatesSerializerError(t *testing.T) {
	boom := errors.New("write failed")
	r := New(WithSerializer(failingSerializer{err: boom}), WithLogger(quietLogger()))

	out, err := r.RenderComponent("x-empty", newEmpty)
	if err != boom || out != "" {
		t.Fatalf("got (%q, %v)", out, err)
	}
	assertRootClean(t)
}

func TestRenderPropagatesComponentErrors(t *testing.T) {
	r, _ := newSpyRenderer()

	_, err := r.RenderComponent("x-label", func() Component { return newLabel() },
		P("label", map[string]any{"not": "a string"}))
	if code := vangoerrors.CodeOf(err); code != "E015" {
		t.Errorf("code = %q (%v), want E015", code, err)
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("engine errors are not argument errors")
	}
	assertRootClean(t)
}
