package ssr

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/engine"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/renderer"
	"github.com/vango-dev/ssr/pkg/serializer"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// Engine binds components to host elements and connects them.
type Engine interface {
	CreateVM(node *host.Node, ctor vdom.Constructor, adapter renderer.Adapter, cfg engine.VMConfig) error
	ConnectRootElement(node *host.Node) error
}

// Serializer renders a host tree to markup.
type Serializer interface {
	SerializeElement(node *host.Node) (string, error)
}

// Renderer renders components. A Renderer holds no per-render state and is
// safe for concurrent use as long as its collaborators are.
type Renderer struct {
	adapter    renderer.Adapter
	engine     Engine
	serializer Serializer
	logger     *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAdapter sets the renderer adapter used to create host nodes.
func WithAdapter(adapter renderer.Adapter) Option {
	return func(r *Renderer) {
		if adapter != nil {
			r.adapter = adapter
		}
	}
}

// WithEngine sets the VM engine.
func WithEngine(e Engine) Option {
	return func(r *Renderer) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithSerializer sets the serializer.
func WithSerializer(s Serializer) Option {
	return func(r *Renderer) {
		if s != nil {
			r.serializer = s
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		adapter:    renderer.New(),
		serializer: serializer.New(serializer.Config{}),
		logger:     slog.Default().With("component", "ssr"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		r.engine = engine.New(engine.WithLogger(r.logger))
	}
	return r
}

var defaultRenderer = New()

// RenderComponent renders ctor as tagName with the default Renderer.
func RenderComponent(tagName string, ctor Constructor, props ...Prop) (string, error) {
	return defaultRenderer.RenderComponent(tagName, ctor, props...)
}

// Render is the untyped form of RenderComponent using the default Renderer.
func Render(tagName any, ctor any, props ...any) (string, error) {
	return defaultRenderer.Render(tagName, ctor, props...)
}

// RenderComponent renders ctor as tagName. Omitted props are an empty bag.
func (r *Renderer) RenderComponent(tagName string, ctor Constructor, props ...Prop) (string, error) {
	if ctor == nil {
		return "", invalidCtor(ctor)
	}
	return r.render(tagName, ctor, props)
}

// Render validates its arguments in order and renders the component.
//
// tagName must be a string. ctor must be a Constructor or a func with no
// parameters returning a single Component. props may be omitted; otherwise
// it must be exactly one non-nil Props, []Prop or map[string]any. Maps are
// applied in sorted key order. Violations wrap ErrInvalidArgument and no
// host node is created.
func (r *Renderer) Render(tagName any, ctor any, props ...any) (string, error) {
	tag, ok := tagName.(string)
	if !ok {
		return "", errors.InvalidArgument("E001",
			"Render expects a string as the first parameter but instead received %s", describe(tagName))
	}

	c, ok := asConstructor(ctor)
	if !ok {
		return "", invalidCtor(ctor)
	}

	bag, err := asProps(props)
	if err != nil {
		return "", err
	}

	return r.render(tag, c, bag)
}

func (r *Renderer) render(tagName string, ctor Constructor, props Props) (string, error) {
	start := time.Now()

	elm := r.adapter.CreateElement(tagName)

	if err := r.engine.CreateVM(elm, ctor, r.adapter, engine.VMConfig{
		Mode:    host.ModeOpen,
		Owner:   nil,
		TagName: tagName,
	}); err != nil {
		return "", err
	}

	for _, p := range props {
		elm.SetProperty(p.Key, p.Value)
	}

	// Satisfies the engine's parent check; syntheticRoot.Children stays empty.
	elm.Parent = syntheticRoot

	if err := r.engine.ConnectRootElement(elm); err != nil {
		return "", err
	}

	out, err := r.serializer.SerializeElement(elm)
	if err != nil {
		return "", err
	}

	r.logger.Debug("component rendered",
		"tag", tagName,
		"props", len(props),
		"bytes", len(out),
		"duration", time.Since(start))
	return out, nil
}

// =============================================================================
// Argument validation
// =============================================================================

var componentType = reflect.TypeOf((*vdom.Component)(nil)).Elem()

func invalidCtor(ctor any) error {
	return errors.InvalidArgument("E002",
		"Render expects a component constructor as the second parameter but instead received %s", describe(ctor))
}

// asConstructor accepts a Constructor or any func() T where T implements
// Component.
func asConstructor(ctor any) (Constructor, bool) {
	switch c := ctor.(type) {
	case nil:
		return nil, false
	case Constructor:
		return c, c != nil
	case func() vdom.Component:
		return c, c != nil
	}

	fn := reflect.ValueOf(ctor)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, false
	}
	ft := fn.Type()
	if ft.NumIn() != 0 || ft.NumOut() != 1 || !ft.Out(0).Implements(componentType) {
		return nil, false
	}

	return func() vdom.Component {
		out := fn.Call(nil)[0]
		switch out.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
			if out.IsNil() {
				return nil
			}
		}
		return out.Interface().(vdom.Component)
	}, true
}

func asProps(args []any) (Props, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if len(args) > 1 {
		return nil, errors.InvalidArgument("E003",
			"Render expects at most one property bag as the third parameter but instead received %d values", len(args))
	}

	switch p := args[0].(type) {
	case Props:
		if p != nil {
			return p, nil
		}
	case []Prop:
		if p != nil {
			return Props(p), nil
		}
	case map[string]any:
		if p != nil {
			return host.PropsFromMap(p), nil
		}
	}
	return nil, errors.InvalidArgument("E003",
		"Render expects an object as the third parameter but instead received %s", describe(args[0]))
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func:
		if rv.IsNil() {
			return fmt.Sprintf("null (%T)", v)
		}
	}
	if rv.Kind() == reflect.Func {
		return fmt.Sprintf("a %T", v)
	}
	return fmt.Sprintf("%v (%T)", v, v)
}
