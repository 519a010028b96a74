package engine

import (
	"log/slog"

	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/renderer"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// DefaultMaxDepth bounds custom element nesting.
const DefaultMaxDepth = 64

// VMConfig configures a new VM.
type VMConfig struct {
	// Mode is the shadow root mode. Defaults to host.ModeOpen.
	Mode host.ShadowMode

	// Owner is the VM whose template created this element. Nil for roots.
	Owner *VM

	// TagName is the element's tag name. Defaults to the host's TagName.
	TagName string
}

// Engine creates and connects VMs. It holds no per-render state and is
// safe for concurrent use on distinct trees.
type Engine struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxDepth sets the maximum custom element nesting depth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   slog.Default().With("component", "engine"),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// VMOf returns the VM bound to elm.
func VMOf(elm *host.Node) (*VM, bool) {
	if elm == nil {
		return nil, false
	}
	vm, ok := elm.Instance.(*VM)
	return vm, ok
}

// CreateVM instantiates ctor and binds the new component to elm.
func (e *Engine) CreateVM(elm *host.Node, ctor vdom.Constructor, adapter renderer.Adapter, cfg VMConfig) error {
	_, err := e.createVM(elm, ctor, adapter, cfg)
	return err
}

func (e *Engine) createVM(elm *host.Node, ctor vdom.Constructor, adapter renderer.Adapter, cfg VMConfig) (*VM, error) {
	if !elm.IsElement() {
		return nil, errors.New("E012").WithDetail("CreateVM requires an element node")
	}
	if _, exists := VMOf(elm); exists {
		return nil, errors.New("E010").WithDetailf("<%s> is already bound", elm.TagName)
	}
	if ctor == nil {
		return nil, errors.New("E011").WithDetailf("nil constructor for <%s>", elm.TagName)
	}

	depth := 0
	if cfg.Owner != nil {
		depth = cfg.Owner.depth + 1
	}
	if depth > e.maxDepth {
		return nil, errors.New("E016").WithDetailf("<%s> at depth %d (max %d)", elm.TagName, depth, e.maxDepth)
	}

	component := ctor()
	if component == nil {
		return nil, errors.New("E011").WithDetailf("constructor for <%s> returned nil", elm.TagName)
	}

	if cfg.Mode == "" {
		cfg.Mode = host.ModeOpen
	}
	if cfg.TagName == "" {
		cfg.TagName = elm.TagName
	}

	vm := &VM{
		elm:       elm,
		component: component,
		adapter:   adapter,
		config:    cfg,
		depth:     depth,
		engine:    e,
	}
	elm.Instance = vm
	if cfg.Owner != nil {
		cfg.Owner.children = append(cfg.Owner.children, vm)
	}

	e.logger.Debug("vm created", "tag", cfg.TagName, "depth", depth)
	return vm, nil
}

// ConnectRootElement runs the connect pass for a root element created with
// CreateVM. The element must have a parent.
func (e *Engine) ConnectRootElement(elm *host.Node) error {
	vm, ok := VMOf(elm)
	if !ok {
		tag := ""
		if elm != nil {
			tag = elm.TagName
		}
		return errors.New("E012").WithDetailf("<%s> has no VM", tag)
	}
	if elm.Parent == nil {
		return errors.New("E013").WithDetailf("<%s> has no parent", elm.TagName)
	}
	return e.connect(vm)
}

// connect applies properties and context, runs hooks and mounts the
// template. Connecting an already connected VM is a no-op.
func (e *Engine) connect(vm *VM) error {
	if vm.state == StateConnected {
		return nil
	}

	if err := vm.applyProperties(); err != nil {
		return err
	}

	if p, ok := vm.component.(ContextProvider); ok {
		for key, value := range p.ProvideContext() {
			vm.Provide(key, value)
		}
	}

	if h, ok := vm.component.(ConnectedHook); ok {
		h.Connected(vm)
	}

	target := vm.elm
	if l, ok := vm.component.(LightDOMComponent); !ok || !l.LightDOM() {
		target = vm.adapter.AttachShadow(vm.elm, vm.config.Mode)
	}

	if tree := vm.component.Render(); tree != nil {
		if err := vm.mount(tree, target, host.HTMLNamespace); err != nil {
			return err
		}
	}
	vm.state = StateConnected

	if h, ok := vm.component.(RenderedHook); ok {
		h.Rendered(vm)
	}

	e.logger.Debug("vm connected", "tag", vm.config.TagName, "children", len(vm.children))
	return nil
}
