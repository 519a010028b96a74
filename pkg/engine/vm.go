package engine

import (
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/renderer"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// State is the lifecycle state of a VM.
type State uint8

const (
	StateCreated State = iota
	StateConnected
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// VM is a component instance bound to a host element.
type VM struct {
	elm       *host.Node
	component vdom.Component
	adapter   renderer.Adapter
	config    VMConfig
	depth     int
	state     State
	children  []*VM
	engine    *Engine
}

// Host returns the host element.
func (vm *VM) Host() *host.Node { return vm.elm }

// Component returns the component instance.
func (vm *VM) Component() vdom.Component { return vm.component }

// TagName returns the tag name the VM was created with.
func (vm *VM) TagName() string { return vm.config.TagName }

// Mode returns the shadow root mode.
func (vm *VM) Mode() host.ShadowMode { return vm.config.Mode }

// Owner returns the VM whose template created this one, or nil for roots.
func (vm *VM) Owner() *VM { return vm.config.Owner }

// State returns the lifecycle state.
func (vm *VM) State() State { return vm.state }

// Children returns the VMs of nested custom elements, in creation order.
func (vm *VM) Children() []*VM { return vm.children }

// Property returns an initial property assigned to the host element.
func (vm *VM) Property(key string) (any, bool) {
	return vm.elm.Property(key)
}

// SetHostAttribute sets an attribute on the host element.
func (vm *VM) SetHostAttribute(name, value string) {
	vm.adapter.SetAttribute(vm.elm, name, value, "")
}

// Provide registers value under key in the host's context registry.
func (vm *VM) Provide(key, value any) {
	if vm.elm.ContextProviders == nil {
		vm.elm.ContextProviders = make(map[any]any)
	}
	vm.elm.ContextProviders[key] = value
}

// Consume returns the value of the nearest provider of key above the host
// element. Shadow roots are crossed to reach their host.
func (vm *VM) Consume(key any) (any, bool) {
	for n := vm.elm.ParentOrHost(); n != nil; n = n.ParentOrHost() {
		if v, ok := n.ContextProviders[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// applyProperties hands the host's property bag to the component.
func (vm *VM) applyProperties() error {
	props := vm.elm.Properties()
	if len(props) == 0 {
		return nil
	}

	if setter, ok := vm.component.(PropertySetter); ok {
		for _, p := range props {
			if err := setter.SetProperty(p.Key, p.Value); err != nil {
				return errors.New("E015").
					WithDetailf("<%s> property %q", vm.config.TagName, p.Key).
					Wrap(err)
			}
		}
		return nil
	}

	rv := reflect.ValueOf(vm.component)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		// Nothing to decode into; properties stay readable via Property.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "prop",
		WeaklyTypedInput: true,
		Result:           vm.component,
	})
	if err != nil {
		return errors.New("E015").WithDetailf("<%s>", vm.config.TagName).Wrap(err)
	}
	if err := decoder.Decode(props.Map()); err != nil {
		return errors.New("E015").WithDetailf("<%s>", vm.config.TagName).Wrap(err)
	}
	return nil
}
