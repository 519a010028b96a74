package engine

// PropertySetter receives initial properties in assignment order. When a
// component implements it, struct decoding is skipped.
type PropertySetter interface {
	SetProperty(key string, value any) error
}

// ContextProvider exposes values to descendant components. Keys are
// provider identities, typically an unexported struct type.
type ContextProvider interface {
	ProvideContext() map[any]any
}

// ConnectedHook is called after properties and context are applied and
// before the first render.
type ConnectedHook interface {
	Connected(vm *VM)
}

// RenderedHook is called after the component's template is mounted.
type RenderedHook interface {
	Rendered(vm *VM)
}

// LightDOMComponent renders into the host element instead of a shadow root
// when LightDOM returns true.
type LightDOMComponent interface {
	LightDOM() bool
}
