// Package engine binds components to host nodes and drives them through a
// single synchronous connect pass.
//
// CreateVM instantiates a component for a host element and stores the
// resulting VM in the element's Instance slot. ConnectRootElement applies
// the element's initial properties to the component, registers provided
// context, runs the Connected hook, renders the component's template into
// its shadow root (or into the host for light DOM components) and runs the
// Rendered hook. Nested custom elements found in a template get their own
// VM and are connected as soon as they are inserted.
//
// # Component Hooks
//
// A component is any vdom.Component. It may also implement:
//
//   - PropertySetter to receive initial properties one by one
//   - ContextProvider to expose values to descendants
//   - ConnectedHook and RenderedHook for lifecycle callbacks
//   - LightDOMComponent to render without a shadow root
//
// Components that implement none of these and are pointers to structs get
// their properties decoded into fields tagged `prop:"name"`.
//
// # Example
//
//	type Greeting struct {
//	    Label string `prop:"label"`
//	}
//
//	func (g *Greeting) Render() *vdom.VNode {
//	    return vdom.P(vdom.Text("Hello, " + g.Label))
//	}
//
// There is no reactivity: properties set after connection are not observed.
package engine
