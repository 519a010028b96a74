// Package vdom provides the template tree that components render.
//
// A component's Render method returns a VNode tree. The VM engine mounts
// that tree into host nodes (see package host) under the component's shadow
// root, and the serializer turns the host tree into markup.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, inline components, raw markup and nested custom elements.
// Props holds attributes. Attr builds Props; Property binds a value onto a
// nested custom element instead of an attribute.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// # Custom Elements
//
// Custom creates a nested component host. It gets its own VM, its own
// shadow root and receives Property values as initial properties:
//
//	Custom("x-item", NewItem, Property("label", "first"))
package vdom
