// Package ssr renders a single component to markup without a document.
//
// A render creates a fresh host element for the tag name, binds a component
// instance to it, seeds its initial properties, connects it under a shared
// synthetic root and serializes the result:
//
//	html, err := ssr.RenderComponent("x-greeting", NewGreeting, ssr.P("label", "hi"))
//
// The engine, serializer and renderer adapter are replaceable through
// options; the defaults come from pkg/engine, pkg/serializer and
// pkg/renderer.
package ssr
