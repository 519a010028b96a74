package ssr

import (
	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/host"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// =============================================================================
// Core types
// =============================================================================

// Component is anything that renders a template.
type Component = vdom.Component

// Constructor creates a new component instance for each render.
type Constructor = vdom.Constructor

// VNode is a template node returned by Component.Render.
type VNode = vdom.VNode

// Node is a document-free host tree node.
type Node = host.Node

// Prop is a single named initial property.
type Prop = host.Prop

// Props is an ordered property bag.
type Props = host.Props

// P creates a Prop.
func P(key string, value any) Prop {
	return host.P(key, value)
}

// PropsFromMap converts m into Props in sorted key order.
func PropsFromMap(m map[string]any) Props {
	return host.PropsFromMap(m)
}

// =============================================================================
// Errors
// =============================================================================

// Error is a structured, coded error.
type Error = errors.Error

// ErrInvalidArgument is wrapped by every argument validation error.
var ErrInvalidArgument = errors.ErrInvalidArgument

// =============================================================================
// Synthetic root
// =============================================================================

// syntheticRoot is the parent of every component root. It is built once and
// only ever read: component roots point at it but are never appended to its
// children.
var syntheticRoot = host.NewElement("fake-root-element", host.HTMLNamespace)
