// Package host provides the document-free node model used during
// server-side rendering.
//
// A Node stands in for a real DOM node. It carries the element kind, tag
// name and namespace, a parent link, ordered children, ordered attribute
// records, an optional shadow root and a registry of context providers.
// Node is a plain data shape: the renderer package owns tree and attribute
// mutation, the engine package owns the Instance slot and the property bag
// interpretation, and the serializer package reads the tree back as markup.
//
// # Properties
//
// Initial component state travels as an ordered sequence of Prop values:
//
//	props := host.Props{
//	    host.P("label", "hi"),
//	    host.P("count", 3),
//	}
//	for _, p := range props {
//	    node.SetProperty(p.Key, p.Value)
//	}
//
// SetProperty writes only to the node's property bag, so a property named
// "parent" or "children" never touches the tree links.
package host
