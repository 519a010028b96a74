// Package serializer renders host node trees to markup.
//
// The serializer walks a tree built by the VM engine and writes HTML5
// markup, handling:
//
//   - Text and attribute escaping (XSS prevention)
//   - Void element handling (input, br, img, etc.)
//   - Boolean attribute handling (disabled, checked, etc.)
//   - Declarative shadow roots as <template shadowrootmode="...">
//   - Namespaced attribute prefixes (xlink:href, xml:lang)
//   - Raw text elements (script, style) written unescaped
//
// # Basic Usage
//
//	s := serializer.New(serializer.Config{})
//	markup, err := s.SerializeElement(node)
//
// To stream to a writer:
//
//	err := s.WriteElement(w, node)
//
// Pretty mode indents block elements and should only be used for
// debugging, since it changes whitespace in the output.
package serializer
