// Package errors provides structured, actionable errors for the renderer.
//
// Every error carries a code (e.g., "E001") that maps to a registered
// template with a category, a short message, a longer explanation and a
// documentation URL. Call sites add detail, a fix suggestion and the
// underlying cause.
//
// # Error Categories
//
//   - validation: invalid arguments passed to the render entry points
//   - engine: component instantiation and connection failures
//   - serialize: host trees the serializer cannot render
//   - config: configuration file problems
//   - cli: command-line, registry and publishing failures
//
// # Invalid Arguments
//
// All argument validation failures wrap ErrInvalidArgument:
//
//	if errors.Is(err, errors.ErrInvalidArgument) {
//	    // 400 Bad Request
//	}
//
// # Usage
//
//	err := errors.New("E002").
//	    WithDetail("RenderComponent expects a valid component constructor as the second parameter but instead received <nil>.").
//	    WithSuggestion("Pass a func() vdom.Component")
//
//	fmt.Println(err.Format())
package errors
