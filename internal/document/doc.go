// Package document holds the in-memory tree produced by the loader:
// canvases, literal values, value nodes, keyframes and layers.
//
// Value and ValueNode are closed sum types. Callers switch on the concrete
// type (or on Kind/NodeKind) rather than inspecting fields:
//
//	switch n := node.(type) {
//	case *document.Constant:
//		use(n.Value)
//	case *document.Animated:
//		for _, wp := range n.Waypoints { ... }
//	}
//
// Value nodes may be shared: the same *Animated can be reachable from
// several canvases' definitions and from layer parameters.
package document
