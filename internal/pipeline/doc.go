// Package pipeline threads a configuration table through a sequence of
// loading steps.
//
// A Chain holds the current table and, once something went wrong, the first
// error. AndThen runs a step that may fail; Map runs one that cannot. Both
// are skipped after the first failure, so the error a caller sees is always
// the one raised by the earliest failing step, unchanged.
//
// Steps write their result through a pointer captured when the step is
// built. Assemble keeps the destination descriptor private to the chain and
// only hands it out when every step succeeded:
//
//	win, err := pipeline.Assemble(root, func(c pipeline.Chain, w *Window) pipeline.Chain {
//		return c.
//			AndThen(pipeline.Subtable("window")).
//			AndThen(pipeline.Load("title", &w.Title)).
//			Map(pipeline.LoadOr("x", &w.X, -1))
//	})
package pipeline
