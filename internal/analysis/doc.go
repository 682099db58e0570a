// Package analysis provides statistics over the escape values of a view.
//
// The package works on the raw escape counts rather than on colors:
//
//   - [Escapes]: per-pixel escape values, computed in parallel
//   - [NewHistogram]: bins escape values into a fixed number of buckets
//   - [Summarize]: interior fraction, mean and range of the escape values
//
// # Choosing an iteration count
//
// A view whose histogram piles up in the lowest bin is under-iterated:
// most escaping points needed nearly all of the budget, so raising the
// iteration count sharpens the boundary.
//
//	values := analysis.Escapes(view, kind, 360)
//	h := analysis.NewHistogram(values, 360, 36)
//	fmt.Println(h.Plot(60, 12))
package analysis
