// Package catalog deduplicates graphs by canonical key.
//
// Two implementations of Set are provided:
//
//   - Index: an in-memory ordered set (red-black tree ordered by Key.Compare).
//     Keys iterate in canonical order, which makes dumps reproducible.
//   - Store: a badger-backed set that survives restarts, or runs in memory
//     when no path is given.
//
// Each set remembers the label of the first graph that produced a key, so a
// dedup run can report which input represents each isomorphism class.
//
//	ix := catalog.NewIndex()
//	for name, g := range graphs {
//		_, added, err := catalog.AddGraph(ix, g, name)
//		...
//	}
//	fmt.Println(ix.Len()) // number of isomorphism classes
package catalog
