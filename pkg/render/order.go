package render

import (
	"cmp"
	"slices"
)

// SortByDepth returns the triangles ordered farthest first for painter's
// algorithm drawing. Triangles with equal depth keep their input order.
// The input slice is left untouched.
func SortByDepth(tris []Triangle) []Triangle {
	out := slices.Clone(tris)
	sortByDepth(out)
	return out
}

// sortByDepth orders tris in place, farthest first.
func sortByDepth(tris []Triangle) {
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		return cmp.Compare(b.Depth(), a.Depth())
	})
}
