package mesh

// Sanitize removes degenerate and duplicate triangles from the list.
// Triangles are duplicates when their lowest-index-first rotations match
// ignoring winding direction, which also merges triangles that share all
// three vertices with opposite winding. The first occurrence of each
// distinct triangle survives, in input order.
func Sanitize(triangles []IndexedTriangle) []IndexedTriangle {
	seen := make(map[[3]uint32]struct{}, len(triangles))
	out := triangles[:0:0]
	for i := range triangles {
		tri := &triangles[i]
		if tri.IsDegenerate() {
			continue
		}
		// Rotating the reversed winding lowest-index-first yields the same
		// rotation with the last two indices swapped, so sorting them makes
		// the key winding independent.
		key := tri.LowestIndexFirst().Idx
		if key[1] > key[2] {
			key[1], key[2] = key[2], key[1]
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, *tri)
	}
	return out
}
