package repository

import "github.com/google/uuid"

// isPermutation reports whether got contains exactly the ids in want, each
// once, in any order. Reorder operations refuse anything less: an id left
// out would keep its stale position and could collide with a new one.
func isPermutation(got, want []uuid.UUID) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[uuid.UUID]bool, len(want))
	for _, id := range want {
		seen[id] = true
	}
	for _, id := range got {
		if !seen[id] {
			return false
		}
		delete(seen, id)
	}
	return len(seen) == 0
}
