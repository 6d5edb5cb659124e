package ranking

// removeID returns ids without the first occurrence of id. The input slice is
// not modified.
func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	removed := false
	for _, v := range ids {
		if !removed && v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

// insertAt returns ids with id inserted at index, clamped to [0, len(ids)].
// Out-of-range indices append or prepend instead of erroring.
func insertAt(ids []string, id string, index int) []string {
	index = clamp(index, 0, len(ids))
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:index]...)
	out = append(out, id)
	out = append(out, ids[index:]...)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
