package store

// The helpers below never modify their input slice.

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func filterOut[T any](items []T, id string, idOf func(T) string) (out []T, removed T, found bool) {
	out = make([]T, 0, len(items))
	for _, item := range items {
		if !found && idOf(item) == id {
			removed, found = item, true
			continue
		}
		out = append(out, item)
	}
	return out, removed, found
}

func mapMatch[T any](items []T, id string, idOf func(T) string, fn func(T) T) ([]T, bool) {
	out := make([]T, len(items))
	found := false
	for i, item := range items {
		if idOf(item) == id {
			item = fn(item)
			found = true
		}
		out[i] = item
	}
	return out, found
}

func containsID[T any](items []T, id string, idOf func(T) string) bool {
	for _, item := range items {
		if idOf(item) == id {
			return true
		}
	}
	return false
}
