package model

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Canonical returns an order-independent representation of a nested value.
// Mappings become sorted key/value pair slices, sets become sorted slices and
// sequences are normalized element-wise and then sorted, so two values that
// differ only in container insertion order canonicalize identically.
func Canonical(value any) any {
	switch v := value.(type) {
	case map[string]any:
		pairs := make([]any, 0, len(v))
		for key, val := range v {
			pairs = append(pairs, []any{key, Canonical(val)})
		}
		sortCanonical(pairs)
		return pairs
	case Data:
		return Canonical(map[string]any(v))
	case []any:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, Canonical(item))
		}
		sortCanonical(items)
		return items
	case Set:
		items := make([]any, 0, len(v))
		for item := range v {
			items = append(items, item)
		}
		sortCanonical(items)
		return items
	default:
		return v
	}
}

// CanonicalString renders the canonical form deterministically for hashing.
func CanonicalString(value any) string {
	return fmt.Sprintf("%#v", Canonical(value))
}

// Fingerprint hashes the canonical string rendering of a value with FNV-1a.
func Fingerprint(value any) uint64 {
	h := fnv.New64a()
	h.Write([]byte(CanonicalString(value)))
	return h.Sum64()
}

// sortCanonical orders already-canonicalized elements by their string
// rendering. Sorting on the rendering keeps mixed-type slices comparable.
func sortCanonical(items []any) {
	sort.SliceStable(items, func(i, j int) bool {
		return fmt.Sprintf("%#v", items[i]) < fmt.Sprintf("%#v", items[j])
	})
}
