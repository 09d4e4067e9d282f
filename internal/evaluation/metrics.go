package evaluation

// RecallAtK is the fraction of expected product IDs found in the top K
// retrieved IDs. An empty expected set yields 0.
func RecallAtK(expected, retrieved []string, k int) float64 {
	if len(expected) == 0 {
		return 0.0
	}

	want := toSet(expected)
	found := 0
	for _, id := range topK(retrieved, k) {
		if _, ok := want[id]; ok {
			found++
		}
	}

	return float64(found) / float64(len(expected))
}

// MRRAtK is the reciprocal rank of the first expected ID within the top K
// retrieved IDs, or 0 when none appears.
func MRRAtK(expected, retrieved []string, k int) float64 {
	if len(expected) == 0 || len(retrieved) == 0 {
		return 0.0
	}

	want := toSet(expected)
	for i, id := range topK(retrieved, k) {
		if _, ok := want[id]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func topK(ids []string, k int) []string {
	if k < len(ids) {
		return ids[:k]
	}
	return ids
}
