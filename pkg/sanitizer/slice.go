package sanitizer

// NormalizeStringSlice normalizes items, dropping empties and duplicates while
// keeping the first occurrence order.
func NormalizeStringSlice(items []string, normalizer Strategy) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizeSpecialties(specialties []string) []string {
	return NormalizeStringSlice(specialties, NormalizeLabel)
}
