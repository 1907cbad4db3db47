package normalizer

// CategoryNormalizer maps free text onto a closed set of labels.
type CategoryNormalizer struct {
	allowed  map[string]struct{}
	fallback string
}

// NewCategoryNormalizer builds a normalizer for the allowed labels. Values
// outside the set normalize to fallback.
func NewCategoryNormalizer(allowed []string, fallback string) *CategoryNormalizer {
	set := make(map[string]struct{}, len(allowed))
	for _, label := range allowed {
		set[label] = struct{}{}
	}

	return &CategoryNormalizer{
		allowed:  set,
		fallback: fallback,
	}
}

// Normalize returns value when it is an allowed label, the fallback otherwise.
// known reports which of the two happened.
func (c *CategoryNormalizer) Normalize(value string) (label string, known bool) {
	if _, ok := c.allowed[value]; ok {
		return value, true
	}

	return c.fallback, false
}
