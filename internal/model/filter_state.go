package model

// FilterState holds the three independent selector sets.
// An empty set means no constraint on that dimension.
type FilterState struct {
	Sectors            []string `json:"sectors"`
	Industries         []string `json:"industries"`
	ClassificationTags []string `json:"classification_tags"`
}

// NewFilterState builds a normalised FilterState
func NewFilterState(sectors, industries, tags []string) FilterState {
	return FilterState{
		Sectors:            normalizeSet(sectors),
		Industries:         normalizeSet(industries),
		ClassificationTags: normalizeSet(tags),
	}
}

// WithSectors returns a copy with the sector set replaced
func (f FilterState) WithSectors(values []string) FilterState {
	return NewFilterState(values, f.Industries, f.ClassificationTags)
}

// WithIndustries returns a copy with the industry set replaced
func (f FilterState) WithIndustries(values []string) FilterState {
	return NewFilterState(f.Sectors, values, f.ClassificationTags)
}

// WithClassificationTags returns a copy with the classification tag set replaced
func (f FilterState) WithClassificationTags(values []string) FilterState {
	return NewFilterState(f.Sectors, f.Industries, values)
}

// IsEmpty returns true if no dimension is constrained
func (f FilterState) IsEmpty() bool {
	return len(f.Sectors) == 0 && len(f.Industries) == 0 && len(f.ClassificationTags) == 0
}

// Equal compares two states as sets, ignoring order
func (f FilterState) Equal(other FilterState) bool {
	return sameSet(f.Sectors, other.Sectors) &&
		sameSet(f.Industries, other.Industries) &&
		sameSet(f.ClassificationTags, other.ClassificationTags)
}

// normalizeSet drops blanks and duplicates, keeping first-seen order.
// The result is never nil.
func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sameSet(a, b []string) bool {
	as := normalizeSet(a)
	bs := normalizeSet(b)
	if len(as) != len(bs) {
		return false
	}
	lookup := make(map[string]struct{}, len(as))
	for _, v := range as {
		lookup[v] = struct{}{}
	}
	for _, v := range bs {
		if _, ok := lookup[v]; !ok {
			return false
		}
	}
	return true
}
