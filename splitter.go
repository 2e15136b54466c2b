package handhistory

import (
	"fmt"
	"regexp"
)

// Sections is the result of splitting a raw hand history on a room's
// section-delimiter pattern: the ordered fragments, plus the indices of the
// empty fragments the split produced. The empty fragments are the document's
// macro-region boundaries — the first separates the header region from the
// betting rounds, the last precedes the summary.
type Sections struct {
	Fragments  []string
	Boundaries []int
}

// SplitSections splits raw text on the given delimiter pattern. Splitting is
// total: any input yields a result, and malformed documents simply produce
// boundaries that later lookups will fail to resolve.
func SplitSections(pattern *regexp.Regexp, raw string) *Sections {
	fragments := pattern.Split(raw, -1)
	var boundaries []int
	for i, f := range fragments {
		if f == "" {
			boundaries = append(boundaries, i)
		}
	}
	return &Sections{Fragments: fragments, Boundaries: boundaries}
}

// Index returns the index of the first fragment exactly equal to marker,
// or ErrSectionNotFound.
func (s *Sections) Index(marker string) (int, error) {
	for i, f := range s.Fragments {
		if f == marker {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrSectionNotFound, marker)
}

// Contains reports whether any fragment equals marker.
func (s *Sections) Contains(marker string) bool {
	_, err := s.Index(marker)
	return err == nil
}

// BoundaryAfter returns the first boundary index strictly greater than
// start. When no boundary follows, the fragment count is returned so that
// slicing up to the result stays valid.
func (s *Sections) BoundaryAfter(start int) int {
	for _, b := range s.Boundaries {
		if b > start {
			return b
		}
	}
	return len(s.Fragments)
}

// FirstBoundary returns the index of the first boundary fragment.
func (s *Sections) FirstBoundary() (int, error) {
	if len(s.Boundaries) == 0 {
		return 0, fmt.Errorf("%w: no section boundaries", ErrSectionNotFound)
	}
	return s.Boundaries[0], nil
}

// LastBoundary returns the index of the last boundary fragment, which
// precedes the summary region.
func (s *Sections) LastBoundary() (int, error) {
	if len(s.Boundaries) == 0 {
		return 0, fmt.Errorf("%w: no section boundaries", ErrSectionNotFound)
	}
	return s.Boundaries[len(s.Boundaries)-1], nil
}

// Fragment returns the fragment at index i, or ErrSectionNotFound when i is
// out of range. Stages use this instead of raw slice indexing so document
// corruption surfaces as a typed error rather than a panic.
func (s *Sections) Fragment(i int) (string, error) {
	if i < 0 || i >= len(s.Fragments) {
		return "", fmt.Errorf("%w: fragment index %d out of range", ErrSectionNotFound, i)
	}
	return s.Fragments[i], nil
}
