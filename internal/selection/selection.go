// Package selection holds the set of selected instance ids and the
// bounding-box test used for marquee selection.
package selection

import "slices"

// Set is an insertion-ordered set of instance ids.
type Set struct {
	ids []string
}

// Replace makes ids the whole selection. Duplicates are collapsed.
func (s *Set) Replace(ids ...string) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		if !s.Contains(id) {
			s.ids = append(s.ids, id)
		}
	}
}

// Toggle adds id if absent and removes it if present.
func (s *Set) Toggle(id string) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// Clear empties the selection.
func (s *Set) Clear() {
	s.ids = nil
}

// Contains reports whether id is selected.
func (s *Set) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids in selection order.
func (s *Set) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of selected ids.
func (s *Set) Len() int {
	return len(s.ids)
}

// Retain drops every id for which keep returns false.
func (s *Set) Retain(keep func(id string) bool) {
	s.ids = slices.DeleteFunc(s.ids, func(id string) bool { return !keep(id) })
}
