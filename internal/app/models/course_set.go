package models

import "sort"

// CourseSet is a set of course codes
type CourseSet map[string]struct{}

// NewCourseSet builds a set from the given codes
func NewCourseSet(codes ...string) CourseSet {
	s := make(CourseSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports membership
func (s CourseSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Add inserts codes into the set
func (s CourseSet) Add(codes ...string) {
	for _, c := range codes {
		s[c] = struct{}{}
	}
}

// Union returns a new set holding the members of s and other. Neither input is modified.
func (s CourseSet) Union(other CourseSet) CourseSet {
	out := make(CourseSet, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// ContainsAll reports whether every code is in the set
func (s CourseSet) ContainsAll(codes []string) bool {
	for _, c := range codes {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// CountIn returns how many of codes are in the set
func (s CourseSet) CountIn(codes []string) int {
	n := 0
	for _, c := range codes {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Missing returns the codes not in the set, preserving their order
func (s CourseSet) Missing(codes []string) []string {
	var out []string
	for _, c := range codes {
		if !s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Sorted returns the members in lexical order
func (s CourseSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
