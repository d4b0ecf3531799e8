package entities

import (
	"encoding/json"
	"sort"
)

// TagSet is a set of tag names. Names are weak references: a name may be
// present in a set before (or after) a first-class Tag entry with that name
// exists in the owning user's library.
type TagSet map[string]struct{}

// NewTagSet creates a set containing the given names.
func NewTagSet(names ...string) TagSet {
	s := make(TagSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

func (s TagSet) Add(name string) {
	s[name] = struct{}{}
}

func (s TagSet) Remove(name string) {
	delete(s, name)
}

func (s TagSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// ContainsAll reports whether every name in other is present in s.
// An empty other is always contained.
func (s TagSet) ContainsAll(other TagSet) bool {
	for name := range other {
		if !s.Contains(name) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one name in other is present in s.
func (s TagSet) ContainsAny(other TagSet) bool {
	for name := range other {
		if s.Contains(name) {
			return true
		}
	}
	return false
}

// Names returns the tag names in sorted order.
func (s TagSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the set.
func (s TagSet) Clone() TagSet {
	if s == nil {
		return nil
	}
	clone := make(TagSet, len(s))
	for name := range s {
		clone[name] = struct{}{}
	}
	return clone
}

// MarshalJSON encodes the set as a sorted JSON array of names.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON decodes a JSON array of names into the set.
func (s *TagSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewTagSet(names...)
	return nil
}
