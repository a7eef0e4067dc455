package model

import (
	"encoding/json"
	"strings"
)

// Set is an ordered set of trimmed strings compared case-insensitively.
// The first spelling of each member is kept for display.
type Set struct {
	items []string
	index map[string]struct{}
}

func foldKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// NewSet builds a set from values, dropping blanks and case-insensitive duplicates.
func NewSet(values ...string) Set {
	var s Set
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := foldKey(v)
		if s.index == nil {
			s.index = make(map[string]struct{}, len(values))
		}
		if _, dup := s.index[k]; dup {
			continue
		}
		s.index[k] = struct{}{}
		s.items = append(s.items, v)
	}
	return s
}

// ParseSet splits a comma-separated field into a Set. Empty input yields an empty set.
func ParseSet(field string) Set {
	if strings.TrimSpace(field) == "" {
		return Set{}
	}
	return NewSet(strings.Split(field, ",")...)
}

func (s Set) Len() int { return len(s.items) }

// Items returns a copy of the members in source order.
func (s Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s Set) Contains(v string) bool {
	_, ok := s.index[foldKey(v)]
	return ok
}

// Missing returns the members of s absent from other, in s's order.
func (s Set) Missing(other Set) []string {
	var out []string
	for _, v := range s.items {
		if !other.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// CountIn returns how many members of s are also in other.
func (s Set) CountIn(other Set) int {
	return s.Len() - len(s.Missing(other))
}

func (s Set) String() string { return strings.Join(s.items, ", ") }

func (s Set) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// EqualFold compares two free-text fields after trimming, ignoring case.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
