// Package enum maps named configuration values to integers.
package enum

import "strings"

// Item is one symbolic name of an enumeration.
type Item struct {
	Value int
	Name  string
}

// Table is an ordered list of enumeration items. Several names may map to
// the same value; the first one is the canonical name.
type Table []Item

// Value returns the value for name. Names match case-insensitively.
func (t Table) Value(name string) (int, bool) {
	for _, it := range t {
		if strings.EqualFold(it.Name, name) {
			return it.Value, true
		}
	}
	return 0, false
}

// Name returns the canonical name for value.
func (t Table) Name(value int) (string, bool) {
	for _, it := range t {
		if it.Value == value {
			return it.Name, true
		}
	}
	return "", false
}

// Names returns all names in declaration order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, it := range t {
		names[i] = it.Name
	}
	return names
}
