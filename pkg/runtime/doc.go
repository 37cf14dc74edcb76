// Package runtime gets and sets single configuration items by path.
//
// Paths are slash separated and match case-insensitively:
//
//	$/axes/x/steps_per_mm          reports  $/axes/x/steps_per_mm=80.000
//	$/axes/x/steps_per_mm=100      sets the item
//
// Only sections already present in the tree are searched; a runtime set
// never allocates a section. New values are checked against the same
// bounds the parser enforces.
package runtime
